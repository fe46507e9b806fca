package terminal

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Run executes model until it quits or ctx ends. A nil in or out keeps the
// bubbletea default for that stream.
func Run(ctx context.Context, model tea.Model, in io.Reader, out io.Writer) error {
	options := []tea.ProgramOption{tea.WithContext(ctx)}
	if in != nil {
		options = append(options, tea.WithInput(in))
	}
	if out != nil {
		options = append(options, tea.WithOutput(out))
	}

	_, err := tea.NewProgram(model, options...).Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
