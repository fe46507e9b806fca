// Package tui runs a form definition as a sequence of terminal prompts.
//
// Every field is prompted once, then the whole form is validated in one
// pass. Failing fields are reported with their message and prompted again
// until the verdict is valid, at which point the values go to the sink.
package tui

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-widgetdemo/pkg/forms"
)

// Session prompts for one form at a time.
type Session struct {
	driver      PromptDriver
	sink        forms.Sink
	theme       Theme
	maxAttempts int
	logger      *zap.Logger
}

// New constructs a Session with the survey driver and no sink.
func New(options ...Option) *Session {
	s := &Session{
		theme:  Theme{ErrorPrefix: "✗ "},
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Run prompts for def until it validates and returns the delivered form.
func (s *Session) Run(ctx context.Context, def forms.Definition, prefill ...forms.Values) (*forms.Form, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	form := forms.NewForm(def, prefill...)

	if err := s.info(ctx, def.Heading); err != nil {
		return nil, err
	}
	for _, field := range def.Fields {
		if err := s.promptField(ctx, form, field); err != nil {
			return nil, err
		}
	}

	for attempt := 1; ; attempt++ {
		result, err := form.Submit(ctx, s.sink)
		if err != nil {
			return nil, err
		}
		if result.Valid {
			break
		}
		s.logger.Debug("form rejected",
			zap.String("form", def.Name),
			zap.Int("attempt", attempt),
			zap.Strings("fields", result.Failed()),
		)
		if s.maxAttempts > 0 && attempt >= s.maxAttempts {
			return form, fmt.Errorf("%w: %s after %d passes", ErrTooManyAttempts, def.Name, attempt)
		}

		for _, name := range def.FieldNames() {
			msg, failed := result.Message(name)
			if !failed {
				continue
			}
			if err := s.info(ctx, s.theme.ErrorPrefix+msg); err != nil {
				return nil, err
			}
			field, _ := def.Field(name)
			if err := s.promptField(ctx, form, field); err != nil {
				return nil, err
			}
		}
	}

	if notice := form.Notice(); notice != "" {
		if err := s.info(ctx, s.theme.InfoPrefix+notice); err != nil {
			return nil, err
		}
	}
	if def.Info != nil {
		if err := s.offerInfo(ctx, form); err != nil {
			return nil, err
		}
	}
	return form, nil
}

func (s *Session) promptField(ctx context.Context, form *forms.Form, field forms.Field) error {
	label := field.Label
	if label == "" {
		label = field.Name
	}
	current := form.Values()[field.Name]
	help := field.Message
	if field.Type == forms.FieldTypeDate {
		help = joinHelp("YYYY-MM-DD", help)
	}

	var (
		value string
		err   error
	)
	if field.Type == forms.FieldTypeTextArea {
		value, err = s.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: current, Help: help})
	} else {
		value, err = s.driver.Input(ctx, InputConfig{Message: label, Default: current, Help: help})
	}
	if err != nil {
		return fmt.Errorf("tui: prompt %s: %w", field.Name, err)
	}
	return form.Set(field.Name, value)
}

func (s *Session) offerInfo(ctx context.Context, form *forms.Form) error {
	def := form.Definition()
	show, err := s.driver.Confirm(ctx, ConfirmConfig{Message: def.Info.Show})
	if err != nil {
		return fmt.Errorf("tui: prompt info: %w", err)
	}
	form.SetInfoVisible(show)
	if !show {
		return nil
	}
	if err := s.info(ctx, def.Info.Heading); err != nil {
		return err
	}
	values := form.Values()
	for _, field := range def.Fields {
		label := field.Label
		if label == "" {
			label = field.Name
		}
		if err := s.info(ctx, fmt.Sprintf("%s: %s", label, values[field.Name])); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) info(ctx context.Context, msg string) error {
	if msg == "" {
		return nil
	}
	return s.driver.Info(ctx, msg)
}

func joinHelp(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}
