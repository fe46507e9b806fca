package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func runServe(t *testing.T, args []string, configFile string) Config {
	t.Helper()
	v := NewViper()
	require.NoError(t, ReadFile(v, configFile))

	var cfg Config
	var ran bool
	cmd, err := NewCommand(v, &Program{
		Name: "serve",
		Opts: cfg.ServeOpts(),
		Run: func(*cobra.Command, []string) error {
			ran = true
			return nil
		},
	})
	require.NoError(t, err)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	require.True(t, ran)
	return cfg
}

func TestServeDefaults(t *testing.T) {
	cfg := runServe(t, nil, "")
	want := Default()
	want.Form = ""
	require.Equal(t, want, cfg)
	require.NoError(t, cfg.Validate())
}

func TestPrecedence_FlagOverEnvOverFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "widgetdemo.yaml")
	require.NoError(t, os.WriteFile(file, []byte("theme: dark\nvariant: classic\naddr: \":7000\"\n"), 0o600))

	t.Setenv("WIDGETDEMO_ADDR", ":9090")
	t.Setenv("WIDGETDEMO_TIMER_INTERVAL", "25ms")

	cfg := runServe(t, []string{"--variant", "full"}, file)
	require.Equal(t, "dark", cfg.Theme)
	require.Equal(t, "full", cfg.Variant)
	require.Equal(t, ":9090", cfg.Addr)
	require.Equal(t, 25*time.Millisecond, cfg.TimerInterval)
}

func TestReadFile_Missing(t *testing.T) {
	require.Error(t, ReadFile(NewViper(), filepath.Join(t.TempDir(), "missing.yaml")))
	require.NoError(t, ReadFile(NewViper(), " "))
}

func TestBindOptions_UnsupportedType(t *testing.T) {
	var f float64
	err := BindOptions(NewViper(), &cobra.Command{Use: "x"}, []Opt{{DestP: &f, Flag: "ratio"}})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Variant = "mobile"
	cfg.Location = "Mars/Olympus"
	cfg.LogLevel = "loud"
	cfg.Grace = -time.Second
	cfg.TimerInterval = 0

	err := cfg.Validate()
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 5)
}
