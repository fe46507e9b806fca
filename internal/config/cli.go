package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Opt is a single command-line option.
type Opt struct {
	DestP   any // pointer to the destination
	Flag    string
	Default any
	Desc    string
}

// Program describes one subcommand and its options.
type Program struct {
	// Run is invoked by cobra on execute, after the options are loaded.
	Run func(cmd *cobra.Command, args []string) error
	// Name is the command name in help usage.
	Name string
	// Short is the one-line help text.
	Short string
	// Opts are the command line/env var options to the program.
	Opts []Opt
}

// EnvPrefix prefixes every environment variable read through viper.
const EnvPrefix = "WIDGETDEMO"

// NewViper returns a viper instance reading WIDGETDEMO_* variables, with
// "-" in flag names mapped to "_".
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	return v
}

// NewCommand creates a cobra command whose options resolve in the order
// flag, environment, config file, default.
func NewCommand(v *viper.Viper, p *Program) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   p.Name,
		Short: p.Short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := Load(v, p.Opts); err != nil {
				return err
			}
			return p.Run(cmd, args)
		},
	}
	if err := BindOptions(v, cmd, p.Opts); err != nil {
		return nil, err
	}
	return cmd, nil
}

// BindOptions registers opts as flags on cmd and binds them to v.
func BindOptions(v *viper.Viper, cmd *cobra.Command, opts []Opt) error {
	for _, o := range opts {
		switch destP := o.DestP.(type) {
		case *string:
			var d string
			if o.Default != nil {
				d = o.Default.(string)
			}
			cmd.Flags().StringVar(destP, o.Flag, d, o.Desc)
		case *int:
			var d int
			if o.Default != nil {
				d = o.Default.(int)
			}
			cmd.Flags().IntVar(destP, o.Flag, d, o.Desc)
		case *bool:
			var d bool
			if o.Default != nil {
				d = o.Default.(bool)
			}
			cmd.Flags().BoolVar(destP, o.Flag, d, o.Desc)
		case *time.Duration:
			var d time.Duration
			if o.Default != nil {
				d = o.Default.(time.Duration)
			}
			cmd.Flags().DurationVar(destP, o.Flag, d, o.Desc)
		default:
			return fmt.Errorf("config: unsupported destination type %T for --%s", o.DestP, o.Flag)
		}
		if err := v.BindPFlag(o.Flag, cmd.Flags().Lookup(o.Flag)); err != nil {
			return fmt.Errorf("config: bind --%s: %w", o.Flag, err)
		}
	}
	return nil
}

// Load copies the resolved value of every option into its destination.
func Load(v *viper.Viper, opts []Opt) error {
	for _, o := range opts {
		switch destP := o.DestP.(type) {
		case *string:
			*destP = v.GetString(o.Flag)
		case *int:
			*destP = v.GetInt(o.Flag)
		case *bool:
			*destP = v.GetBool(o.Flag)
		case *time.Duration:
			*destP = v.GetDuration(o.Flag)
		default:
			return fmt.Errorf("config: unsupported destination type %T for --%s", o.DestP, o.Flag)
		}
	}
	return nil
}

// ReadFile merges a YAML, TOML or JSON config file into v. A blank path is
// a no-op.
func ReadFile(v *viper.Viper, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}
