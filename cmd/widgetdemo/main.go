package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/goliatone/go-widgetdemo/internal/config"
	"github.com/goliatone/go-widgetdemo/internal/logger"
	"github.com/goliatone/go-widgetdemo/internal/server"
	"github.com/goliatone/go-widgetdemo/internal/terminal"
	"github.com/goliatone/go-widgetdemo/pkg/forms"
	"github.com/goliatone/go-widgetdemo/pkg/page"
	"github.com/goliatone/go-widgetdemo/pkg/renderers/tui"
	"github.com/goliatone/go-widgetdemo/pkg/router"
	"github.com/goliatone/go-widgetdemo/pkg/stopwatch"
	"github.com/goliatone/go-widgetdemo/pkg/wallclock"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, err := newRootCommand()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

type app struct {
	cfg        config.Config
	configFile string
	vipers     map[*cobra.Command]*viper.Viper
}

func newRootCommand() (*cobra.Command, error) {
	a := &app{cfg: config.Default(), vipers: map[*cobra.Command]*viper.Viper{}}

	root := &cobra.Command{
		Use:           "widgetdemo",
		Short:         "Clock, stopwatch, calendar and form widgets on the web and in the terminal",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v, ok := a.vipers[cmd]
			if !ok {
				return nil
			}
			path := a.configFile
			if path == "" {
				path = os.Getenv(config.EnvPrefix + "_CONFIG")
			}
			return config.ReadFile(v, path)
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "path to a YAML, TOML or JSON config file")

	programs := []*config.Program{
		{Name: "serve", Short: "Serve the widget pages over HTTP", Opts: a.cfg.ServeOpts(), Run: a.serve},
		{Name: "clock", Short: "Show the wall clock in the terminal", Opts: a.cfg.ClockOpts(), Run: a.clock},
		{Name: "timer", Short: "Run the stopwatch in the terminal", Opts: a.cfg.TimerOpts(), Run: a.timer},
		{Name: "form", Short: "Fill a form interactively", Opts: a.cfg.FormOpts(), Run: a.form},
	}
	for _, p := range programs {
		// Each command owns its viper so flags of one command never shadow
		// another's binding of the same key.
		v := config.NewViper()
		cmd, err := config.NewCommand(v, p)
		if err != nil {
			return nil, err
		}
		a.vipers[cmd] = v
		root.AddCommand(cmd)
	}
	return root, nil
}

func (a *app) newLogger() (*zap.Logger, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	lc, err := logger.ParseConfig(a.cfg.LogFormat, a.cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return lc.New(os.Stderr)
}

func (a *app) serve(cmd *cobra.Command, _ []string) error {
	log, err := a.newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	variant, err := router.ParseVariant(a.cfg.Variant)
	if err != nil {
		return err
	}
	routes, err := router.New(variant)
	if err != nil {
		return err
	}
	loc, err := wallclock.LoadLocation(a.cfg.Location)
	if err != nil {
		return err
	}

	srv, err := server.New(routes,
		server.WithLogger(log),
		server.WithLocation(loc),
		server.WithTimerInterval(a.cfg.TimerInterval),
		server.WithPageOptions(page.WithTheme(page.ThemeName, a.cfg.Theme)),
	)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(cmd.Context(), a.cfg.Addr, a.cfg.Grace)
}

func (a *app) styles() (terminal.Styles, error) {
	selector, err := page.NewSelector(page.ThemeName, a.cfg.Theme, page.DefaultManifest())
	if err != nil {
		return terminal.Styles{}, err
	}
	selection, err := selector.Select("", "")
	if err != nil {
		return terminal.Styles{}, err
	}
	return terminal.NewStyles(page.Tokens(selection)), nil
}

func (a *app) clock(cmd *cobra.Command, _ []string) error {
	log, err := a.newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	styles, err := a.styles()
	if err != nil {
		return err
	}
	loc, err := wallclock.LoadLocation(a.cfg.Location)
	if err != nil {
		return err
	}
	wc, err := wallclock.New(wallclock.WithLocation(loc), wallclock.WithLogger(log.Named("wallclock")))
	if err != nil {
		return err
	}
	defer wc.Close()

	model := terminal.NewClock(wc, "Horloge", styles)
	wc.Start(cmd.Context())
	return terminal.Run(cmd.Context(), model, nil, nil)
}

func (a *app) timer(cmd *cobra.Command, _ []string) error {
	log, err := a.newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	styles, err := a.styles()
	if err != nil {
		return err
	}
	sw := stopwatch.New(
		stopwatch.WithInterval(a.cfg.TimerInterval),
		stopwatch.WithLogger(log.Named("stopwatch")),
	)
	defer sw.Close()

	return terminal.Run(cmd.Context(), terminal.NewStopwatch(sw, "Chronomètre", styles), nil, nil)
}

func (a *app) form(cmd *cobra.Command, _ []string) error {
	log, err := a.newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	registry, err := forms.Default()
	if err != nil {
		return err
	}
	def, err := registry.Get(a.cfg.Form)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, registry.Names())
	}

	session := tui.New(
		tui.WithPromptDriver(tui.NewSurveyDriver(os.Stdout)),
		tui.WithSink(forms.Sinks(forms.LogSink(log), forms.WriterSink(os.Stdout))),
		tui.WithLogger(log),
	)
	_, err = session.Run(cmd.Context(), def)
	return err
}
