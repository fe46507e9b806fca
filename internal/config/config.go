// Package config resolves process settings from flags, WIDGETDEMO_*
// environment variables and an optional config file.
package config

import (
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/goliatone/go-widgetdemo/internal/logger"
	"github.com/goliatone/go-widgetdemo/pkg/router"
	"github.com/goliatone/go-widgetdemo/pkg/stopwatch"
	"github.com/goliatone/go-widgetdemo/pkg/wallclock"
)

// Config holds every setting of the widgetdemo commands.
type Config struct {
	Addr          string
	Variant       string
	Theme         string
	Location      string
	LogLevel      string
	LogFormat     string
	Grace         time.Duration
	TimerInterval time.Duration
	Form          string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:          ":8080",
		Variant:       string(router.VariantFull),
		Theme:         "light",
		Location:      wallclock.DefaultLocation,
		LogLevel:      "info",
		LogFormat:     logger.FormatAuto,
		Grace:         10 * time.Second,
		TimerInterval: stopwatch.DefaultInterval,
		Form:          "clients",
	}
}

// LogOpts are shared by every command.
func (c *Config) LogOpts() []Opt {
	d := Default()
	return []Opt{
		{DestP: &c.LogLevel, Flag: "log-level", Default: d.LogLevel, Desc: "supported log levels are debug, info, warn and error"},
		{DestP: &c.LogFormat, Flag: "log-format", Default: d.LogFormat, Desc: "log encoding: auto, console or json"},
	}
}

// ServeOpts are the options of the HTTP server command.
func (c *Config) ServeOpts() []Opt {
	d := Default()
	return append([]Opt{
		{DestP: &c.Addr, Flag: "addr", Default: d.Addr, Desc: "bind address for the HTTP server"},
		{DestP: &c.Variant, Flag: "variant", Default: d.Variant, Desc: "route set to serve: full or classic"},
		{DestP: &c.Theme, Flag: "theme", Default: d.Theme, Desc: "theme variant: light or dark"},
		{DestP: &c.Location, Flag: "location", Default: d.Location, Desc: "time zone of the clock"},
		{DestP: &c.Grace, Flag: "grace", Default: d.Grace, Desc: "graceful shutdown timeout"},
		{DestP: &c.TimerInterval, Flag: "timer-interval", Default: d.TimerInterval, Desc: "stopwatch redraw interval"},
	}, c.LogOpts()...)
}

// ClockOpts are the options of the terminal clock command.
func (c *Config) ClockOpts() []Opt {
	d := Default()
	return append([]Opt{
		{DestP: &c.Location, Flag: "location", Default: d.Location, Desc: "time zone of the clock"},
		{DestP: &c.Theme, Flag: "theme", Default: d.Theme, Desc: "theme variant: light or dark"},
	}, c.LogOpts()...)
}

// TimerOpts are the options of the terminal stopwatch command.
func (c *Config) TimerOpts() []Opt {
	d := Default()
	return append([]Opt{
		{DestP: &c.TimerInterval, Flag: "timer-interval", Default: d.TimerInterval, Desc: "stopwatch redraw interval"},
		{DestP: &c.Theme, Flag: "theme", Default: d.Theme, Desc: "theme variant: light or dark"},
	}, c.LogOpts()...)
}

// FormOpts are the options of the terminal form command.
func (c *Config) FormOpts() []Opt {
	d := Default()
	return append([]Opt{
		{DestP: &c.Form, Flag: "name", Default: d.Form, Desc: "form to fill: clients or user"},
	}, c.LogOpts()...)
}

// Validate checks the values that the commands cannot recover from.
func (c Config) Validate() error {
	var err error
	if _, verr := router.ParseVariant(c.Variant); verr != nil {
		err = multierr.Append(err, verr)
	}
	if _, lerr := wallclock.LoadLocation(c.Location); lerr != nil {
		err = multierr.Append(err, lerr)
	}
	if _, lerr := logger.ParseConfig(c.LogFormat, c.LogLevel); lerr != nil {
		err = multierr.Append(err, lerr)
	}
	if c.Grace < 0 {
		err = multierr.Append(err, fmt.Errorf("config: grace must not be negative, got %s", c.Grace))
	}
	if c.TimerInterval <= 0 {
		err = multierr.Append(err, fmt.Errorf("config: timer-interval must be positive, got %s", c.TimerInterval))
	}
	return err
}
