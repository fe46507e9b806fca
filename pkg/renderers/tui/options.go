package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-widgetdemo/pkg/forms"
)

// Theme captures optional message prefixes the session applies when
// printing notices.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithSink delivers valid submissions to sink.
func WithSink(sink forms.Sink) Option {
	return func(s *Session) {
		s.sink = sink
	}
}

// WithMaxAttempts bounds the number of validation passes. Zero means
// unlimited.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLogger sets the logger. The default discards.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
