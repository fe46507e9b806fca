// Package server serves the widget pages over HTTP.
//
// Pages are rendered on the server. Live widgets subscribe to event streams:
// /events/clock pushes the wall clock every second, in the zone named by
// ?tz= when given, and /events/timer/{id} mounts a stopwatch for as long as
// the stream stays open. Closing the stream unmounts the stopwatch and
// cancels its tick source.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-widgetdemo/components/timezones"
	"github.com/goliatone/go-widgetdemo/pkg/apidoc"
	"github.com/goliatone/go-widgetdemo/pkg/forms"
	"github.com/goliatone/go-widgetdemo/pkg/page"
	"github.com/goliatone/go-widgetdemo/pkg/router"
	"github.com/goliatone/go-widgetdemo/pkg/stopwatch"
	"github.com/goliatone/go-widgetdemo/pkg/wallclock"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. The default discards.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces the time source of every mounted widget.
func WithClock(c clock.Clock) Option {
	return func(s *Server) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLocation sets the wall clock time zone.
func WithLocation(loc *time.Location) Option {
	return func(s *Server) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithTimerInterval sets the stopwatch tick period.
func WithTimerInterval(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timerInterval = d
		}
	}
}

// WithForms replaces the built-in form definitions.
func WithForms(registry *forms.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.forms = registry
		}
	}
}

// WithSink receives every valid form submission.
func WithSink(sink forms.Sink) Option {
	return func(s *Server) {
		s.sink = sink
	}
}

// WithPageOptions forwards options to the page renderer.
func WithPageOptions(options ...page.Option) Option {
	return func(s *Server) {
		s.pageOptions = append(s.pageOptions, options...)
	}
}

// Server is the HTTP front of the widget demo.
type Server struct {
	routes        *router.Router
	pages         *page.Renderer
	pageOptions   []page.Option
	forms         *forms.Registry
	sink          forms.Sink
	mounts        *Mounts
	clock         clock.Clock
	location      *time.Location
	timerInterval time.Duration
	apiDoc        []byte
	logger        *zap.Logger
	handler       http.Handler
}

// New builds a Server for routes.
func New(routes *router.Router, options ...Option) (*Server, error) {
	if routes == nil {
		return nil, errors.New("server: router is required")
	}
	s := &Server{
		routes:        routes,
		clock:         clock.New(),
		timerInterval: stopwatch.DefaultInterval,
		logger:        zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	if s.location == nil {
		loc, err := wallclock.LoadLocation("")
		if err != nil {
			return nil, err
		}
		s.location = loc
	}
	if s.forms == nil {
		registry, err := forms.Default()
		if err != nil {
			return nil, err
		}
		s.forms = registry
	}
	if s.sink == nil {
		s.sink = forms.LogSink(s.logger)
	}

	pages, err := page.New(routes, append([]page.Option{page.WithLogger(s.logger)}, s.pageOptions...)...)
	if err != nil {
		return nil, err
	}
	s.pages = pages

	doc, err := apidoc.Build(s.forms.Definitions())
	if err != nil {
		return nil, err
	}
	if s.apiDoc, err = json.Marshal(doc); err != nil {
		return nil, fmt.Errorf("server: encode api document: %w", err)
	}

	s.mounts = NewMounts(func() *stopwatch.Stopwatch {
		return stopwatch.New(
			stopwatch.WithClock(s.clock),
			stopwatch.WithInterval(s.timerInterval),
			stopwatch.WithLogger(s.logger.Named("stopwatch")),
		)
	})
	s.handler = s.buildHandler()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Mounts exposes the live stopwatch registry.
func (s *Server) Mounts() *Mounts {
	return s.mounts
}

// ListenAndServe serves on addr until ctx ends, then shuts down within
// grace and unmounts every widget.
func (s *Server) ListenAndServe(ctx context.Context, addr string, grace time.Duration) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	s.logger.Info("listening",
		zap.String("addr", addr),
		zap.String("variant", string(s.routes.Variant())),
		zap.String("theme", s.pages.Selection().Variant),
	)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	err := httpServer.Shutdown(shutdownCtx)
	s.mounts.CloseAll()
	if err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.logger.Info("stopped")
	return nil
}

func (s *Server) buildHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	for _, route := range s.routes.Routes() {
		switch route.Name {
		case router.RouteClock:
			r.Get(route.Path, s.handleClockPage)
		case router.RouteTimer:
			r.Get(route.Path, s.handleTimerPage)
		case router.RouteCalendar:
			r.Get(route.Path, s.handleCalendarPage)
		case router.RouteForm, router.RouteClients:
			r.Get(route.Path, s.handleFormPage(route))
			r.Post(route.Path, s.handleFormPage(route))
		}
	}

	r.Get("/events/clock", s.handleClockEvents)
	if _, ok := s.routes.Lookup(router.RouteTimer); ok {
		r.Get("/events/timer/{id}", s.handleTimerEvents)
		r.Post("/timer/{id}/toggle", s.handleTimerAction(actionToggle))
		r.Post("/timer/{id}/reset", s.handleTimerAction(actionReset))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/forms/{name}", s.handleFormAPI)
		r.Get("/openapi.json", s.handleAPIDoc)
		r.Handle("/timezones", timezones.NewHandler(
			timezones.WithClock(s.clock),
			timezones.WithEmptySearchMode(timezones.EmptySearchTop),
		))
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(page.StaticFS()))))
	r.NotFound(s.handleNotFound)
	return r
}
