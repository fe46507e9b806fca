package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"go.uber.org/zap"

	"github.com/goliatone/go-widgetdemo/pkg/calendar"
	"github.com/goliatone/go-widgetdemo/pkg/forms"
	"github.com/goliatone/go-widgetdemo/pkg/router"
	"github.com/goliatone/go-widgetdemo/pkg/stopwatch"
	"github.com/goliatone/go-widgetdemo/pkg/wallclock"
)

const (
	eventTick       = "tick"
	calendarBadDate = "Date invalide, format attendu AAAA-MM-JJ."
	unknownZone     = "Fuseau horaire inconnu."
	maxFormBytes    = 64 << 10
)

type timerAction int

const (
	actionToggle timerAction = iota
	actionReset
)

type timerEvent struct {
	Display string `json:"display"`
	Running bool   `json:"running"`
	Label   string `json:"label"`
	Elapsed int64  `json:"elapsed"`
}

func newTimerEvent(s stopwatch.Snapshot) timerEvent {
	return timerEvent{
		Display: s.Display(),
		Running: s.Running,
		Label:   s.Label(),
		Elapsed: s.ElapsedMilliseconds(),
	}
}

type formResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// renderPage buffers the page so template failures still produce a clean 500.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.log(r).Error("render page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleClockPage(w http.ResponseWriter, r *http.Request) {
	loc, ok := s.zone(w, r)
	if !ok {
		return
	}
	reading := wallclock.NewReading(s.clock.Now(), loc)
	s.renderPage(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return s.pages.Clock(buf, reading)
	})
}

// zone resolves the ?tz= parameter, falling back to the configured
// location. It answers 400 itself for unknown zones.
func (s *Server) zone(w http.ResponseWriter, r *http.Request) (*time.Location, bool) {
	name := strings.TrimSpace(r.URL.Query().Get("tz"))
	if name == "" {
		return s.location, true
	}
	loc, err := wallclock.LoadLocation(name)
	if err != nil {
		s.log(r).Debug("unknown zone", zap.String("tz", name))
		http.Error(w, unknownZone, http.StatusBadRequest)
		return nil, false
	}
	return loc, true
}

func (s *Server) handleTimerPage(w http.ResponseWriter, r *http.Request) {
	mount := NewMountID()
	s.renderPage(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return s.pages.Timer(buf, mount, stopwatch.Snapshot{})
	})
}

func (s *Server) handleCalendarPage(w http.ResponseWriter, r *http.Request) {
	var (
		selection calendar.Selection
		errMsg    string
		status    = http.StatusOK
	)
	if err := selection.SelectValue(r.URL.Query().Get("date")); err != nil {
		errMsg = calendarBadDate
		status = http.StatusBadRequest
	}
	s.renderPage(w, r, status, func(buf *bytes.Buffer) error {
		return s.pages.Calendar(buf, selection, errMsg)
	})
}

func (s *Server) handleFormPage(route router.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def, err := s.forms.Get(route.Form)
		if err != nil {
			s.handleNotFound(w, r)
			return
		}
		form := forms.NewForm(def)
		status := http.StatusOK

		if r.Method == http.MethodPost {
			r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
			if err := r.ParseForm(); err != nil {
				http.Error(w, "invalid form payload", http.StatusBadRequest)
				return
			}
			values := make(map[string]string, len(def.Fields))
			for _, name := range def.FieldNames() {
				values[name] = r.PostForm.Get(name)
			}
			form.SetAll(values)
			form.SetInfoVisible(r.PostForm.Get("info") == "1")

			if r.PostForm.Get("action") == "info" {
				form.ToggleInfo()
			} else {
				result, err := form.Submit(r.Context(), s.sink)
				if err != nil {
					s.log(r).Error("deliver submission", zap.String("form", def.Name), zap.Error(err))
					http.Error(w, "submission could not be delivered", http.StatusBadGateway)
					return
				}
				if !result.Valid {
					status = http.StatusUnprocessableEntity
				}
				s.log(r).Debug("form validated",
					zap.String("form", def.Name),
					zap.Bool("valid", result.Valid),
					zap.Strings("failed", result.Failed()),
				)
			}
		}

		s.renderPage(w, r, status, func(buf *bytes.Buffer) error {
			return s.pages.Form(buf, route.Name, form)
		})
	}
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		// "/timer/" and "/./timer" name a route under a non-canonical path.
		if route, ok := s.routes.Resolve(r.URL.Path); ok && route.Path != r.URL.Path {
			target := route.Path
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}
	}
	s.renderPage(w, r, http.StatusNotFound, func(buf *bytes.Buffer) error {
		return s.pages.NotFound(buf, r.URL.Path)
	})
}

func (s *Server) handleClockEvents(w http.ResponseWriter, r *http.Request) {
	loc, ok := s.zone(w, r)
	if !ok {
		return
	}
	wc, err := wallclock.New(
		wallclock.WithClock(s.clock),
		wallclock.WithLocation(loc),
		wallclock.WithLogger(s.log(r).Named("wallclock")),
	)
	if err != nil {
		s.log(r).Error("mount clock", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer wc.Close()

	stream, err := newEventStream(w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	box := newLatest[wallclock.Reading]()
	unsubscribe := wc.Subscribe(box.Put)
	defer unsubscribe()
	wc.Start(r.Context())

	s.pump(r, func() error { return stream.Send(eventTick, box.Take()) }, box.Ready())
}

func (s *Server) handleTimerEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sw, err := s.mounts.Open(id)
	if err != nil {
		s.writeMountError(w, err)
		return
	}
	defer s.mounts.Close(id)
	log := s.log(r).With(zap.String("mount", id))
	log.Info("stopwatch mounted")
	defer log.Info("stopwatch unmounted")

	stream, err := newEventStream(w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	box := newLatest[stopwatch.Snapshot]()
	unsubscribe := sw.Subscribe(box.Put)
	defer unsubscribe()
	box.Put(sw.Snapshot())

	s.pump(r, func() error { return stream.Send(eventTick, newTimerEvent(box.Take())) }, box.Ready())
}

// pump forwards mailbox updates to the client until the request ends.
func (s *Server) pump(r *http.Request, send func() error, ready <-chan struct{}) {
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ready:
			if err := send(); err != nil {
				s.log(r).Debug("event stream closed", zap.Error(err))
				return
			}
		}
	}
}

func (s *Server) handleTimerAction(action timerAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sw, err := s.mounts.Get(chi.URLParam(r, "id"))
		if err != nil {
			s.writeMountError(w, err)
			return
		}
		var snap stopwatch.Snapshot
		switch action {
		case actionToggle:
			snap = sw.Toggle()
		case actionReset:
			sw.Reset()
			snap = sw.Snapshot()
		}
		writeJSON(w, http.StatusOK, newTimerEvent(snap))
	}
}

func (s *Server) writeMountError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidMountID):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrAlreadyMounted):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	}
}

func (s *Server) handleFormAPI(w http.ResponseWriter, r *http.Request) {
	def, err := s.forms.Get(chi.URLParam(r, "name"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	var payload map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err := dec.Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	values, err := stringValues(payload)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	form := forms.NewForm(def)
	form.SetAll(values)
	result, err := form.Submit(r.Context(), s.sink)
	if err != nil {
		s.log(r).Error("deliver submission", zap.String("form", def.Name), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "submission could not be delivered"})
		return
	}
	if !result.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, formResponse{Valid: false, Errors: result.Errors})
		return
	}
	writeJSON(w, http.StatusOK, formResponse{Valid: true})
}

func (s *Server) handleAPIDoc(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.apiDoc)
}

// stringValues flattens a JSON object into raw input values.
func stringValues(payload map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(payload))
	for k, v := range payload {
		switch val := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = val
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(val)
		default:
			return nil, fmt.Errorf("field %q must be a scalar", k)
		}
	}
	return out, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
