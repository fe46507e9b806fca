package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
)

var errStreamingUnsupported = errors.New("server: streaming unsupported")

// eventStream writes server-sent events to one client.
type eventStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newEventStream(w http.ResponseWriter) (*eventStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	return &eventStream{w: w, flusher: flusher}, nil
}

// Send writes one named event with a JSON payload.
func (s *eventStream) Send(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("server: encode %s event: %w", event, err)
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// latest is a one-slot mailbox keeping only the newest value, so a slow
// client skips frames instead of blocking the tick goroutine.
type latest[T any] struct {
	mu    sync.Mutex
	value T
	ready chan struct{}
}

func newLatest[T any]() *latest[T] {
	return &latest[T]{ready: make(chan struct{}, 1)}
}

func (l *latest[T]) Put(v T) {
	l.mu.Lock()
	l.value = v
	l.mu.Unlock()
	select {
	case l.ready <- struct{}{}:
	default:
	}
}

func (l *latest[T]) Ready() <-chan struct{} {
	return l.ready
}

func (l *latest[T]) Take() T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value
}
