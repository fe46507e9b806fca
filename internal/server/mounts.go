package server

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-widgetdemo/pkg/stopwatch"
)

var (
	// ErrNotMounted is returned for ids without an open stream.
	ErrNotMounted = errors.New("server: stopwatch not mounted")
	// ErrAlreadyMounted is returned when a second stream claims an id.
	ErrAlreadyMounted = errors.New("server: stopwatch already mounted")
	// ErrInvalidMountID is returned for ids that are not UUIDs.
	ErrInvalidMountID = errors.New("server: invalid mount id")
)

// Mounts owns the live stopwatch instances, one per open event stream.
type Mounts struct {
	mu      sync.Mutex
	entries map[string]*stopwatch.Stopwatch
	newFn   func() *stopwatch.Stopwatch
}

// NewMounts builds an empty registry; newFn creates each mounted stopwatch.
func NewMounts(newFn func() *stopwatch.Stopwatch) *Mounts {
	if newFn == nil {
		newFn = func() *stopwatch.Stopwatch { return stopwatch.New() }
	}
	return &Mounts{entries: make(map[string]*stopwatch.Stopwatch), newFn: newFn}
}

// NewMountID returns a fresh mount id.
func NewMountID() string {
	return uuid.NewString()
}

// Open mounts a new stopwatch under id.
func (m *Mounts) Open(id string) (*stopwatch.Stopwatch, error) {
	key, err := mountKey(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[key]; exists {
		return nil, ErrAlreadyMounted
	}
	sw := m.newFn()
	m.entries[key] = sw
	return sw, nil
}

// Get returns the stopwatch mounted under id.
func (m *Mounts) Get(id string) (*stopwatch.Stopwatch, error) {
	key, err := mountKey(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	sw, ok := m.entries[key]
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotMounted
	}
	return sw, nil
}

// Close unmounts id and cancels its tick source.
func (m *Mounts) Close(id string) {
	key, err := mountKey(id)
	if err != nil {
		return
	}
	m.mu.Lock()
	sw, ok := m.entries[key]
	delete(m.entries, key)
	m.mu.Unlock()
	if ok {
		sw.Close()
	}
}

// CloseAll unmounts everything.
func (m *Mounts) CloseAll() {
	m.mu.Lock()
	entries := m.entries
	m.entries = make(map[string]*stopwatch.Stopwatch)
	m.mu.Unlock()
	for _, sw := range entries {
		sw.Close()
	}
}

// Len reports the number of mounted stopwatches.
func (m *Mounts) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func mountKey(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", ErrInvalidMountID
	}
	return parsed.String(), nil
}
