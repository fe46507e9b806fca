package terminal

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// feed bridges widget subscriptions into the bubbletea event loop.
type feed[T any] struct {
	mu    sync.Mutex
	value T
	ready chan struct{}
	done  chan struct{}
	once  sync.Once
}

func newFeed[T any]() *feed[T] {
	return &feed[T]{ready: make(chan struct{}, 1), done: make(chan struct{})}
}

func (f *feed[T]) Put(v T) {
	f.mu.Lock()
	f.value = v
	f.mu.Unlock()
	select {
	case f.ready <- struct{}{}:
	default:
	}
}

func (f *feed[T]) close() {
	f.once.Do(func() { close(f.done) })
}

// wait returns a command that blocks for the next value and wraps it with
// wrap. It yields nil once the feed is closed.
func (f *feed[T]) wait(wrap func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-f.done:
			return nil
		case <-f.ready:
			f.mu.Lock()
			v := f.value
			f.mu.Unlock()
			return wrap(v)
		}
	}
}
