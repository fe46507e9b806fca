package widget

import (
	"sort"
	"sync"
)

// Cell is an observable value. Every Set publishes the new value to the
// subscribers registered at that moment, in subscription order. Subscribers
// run on the writer's goroutine, outside the cell's lock.
type Cell[T any] struct {
	mu     sync.Mutex
	value  T
	nextID int
	subs   map[int]func(T)
}

// NewCell seeds a cell with an initial value.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value: initial,
		subs:  make(map[int]func(T)),
	}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set stores value and notifies subscribers.
func (c *Cell[T]) Set(value T) {
	c.mu.Lock()
	c.value = value
	subs := c.snapshotLocked()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(value)
	}
}

// Update applies fn to the current value under the lock, stores the result
// and notifies subscribers.
func (c *Cell[T]) Update(fn func(T) T) T {
	c.mu.Lock()
	c.value = fn(c.value)
	value := c.value
	subs := c.snapshotLocked()
	c.mu.Unlock()

	for _, sub := range subs {
		sub(value)
	}
	return value
}

// Subscribe registers fn and returns the function that removes it.
func (c *Cell[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	c.mu.Lock()
	if c.subs == nil {
		c.subs = make(map[int]func(T))
	}
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// Reset drops every subscriber.
func (c *Cell[T]) Reset() {
	c.mu.Lock()
	c.subs = make(map[int]func(T))
	c.mu.Unlock()
}

// Subscribers reports how many subscribers are registered.
func (c *Cell[T]) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

func (c *Cell[T]) snapshotLocked() []func(T) {
	if len(c.subs) == 0 {
		return nil
	}
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]func(T), 0, len(ids))
	for _, id := range ids {
		out = append(out, c.subs[id])
	}
	return out
}
