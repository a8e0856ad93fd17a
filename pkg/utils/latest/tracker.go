// Package latest keeps the most recently requested value per key. Every
// request takes a ticket before doing slow work; only the holder of the
// newest ticket may commit its result, so a slow response that resolves after
// a newer one is dropped.
package latest

import "sync"

// Ticket identifies one request for a key
type Ticket struct {
	key string
	gen uint64
}

// Key returns the key the ticket was issued for
func (t Ticket) Key() string {
	return t.key
}

type entry[T any] struct {
	gen      uint64
	value    T
	hasValue bool
}

// Tracker is safe for concurrent use
type Tracker[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
}

// New creates an empty Tracker
func New[T any]() *Tracker[T] {
	return &Tracker[T]{entries: make(map[string]*entry[T])}
}

// Begin issues a new ticket for key, invalidating every earlier ticket
func (t *Tracker[T]) Begin(key string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[key]
	if !ok {
		e = &entry[T]{}
		t.entries[key] = e
	}
	e.gen++
	return Ticket{key: key, gen: e.gen}
}

// IsCurrent reports whether ticket is still the newest for its key
func (t *Tracker[T]) IsCurrent(ticket Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[ticket.key]
	return ok && e.gen == ticket.gen
}

// Commit stores value when ticket is the newest for its key and reports
// whether it did
func (t *Tracker[T]) Commit(ticket Ticket, value T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[ticket.key]
	if !ok || e.gen != ticket.gen {
		return false
	}
	e.value = value
	e.hasValue = true
	return true
}

// Get returns the last committed value of key
func (t *Tracker[T]) Get(key string) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[key]
	if !ok || !e.hasValue {
		var zero T
		return zero, false
	}
	return e.value, true
}
