package memory

import (
	"context"
	"sort"
	"sync"
)

// entry keeps insertion order so records with equal timestamps sort stably
type entry[T any] struct {
	seq   uint64
	value *T
}

// table is a copy-on-read map of records keyed by id
type table[T any] struct {
	mu    sync.RWMutex
	seq   uint64
	items map[string]entry[T]
	clone func(*T) *T
}

func newTable[T any](clone func(*T) *T) *table[T] {
	return &table[T]{
		items: make(map[string]entry[T]),
		clone: clone,
	}
}

func (t *table[T]) put(id string, v *T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var seq uint64
	if e, ok := t.items[id]; ok {
		seq = e.seq
	} else {
		t.seq++
		seq = t.seq
	}
	t.items[id] = entry[T]{seq: seq, value: t.clone(v)}
}

// putIfAbsent stores v unless a stored record conflicts with it
func (t *table[T]) putIfAbsent(id string, v *T, conflicts func(*T) bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, e := range t.items {
		if conflicts(e.value) {
			return false
		}
	}
	t.seq++
	t.items[id] = entry[T]{seq: t.seq, value: t.clone(v)}
	return true
}

func (t *table[T]) get(id string) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.items[id]
	if !ok {
		return nil, false
	}
	return t.clone(e.value), true
}

func (t *table[T]) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.items[id]; !ok {
		return false
	}
	delete(t.items, id)
	return true
}

// update applies fn to a stored record in place
func (t *table[T]) update(id string, fn func(*T) bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.items[id]
	if !ok || !fn(e.value) {
		return false
	}
	return true
}

// filter returns copies of matching records ordered by less, newest
// insertion first on ties, truncated to limit when limit > 0
func (t *table[T]) filter(match func(*T) bool, less func(a, b *T) int, limit int) []*T {
	t.mu.RLock()
	matched := make([]entry[T], 0, len(t.items))
	for _, e := range t.items {
		if match == nil || match(e.value) {
			matched = append(matched, e)
		}
	}
	t.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if less != nil {
			if c := less(matched[i].value, matched[j].value); c != 0 {
				return c < 0
			}
		}
		return matched[i].seq > matched[j].seq
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	result := make([]*T, len(matched))
	for i, e := range matched {
		result[i] = t.clone(e.value)
	}
	return result
}

// hub delivers inserted records to subscribers
type hub[T any] struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(*T)
	clone  func(*T) *T
}

func newHub[T any](clone func(*T) *T) *hub[T] {
	return &hub[T]{
		subs:  make(map[int]func(*T)),
		clone: clone,
	}
}

func (h *hub[T]) subscribe(ctx context.Context, fn func(*T)) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()

	stop := make(chan struct{})
	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(stop)
		})
	}

	if done := ctx.Done(); done != nil {
		go func() {
			select {
			case <-done:
				unsubscribe()
			case <-stop:
			}
		}()
	}
	return unsubscribe
}

func (h *hub[T]) publish(v *T) {
	h.mu.RLock()
	fns := make([]func(*T), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(h.clone(v))
	}
}
