// Package observable provides Value, a thread-safe holder that replays its
// current value to every new subscriber and then pushes each update.
//
// Delivery is synchronous: Set returns after every subscriber has seen the
// new value, and all subscribers observe the same sequence. Callbacks must
// not call Set on the same Value.
package observable

import (
	"slices"
	"sync"
)

type Value[T any] struct {
	emit sync.Mutex // serializes deliveries

	mu     sync.Mutex
	cur    T
	subs   map[uint64]func(T)
	nextID uint64
}

func New[T any](initial T) *Value[T] {
	return &Value[T]{cur: initial, subs: make(map[uint64]func(T))}
}

// Get returns the latest value without blocking on deliveries.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cur
}

// Set stores x and delivers it to every subscriber.
func (v *Value[T]) Set(x T) {
	v.emit.Lock()
	defer v.emit.Unlock()

	v.mu.Lock()
	v.cur = x
	subs := v.snapshot()
	v.mu.Unlock()

	for _, fn := range subs {
		fn(x)
	}
}

// Subscribe calls fn with the current value, then with every later value,
// until the returned cancel func is called. cancel is idempotent.
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	v.emit.Lock()
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	cur := v.cur
	v.mu.Unlock()
	fn(cur)
	v.emit.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.subs, id)
			v.mu.Unlock()
		})
	}
}

// Subscribers reports how many callbacks are currently registered.
func (v *Value[T]) Subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}

// snapshot returns subscribers in registration order. Caller holds mu.
func (v *Value[T]) snapshot() []func(T) {
	ids := make([]uint64, 0, len(v.subs))
	for id := range v.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]func(T), 0, len(ids))
	for _, id := range ids {
		out = append(out, v.subs[id])
	}
	return out
}
