// Package dialog defines the asynchronous user prompts a session suspends
// on: picking a path to open, picking a path to save to, and confirming
// what to do with unsaved changes.
//
// A prompt answers through a Reply, a single-assignment continuation. The
// first Resolve wins; later ones are ignored. Continuations registered with
// Then run exactly once, on the goroutine that resolves the reply, or
// immediately if the reply is already resolved.
package dialog

import "sync"

// Reply is a single-assignment continuation carrying a T.
type Reply[T any] struct {
	mu       sync.Mutex
	resolved bool
	value    T
	waiting  []func(T)
}

// NewReply creates an unresolved reply.
func NewReply[T any]() *Reply[T] {
	return &Reply[T]{}
}

// Resolved creates a reply that already carries v.
func Resolved[T any](v T) *Reply[T] {
	return &Reply[T]{resolved: true, value: v}
}

// Resolve sets the value and runs the waiting continuations. It reports
// whether this call resolved the reply.
func (r *Reply[T]) Resolve(v T) bool {
	r.mu.Lock()
	if r.resolved {
		r.mu.Unlock()
		return false
	}
	r.resolved = true
	r.value = v
	waiting := r.waiting
	r.waiting = nil
	r.mu.Unlock()

	for _, fn := range waiting {
		fn(v)
	}
	return true
}

// Then registers fn to run with the value.
func (r *Reply[T]) Then(fn func(T)) {
	r.mu.Lock()
	if !r.resolved {
		r.waiting = append(r.waiting, fn)
		r.mu.Unlock()
		return
	}
	v := r.value
	r.mu.Unlock()

	fn(v)
}

// Value returns the value and whether the reply is resolved.
func (r *Reply[T]) Value() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value, r.resolved
}

// Done reports whether the reply is resolved.
func (r *Reply[T]) Done() bool {
	_, ok := r.Value()
	return ok
}
