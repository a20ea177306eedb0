// Package emitter is a small typed publish/subscribe hub used to propagate
// model changes to controllers.
package emitter

import (
	"fmt"
	"sync"
)

// Handler receives the payload of an emitted event.
type Handler[T any] func(T)

type listener[T any] struct {
	id   uint64
	fn   Handler[T]
	once bool
}

// Emitter dispatches events of payload type T. Handlers run synchronously in
// registration order on the emitting goroutine.
type Emitter[T any] struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[string][]listener[T]
	onPanic   func(event string, err error)
}

// New returns an Emitter. onPanic, if non-nil, is called when a handler
// panics; the remaining handlers still run.
func New[T any](onPanic func(event string, err error)) *Emitter[T] {
	return &Emitter[T]{
		listeners: make(map[string][]listener[T]),
		onPanic:   onPanic,
	}
}

// On registers fn for event and returns a function that removes it.
func (e *Emitter[T]) On(event string, fn Handler[T]) (off func()) {
	return e.add(event, fn, false)
}

// Once registers fn to run on the next emission of event only.
func (e *Emitter[T]) Once(event string, fn Handler[T]) (off func()) {
	return e.add(event, fn, true)
}

func (e *Emitter[T]) add(event string, fn Handler[T], once bool) func() {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.listeners[event] = append(e.listeners[event], listener[T]{id: id, fn: fn, once: once})
	e.mu.Unlock()

	return func() { e.remove(event, id) }
}

func (e *Emitter[T]) remove(event string, id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.removeLocked(event, id)
}

// Emit calls every handler registered for event with payload.
func (e *Emitter[T]) Emit(event string, payload T) {
	e.mu.Lock()
	ls := append([]listener[T](nil), e.listeners[event]...)
	for _, l := range ls {
		if l.once {
			e.removeLocked(event, l.id)
		}
	}
	e.mu.Unlock()

	for _, l := range ls {
		e.call(event, l.fn, payload)
	}
}

func (e *Emitter[T]) removeLocked(event string, id uint64) {
	ls := e.listeners[event]
	for i, l := range ls {
		if l.id == id {
			e.listeners[event] = append(ls[:i:i], ls[i+1:]...)
			break
		}
	}
	if len(e.listeners[event]) == 0 {
		delete(e.listeners, event)
	}
}

func (e *Emitter[T]) call(event string, fn Handler[T], payload T) {
	defer func() {
		if r := recover(); r != nil && e.onPanic != nil {
			e.onPanic(event, fmt.Errorf("handler panic: %v", r))
		}
	}()
	fn(payload)
}

// Listeners returns the number of handlers registered for event.
func (e *Emitter[T]) Listeners(event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[event])
}

// Events returns the names of events that currently have handlers.
func (e *Emitter[T]) Events() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, 0, len(e.listeners))
	for name := range e.listeners {
		names = append(names, name)
	}
	return names
}
