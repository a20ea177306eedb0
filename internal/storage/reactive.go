package storage

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pokeshiri/server/internal/emitter"
)

const wildcard = "*"

// Reactive wraps a Backend, turns backend failures into logged no-ops and
// notifies subscribers synchronously after every successful mutation.
type Reactive struct {
	backend Backend
	logger  *slog.Logger
	events  *emitter.Emitter[Change]
}

func NewReactive(backend Backend, logger *slog.Logger) *Reactive {
	r := &Reactive{backend: backend, logger: logger}
	r.events = emitter.New[Change](func(event string, err error) {
		logger.Error("storage subscriber failed", "event", event, "error", err)
	})
	return r
}

func eventName(scope, key string) string {
	return scope + "\x00" + key
}

// GetItem returns the stored value. A backend failure is logged and reported
// as a missing item.
func (r *Reactive) GetItem(ctx context.Context, scope, key string) (string, bool) {
	v, ok, err := r.backend.Get(ctx, scope, key)
	if err != nil {
		r.logger.Warn("storage read failed", "scope", scope, "key", key, "error", err)
		return "", false
	}
	return v, ok
}

// SetItem stores value. A backend failure is logged and no subscriber is
// notified. The return value reports whether the write happened.
func (r *Reactive) SetItem(ctx context.Context, scope, key, value string) bool {
	if err := r.backend.Set(ctx, scope, key, value); err != nil {
		r.logger.Warn("storage write failed", "scope", scope, "key", key, "error", err)
		return false
	}
	r.notify(Change{Scope: scope, Key: key, Value: value})
	return true
}

func (r *Reactive) RemoveItem(ctx context.Context, scope, key string) bool {
	if err := r.backend.Remove(ctx, scope, key); err != nil {
		r.logger.Warn("storage remove failed", "scope", scope, "key", key, "error", err)
		return false
	}
	r.notify(Change{Scope: scope, Key: key, Removed: true})
	return true
}

// Clear removes every item in scope. Key subscribers of the scope each
// receive a removal; wildcard subscribers receive one change with an empty
// key.
func (r *Reactive) Clear(ctx context.Context, scope string) bool {
	if err := r.backend.Clear(ctx, scope); err != nil {
		r.logger.Warn("storage clear failed", "scope", scope, "error", err)
		return false
	}
	prefix := eventName(scope, "")
	for _, ev := range r.events.Events() {
		key, ok := strings.CutPrefix(ev, prefix)
		if !ok || key == wildcard {
			continue
		}
		r.events.Emit(ev, Change{Scope: scope, Key: key, Removed: true})
	}
	r.events.Emit(eventName(scope, wildcard), Change{Scope: scope, Removed: true})
	return true
}

// Subscribe calls fn after each mutation of key in scope.
func (r *Reactive) Subscribe(scope, key string, fn func(Change)) (unsubscribe func()) {
	return r.events.On(eventName(scope, key), fn)
}

// SubscribeAll calls fn after every mutation in scope.
func (r *Reactive) SubscribeAll(scope string, fn func(Change)) (unsubscribe func()) {
	return r.events.On(eventName(scope, wildcard), fn)
}

func (r *Reactive) notify(c Change) {
	r.events.Emit(eventName(c.Scope, c.Key), c)
	r.events.Emit(eventName(c.Scope, wildcard), c)
}
