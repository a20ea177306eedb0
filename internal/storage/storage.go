// Package storage provides session-scoped key/value storage with change
// notifications. A scope is a player session; keys inside a scope mirror the
// browser's sessionStorage keys.
package storage

import (
	"context"
	"time"
)

// Backend is the raw key/value store behind Reactive.
type Backend interface {
	Get(ctx context.Context, scope, key string) (value string, ok bool, err error)
	Set(ctx context.Context, scope, key, value string) error
	Remove(ctx context.Context, scope, key string) error
	Clear(ctx context.Context, scope string) error
}

// Sweeper is implemented by backends that need stale scopes removed
// explicitly.
type Sweeper interface {
	Sweep(ctx context.Context, before time.Time) (int, error)
}

// Change describes a successful mutation.
type Change struct {
	Scope   string `json:"-"`
	Key     string `json:"key"`
	Value   string `json:"value,omitempty"`
	Removed bool   `json:"removed,omitempty"`
}
