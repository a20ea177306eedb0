package storage

import (
	"context"
	"sync"
	"time"
)

type memoryScope struct {
	items   map[string]string
	touched time.Time
}

// Memory keeps items in process memory. Contents are lost on restart.
type Memory struct {
	mu     sync.RWMutex
	scopes map[string]*memoryScope
	now    func() time.Time
}

func NewMemory() *Memory {
	return &Memory{scopes: make(map[string]*memoryScope), now: time.Now}
}

func (m *Memory) Get(_ context.Context, scope, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.scopes[scope]
	if !ok {
		return "", false, nil
	}
	v, ok := s.items[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, scope, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.scopes[scope]
	if !ok {
		s = &memoryScope{items: make(map[string]string)}
		m.scopes[scope] = s
	}
	s.items[key] = value
	s.touched = m.now()
	return nil
}

func (m *Memory) Remove(_ context.Context, scope, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.scopes[scope]; ok {
		delete(s.items, key)
		s.touched = m.now()
	}
	return nil
}

func (m *Memory) Clear(_ context.Context, scope string) error {
	m.mu.Lock()
	delete(m.scopes, scope)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Sweep(_ context.Context, before time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.scopes {
		if s.touched.Before(before) {
			delete(m.scopes, id)
			n++
		}
	}
	return n, nil
}

var (
	_ Backend = (*Memory)(nil)
	_ Sweeper = (*Memory)(nil)
)
