package server

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/pokeshiri/server/internal/game"
	"github.com/pokeshiri/server/internal/storage"
)

var ErrNoSession = errors.New("no valid session")

// session is one player's controller tree. Its views publish to the broker
// under the session id.
type session struct {
	id    string
	app   *game.AppController
	views *game.SnapshotSet
	seen  atomic.Int64
}

func (s *session) touch(now time.Time) {
	s.seen.Store(now.UnixNano())
}

// replay returns the last rendered snapshot of every view.
func (s *session) replay() []Event {
	var events []Event
	add := func(name string, data any, ok bool) {
		if ok {
			events = append(events, Event{Type: name, Data: data})
		}
	}
	v := s.views
	accordion, ok := v.Accordion.Last()
	add(game.ViewAccordion, accordion, ok)
	status, ok := v.Status.Last()
	add(game.ViewStatus, status, ok)
	used, ok := v.Used.Last()
	add(game.ViewUsed, used, ok)
	search, ok := v.Search.Last()
	add(game.ViewSearch, search, ok)
	list, ok := v.List.Last()
	add(game.ViewList, list, ok)
	warning, ok := v.Warning.Last()
	add(game.ViewWarning, warning, ok)
	return events
}

// Sessions keeps the live sessions of this process. A session whose id is
// unknown but well formed is reopened from storage, so players survive a
// restart when storage is persistent.
type Sessions struct {
	pokemon *game.PokemonModel
	store   *storage.Reactive
	broker  *Broker

	mu       sync.RWMutex
	sessions map[string]*session
	opening  singleflight.Group
}

func NewSessions(pokemon *game.PokemonModel, store *storage.Reactive, broker *Broker) *Sessions {
	return &Sessions{
		pokemon:  pokemon,
		store:    store,
		broker:   broker,
		sessions: make(map[string]*session),
	}
}

// Create opens a session with a fresh id.
func (s *Sessions) Create(ctx context.Context) *session {
	sess, _ := s.Get(ctx, uuid.NewString())
	return sess
}

func (s *Sessions) Get(ctx context.Context, id string) (*session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNoSession
	}

	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		sess.touch(time.Now())
		return sess, nil
	}

	// Storage is read without holding mu. Concurrent opens of one id share
	// a single session.
	v, _, _ := s.opening.Do(id, func() (any, error) {
		s.mu.RLock()
		sess, ok := s.sessions[id]
		s.mu.RUnlock()
		if ok {
			return sess, nil
		}

		sess = s.open(context.WithoutCancel(ctx), id)
		s.mu.Lock()
		s.sessions[id] = sess
		s.mu.Unlock()
		return sess, nil
	})
	sess = v.(*session)
	sess.touch(time.Now())
	return sess, nil
}

func (s *Sessions) open(ctx context.Context, id string) *session {
	views, set := game.NewSnapshotViews(func(name string, data any) {
		s.broker.Publish(id, Event{Type: name, Data: data})
	})
	sess := &session{
		id: id,
		app: game.NewAppController(ctx, game.Options{
			SessionID: id,
			Pokemon:   s.pokemon,
			Store:     s.store,
			Views:     views,
		}),
		views: set,
	}
	sess.app.Mount()
	sess.touch(time.Now())
	return sess
}

// Evict closes sessions idle since before. Their stored state is kept.
func (s *Sessions) Evict(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		if sess.seen.Load() >= before.UnixNano() {
			continue
		}
		sess.app.Close()
		delete(s.sessions, id)
		n++
	}
	return n
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Sessions) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		sess.app.Close()
		delete(s.sessions, id)
	}
	return nil
}
