package server

import (
	"encoding/json"
	"sync"
)

// Event is one view snapshot pushed to a session's subscribers. Type is the
// view name.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Broker is an in-process pub/sub for view snapshots, keyed by session ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the session.
func (b *Broker) Subscribe(sessionID string) chan []byte {
	ch := make(chan []byte, 32)
	b.mu.Lock()
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[chan []byte]struct{})
	}
	b.subs[sessionID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(sessionID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[sessionID], ch)
	if len(b.subs[sessionID]) == 0 {
		delete(b.subs, sessionID)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the session. Nothing is
// encoded when nobody listens.
func (b *Broker) Publish(sessionID string, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.subs[sessionID]) == 0 {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	for ch := range b.subs[sessionID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
}

func encodeEvent(e Event) []byte {
	data, _ := json.Marshal(e)
	return data
}
