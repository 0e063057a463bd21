// Package broadcast implements the topic abstraction described for the
// core: publish(topic, message) backed by whatever the duplex
// transport exposes, realized here as a room-scoped subscriber set
// plus JSON snapshot fan-out. Grounded on the teacher's
// SignalWSController.BroadcastFrom/BroadcastRoom (internal/adapters/signal/signal.go),
// generalized from "all sessions sharing a room" to an explicit
// membership index since rooms here are addressed by code, not by a
// RoomMates(sid) scan.
package broadcast

import (
	"sync"

	"github.com/dkeye/Voice/internal/core"
	"github.com/dkeye/Voice/internal/domain"
)

// Hub tracks every connected session's Subscriber and which room (if
// any) each session currently belongs to. One Hub serves the whole
// process, mirroring the single registry.
type Hub struct {
	mu      sync.RWMutex
	subs    map[domain.SessionID]core.Subscriber
	members map[domain.RoomCode]map[domain.SessionID]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs:    make(map[domain.SessionID]core.Subscriber),
		members: make(map[domain.RoomCode]map[domain.SessionID]struct{}),
	}
}

// Register records sub as sid's outbound channel, overwriting any
// prior registration (a session id is never reused across connections
// in practice, but overwrite-not-panic matches the registry's
// BindSession semantics).
func (h *Hub) Register(sid domain.SessionID, sub core.Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[sid] = sub
}

// Unregister drops sid's subscriber and removes it from every room's
// membership set. Called exactly once per connection close.
func (h *Hub) Unregister(sid domain.SessionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, sid)
	for code, set := range h.members {
		if _, ok := set[sid]; ok {
			delete(set, sid)
			if len(set) == 0 {
				delete(h.members, code)
			}
		}
	}
}

// Join adds sid to code's membership set.
func (h *Hub) Join(code domain.RoomCode, sid domain.SessionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.members[code]
	if !ok {
		set = make(map[domain.SessionID]struct{})
		h.members[code] = set
	}
	set[sid] = struct{}{}
}

// Leave removes sid from code's membership set without touching its
// subscriber registration.
func (h *Hub) Leave(code domain.RoomCode, sid domain.SessionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.members[code]; ok {
		delete(set, sid)
		if len(set) == 0 {
			delete(h.members, code)
		}
	}
}

// Members returns every session currently joined to code.
func (h *Hub) Members(code domain.RoomCode) []domain.SessionID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	set := h.members[code]
	out := make([]domain.SessionID, 0, len(set))
	for sid := range set {
		out = append(out, sid)
	}
	return out
}

func (h *Hub) subscriberOf(sid domain.SessionID) (core.Subscriber, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sub, ok := h.subs[sid]
	return sub, ok
}
