// Package registry holds the bounded Room registry: the mapping
// code -> Room, a secondary time-ordered index for O(log n)
// oldest-room eviction, and the session -> code index. Adapted from
// the teacher's internal/core/room_manager.go (double-checked-locking
// GetOrCreate) and internal/core/room_impl.go (dual-map session
// tracking), generalized per RoomRepository.java's
// createRoom/removeOldestRoom/trackSession contract.
package registry

import (
	"container/heap"
	"sync"
	"time"

	"github.com/dkeye/Voice/internal/core"
	"github.com/dkeye/Voice/internal/domain"
	"github.com/rs/zerolog/log"
)

// DefaultMaxRooms is the registry capacity used when config does not
// override it, matching the original's @Value("${app.room.max-rooms:2500}").
const DefaultMaxRooms = 2500

// NewRoomFunc constructs the RoomService backing a freshly created
// room code; overridable in tests to inject fakes.
type NewRoomFunc func(code domain.RoomCode, createdAtSec int64) core.RoomService

// Registry is the process-wide room registry. A single RWMutex guards
// both indices and the session index whenever consistency between
// them matters (create/destroy); primary-code lookup takes only the
// read lock, so lookups run concurrently with each other. Lookups are
// not lock-free: they wait while a create, destroy or session update
// holds the write lock.
type Registry struct {
	mu       sync.RWMutex
	rooms    map[domain.RoomCode]core.RoomService
	order    roomHeap
	entries  map[domain.RoomCode]*roomEntry
	sessions map[domain.SessionID]domain.RoomCode
	seq      uint64

	maxRooms int
	newRoom  NewRoomFunc
}

// NewRegistry constructs an empty registry with the given capacity.
// A non-positive maxRooms is replaced with DefaultMaxRooms.
func NewRegistry(maxRooms int) *Registry {
	if maxRooms <= 0 {
		maxRooms = DefaultMaxRooms
	}
	return &Registry{
		rooms:    make(map[domain.RoomCode]core.RoomService),
		entries:  make(map[domain.RoomCode]*roomEntry),
		sessions: make(map[domain.SessionID]domain.RoomCode),
		maxRooms: maxRooms,
		newRoom:  func(code domain.RoomCode, createdAtSec int64) core.RoomService { return core.NewRoom(code, createdAtSec) },
	}
}

// Create creates a room for code if absent, evicting the oldest room
// first if the registry is at capacity, and returns the resulting
// room (existing or newly inserted). Never fails at documented
// capacity — it evicts instead.
func (reg *Registry) Create(code domain.RoomCode) core.RoomService {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if room, ok := reg.rooms[code]; ok {
		return room
	}

	if len(reg.rooms) >= reg.maxRooms {
		reg.evictOldestLocked()
	}

	now := time.Now().Unix()
	reg.seq++
	entry := &roomEntry{code: code, createdAt: now, seq: reg.seq}
	heap.Push(&reg.order, entry)
	reg.entries[code] = entry

	room := reg.newRoom(code, now)
	reg.rooms[code] = room
	log.Info().Str("module", "registry").Str("room", string(code)).Int("total", len(reg.rooms)).Msg("room created")
	return room
}

// evictOldestLocked removes the room with the smallest
// (createdAtSec, seq) key together with all its session bindings.
// Must be called with mu held for writing. Unconditional — it runs
// even if the evicted room still has active sessions; their next
// command simply resolves to ErrRoomNotFound.
func (reg *Registry) evictOldestLocked() {
	if reg.order.Len() == 0 {
		return
	}
	oldest := reg.order[0]
	heap.Remove(&reg.order, oldest.index)
	delete(reg.entries, oldest.code)
	delete(reg.rooms, oldest.code)

	var pruned []domain.SessionID
	for sid, c := range reg.sessions {
		if c == oldest.code {
			pruned = append(pruned, sid)
		}
	}
	for _, sid := range pruned {
		delete(reg.sessions, sid)
	}
	log.Warn().Str("module", "registry").Str("room", string(oldest.code)).Int("sessions_pruned", len(pruned)).Msg("evicted oldest room at capacity")
}

// Find is a pure lookup; it never creates a room.
func (reg *Registry) Find(code domain.RoomCode) (core.RoomService, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[code]
	return room, ok
}

// FindOrFail is Find, but returns domain.ErrRoomNotFound when absent.
func (reg *Registry) FindOrFail(code domain.RoomCode) (core.RoomService, error) {
	room, ok := reg.Find(code)
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return room, nil
}

// Destroy removes the room, its time-order entry, and every session
// binding that points to it.
func (reg *Registry) Destroy(code domain.RoomCode) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.destroyLocked(code)
}

func (reg *Registry) destroyLocked(code domain.RoomCode) {
	if _, ok := reg.rooms[code]; !ok {
		return
	}
	delete(reg.rooms, code)
	if entry, ok := reg.entries[code]; ok {
		heap.Remove(&reg.order, entry.index)
		delete(reg.entries, code)
	}
	var pruned []domain.SessionID
	for sid, c := range reg.sessions {
		if c == code {
			pruned = append(pruned, sid)
		}
	}
	for _, sid := range pruned {
		delete(reg.sessions, sid)
	}
	log.Info().Str("module", "registry").Str("room", string(code)).Int("sessions_released", len(pruned)).Msg("room destroyed")
}

// BindSession records that sid belongs to code, overwriting any prior
// binding for sid. Does not require the room to still exist — a
// binding created just before an eviction races harmlessly; the next
// RoomOfSession lookup prunes it.
func (reg *Registry) BindSession(sid domain.SessionID, code domain.RoomCode) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.sessions[sid] = code
}

// UnbindSession removes sid's binding, if any.
func (reg *Registry) UnbindSession(sid domain.SessionID) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.sessions, sid)
}

// RoomOfSession resolves sid to its room. If sid is bound to a code
// that no longer exists (the room was evicted or destroyed after
// binding), the stale binding is pruned and ok is false — the
// supplemented orphaned-session warning.
func (reg *Registry) RoomOfSession(sid domain.SessionID) (core.RoomService, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	code, ok := reg.sessions[sid]
	if !ok {
		return nil, false
	}
	room, ok := reg.rooms[code]
	if !ok {
		delete(reg.sessions, sid)
		log.Warn().Str("module", "registry").Str("session", string(sid)).Str("room", string(code)).Msg("pruned session bound to an evicted room")
		return nil, false
	}
	return room, true
}

// SessionsOf returns every session currently bound to code, in no
// particular order. The broadcaster does not use it: fan-out goes
// through the broadcast Hub's own membership index.
func (reg *Registry) SessionsOf(code domain.RoomCode) []domain.SessionID {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	var out []domain.SessionID
	for sid, c := range reg.sessions {
		if c == code {
			out = append(out, sid)
		}
	}
	return out
}

// Len reports the current number of registered rooms.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}
