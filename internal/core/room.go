// Package core holds the Room aggregate: the stateful unit that owns
// the speak queue, current speaker, chair role, configuration and
// poll state for one meeting. Every mutator runs under the room's own
// sync.Mutex, the same one-struct-one-lock shape as the teacher's
// original Room{Clients map[string]*Client}.
package core

import (
	"strings"
	"sync"
	"time"

	"github.com/dkeye/Voice/internal/domain"
)

// Room is the in-memory aggregate for a single meeting, guarded by mu.
// Exported only through the RoomService interface (room_iface.go).
type Room struct {
	code        domain.RoomCode
	createdAt   int64

	mu              sync.Mutex
	queue           []domain.Participant
	current         *domain.Current
	defaultLimitSec int
	chairSessionID  domain.SessionID
	hasChair        bool
	config          domain.RoomConfig
	poll            Poll
}

// NewRoom constructs a fresh Room for code, created at nowSec.
func NewRoom(code domain.RoomCode, nowSec int64) *Room {
	return &Room{
		code:            code,
		createdAt:       nowSec,
		defaultLimitSec: domain.DefaultLimitSec,
		poll:            Poll{Status: domain.PollNone},
	}
}

func (r *Room) Code() domain.RoomCode { return r.code }

func (r *Room) CreatedAtSec() int64 { return r.createdAt }

// nowSec is a seam over time.Now for test determinism; tests construct
// a Room and call the same methods production code does, so this
// stays a package-level var rather than a field threaded everywhere.
var nowSec = func() int64 { return time.Now().Unix() }

// --- open operations -------------------------------------------------

// AddToQueue trims/validates name and appends a new participant unless
// the name already appears in queue or as the current speaker
// (case-insensitive). Invalid names are silently ignored, matching the
// original's addParticipantToQueue which never rejects at this layer —
// the dispatcher validates before calling in.
func (r *Room) AddToQueue(name string) {
	trimmed, err := domain.ValidateName(name)
	if err != nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != nil && domain.SameName(r.current.Entry.Name, trimmed) {
		return
	}
	for _, p := range r.queue {
		if domain.SameName(p.Name, trimmed) {
			return
		}
	}
	p, err := domain.NewParticipant(trimmed, nowSec())
	if err != nil {
		return
	}
	r.queue = append(r.queue, p)
}

// Withdraw removes the first queue entry whose name matches
// case-insensitively. No effect if no such entry exists; never
// touches current.
func (r *Room) Withdraw(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.queue {
		if domain.SameName(p.Name, name) {
			r.queue = append(r.queue[:i], r.queue[i+1:]...)
			return
		}
	}
}

// --- chair-only operations --------------------------------------------

// NextParticipant clears current and, if the queue is non-empty, pops
// its head into current with a fresh timer.
func (r *Room) NextParticipant(sid domain.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireChair(sid); err != nil {
		return err
	}
	r.current = nil
	if len(r.queue) > 0 {
		next := r.queue[0]
		r.queue = r.queue[1:]
		cur := domain.NewCurrent(next, nowSec(), r.defaultLimitSec)
		r.current = &cur
	}
	return nil
}

// StartTimer is a no-op if already running or no current speaker.
func (r *Room) StartTimer(sid domain.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireChair(sid); err != nil {
		return err
	}
	if r.current == nil || r.current.Running {
		return nil
	}
	r.current.StartedAtSec = nowSec()
	r.current.Running = true
	return nil
}

// PauseTimer is a no-op if not running or no current speaker.
func (r *Room) PauseTimer(sid domain.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireChair(sid); err != nil {
		return err
	}
	if r.current == nil || !r.current.Running {
		return nil
	}
	elapsed := (nowSec() - r.current.StartedAtSec) * 1000
	r.current.ElapsedMs += elapsed
	r.current.Running = false
	return nil
}

// ResetTimer zeroes elapsed time and restarts the running interval.
func (r *Room) ResetTimer(sid domain.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireChair(sid); err != nil {
		return err
	}
	if r.current == nil {
		return nil
	}
	r.current.StartedAtSec = nowSec()
	r.current.ElapsedMs = 0
	r.current.Running = true
	return nil
}

// UpdateLimit clamps seconds to [10, 3600], updates defaultLimitSec,
// and if a speaker is current, updates its limit in place while
// preserving elapsed/running/startedAt.
func (r *Room) UpdateLimit(sid domain.SessionID, seconds int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireChair(sid); err != nil {
		return err
	}
	clamped := domain.ClampLimitSec(seconds)
	r.defaultLimitSec = clamped
	if r.current != nil {
		r.current.LimitSec = clamped
	}
	return nil
}

// UpdateConfig sets every field of the room's meeting configuration.
// Fields are individually nullable; callers (the dispatcher) pass nil
// for fields that failed to parse, which is treated as "unset" exactly
// like the original's parseEnum-returns-null-on-failure behavior.
func (r *Room) UpdateConfig(sid domain.SessionID, topic *string, goal *domain.MeetingGoal, format *domain.ParticipationFormat, rule *domain.DecisionRule, deliverable *domain.Deliverable) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireChair(sid); err != nil {
		return err
	}
	if topic != nil {
		trimmed := strings.TrimSpace(*topic)
		if len(trimmed) > 100 {
			trimmed = trimmed[:100]
		}
		topic = &trimmed
	}
	r.config = domain.RoomConfig{
		Topic:               topic,
		MeetingGoal:         goal,
		ParticipationFormat: format,
		DecisionRule:        rule,
		Deliverable:         deliverable,
	}
	return nil
}

// --- poll state machine (chair-only except CastVote) --------------------

// StartPoll begins a new poll, chair-only, from any prior poll status.
func (r *Room) StartPoll(sid domain.SessionID, question string, pollType domain.PollType, options []string, votesPerParticipant int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireChair(sid); err != nil {
		return err
	}
	r.poll.StartPoll(question, pollType, options, votesPerParticipant)
	return nil
}

// CastVote is open to any session while the poll is ACTIVE. Returns
// whether the vote was applied.
func (r *Room) CastVote(sid domain.SessionID, key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.poll.CastVote(sid, key)
}

func (r *Room) EndPoll(sid domain.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireChair(sid); err != nil {
		return err
	}
	r.poll.EndPoll()
	return nil
}

func (r *Room) ClosePoll(sid domain.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireChair(sid); err != nil {
		return err
	}
	r.poll.ClosePoll()
	return nil
}

func (r *Room) CancelPoll(sid domain.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireChair(sid); err != nil {
		return err
	}
	r.poll.CancelPoll()
	return nil
}

// --- role-transition operations ---------------------------------------

// AssumeChair succeeds as a no-op if sid already holds chair, claims
// the role if vacant, or returns ErrChairOccupied otherwise.
func (r *Room) AssumeChair(sid domain.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hasChair && r.chairSessionID == sid {
		return nil
	}
	if r.hasChair {
		return domain.ErrChairOccupied
	}
	r.chairSessionID = sid
	r.hasChair = true
	return nil
}

// ReleaseChair clears the chair only if sid currently holds it.
func (r *Room) ReleaseChair(sid domain.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hasChair && r.chairSessionID == sid {
		r.hasChair = false
		r.chairSessionID = ""
	}
}

// IsChair reports whether sid currently holds the chair role.
func (r *Room) IsChair(sid domain.SessionID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasChair && r.chairSessionID == sid
}

func (r *Room) requireChair(sid domain.SessionID) error {
	if !r.hasChair || r.chairSessionID != sid {
		return domain.ErrChairAccessDenied
	}
	return nil
}

// --- snapshot -----------------------------------------------------------

// Snapshot returns an immutable view of the room's current state.
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	queue := make([]domain.Participant, len(r.queue))
	copy(queue, r.queue)

	var current *domain.Current
	if r.current != nil {
		c := *r.current
		current = &c
	}

	return Snapshot{
		Queue:           queue,
		Current:         current,
		MeetingStartSec: r.createdAt,
		DefaultLimitSec: r.defaultLimitSec,
		RoomCode:        r.code,
		ChairOccupied:   r.hasChair,
		PollState:       r.poll.View(),
		RoomConfig:      r.config,
	}
}
