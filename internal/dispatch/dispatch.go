// Package dispatch implements the command-validation / authorization /
// broadcast loop of §4.3: parse -> validate -> normalize -> resolve ->
// apply -> broadcast. Grounded on the teacher's handleSignal type
// switch (internal/adapters/signal/io.go) generalized from the
// teacher's fixed join/leave/rename/offer/answer/candidate vocabulary
// to the room-command vocabulary of this domain, and on
// MeetingController.java's @MessageMapping methods for exact
// per-command authorization and error semantics.
package dispatch

import (
	"encoding/json"
	"errors"

	"github.com/dkeye/Voice/internal/broadcast"
	"github.com/dkeye/Voice/internal/core"
	"github.com/dkeye/Voice/internal/domain"
	"github.com/dkeye/Voice/internal/registry"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const reservedChairName = "Chair"

// Dispatcher wires an incoming command frame to a Room, then to the
// Broadcaster. One Dispatcher serves the whole process.
type Dispatcher struct {
	registry   *registry.Registry
	hub        *broadcast.Hub
	bcast      *broadcast.Broadcaster
	validate   *validator.Validate
}

func New(reg *registry.Registry, hub *broadcast.Hub, bcast *broadcast.Broadcaster) *Dispatcher {
	return &Dispatcher{registry: reg, hub: hub, bcast: bcast, validate: validator.New()}
}

// Dispatch decodes and routes one inbound frame from sid. Never
// panics and never leaves an unhandled error unmapped: every failure
// path ends in a targeted envelope via d.bcast, per §7's "no unchecked
// fault escapes the dispatcher".
func (d *Dispatcher) Dispatch(sid domain.SessionID, raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || d.validate.Struct(env) != nil {
		log.Warn().Str("module", "dispatch").Str("session", string(sid)).Msg("malformed envelope")
		d.bcast.SendError(sid, "VALIDATION_ERROR", "")
		return
	}

	switch env.Type {
	case "join":
		d.handleJoin(sid, raw)
	case "assumeChair":
		d.handleAssumeChair(sid, raw)
	case "request":
		d.handleRequest(sid, raw)
	case "withdraw":
		d.handleWithdraw(sid, raw)
	case "next":
		d.handleRoomOnly(sid, raw, func(room core.RoomService) error { return room.NextParticipant(sid) })
	case "timer":
		d.handleTimer(sid, raw)
	case "setLimit":
		d.handleSetLimit(sid, raw)
	case "poll/start":
		d.handlePollStart(sid, raw)
	case "poll/vote":
		d.handlePollVote(sid, raw)
	case "poll/end":
		d.handleRoomOnly(sid, raw, func(room core.RoomService) error { return room.EndPoll(sid) })
	case "poll/close":
		d.handleRoomOnly(sid, raw, func(room core.RoomService) error { return room.ClosePoll(sid) })
	case "poll/cancel":
		d.handleRoomOnly(sid, raw, func(room core.RoomService) error { return room.CancelPoll(sid) })
	case "updateConfig":
		d.handleUpdateConfig(sid, raw)
	case "destroy":
		d.handleDestroy(sid, raw)
	default:
		log.Warn().Str("module", "dispatch").Str("type", env.Type).Msg("unknown command type")
		d.bcast.SendError(sid, "VALIDATION_ERROR", "")
	}
}

// decode unmarshals raw into p and runs struct validation, reporting
// VALIDATION_ERROR on either failure. Returns false if the caller
// should stop.
func (d *Dispatcher) decode(sid domain.SessionID, raw []byte, p any) bool {
	if err := json.Unmarshal(raw, p); err != nil {
		d.bcast.SendError(sid, "VALIDATION_ERROR", "")
		return false
	}
	if err := d.validate.Struct(p); err != nil {
		d.bcast.SendError(sid, "VALIDATION_ERROR", "")
		return false
	}
	return true
}

// resolve normalizes code and looks the room up, reporting
// ROOM_NOT_FOUND on failure.
func (d *Dispatcher) resolve(sid domain.SessionID, rawCode string) (domain.RoomCode, core.RoomService, bool) {
	code := domain.NormalizeRoomCode(rawCode)
	room, err := d.registry.FindOrFail(code)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			d.bcast.SendError(sid, "ROOM_NOT_FOUND", code)
		}
		return code, nil, false
	}
	return code, room, true
}

// applyAndBroadcast runs op under the room's own guard (op is one of
// Room's exported mutators, each already self-locking) and, on
// success, publishes a fresh snapshot. CHAIR_ACCESS_DENIED is mapped
// to a targeted error instead of a broadcast.
func (d *Dispatcher) applyAndBroadcast(sid domain.SessionID, code domain.RoomCode, room core.RoomService, op func() error) {
	if err := op(); err != nil {
		if errors.Is(err, domain.ErrChairAccessDenied) {
			d.bcast.SendError(sid, "CHAIR_ACCESS_DENIED", code)
			return
		}
		log.Error().Err(err).Str("module", "dispatch").Str("room", string(code)).Msg("unexpected room operation error")
		return
	}
	d.bcast.PublishState(code, d.freshLookup(code))
}

// freshLookup re-resolves the room immediately before broadcast, to
// surface the documented eviction race (the room may have been
// evicted between op() completing and this point) as a destroyed
// notice rather than a panic on a stale reference.
func (d *Dispatcher) freshLookup(code domain.RoomCode) core.RoomService {
	room, _ := d.registry.Find(code)
	return room
}

func (d *Dispatcher) handleJoin(sid domain.SessionID, raw []byte) {
	var p joinPayload
	if !d.decode(sid, raw, &p) {
		return
	}
	if _, err := domain.ValidateName(p.Name); err != nil {
		d.bcast.SendError(sid, "VALIDATION_ERROR", "")
		return
	}
	code, room, ok := d.resolve(sid, p.Room)
	if !ok {
		return
	}
	d.registry.BindSession(sid, code)
	d.hub.Join(code, sid)

	if domain.SameName(p.Name, reservedChairName) {
		_ = room.AssumeChair(sid) // no-op if already occupied, per assumeChair's contract
	}
	d.bcast.PublishState(code, d.freshLookup(code))
}

func (d *Dispatcher) handleAssumeChair(sid domain.SessionID, raw []byte) {
	var p assumeChairPayload
	if !d.decode(sid, raw, &p) {
		return
	}
	if _, err := domain.ValidateName(p.ParticipantName); err != nil {
		d.bcast.SendError(sid, "VALIDATION_ERROR", "")
		return
	}
	code, room, ok := d.resolve(sid, p.Room)
	if !ok {
		return
	}
	d.registry.BindSession(sid, code)
	d.hub.Join(code, sid)

	err := room.AssumeChair(sid)
	success := err == nil
	d.bcast.ChairAssumed(sid, success, p.RequestID)
	if success || errors.Is(err, domain.ErrChairOccupied) {
		d.bcast.PublishState(code, d.freshLookup(code))
	}
}

func (d *Dispatcher) handleRequest(sid domain.SessionID, raw []byte) {
	var p requestPayload
	if !d.decode(sid, raw, &p) {
		return
	}
	if _, err := domain.ValidateName(p.Name); err != nil {
		d.bcast.SendError(sid, "VALIDATION_ERROR", "")
		return
	}
	code, room, ok := d.resolve(sid, p.Room)
	if !ok {
		return
	}
	room.AddToQueue(p.Name)
	d.bcast.PublishState(code, d.freshLookup(code))
}

func (d *Dispatcher) handleWithdraw(sid domain.SessionID, raw []byte) {
	var p withdrawPayload
	if !d.decode(sid, raw, &p) {
		return
	}
	code, room, ok := d.resolve(sid, p.Room)
	if !ok {
		return
	}
	room.Withdraw(p.Name)
	d.bcast.PublishState(code, d.freshLookup(code))
}

func (d *Dispatcher) handleRoomOnly(sid domain.SessionID, raw []byte, op func(core.RoomService) error) {
	var p roomOnlyPayload
	if !d.decode(sid, raw, &p) {
		return
	}
	code, room, ok := d.resolve(sid, p.Room)
	if !ok {
		return
	}
	d.applyAndBroadcast(sid, code, room, func() error { return op(room) })
}

func (d *Dispatcher) handleTimer(sid domain.SessionID, raw []byte) {
	var p timerPayload
	if !d.decode(sid, raw, &p) {
		return
	}
	code, room, ok := d.resolve(sid, p.Room)
	if !ok {
		return
	}
	var op func() error
	switch p.Action {
	case "start":
		op = func() error { return room.StartTimer(sid) }
	case "pause":
		op = func() error { return room.PauseTimer(sid) }
	case "reset":
		op = func() error { return room.ResetTimer(sid) }
	}
	d.applyAndBroadcast(sid, code, room, op)
}

func (d *Dispatcher) handleSetLimit(sid domain.SessionID, raw []byte) {
	var p setLimitPayload
	if !d.decode(sid, raw, &p) {
		return
	}
	code, room, ok := d.resolve(sid, p.Room)
	if !ok {
		return
	}
	d.applyAndBroadcast(sid, code, room, func() error { return room.UpdateLimit(sid, p.Seconds) })
}

func (d *Dispatcher) handlePollStart(sid domain.SessionID, raw []byte) {
	var p pollStartPayload
	if !d.decode(sid, raw, &p) {
		return
	}
	if !domain.ValidPollType(p.PollType) {
		d.bcast.SendError(sid, "VALIDATION_ERROR", "")
		return
	}
	code, room, ok := d.resolve(sid, p.Room)
	if !ok {
		return
	}
	d.applyAndBroadcast(sid, code, room, func() error {
		return room.StartPoll(sid, p.Question, domain.PollType(p.PollType), p.Options, p.VotesPerParticipant)
	})
}

func (d *Dispatcher) handlePollVote(sid domain.SessionID, raw []byte) {
	var p pollVotePayload
	if !d.decode(sid, raw, &p) {
		return
	}
	code, room, ok := d.resolve(sid, p.Room)
	if !ok {
		return
	}
	if room.CastVote(sid, p.Vote) {
		d.bcast.PublishState(code, d.freshLookup(code))
	}
}

func (d *Dispatcher) handleUpdateConfig(sid domain.SessionID, raw []byte) {
	var p updateConfigPayload
	if !d.decode(sid, raw, &p) {
		return
	}
	code, room, ok := d.resolve(sid, p.Room)
	if !ok {
		return
	}

	var goal *domain.MeetingGoal
	if p.MeetingGoal != nil {
		if g, ok := domain.ParseMeetingGoal(*p.MeetingGoal); ok {
			goal = &g
		}
	}
	var format *domain.ParticipationFormat
	if p.ParticipationFormat != nil {
		if f, ok := domain.ParseParticipationFormat(*p.ParticipationFormat); ok {
			format = &f
		}
	}
	var rule *domain.DecisionRule
	if p.DecisionRule != nil {
		if r, ok := domain.ParseDecisionRule(*p.DecisionRule); ok {
			rule = &r
		}
	}
	var deliverable *domain.Deliverable
	if p.Deliverable != nil {
		if del, ok := domain.ParseDeliverable(*p.Deliverable); ok {
			deliverable = &del
		}
	}

	d.applyAndBroadcast(sid, code, room, func() error {
		return room.UpdateConfig(sid, p.Topic, goal, format, rule, deliverable)
	})
}

func (d *Dispatcher) handleDestroy(sid domain.SessionID, raw []byte) {
	var p roomOnlyPayload
	if !d.decode(sid, raw, &p) {
		return
	}
	code, room, ok := d.resolve(sid, p.Room)
	if !ok {
		return
	}
	if !room.IsChair(sid) {
		d.bcast.SendError(sid, "CHAIR_ACCESS_DENIED", code)
		return
	}

	d.bcast.Destroyed(code, "This meeting was closed by the chair.")
	for _, member := range d.hub.Members(code) {
		d.registry.UnbindSession(member)
		d.hub.Leave(code, member)
	}
	d.registry.Destroy(code)
}

// HandleDisconnect runs exactly once per connection close: if sid held
// chair anywhere, release it and broadcast; in all cases, drop its
// hub registration and registry binding.
func (d *Dispatcher) HandleDisconnect(sid domain.SessionID) {
	if room, ok := d.registry.RoomOfSession(sid); ok {
		code := room.Code()
		if room.IsChair(sid) {
			room.ReleaseChair(sid)
			d.hub.Leave(code, sid)
			d.registry.UnbindSession(sid)
			d.hub.Unregister(sid)
			d.bcast.PublishState(code, d.freshLookup(code))
			return
		}
		d.hub.Leave(code, sid)
	}
	d.registry.UnbindSession(sid)
	d.hub.Unregister(sid)
}
