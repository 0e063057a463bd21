package core

import "github.com/dkeye/Voice/internal/domain"

// Snapshot is the immutable authoritative view of a room, broadcast to
// subscribers after every state mutation. Field order is explicit and
// stable so two snapshots of equal logical state serialize to equal
// JSON byte sequences (spec's determinism requirement); map contents
// (Tallies) are the one place ordering is inherently unordered.
type Snapshot struct {
	Queue           []domain.Participant `json:"queue"`
	Current         *domain.Current      `json:"current"`
	MeetingStartSec int64                `json:"meetingStartSec"`
	DefaultLimitSec int                  `json:"defaultLimitSec"`
	RoomCode        domain.RoomCode      `json:"roomCode"`
	ChairOccupied   bool                 `json:"chairOccupied"`
	PollState       *PollState           `json:"pollState"`
	RoomConfig      domain.RoomConfig    `json:"roomConfig"`
}

// RoomService is the core-facing API of a room: the authorization
// classes of spec.md §4.2 collapsed into one method set, the same
// "interface is the contract, one impl" shape as the teacher's
// RoomService.
type RoomService interface {
	Code() domain.RoomCode
	CreatedAtSec() int64

	// open
	AddToQueue(name string)
	Withdraw(name string)
	CastVote(sid domain.SessionID, key string) bool
	Snapshot() Snapshot

	// chair-only
	NextParticipant(sid domain.SessionID) error
	StartTimer(sid domain.SessionID) error
	PauseTimer(sid domain.SessionID) error
	ResetTimer(sid domain.SessionID) error
	UpdateLimit(sid domain.SessionID, seconds int) error
	StartPoll(sid domain.SessionID, question string, pollType domain.PollType, options []string, votesPerParticipant int) error
	EndPoll(sid domain.SessionID) error
	ClosePoll(sid domain.SessionID) error
	CancelPoll(sid domain.SessionID) error
	UpdateConfig(sid domain.SessionID, topic *string, goal *domain.MeetingGoal, format *domain.ParticipationFormat, rule *domain.DecisionRule, deliverable *domain.Deliverable) error

	// role-transition
	AssumeChair(sid domain.SessionID) error
	ReleaseChair(sid domain.SessionID)
	IsChair(sid domain.SessionID) bool
}

var _ RoomService = (*Room)(nil)
