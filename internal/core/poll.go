package core

import "github.com/dkeye/Voice/internal/domain"

// Poll is the active-or-last poll sub-state-machine owned by a Room.
// Grounded method-for-method on Room.java's startPoll/castVote/
// endPoll/closePoll/cancelPoll and PollState.java's derived-view rules.
// Callers (core/room.go) always hold the Room's mutex before touching
// this — Poll has no lock of its own, it is plain state.
type Poll struct {
	Status      domain.PollStatus
	Question    string
	Type        domain.PollType
	Options     []string // display labels, MULTISELECT variants only
	VotesPerPart int

	Tallies map[string]int

	// ballots tracks, per session, the option key(s) currently held.
	// Single-selection types store at most one key; MULTISELECT_MULTIPLE
	// stores a set.
	ballots map[domain.SessionID]map[string]struct{}

	LastResults *domain.PollResults
}

// StartPoll transitions to ACTIVE from any status, resetting tallies
// and ballots. votesPerParticipant defaults to 1 and only matters for
// MULTISELECT_MULTIPLE.
func (p *Poll) StartPoll(question string, pollType domain.PollType, options []string, votesPerParticipant int) {
	if votesPerParticipant < 1 {
		votesPerParticipant = 1
	}
	p.Status = domain.PollActive
	p.Question = question
	p.Type = pollType
	p.VotesPerPart = votesPerParticipant
	p.ballots = make(map[domain.SessionID]map[string]struct{})

	switch pollType {
	case domain.PollMultiselect, domain.PollMultiselectMultiple:
		p.Options = append([]string(nil), options...)
	default:
		p.Options = nil
	}

	p.Tallies = make(map[string]int)
	for _, key := range domain.OptionKeys(pollType, p.Options) {
		p.Tallies[key] = 0
	}
}

// CastVote is accepted only while ACTIVE and the key is a known option.
// For single-selection types a prior ballot is decremented and
// replaced. For MULTISELECT_MULTIPLE a key already held is toggled
// off; otherwise it is added if the session's ballot is under the
// votes-per-participant cap, else the vote is rejected. Returns
// whether the vote was applied — callers use this to decide whether to
// broadcast (unsuccessful votes and unknown-key votes are silent
// no-ops, matching the original's castVote boolean return).
func (p *Poll) CastVote(sid domain.SessionID, key string) bool {
	if p.Status != domain.PollActive {
		return false
	}
	if _, known := p.Tallies[key]; !known {
		return false
	}

	ballot := p.ballots[sid]

	if p.Type == domain.PollMultiselectMultiple {
		if ballot == nil {
			ballot = make(map[string]struct{})
			p.ballots[sid] = ballot
		}
		if _, held := ballot[key]; held {
			delete(ballot, key)
			p.Tallies[key]--
			return true
		}
		if len(ballot) >= p.VotesPerPart {
			return false
		}
		ballot[key] = struct{}{}
		p.Tallies[key]++
		return true
	}

	// Single selection: replace any prior ballot.
	if ballot != nil {
		for prev := range ballot {
			p.Tallies[prev]--
		}
	}
	p.ballots[sid] = map[string]struct{}{key: {}}
	p.Tallies[key]++
	return true
}

// EndPoll transitions ACTIVE -> ENDED, capturing LastResults. Illegal
// from any other status (silent no-op).
func (p *Poll) EndPoll() {
	if p.Status != domain.PollActive {
		return
	}
	total := 0
	tallies := make(map[string]int, len(p.Tallies))
	for k, v := range p.Tallies {
		tallies[k] = v
		total += v
	}
	p.LastResults = &domain.PollResults{
		Question:   p.Question,
		Type:       p.Type,
		Tallies:    tallies,
		TotalVotes: total,
		Options:    append([]string(nil), p.Options...),
	}
	p.Status = domain.PollEnded
}

// ClosePoll transitions ENDED -> CLOSED, clearing the live fields but
// preserving LastResults. Illegal from any other status.
func (p *Poll) ClosePoll() {
	if p.Status != domain.PollEnded {
		return
	}
	p.Question = ""
	p.Type = ""
	p.Options = nil
	p.Tallies = nil
	p.ballots = nil
	p.Status = domain.PollClosed
}

// CancelPoll discards all state including LastResults, from any status.
func (p *Poll) CancelPoll() {
	p.Status = domain.PollNone
	p.Question = ""
	p.Type = ""
	p.Options = nil
	p.Tallies = nil
	p.ballots = nil
	p.LastResults = nil
}

// View projects the internal poll state into the derived PollState
// shown in a room snapshot, per Room.java's snapshot() branching.
func (p *Poll) View() *PollState {
	switch {
	case p.Status == domain.PollActive || (p.Status == domain.PollEnded && p.Question != ""):
		total := 0
		tallies := make(map[string]int, len(p.Tallies))
		for k, v := range p.Tallies {
			tallies[k] = v
			total += v
		}
		return &PollState{
			Question:     p.Question,
			Type:         p.Type,
			Status:       p.Status,
			Tallies:      tallies,
			TotalVotes:   total,
			LastResults:  p.LastResults,
			Options:      append([]string(nil), p.Options...),
			VotesPerPart: p.VotesPerPart,
		}
	case p.Status == domain.PollClosed && p.LastResults != nil:
		return &PollState{Status: domain.PollClosed, LastResults: p.LastResults}
	case p.Status == domain.PollNone && p.LastResults != nil:
		return &PollState{LastResults: p.LastResults}
	default:
		return nil
	}
}

// PollState is the derived, snapshot-facing view of Poll.
type PollState struct {
	Question     string               `json:"question,omitempty"`
	Type         domain.PollType      `json:"pollType,omitempty"`
	Status       domain.PollStatus    `json:"status,omitempty"`
	Tallies      map[string]int       `json:"results,omitempty"`
	TotalVotes   int                  `json:"totalVotes,omitempty"`
	LastResults  *domain.PollResults  `json:"lastResults,omitempty"`
	Options      []string             `json:"options,omitempty"`
	VotesPerPart int                  `json:"votesPerParticipant,omitempty"`
}
