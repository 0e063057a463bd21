package domain

import "fmt"

// PollType is a tagged variant: YesNo | Gradients | Multiselect |
// MultiselectMultiple. Represented as a string enum rather than a Go
// sum type (no discriminated-union library appears anywhere in the
// retrieval pack) with the variant-specific data (options,
// votesPerParticipant) carried alongside it on Poll, mirroring
// Room.java's parallel pollType/pollOptions/votesPerParticipant fields
// but validated centrally here instead of scattered across call sites.
type PollType string

const (
	PollYesNo               PollType = "YES_NO"
	PollGradients            PollType = "GRADIENTS"
	PollMultiselect          PollType = "MULTISELECT"
	PollMultiselectMultiple  PollType = "MULTISELECT_MULTIPLE"
)

// ValidPollType reports whether t is one of the four known variants.
func ValidPollType(t string) bool {
	switch PollType(t) {
	case PollYesNo, PollGradients, PollMultiselect, PollMultiselectMultiple:
		return true
	default:
		return false
	}
}

const gradientOptionCount = 8

// OptionKeys derives the fixed or option-indexed set of tally keys for
// a poll type, in display order. For MULTISELECT variants, labels
// supplies the option text and the returned keys are OPT_0..OPT_{n-1}.
func OptionKeys(t PollType, labels []string) []string {
	switch t {
	case PollYesNo:
		return []string{"YES", "NO"}
	case PollGradients:
		keys := make([]string, gradientOptionCount)
		for i := range keys {
			keys[i] = fmt.Sprintf("OPT_%d", i+1)
		}
		return keys
	case PollMultiselect, PollMultiselectMultiple:
		keys := make([]string, len(labels))
		for i := range labels {
			keys[i] = fmt.Sprintf("OPT_%d", i)
		}
		return keys
	default:
		return nil
	}
}

// PollStatus is the poll lifecycle status.
type PollStatus string

const (
	PollNone   PollStatus = "NONE"
	PollActive PollStatus = "ACTIVE"
	PollEnded  PollStatus = "ENDED"
	PollClosed PollStatus = "CLOSED"
)

// PollResults is the terminal tally of a poll that has ended, kept in
// Poll.LastResults after the poll that produced it is closed or a new
// poll starts. Grounded on PollResults.java.
type PollResults struct {
	Question    string         `json:"question"`
	Type        PollType       `json:"pollType"`
	Tallies     map[string]int `json:"results"`
	TotalVotes  int            `json:"totalVotes"`
	Options     []string       `json:"options,omitempty"`
}

// RoomConfig is the optional meeting-configuration tuple. Every field
// is individually nullable.
type RoomConfig struct {
	Topic                *string               `json:"topic,omitempty"`
	MeetingGoal          *MeetingGoal          `json:"meetingGoal,omitempty"`
	ParticipationFormat  *ParticipationFormat  `json:"participationFormat,omitempty"`
	DecisionRule         *DecisionRule         `json:"decisionRule,omitempty"`
	Deliverable          *Deliverable          `json:"deliverable,omitempty"`
}
