package domain

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const MaxNameLen = 30

var (
	ErrNameEmpty   = errors.New("name empty")
	ErrNameTooLong = errors.New("name too long")
	ErrNameInvalid = errors.New("name contains invalid characters")

	nameAllowed = regexp.MustCompile(`^[A-Za-z0-9 '.\-]+$`)
)

// ParticipantID is an opaque handle unique within process lifetime.
type ParticipantID string

// Participant is a queued speaker: (id, name, requestedAtSec).
type Participant struct {
	ID             ParticipantID `json:"id"`
	Name           string        `json:"name"`
	RequestedAtSec int64         `json:"requestedAtSec"`
}

// NewParticipant trims and validates name, minting a fresh id.
func NewParticipant(name string, requestedAtSec int64) (Participant, error) {
	trimmed, err := ValidateName(name)
	if err != nil {
		return Participant{}, err
	}
	return Participant{
		ID:             ParticipantID(uuid.NewString()),
		Name:           trimmed,
		RequestedAtSec: requestedAtSec,
	}, nil
}

// ValidateName trims and checks a display name against the 1-30 char,
// [A-Za-z0-9 '.\-] rule shared by join/request/assumeChair payloads.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrNameEmpty
	}
	if len(trimmed) > MaxNameLen {
		return "", ErrNameTooLong
	}
	if !nameAllowed.MatchString(trimmed) {
		return "", ErrNameInvalid
	}
	return trimmed, nil
}

// SameName reports case-insensitive equality, the comparison used
// throughout the queue/current uniqueness invariant.
func SameName(a, b string) bool {
	return strings.EqualFold(a, b)
}
