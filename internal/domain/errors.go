package domain

import "errors"

// Sentinel errors for room operations, grounded on the original's
// RoomNotFoundException/ChairAccessException, expressed as wrapped
// sentinels (the idiom used by other_examples/jaam8-mattermost_bot's
// poll error block) rather than exception types.
var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrChairAccessDenied = errors.New("chair access denied")
	ErrChairOccupied     = errors.New("chair already occupied")
	ErrValidation        = errors.New("validation failed")
)
