package dispatch

// envelope carries just the discriminator; the dispatcher re-decodes
// the full payload once it knows which concrete struct to target,
// mirroring the teacher's handleSignal two-pass decode
// (internal/adapters/signal/io.go).
type envelope struct {
	Type string `json:"type" validate:"required"`
}

type joinPayload struct {
	Room string `json:"room" validate:"required,len=4"`
	Name string `json:"name" validate:"required,max=30"`
}

type assumeChairPayload struct {
	Room            string `json:"room" validate:"required,len=4"`
	ParticipantName string `json:"participantName" validate:"required,max=30"`
	RequestID       string `json:"requestId"`
}

type requestPayload struct {
	Room string `json:"room" validate:"required,len=4"`
	Name string `json:"name" validate:"required,max=30"`
}

type withdrawPayload struct {
	Room string `json:"room" validate:"required,len=4"`
	Name string `json:"name" validate:"required,max=30"`
}

type roomOnlyPayload struct {
	Room string `json:"room" validate:"required,len=4"`
}

type timerPayload struct {
	Room   string `json:"room" validate:"required,len=4"`
	Action string `json:"action" validate:"required,oneof=start pause reset"`
}

type setLimitPayload struct {
	Room    string `json:"room" validate:"required,len=4"`
	Seconds int    `json:"seconds"`
}

type pollStartPayload struct {
	Room                string   `json:"room" validate:"required,len=4"`
	Question            string   `json:"question" validate:"required,max=200"`
	PollType            string   `json:"pollType" validate:"required"`
	Options             []string `json:"options"`
	VotesPerParticipant int      `json:"votesPerParticipant"`
}

type pollVotePayload struct {
	Room string `json:"room" validate:"required,len=4"`
	Vote string `json:"vote" validate:"required"`
}

type updateConfigPayload struct {
	Room                string  `json:"room" validate:"required,len=4"`
	Topic               *string `json:"topic"`
	MeetingGoal         *string `json:"meetingGoal"`
	ParticipationFormat *string `json:"participationFormat"`
	DecisionRule        *string `json:"decisionRule"`
	Deliverable         *string `json:"deliverable"`
}
