package broadcast

import (
	"encoding/json"

	"github.com/dkeye/Voice/internal/core"
	"github.com/dkeye/Voice/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

// stateEnvelope flattens a Snapshot's fields alongside a "type"
// discriminator, matching the wire shape clients parse by switching on
// "type" the same way the dispatcher switches on inbound commands.
type stateEnvelope struct {
	Type string `json:"type"`
	core.Snapshot
}

type chairAssumedEnvelope struct {
	Type      string `json:"type"`
	Success   bool   `json:"success"`
	RequestID string `json:"requestId,omitempty"`
}

type destroyedEnvelope struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	LandingURL string `json:"landingUrl"`
}

type errorEnvelope struct {
	Type       string `json:"type"`
	Error      string `json:"error"`
	RoomCode   string `json:"roomCode,omitempty"`
	LandingURL string `json:"landingUrl,omitempty"`
}

// Broadcaster ties the Hub's connection fan-out to room snapshots. A
// slow subscriber's backpressure (core.Subscriber.TrySend is
// non-blocking; it drops rather than blocks) never delays delivery to
// the rest of the room — each send runs on its own goroutine via
// conc.WaitGroup, the concurrency library carried over from the
// teacher's go.mod for exactly this "notify everyone, wait for all
// sends to be attempted" fan-out shape.
type Broadcaster struct {
	hub        *Hub
	landingURL string
}

func NewBroadcaster(hub *Hub, landingURL string) *Broadcaster {
	return &Broadcaster{hub: hub, landingURL: landingURL}
}

// PublishState marshals room's current snapshot once and fans it out
// to every member of code. If room is nil (it vanished between the
// dispatcher's operation and this call — the documented eviction
// race), a destroyed notice is published instead.
func (b *Broadcaster) PublishState(code domain.RoomCode, room core.RoomService) {
	if room == nil {
		b.Destroyed(code, "Room closed: it was recycled by the server.")
		return
	}
	payload, err := json.Marshal(stateEnvelope{Type: "state", Snapshot: room.Snapshot()})
	if err != nil {
		log.Error().Err(err).Str("module", "broadcast").Msg("marshal state envelope")
		return
	}
	b.fanout(code, payload)
}

// Destroyed publishes a room-teardown notice to every member of code.
// Callers remain responsible for unbinding sessions and removing the
// room from the registry; this only notifies.
func (b *Broadcaster) Destroyed(code domain.RoomCode, message string) {
	payload, err := json.Marshal(destroyedEnvelope{Type: "destroyed", Message: message, LandingURL: b.landingURL})
	if err != nil {
		log.Error().Err(err).Str("module", "broadcast").Msg("marshal destroyed envelope")
		return
	}
	b.fanout(code, payload)
}

func (b *Broadcaster) fanout(code domain.RoomCode, payload []byte) {
	members := b.hub.Members(code)
	var wg conc.WaitGroup
	for _, sid := range members {
		sub, ok := b.hub.subscriberOf(sid)
		if !ok {
			continue
		}
		wg.Go(func() {
			if err := sub.TrySend(payload); err != nil {
				log.Warn().Err(err).Str("module", "broadcast").Str("room", string(code)).Str("session", string(sid)).Msg("dropped slow subscriber")
			}
		})
	}
	wg.Wait()
}

// ChairAssumed sends a targeted reply to sid on the chair-assumed
// topic, regardless of whether the assumption succeeded.
func (b *Broadcaster) ChairAssumed(sid domain.SessionID, success bool, requestID string) {
	b.SendTo(sid, chairAssumedEnvelope{Type: "chairAssumed", Success: success, RequestID: requestID})
}

// SendError delivers a targeted error envelope to sid — the common
// path for VALIDATION_ERROR, ROOM_NOT_FOUND, and CHAIR_ACCESS_DENIED.
func (b *Broadcaster) SendError(sid domain.SessionID, kind string, code domain.RoomCode) {
	env := errorEnvelope{Type: "error", Error: kind}
	if code != "" {
		env.RoomCode = string(code)
		env.LandingURL = b.landingURL
	}
	b.SendTo(sid, env)
}

// SendTo marshals v and delivers it to sid alone, ignoring backpressure
// and missing-subscriber errors the same way fanout does (best effort;
// the connection's own read/write pumps are what notice a dead peer).
func (b *Broadcaster) SendTo(sid domain.SessionID, v any) {
	sub, ok := b.hub.subscriberOf(sid)
	if !ok {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "broadcast").Msg("marshal targeted envelope")
		return
	}
	if err := sub.TrySend(payload); err != nil {
		log.Warn().Err(err).Str("module", "broadcast").Str("session", string(sid)).Msg("dropped targeted send")
	}
}
