package dispatch

import (
	"encoding/json"
	"testing"

	"github.com/dkeye/Voice/internal/broadcast"
	"github.com/dkeye/Voice/internal/core"
	"github.com/dkeye/Voice/internal/domain"
	"github.com/dkeye/Voice/internal/registry"
)

// fakeSub records every payload sent to it, standing in for a real
// websocket connection in end-to-end dispatcher scenarios.
type fakeSub struct {
	received [][]byte
	closed   bool
}

func (f *fakeSub) TrySend(payload []byte) error {
	f.received = append(f.received, payload)
	return nil
}
func (f *fakeSub) Close() { f.closed = true }

var _ core.Subscriber = (*fakeSub)(nil)

func (f *fakeSub) lastType() string {
	if len(f.received) == 0 {
		return ""
	}
	var env struct {
		Type string `json:"type"`
	}
	_ = json.Unmarshal(f.received[len(f.received)-1], &env)
	return env.Type
}

func (f *fakeSub) lastAs(v any) {
	_ = json.Unmarshal(f.received[len(f.received)-1], v)
}

// lastOfTypeAs scans backward for the most recent message of typ and
// decodes it into v — needed because a single command (e.g.
// assumeChair) can emit more than one envelope (a targeted reply
// followed by a state broadcast) and tests want the reply, not
// whichever happened to land last.
func (f *fakeSub) lastOfTypeAs(t *testing.T, typ string, v any) {
	t.Helper()
	var env struct {
		Type string `json:"type"`
	}
	for i := len(f.received) - 1; i >= 0; i-- {
		if err := json.Unmarshal(f.received[i], &env); err == nil && env.Type == typ {
			if err := json.Unmarshal(f.received[i], v); err != nil {
				t.Fatalf("decode %s envelope: %v", typ, err)
			}
			return
		}
	}
	t.Fatalf("no %q envelope found among %d received messages", typ, len(f.received))
}

type harness struct {
	reg   *registry.Registry
	hub   *broadcast.Hub
	bcast *broadcast.Broadcaster
	disp  *Dispatcher
}

func newHarness() *harness {
	reg := registry.NewRegistry(10)
	hub := broadcast.NewHub()
	bcast := broadcast.NewBroadcaster(hub, "/landing.html")
	return &harness{reg: reg, hub: hub, bcast: bcast, disp: New(reg, hub, bcast)}
}

func (h *harness) connect(sid domain.SessionID) *fakeSub {
	sub := &fakeSub{}
	h.hub.Register(sid, sub)
	return sub
}

func send(h *harness, sid domain.SessionID, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	h.disp.Dispatch(sid, raw)
}

func TestScenarioQueueSpeakNext(t *testing.T) {
	h := newHarness()
	h.reg.Create("ABCD")
	chair := h.connect("S-chair")
	_ = chair

	send(h, "S-chair", map[string]any{"type": "join", "room": "ABCD", "name": "Chair"})
	send(h, "S-chair", map[string]any{"type": "request", "room": "ABCD", "name": "Alice"})
	send(h, "S-chair", map[string]any{"type": "request", "room": "ABCD", "name": "Bob"})

	var state struct {
		Queue []domain.Participant `json:"queue"`
	}
	chair.lastAs(&state)
	if len(state.Queue) != 2 || state.Queue[0].Name != "Alice" || state.Queue[1].Name != "Bob" {
		t.Fatalf("want queue [Alice, Bob], got %+v", state.Queue)
	}

	send(h, "S-chair", map[string]any{"type": "next", "room": "ABCD"})
	chair.lastAs(&state)
	var state2 struct {
		Current *domain.Current      `json:"current"`
		Queue   []domain.Participant `json:"queue"`
	}
	chair.lastAs(&state2)
	if state2.Current == nil || state2.Current.Entry.Name != "Alice" {
		t.Fatalf("want Alice speaking, got %+v", state2.Current)
	}
	if len(state2.Queue) != 1 || state2.Queue[0].Name != "Bob" {
		t.Fatalf("want Bob still queued, got %+v", state2.Queue)
	}
}

func TestScenarioChairLostOnDisconnect(t *testing.T) {
	h := newHarness()
	h.reg.Create("ABCD")
	s1 := h.connect("S1")
	_ = s1
	s2 := h.connect("S2")

	send(h, "S1", map[string]any{"type": "join", "room": "ABCD", "name": "Chair"})
	send(h, "S2", map[string]any{"type": "join", "room": "ABCD", "name": "Bob"})

	send(h, "S2", map[string]any{"type": "assumeChair", "room": "ABCD", "participantName": "Bob", "requestId": "r1"})
	var reply struct {
		Success   bool   `json:"success"`
		RequestID string `json:"requestId"`
	}
	s2.lastOfTypeAs(t, "chairAssumed", &reply)
	if reply.Success {
		t.Fatalf("want a failed chairAssumed reply for S2, got %+v", reply)
	}

	h.disp.HandleDisconnect("S1")

	var state struct {
		ChairOccupied bool `json:"chairOccupied"`
	}
	s2.lastOfTypeAs(t, "state", &state)
	if state.ChairOccupied {
		t.Fatal("want chairOccupied=false after the chair's session disconnects")
	}

	send(h, "S2", map[string]any{"type": "assumeChair", "room": "ABCD", "participantName": "Bob", "requestId": "r2"})
	s2.lastOfTypeAs(t, "chairAssumed", &reply)
	if !reply.Success {
		t.Fatalf("want a successful chairAssumed reply once the chair is vacant, got %+v", reply)
	}
}

func TestScenarioDestroyNotifiesAndBlocksFurtherCommands(t *testing.T) {
	h := newHarness()
	h.reg.Create("ABCD")
	chair := h.connect("S1")
	other := h.connect("S2")

	send(h, "S1", map[string]any{"type": "join", "room": "ABCD", "name": "Chair"})
	send(h, "S2", map[string]any{"type": "join", "room": "ABCD", "name": "Bob"})

	send(h, "S1", map[string]any{"type": "destroy", "room": "ABCD"})

	var notice struct {
		Type       string `json:"type"`
		Message    string `json:"message"`
		LandingURL string `json:"landingUrl"`
	}
	other.lastAs(&notice)
	if notice.Type != "destroyed" || notice.LandingURL != "/landing.html" {
		t.Fatalf("want a destroyed notice with landingUrl, got %+v", notice)
	}
	_ = chair

	send(h, "S2", map[string]any{"type": "request", "room": "ABCD", "name": "Carol"})
	var errEnv struct {
		Type     string `json:"type"`
		Error    string `json:"error"`
		RoomCode string `json:"roomCode"`
	}
	other.lastAs(&errEnv)
	if errEnv.Type != "error" || errEnv.Error != "ROOM_NOT_FOUND" {
		t.Fatalf("want ROOM_NOT_FOUND after destroy, got %+v", errEnv)
	}
}

func TestDispatchRejectsMalformedEnvelope(t *testing.T) {
	h := newHarness()
	sub := h.connect("S1")
	h.disp.Dispatch("S1", []byte(`not json`))
	if sub.lastType() != "error" {
		t.Fatalf("want an error envelope for malformed input, got %q", sub.lastType())
	}
}

func TestDispatchRejectsBadRoomCodeLength(t *testing.T) {
	h := newHarness()
	sub := h.connect("S1")
	send(h, "S1", map[string]any{"type": "join", "room": "AB", "name": "Alice"})
	if sub.lastType() != "error" {
		t.Fatalf("want VALIDATION_ERROR for a short room code, got %q", sub.lastType())
	}
}
