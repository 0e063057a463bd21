package broadcast

import (
	"testing"

	"github.com/dkeye/Voice/internal/core"
	"github.com/dkeye/Voice/internal/domain"
)

type recordingSub struct {
	received [][]byte
	closed   bool
}

func (r *recordingSub) TrySend(payload []byte) error {
	r.received = append(r.received, payload)
	return nil
}
func (r *recordingSub) Close() { r.closed = true }

var _ core.Subscriber = (*recordingSub)(nil)

func TestHubJoinThenMembersReflectsMembership(t *testing.T) {
	h := NewHub()
	h.Register("s1", &recordingSub{})
	h.Register("s2", &recordingSub{})

	h.Join("ABCD", "s1")
	h.Join("ABCD", "s2")

	members := h.Members("ABCD")
	if len(members) != 2 {
		t.Fatalf("want 2 members, got %v", members)
	}
}

func TestHubLeaveRemovesFromMembershipButKeepsSubscriber(t *testing.T) {
	h := NewHub()
	h.Register("s1", &recordingSub{})
	h.Join("ABCD", "s1")

	h.Leave("ABCD", "s1")

	if members := h.Members("ABCD"); len(members) != 0 {
		t.Fatalf("want empty membership after Leave, got %v", members)
	}
	if _, ok := h.subscriberOf("s1"); !ok {
		t.Fatal("want subscriber registration to survive Leave")
	}
}

func TestHubUnregisterPrunesAllMemberships(t *testing.T) {
	h := NewHub()
	h.Register("s1", &recordingSub{})
	h.Join("ABCD", "s1")
	h.Join("EFGH", "s1")

	h.Unregister("s1")

	if _, ok := h.subscriberOf("s1"); ok {
		t.Fatal("want subscriber dropped after Unregister")
	}
	if members := h.Members("ABCD"); len(members) != 0 {
		t.Fatalf("want ABCD membership pruned, got %v", members)
	}
	if members := h.Members("EFGH"); len(members) != 0 {
		t.Fatalf("want EFGH membership pruned, got %v", members)
	}
}

func TestHubRegisterOverwritesPriorSubscriber(t *testing.T) {
	h := NewHub()
	first := &recordingSub{}
	second := &recordingSub{}
	h.Register("s1", first)
	h.Register("s1", second)

	sub, ok := h.subscriberOf("s1")
	if !ok || sub != core.Subscriber(second) {
		t.Fatal("want the later Register to win")
	}
}

func TestHubMembersOfUnknownRoomIsEmptyNotNil(t *testing.T) {
	h := NewHub()
	members := h.Members(domain.RoomCode("ZZZZ"))
	if members == nil {
		t.Fatal("want a non-nil empty slice for an unknown room")
	}
	if len(members) != 0 {
		t.Fatalf("want no members for an unknown room, got %v", members)
	}
}
