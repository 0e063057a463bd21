package registry

import "github.com/dkeye/Voice/internal/domain"

// roomEntry is one node of the time-ordered index: rooms are ordered
// by (createdAtSec, seq), seq being a process-wide monotonically
// increasing counter assigned at creation time. This resolves
// same-second creation ties deterministically — the open question
// flagged in spec.md §9 — without needing nanosecond wall-clock
// resolution. Grounded on RoomRepository.java's TreeMap<Long, Room>
// keyed purely by second-precision timestamp (which the original
// leaves untie-broken); container/heap is the idiomatic Go substitute
// for a Java TreeMap used only for "peek and remove the minimum" —
// no ordered-map/priority-queue library appears in any example repo's
// go.mod, so this stdlib use is justified (see DESIGN.md).
type roomEntry struct {
	code      domain.RoomCode
	createdAt int64
	seq       uint64
	index     int // maintained by container/heap, for O(log n) Remove
}

func (a *roomEntry) less(b *roomEntry) bool {
	if a.createdAt != b.createdAt {
		return a.createdAt < b.createdAt
	}
	return a.seq < b.seq
}

// roomHeap is a min-heap of *roomEntry ordered by creation order, the
// oldest room always at index 0.
type roomHeap []*roomEntry

func (h roomHeap) Len() int            { return len(h) }
func (h roomHeap) Less(i, j int) bool  { return h[i].less(h[j]) }
func (h roomHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *roomHeap) Push(x any) {
	e := x.(*roomEntry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *roomHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}
