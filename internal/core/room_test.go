package core

import (
	"errors"
	"testing"

	"github.com/dkeye/Voice/internal/domain"
)

// withClock replaces the package's time seam for the duration of fn,
// advancing a fake clock by the given deltas on each call.
func withClock(t *testing.T, start int64, fn func(advance func(deltaSec int64))) {
	t.Helper()
	clock := start
	old := nowSec
	nowSec = func() int64 { return clock }
	t.Cleanup(func() { nowSec = old })
	fn(func(deltaSec int64) { clock += deltaSec })
}

func TestAddToQueueDeduplicatesCaseInsensitively(t *testing.T) {
	r := NewRoom("ABCD", 0)
	r.AddToQueue("alice")
	r.AddToQueue("ALICE")
	r.AddToQueue("Bob")

	snap := r.Snapshot()
	if len(snap.Queue) != 2 {
		t.Fatalf("want 2 queued participants, got %d: %+v", len(snap.Queue), snap.Queue)
	}
	if snap.Queue[0].Name != "alice" {
		t.Errorf("want the first-seen casing preserved, got %q", snap.Queue[0].Name)
	}
}

func TestAddToQueueIgnoresNameAlreadyCurrent(t *testing.T) {
	r := NewRoom("ABCD", 0)
	r.AddToQueue("Alice")
	if err := r.AssumeChair("chair-session"); err != nil {
		t.Fatalf("assume chair: %v", err)
	}
	if err := r.NextParticipant("chair-session"); err != nil {
		t.Fatalf("next: %v", err)
	}

	r.AddToQueue("alice")
	snap := r.Snapshot()
	if len(snap.Queue) != 0 {
		t.Fatalf("want current speaker's name excluded from queue, got %+v", snap.Queue)
	}
}

func TestWithdrawMatchesCaseInsensitivelyAndIgnoresUnknown(t *testing.T) {
	r := NewRoom("ABCD", 0)
	r.AddToQueue("Alice")
	r.Withdraw("alice")
	if snap := r.Snapshot(); len(snap.Queue) != 0 {
		t.Fatalf("want empty queue after withdraw, got %+v", snap.Queue)
	}
	r.Withdraw("alice") // no-op, must not panic
}

func TestNextParticipantRotatesQueue(t *testing.T) {
	r := NewRoom("ABCD", 0)
	const chair = domain.SessionID("S1")
	if err := r.AssumeChair(chair); err != nil {
		t.Fatalf("assume chair: %v", err)
	}
	r.AddToQueue("Alice")
	r.AddToQueue("Bob")

	if err := r.NextParticipant(chair); err != nil {
		t.Fatalf("next: %v", err)
	}
	snap := r.Snapshot()
	if snap.Current == nil || snap.Current.Entry.Name != "Alice" {
		t.Fatalf("want Alice speaking, got %+v", snap.Current)
	}
	if len(snap.Queue) != 1 || snap.Queue[0].Name != "Bob" {
		t.Fatalf("want Bob still queued, got %+v", snap.Queue)
	}

	if err := r.NextParticipant(chair); err != nil {
		t.Fatalf("next: %v", err)
	}
	snap = r.Snapshot()
	if snap.Current == nil || snap.Current.Entry.Name != "Bob" {
		t.Fatalf("want Bob speaking, got %+v", snap.Current)
	}

	if err := r.NextParticipant(chair); err != nil {
		t.Fatalf("next: %v", err)
	}
	snap = r.Snapshot()
	if snap.Current != nil {
		t.Fatalf("want no current speaker on empty queue, got %+v", snap.Current)
	}
}

func TestNextParticipantRequiresChair(t *testing.T) {
	r := NewRoom("ABCD", 0)
	err := r.NextParticipant("not-chair")
	if !errors.Is(err, domain.ErrChairAccessDenied) {
		t.Fatalf("want ErrChairAccessDenied, got %v", err)
	}
}

func TestTimerAccountingAcrossPauseResume(t *testing.T) {
	withClock(t, 1000, func(advance func(int64)) {
		r := NewRoom("ABCD", 1000)
		const chair = domain.SessionID("S1")
		_ = r.AssumeChair(chair)
		r.AddToQueue("Alice")
		_ = r.NextParticipant(chair)

		advance(5)
		if err := r.PauseTimer(chair); err != nil {
			t.Fatalf("pause: %v", err)
		}
		snap := r.Snapshot()
		if snap.Current.ElapsedMs != 5000 {
			t.Fatalf("want 5000ms elapsed after first run, got %d", snap.Current.ElapsedMs)
		}
		if snap.Current.Running {
			t.Fatalf("want paused")
		}

		// pause again is a no-op
		if err := r.PauseTimer(chair); err != nil {
			t.Fatalf("pause again: %v", err)
		}
		if r.Snapshot().Current.ElapsedMs != 5000 {
			t.Fatalf("double-pause must not double count")
		}

		if err := r.StartTimer(chair); err != nil {
			t.Fatalf("start: %v", err)
		}
		advance(3)
		if err := r.PauseTimer(chair); err != nil {
			t.Fatalf("pause: %v", err)
		}
		if got := r.Snapshot().Current.ElapsedMs; got != 8000 {
			t.Fatalf("want 8000ms total elapsed, got %d", got)
		}

		if err := r.ResetTimer(chair); err != nil {
			t.Fatalf("reset: %v", err)
		}
		snap = r.Snapshot()
		if snap.Current.ElapsedMs != 0 || !snap.Current.Running {
			t.Fatalf("want reset to zero and running, got %+v", snap.Current)
		}
	})
}

func TestUpdateLimitClampsAndPreservesCurrent(t *testing.T) {
	r := NewRoom("ABCD", 0)
	const chair = domain.SessionID("S1")
	_ = r.AssumeChair(chair)
	r.AddToQueue("Alice")
	_ = r.NextParticipant(chair)

	if err := r.UpdateLimit(chair, 999999); err != nil {
		t.Fatalf("update limit: %v", err)
	}
	snap := r.Snapshot()
	if snap.DefaultLimitSec != domain.MaxLimitSec {
		t.Fatalf("want clamp to %d, got %d", domain.MaxLimitSec, snap.DefaultLimitSec)
	}
	if snap.Current.LimitSec != domain.MaxLimitSec {
		t.Fatalf("want current speaker's limit updated too, got %d", snap.Current.LimitSec)
	}
}

func TestChairMonopoly(t *testing.T) {
	r := NewRoom("ABCD", 0)
	const s1, s2 = domain.SessionID("S1"), domain.SessionID("S2")

	if err := r.AssumeChair(s1); err != nil {
		t.Fatalf("first assume: %v", err)
	}
	if err := r.AssumeChair(s1); err != nil {
		t.Fatalf("re-assume by same session should be a no-op success: %v", err)
	}
	if err := r.AssumeChair(s2); !errors.Is(err, domain.ErrChairOccupied) {
		t.Fatalf("want ErrChairOccupied for a second session, got %v", err)
	}

	r.ReleaseChair(s2) // not the holder: no-op
	if !r.IsChair(s1) {
		t.Fatalf("want s1 to remain chair after s2's no-op release")
	}

	r.ReleaseChair(s1)
	if r.IsChair(s1) {
		t.Fatalf("want chair cleared after holder releases")
	}
	if err := r.AssumeChair(s2); err != nil {
		t.Fatalf("want vacant chair assumable by s2: %v", err)
	}
}

func TestUpdateConfigTruncatesTopicAndAcceptsNilEnums(t *testing.T) {
	r := NewRoom("ABCD", 0)
	const chair = domain.SessionID("S1")
	_ = r.AssumeChair(chair)

	longTopic := make([]byte, 150)
	for i := range longTopic {
		longTopic[i] = 'x'
	}
	topic := string(longTopic)
	goal := domain.GoalMakeDecisions

	if err := r.UpdateConfig(chair, &topic, &goal, nil, nil, nil); err != nil {
		t.Fatalf("update config: %v", err)
	}
	snap := r.Snapshot()
	if snap.RoomConfig.Topic == nil || len(*snap.RoomConfig.Topic) != 100 {
		t.Fatalf("want topic truncated to 100 chars, got %v", snap.RoomConfig.Topic)
	}
	if snap.RoomConfig.MeetingGoal == nil || *snap.RoomConfig.MeetingGoal != domain.GoalMakeDecisions {
		t.Fatalf("want goal set, got %v", snap.RoomConfig.MeetingGoal)
	}
	if snap.RoomConfig.ParticipationFormat != nil {
		t.Fatalf("want unset participation format to stay nil")
	}
}
