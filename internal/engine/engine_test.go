// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package engine

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"
)

func testGroups() []Group {
	return []Group{
		{
			ID:    "go",
			Title: "Go",
			Items: []Item{
				{ID: "1", GroupID: "go", Title: "Goroutines", Content: "..."},
				{ID: "2", GroupID: "go", Title: "Channels", Content: "..."},
			},
		},
		{
			ID:    "sql",
			Title: "SQL",
			Items: []Item{
				{ID: "3", GroupID: "sql", Title: "Joins", Content: "..."},
			},
		},
	}
}

func testEngine(t *testing.T, clock Clock) *Engine {
	t.Helper()
	eng, err := New(Config{Groups: testGroups(), DailyGoal: 3, Clock: clock})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return eng
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNoContent) {
		t.Errorf("empty content: got %v, want ErrNoContent", err)
	}

	dup := []Group{{ID: "g", Items: []Item{{ID: "x"}, {ID: "x"}}}}
	if _, err := New(Config{Groups: dup}); !errors.Is(err, ErrDuplicateItem) {
		t.Errorf("duplicate id: got %v, want ErrDuplicateItem", err)
	}
}

func TestSubmitReviewFirstPass(t *testing.T) {
	clock := &FixedClock{Instant: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	eng := testEngine(t, clock)

	res, err := eng.Apply(SubmitReview{ItemID: "1", Correct: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// Fresh item is due, so the reward is round(10 * 1.25).
	if res.XPEarned != 13 {
		t.Errorf("XPEarned = %d, want 13", res.XPEarned)
	}
	if !res.WasDue {
		t.Error("fresh item should be due")
	}
	if res.Level != 1 {
		t.Errorf("Level = %d, want 1", res.Level)
	}

	// Level 1 at difficulty 1.1 → 3.3 days out.
	wantDue := clock.Instant.Add(time.Duration(3.3 * 24 * float64(time.Hour)))
	if d := res.NextReview.Sub(wantDue); d < -time.Second || d > time.Second {
		t.Errorf("NextReview = %v, want ~%v", res.NextReview, wantDue)
	}

	state := eng.State()
	if state.XPTotal != 13 {
		t.Errorf("XPTotal = %d, want 13", state.XPTotal)
	}
	if state.Ledger.XPToday(clock.Instant) != 13 {
		t.Errorf("daily XP = %d, want 13", state.Ledger.XPToday(clock.Instant))
	}
	p := state.Progress["1"]
	if p.TotalReviews != 1 || p.CorrectReviews != 1 {
		t.Errorf("counters = %d/%d, want 1/1", p.CorrectReviews, p.TotalReviews)
	}
	if state.CardsStudiedToday != 1 || state.StreakDays != 1 {
		t.Errorf("streak bookkeeping: cards=%d streak=%d, want 1/1", state.CardsStudiedToday, state.StreakDays)
	}
	if state.Cursor != (Cursor{Group: 0, Item: 1}) {
		t.Errorf("cursor = %+v, want {0 1}", state.Cursor)
	}
}

func TestSubmitReviewIncorrect(t *testing.T) {
	clock := &FixedClock{Instant: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	eng := testEngine(t, clock)

	res, err := eng.Apply(SubmitReview{ItemID: "1", Correct: false})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Level != 0 {
		t.Errorf("Level = %d, want 0 (saturates at the floor)", res.Level)
	}
	if res.Difficulty != 0.75 {
		t.Errorf("Difficulty = %v, want 0.75", res.Difficulty)
	}

	p := eng.State().Progress["1"]
	if p.TotalReviews != 1 || p.CorrectReviews != 0 {
		t.Errorf("counters = %d/%d, want 0/1", p.CorrectReviews, p.TotalReviews)
	}
	if p.ConsecutiveCorrect != 0 {
		t.Errorf("ConsecutiveCorrect = %d, want 0", p.ConsecutiveCorrect)
	}
}

func TestRejectedReviewLeavesStateUntouched(t *testing.T) {
	clock := &FixedClock{Instant: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	eng := testEngine(t, clock)

	if _, err := eng.Apply(SubmitReview{ItemID: "1", Correct: true}); err != nil {
		t.Fatalf("first review: %v", err)
	}
	before := eng.State()

	// Same item again inside the cooldown.
	clock.Advance(time.Hour)
	_, err := eng.Apply(SubmitReview{ItemID: "1", Correct: true})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("got %v, want rate limited", err)
	}

	after := eng.State()
	if after.LastRejection == "" {
		t.Error("rejection reason was not recorded")
	}
	after.LastRejection = before.LastRejection
	if !reflect.DeepEqual(before, after) {
		t.Errorf("state changed beyond the rejection reason:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestCooldownWindow(t *testing.T) {
	clock := &FixedClock{Instant: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	eng := testEngine(t, clock)

	if _, err := eng.Apply(SubmitReview{ItemID: "1", Correct: true}); err != nil {
		t.Fatalf("first review: %v", err)
	}

	clock.Advance(11*time.Hour + 59*time.Minute)
	if _, err := eng.Apply(SubmitReview{ItemID: "1", Correct: true}); !errors.Is(err, ErrRateLimited) {
		t.Errorf("at 11h59m: got %v, want rate limited", err)
	}

	clock.Advance(2 * time.Minute) // now 12h01m past the review
	if _, err := eng.Apply(SubmitReview{ItemID: "1", Correct: true}); err != nil {
		t.Errorf("at 12h01m: got %v, want accepted", err)
	}
}

func TestNoSuchItem(t *testing.T) {
	clock := &FixedClock{Instant: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	eng := testEngine(t, clock)
	before := eng.State()

	if _, err := eng.Apply(SubmitReview{ItemID: "nope", Correct: true}); !errors.Is(err, ErrNoSuchItem) {
		t.Errorf("SubmitReview: got %v, want ErrNoSuchItem", err)
	}
	if _, err := eng.Apply(MarkForgotten{ItemID: "nope"}); !errors.Is(err, ErrNoSuchItem) {
		t.Errorf("MarkForgotten: got %v, want ErrNoSuchItem", err)
	}

	if !reflect.DeepEqual(before, eng.State()) {
		t.Error("unknown-item transition was not a no-op")
	}
}

func TestMarkForgotten(t *testing.T) {
	clock := &FixedClock{Instant: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	eng := testEngine(t, clock)

	// Build some progress first.
	if _, err := eng.Apply(SubmitReview{ItemID: "1", Correct: true}); err != nil {
		t.Fatalf("review: %v", err)
	}
	xpBefore := eng.State().XPTotal

	// Forgetting resets scheduling but keeps the attempt history. It is not
	// rate limited, so it works immediately after the review.
	if _, err := eng.Apply(MarkForgotten{ItemID: "1"}); err != nil {
		t.Fatalf("MarkForgotten: %v", err)
	}

	p := eng.State().Progress["1"]
	if p.Level != 0 || p.Difficulty != NeutralDifficulty {
		t.Errorf("progress = level %d difficulty %v, want defaults", p.Level, p.Difficulty)
	}
	if p.NextReview != nil || p.LastReview != nil {
		t.Error("schedule should be cleared")
	}
	if p.TotalReviews != 2 || p.CorrectReviews != 1 {
		t.Errorf("counters = %d/%d, want 1/2", p.CorrectReviews, p.TotalReviews)
	}
	if eng.State().XPTotal != xpBefore {
		t.Error("MarkForgotten must not grant XP")
	}

	// Idempotence on an already-default item: only the attempt counter moves.
	if _, err := eng.Apply(MarkForgotten{ItemID: "1"}); err != nil {
		t.Fatalf("second MarkForgotten: %v", err)
	}
	p = eng.State().Progress["1"]
	if p.Level != 0 || p.Difficulty != NeutralDifficulty {
		t.Error("second reset changed the defaults")
	}
	if p.TotalReviews != 3 || p.CorrectReviews != 1 {
		t.Errorf("counters = %d/%d, want 1/3", p.CorrectReviews, p.TotalReviews)
	}
}

func TestNavigate(t *testing.T) {
	clock := &FixedClock{Instant: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	eng := testEngine(t, clock)

	// Forward wraps into the next group and clamps at the end.
	positions := []Cursor{{0, 1}, {1, 0}, {1, 0}}
	for i, want := range positions {
		if _, err := eng.Apply(Navigate{Direction: Next}); err != nil {
			t.Fatalf("navigate %d: %v", i, err)
		}
		if got := eng.State().Cursor; got != want {
			t.Errorf("navigate %d: cursor = %+v, want %+v", i, got, want)
		}
	}

	// Backward wraps to the previous group's last item and clamps at the
	// start.
	positions = []Cursor{{0, 1}, {0, 0}, {0, 0}}
	for i, want := range positions {
		if _, err := eng.Apply(Navigate{Direction: Previous}); err != nil {
			t.Fatalf("navigate back %d: %v", i, err)
		}
		if got := eng.State().Cursor; got != want {
			t.Errorf("navigate back %d: cursor = %+v, want %+v", i, got, want)
		}
	}
}

func TestResetAll(t *testing.T) {
	clock := &FixedClock{Instant: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	eng := testEngine(t, clock)

	if _, err := eng.Apply(SubmitReview{ItemID: "1", Correct: true}); err != nil {
		t.Fatalf("review: %v", err)
	}

	if _, err := eng.Apply(ResetAll{}); err != nil {
		t.Fatalf("ResetAll: %v", err)
	}

	state := eng.State()
	if state.XPTotal != 0 || state.StreakDays != 0 || len(state.Progress) != 0 {
		t.Errorf("state after reset: %+v, want fresh", state)
	}
	if state.DailyGoal != 3 {
		t.Errorf("DailyGoal = %d, want preserved 3", state.DailyGoal)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	clock := &FixedClock{Instant: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	eng := testEngine(t, clock)

	if _, err := eng.Apply(SubmitReview{ItemID: "1", Correct: true}); err != nil {
		t.Fatalf("review: %v", err)
	}
	snap := eng.State()

	// Hydrate a second engine from the snapshot: identical state.
	eng2, err := New(Config{Groups: testGroups(), Clock: clock, Snapshot: &snap})
	if err != nil {
		t.Fatalf("New from snapshot: %v", err)
	}
	if !reflect.DeepEqual(eng.State(), eng2.State()) {
		t.Error("hydrated state differs from the snapshot")
	}

	// Mutating the returned snapshot does not reach the engine.
	snap.XPTotal = 9999
	if eng.State().XPTotal == 9999 {
		t.Error("State() must return a copy")
	}
}

func TestXPStats(t *testing.T) {
	clock := &FixedClock{Instant: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	eng := testEngine(t, clock)

	if _, err := eng.Apply(SubmitReview{ItemID: "1", Correct: true}); err != nil {
		t.Fatalf("review: %v", err)
	}

	stats := eng.XPStats()
	if stats.TotalXP != 13 || stats.DailyXP != 13 {
		t.Errorf("TotalXP/DailyXP = %d/%d, want 13/13", stats.TotalXP, stats.DailyXP)
	}
	if stats.RemainingXP != DailyXPCeiling-13 {
		t.Errorf("RemainingXP = %d, want %d", stats.RemainingXP, DailyXPCeiling-13)
	}
	if stats.HourlyReviews != 1 {
		t.Errorf("HourlyReviews = %d, want 1", stats.HourlyReviews)
	}
	if stats.CardsToday != 1 || stats.StreakDays != 1 {
		t.Errorf("CardsToday/StreakDays = %d/%d, want 1/1", stats.CardsToday, stats.StreakDays)
	}
}

func TestDueQueue(t *testing.T) {
	clock := &FixedClock{Instant: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	eng := testEngine(t, clock)

	// Everything starts due.
	if due := eng.Due(); len(due) != 3 {
		t.Fatalf("initial due = %v, want all 3", due)
	}

	// A reviewed item is scheduled out of the due set.
	if _, err := eng.Apply(SubmitReview{ItemID: "1", Correct: true}); err != nil {
		t.Fatalf("review: %v", err)
	}
	due := eng.Due()
	if len(due) != 2 {
		t.Fatalf("due after review = %v, want 2", due)
	}
	for _, id := range due {
		if id == "1" {
			t.Error("reviewed item still in the due set")
		}
	}

	// It comes back once the scheduled instant passes.
	clock.Advance(4 * 24 * time.Hour)
	if due := eng.Due(); len(due) != 3 {
		t.Errorf("due after schedule passes = %v, want 3", due)
	}
}

func TestDeclaredDifficultySeedsProgress(t *testing.T) {
	groups := testGroups()
	groups[0].Items[0].Difficulty = "1.8"
	groups[0].Items[1].Difficulty = "hard" // non-numeric, ignored
	clock := &FixedClock{Instant: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	eng, err := New(Config{Groups: groups, Clock: clock})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if p := eng.Progress("1"); p.Difficulty != 1.8 {
		t.Errorf("seeded difficulty = %v, want 1.8", p.Difficulty)
	}
	if p := eng.Progress("2"); p.Difficulty != NeutralDifficulty {
		t.Errorf("non-numeric declared difficulty = %v, want neutral", p.Difficulty)
	}

	// The seed feeds the first review: difficulty climbs from 1.8, and the
	// difficulty bonus applies to the reward.
	res, err := eng.Apply(SubmitReview{ItemID: "1", Correct: true})
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if math.Abs(res.Difficulty-1.9) > 1e-9 {
		t.Errorf("difficulty after correct review = %v, want 1.9", res.Difficulty)
	}
	// round(10 * 1.8 * 1.25) = 23 for a due level-0 card.
	if res.XPEarned != 23 {
		t.Errorf("XPEarned = %d, want 23", res.XPEarned)
	}
}
