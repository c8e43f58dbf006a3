// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package engine

import (
	"math"
	"testing"
	"time"
)

func TestNextDueBaseTable(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		level    int
		wantDays float64
	}{
		{0, 1},
		{1, 3},
		{2, 7},
		{3, 14},
		{4, 30},
		{5, 90},
		{9, 90}, // above max level clamps to the last entry
	}

	for _, tt := range tests {
		got := NextDue(tt.level, 1.0, now)
		want := now.Add(time.Duration(tt.wantDays * 24 * float64(time.Hour)))
		if !got.Equal(want) {
			t.Errorf("NextDue(level=%d, 1.0): got %v, want %v", tt.level, got, want)
		}
	}
}

func TestNextDueDifficultyScaling(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// Level 2 (7 days) at difficulty 0.5 → 3.5 days. Fractional days are
	// kept, not rounded.
	got := NextDue(2, 0.5, now)
	want := now.Add(time.Duration(3.5 * 24 * float64(time.Hour)))
	if !got.Equal(want) {
		t.Errorf("NextDue(2, 0.5): got %v, want %v", got, want)
	}

	// Difficulty 2.0 doubles the interval.
	got = NextDue(0, 2.0, now)
	want = now.Add(48 * time.Hour)
	if !got.Equal(want) {
		t.Errorf("NextDue(0, 2.0): got %v, want %v", got, want)
	}
}

func TestAdjustDifficultyClimb(t *testing.T) {
	p := NewItemProgress()

	// Three consecutive correct reviews from 1.0 climb by 0.1 each: no
	// amplification until the counter exceeds 3.
	for i := 1; i <= 3; i++ {
		d, c := AdjustDifficulty(p, true)
		if c != i {
			t.Fatalf("review %d: consecutive = %d, want %d", i, c, i)
		}
		p.Difficulty = d
		p.ConsecutiveCorrect = c
	}
	if math.Abs(p.Difficulty-1.3) > 1e-9 {
		t.Errorf("after 3 correct: difficulty = %v, want 1.3", p.Difficulty)
	}

	// Fourth correct review amplifies the step x1.5.
	d, c := AdjustDifficulty(p, true)
	if c != 4 {
		t.Errorf("fourth review: consecutive = %d, want 4", c)
	}
	if math.Abs(d-1.45) > 1e-9 {
		t.Errorf("fourth review: difficulty = %v, want 1.45", d)
	}
}

func TestAdjustDifficultyFall(t *testing.T) {
	p := NewItemProgress()
	p.Difficulty = 1.3
	p.ConsecutiveCorrect = 3

	d, c := AdjustDifficulty(p, false)
	if c != 0 {
		t.Errorf("incorrect review: consecutive = %d, want 0", c)
	}
	if math.Abs(d-0.975) > 1e-9 {
		t.Errorf("incorrect review: difficulty = %v, want 0.975", d)
	}
}

func TestAdjustDifficultyBounds(t *testing.T) {
	p := NewItemProgress()
	p.Difficulty = MaxDifficulty
	if d, _ := AdjustDifficulty(p, true); d != MaxDifficulty {
		t.Errorf("correct at ceiling: difficulty = %v, want %v", d, MaxDifficulty)
	}

	p.Difficulty = MinDifficulty
	if d, _ := AdjustDifficulty(p, false); d != MinDifficulty {
		t.Errorf("incorrect at floor: difficulty = %v, want %v", d, MinDifficulty)
	}

	// Many incorrect reviews never break the floor.
	p = NewItemProgress()
	for i := 0; i < 20; i++ {
		d, c := AdjustDifficulty(p, false)
		if d < MinDifficulty || d > MaxDifficulty {
			t.Fatalf("difficulty %v out of bounds after %d misses", d, i+1)
		}
		p.Difficulty = d
		p.ConsecutiveCorrect = c
	}
}
