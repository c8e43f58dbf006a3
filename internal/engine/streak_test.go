// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package engine

import (
	"testing"
	"time"
)

func TestStreakContinuity(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	s := NewSessionState(20)
	if ms := advanceStreak(&s, day1); ms != MilestoneNone {
		t.Errorf("first study: milestone = %v, want none", ms)
	}
	if s.StreakDays != 1 || s.CardsStudiedToday != 1 {
		t.Fatalf("first study: streak=%d cards=%d, want 1/1", s.StreakDays, s.CardsStudiedToday)
	}

	// Next calendar day extends the streak.
	advanceStreak(&s, day1.AddDate(0, 0, 1))
	if s.StreakDays != 2 {
		t.Errorf("day 2: streak = %d, want 2", s.StreakDays)
	}
	if s.CardsStudiedToday != 1 {
		t.Errorf("day 2: cards today = %d, want 1", s.CardsStudiedToday)
	}

	// Skipping a day resets to 1.
	advanceStreak(&s, day1.AddDate(0, 0, 3))
	if s.StreakDays != 1 {
		t.Errorf("after gap: streak = %d, want 1", s.StreakDays)
	}
}

func TestStreakCalendarBoundary(t *testing.T) {
	// 23:59 and 00:01 the next day are consecutive calendar dates even
	// though only two minutes apart.
	lateNight := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	justAfter := time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC)

	s := NewSessionState(20)
	advanceStreak(&s, lateNight)
	advanceStreak(&s, justAfter)
	if s.StreakDays != 2 {
		t.Errorf("streak across midnight = %d, want 2", s.StreakDays)
	}
}

func TestStreakMilestone(t *testing.T) {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	s := NewSessionState(20)
	var milestones []Milestone
	for i := 0; i < 5; i++ {
		milestones = append(milestones, advanceStreak(&s, day.AddDate(0, 0, i)))
	}

	// Day 5 is the first multiple of 5.
	for i, ms := range milestones[:4] {
		if ms != MilestoneNone {
			t.Errorf("day %d: milestone = %v, want none", i+1, ms)
		}
	}
	if milestones[4] != MilestoneStreak {
		t.Errorf("day 5: milestone = %v, want streak", milestones[4])
	}
}

func TestDailyGoalMilestone(t *testing.T) {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	s := NewSessionState(3)
	var ms Milestone
	for i := 0; i < 4; i++ {
		ms = advanceStreak(&s, day.Add(time.Duration(i)*time.Minute))
		switch i {
		case 2: // third card of the day hits the goal of 3
			if ms != MilestoneDailyGoal {
				t.Errorf("card %d: milestone = %v, want daily-goal", i+1, ms)
			}
		default:
			if ms != MilestoneNone {
				t.Errorf("card %d: milestone = %v, want none", i+1, ms)
			}
		}
	}
}
