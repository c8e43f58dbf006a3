// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"
	"time"
)

// Milestone signals a streak or daily-goal achievement. At most one fires
// per accepted review.
type Milestone int

const (
	MilestoneNone      Milestone = iota
	MilestoneDailyGoal           // cardsStudiedToday just reached the daily goal
	MilestoneStreak              // streakDays just hit a multiple of 5
)

var milestoneNames = [...]string{
	MilestoneNone:      "none",
	MilestoneDailyGoal: "daily-goal",
	MilestoneStreak:    "streak",
}

// String returns the milestone name; "Milestone(n)" for invalid values.
func (m Milestone) String() string {
	if m >= MilestoneNone && int(m) < len(milestoneNames) {
		return milestoneNames[m]
	}
	return fmt.Sprintf("Milestone(%d)", int(m))
}

// startOfDay truncates t to midnight in its location. Streak continuity is
// judged by calendar-date transitions, not elapsed hours: reviews at 23:59
// and 00:01 count as consecutive days.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// advanceStreak folds an accepted review at now into the streak and
// daily-goal counters, returning the milestone hit, if any.
func advanceStreak(s *SessionState, now time.Time) Milestone {
	milestone := MilestoneNone
	today := startOfDay(now)

	switch {
	case s.LastStudyDate != nil && startOfDay(*s.LastStudyDate).Equal(today):
		// Another review on the same date.
		s.CardsStudiedToday++
		if s.DailyGoal > 0 && s.CardsStudiedToday == s.DailyGoal {
			milestone = MilestoneDailyGoal
		}

	case s.LastStudyDate != nil && startOfDay(*s.LastStudyDate).AddDate(0, 0, 1).Equal(today):
		// First review of the day after the previous study date.
		s.StreakDays++
		s.CardsStudiedToday = 1
		if s.StreakDays%5 == 0 {
			milestone = MilestoneStreak
		}

	default:
		// Gap of two or more days, or first-ever study.
		s.StreakDays = 1
		s.CardsStudiedToday = 1
	}

	t := now
	s.LastStudyDate = &t
	return milestone
}
