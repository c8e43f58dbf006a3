// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package engine

import (
	"math"
	"time"
)

// DailyXPCeiling is the advisory daily XP cap. The engine never blocks a
// review for exceeding it; it only reports the running total so hosts can.
const DailyXPCeiling = 1000

// XPForReview returns the reward points for reviewing an item with the given
// pre-review progress. It is pure: identical inputs always yield identical
// output.
//
// The reward is round(base * timeBonus * streakBonus * difficultyBonus *
// dueBonus) where base = 10 + 5*level, timeBonus is 1.5 when the review
// lands within [0.9, 1.1] days of the previous one (never-reviewed items get
// no bonus), streakBonus is min(1.5, 1 + 0.1*consecutiveCorrect) when the
// correct streak is live, difficultyBonus is the difficulty factor floored
// at 1, and dueBonus is 1.25 for a due item.
func XPForReview(p ItemProgress, due bool, now time.Time) int {
	base := float64(10 + p.Level*5)

	timeBonus := 1.0
	if p.LastReview != nil {
		days := now.Sub(*p.LastReview).Hours() / 24
		if days >= 0.9 && days <= 1.1 {
			timeBonus = 1.5
		}
	}

	streakBonus := 1.0
	if p.ConsecutiveCorrect > 0 {
		streakBonus = math.Min(1.5, 1+float64(p.ConsecutiveCorrect)*0.1)
	}

	difficultyBonus := math.Max(1.0, p.Difficulty)

	dueBonus := 1.0
	if due {
		dueBonus = 1.25
	}

	return int(math.Round(base * timeBonus * streakBonus * difficultyBonus * dueBonus))
}

// XPStats is the point-economy summary surfaced to hosts: the figures the
// UI header shows and the data callers need to honor the advisory daily cap.
type XPStats struct {
	TotalXP       int `json:"total_xp"`
	DailyXP       int `json:"daily_xp"`
	RemainingXP   int `json:"remaining_xp"` // of DailyXPCeiling, floored at 0
	HourlyReviews int `json:"hourly_reviews"`
	HourlyCap     int `json:"hourly_cap"`
	StreakDays    int `json:"streak_days"`
	CardsToday    int `json:"cards_today"`
	DailyGoal     int `json:"daily_goal"`
}
