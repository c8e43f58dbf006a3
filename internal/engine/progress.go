// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package engine

import "time"

// Mastery level and difficulty factor bounds.
const (
	MinLevel = 0
	MaxLevel = 5

	MinDifficulty = 0.5
	MaxDifficulty = 2.0

	// NeutralDifficulty is the factor assigned to an item before any review.
	NeutralDifficulty = 1.0
)

// ItemProgress is the per-item scheduling record.
//
// Level moves by at most one rank per review, saturating at the bounds.
// Difficulty only changes through AdjustDifficulty. A nil NextReview means
// the item has never been scheduled and is due immediately.
type ItemProgress struct {
	Level              int        `json:"level"`
	LastReview         *time.Time `json:"last_review,omitempty"`
	NextReview         *time.Time `json:"next_review,omitempty"`
	TotalReviews       int        `json:"total_reviews"`
	CorrectReviews     int        `json:"correct_reviews"`
	Difficulty         float64    `json:"difficulty"`
	ConsecutiveCorrect int        `json:"consecutive_correct"`
}

// NewItemProgress returns the default progress record for an unreviewed item.
func NewItemProgress() ItemProgress {
	return ItemProgress{Difficulty: NeutralDifficulty}
}

// Due reports whether the item is due at the given instant: never scheduled,
// or scheduled at or before now.
func (p ItemProgress) Due(now time.Time) bool {
	return p.NextReview == nil || !p.NextReview.After(now)
}

// clone returns a deep copy of the record. Pointer fields are copied by value.
func (p ItemProgress) clone() ItemProgress {
	out := p
	if p.LastReview != nil {
		v := *p.LastReview
		out.LastReview = &v
	}
	if p.NextReview != nil {
		v := *p.NextReview
		out.NextReview = &v
	}
	return out
}

func clampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}
