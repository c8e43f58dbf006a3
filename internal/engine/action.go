// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package engine

// Direction selects where Navigate moves the cursor.
type Direction int

const (
	Next Direction = iota
	Previous
)

// Action is the sealed set of engine transitions. Exactly four variants
// exist: SubmitReview, MarkForgotten, Navigate, and ResetAll. Each is
// applied atomically through Engine.Apply.
type Action interface {
	isAction()
}

// SubmitReview reviews an item as correct or incorrect. It is the only
// reward-bearing transition and the only one subject to the rate-limit
// guard.
type SubmitReview struct {
	ItemID  string
	Correct bool
}

// MarkForgotten resets an item's progress to defaults (level 0, neutral
// difficulty). It counts as a review attempt but not a success: the total
// counter increments, the correct counter is preserved. It grants no XP and
// deliberately bypasses the rate-limit guard — an explicit reset is not a
// farming vector since it rewards nothing.
type MarkForgotten struct {
	ItemID string
}

// Navigate moves the cursor one item in the given direction, wrapping
// across group boundaries and clamping at the ends of content.
type Navigate struct {
	Direction Direction
}

// ResetAll wipes all progress, the ledger, streaks, and XP, keeping only
// the daily goal.
type ResetAll struct{}

func (SubmitReview) isAction()  {}
func (MarkForgotten) isAction() {}
func (Navigate) isAction()      {}
func (ResetAll) isAction()      {}
