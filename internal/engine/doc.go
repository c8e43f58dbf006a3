// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package engine implements the review-progress engine behind studydeck.
//
// The engine is a deterministic state machine over an immutable SessionState
// snapshot. It schedules when each learning item is next due using a spaced
// repetition table scaled by an adaptive per-item difficulty factor, awards
// XP for each accepted review subject to multi-window rate limits, and keeps
// streak and daily-goal bookkeeping across calendar-day boundaries.
//
// All computations are pure and synchronous; time is supplied by an
// injectable Clock so every temporal rule is testable. The engine performs
// no I/O: content loading and persistence are the host's responsibility
// (see the content and store packages).
//
// Basic usage:
//
//	eng, err := engine.New(engine.Config{Groups: groups, DailyGoal: 20})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := eng.Apply(engine.SubmitReview{ItemID: "42", Correct: true})
package engine
