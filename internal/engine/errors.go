// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package engine

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the engine package.
// Use errors.Is to check: errors.Is(err, engine.ErrRateLimited)
var (
	ErrRateLimited   = errors.New("engine: review rate limited")
	ErrNoSuchItem    = errors.New("engine: no such item")
	ErrDuplicateItem = errors.New("engine: duplicate item id")
	ErrNoContent     = errors.New("engine: no content loaded")
)

// RateLimitError is the rejection returned when a prospective review fails
// one of the rate-limit policies. Reason is user-facing; RetryAfter is the
// remaining wait where computable (zero otherwise).
//
// RateLimitError matches ErrRateLimited under errors.Is.
type RateLimitError struct {
	Reason     string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("engine: rate limited: %s", e.Reason)
}

// Is reports whether target is ErrRateLimited.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}
