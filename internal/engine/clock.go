// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package engine

import "time"

// Clock supplies the current instant. It is injected into the Engine so
// that cooldowns, hour buckets, and day boundaries are testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// FixedClock is a Clock pinned to a settable instant, for tests and replay.
type FixedClock struct {
	Instant time.Time
}

func (c *FixedClock) Now() time.Time { return c.Instant }

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) { c.Instant = c.Instant.Add(d) }
