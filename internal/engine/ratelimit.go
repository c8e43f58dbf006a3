// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"
	"time"
)

// Rate-limit policy constants.
const (
	// ItemCooldown is the minimum elapsed time before the same item can be
	// reviewed again.
	ItemCooldown = 12 * time.Hour

	// MinReviewSpacing is the global minimum gap between any two accepted
	// reviews. Guards against rapid double submission.
	MinReviewSpacing = 3000 * time.Millisecond

	// HourlyReviewCap is the maximum accepted reviews per hour bucket.
	HourlyReviewCap = 100
)

const hourBucketMillis = 3_600_000

// Ledger tracks accepted reviews for abuse control. Buckets are keyed
// coarsely (hour index, calendar date) so old entries go inert without
// pruning; lookups are keyed, never scanned.
//
// Hourly and DailyXP serialize with string keys (encoding/json renders
// integer-keyed maps that way), which keeps persisted snapshots plain
// key-value mappings.
type Ledger struct {
	LastReview *time.Time           `json:"last_review,omitempty"`
	PerItem    map[string]time.Time `json:"per_item,omitempty"`
	Hourly     map[int64]int        `json:"hourly,omitempty"`
	DailyXP    map[string]int       `json:"daily_xp,omitempty"`
}

// NewLedger returns an empty ledger with initialized maps.
func NewLedger() Ledger {
	return Ledger{
		PerItem: make(map[string]time.Time),
		Hourly:  make(map[int64]int),
		DailyXP: make(map[string]int),
	}
}

// hourBucket returns the hour-bucket key for t: floor(epochMillis / 3.6e6).
func hourBucket(t time.Time) int64 {
	return t.UnixMilli() / hourBucketMillis
}

// dateKey returns the calendar-date key for t in its location.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Check validates a prospective review of itemID at now against the three
// hard policies, in order: per-item cooldown, hourly cap, global spacing.
// The first failure wins and is returned as a *RateLimitError; nil means
// the review may proceed.
//
// The daily XP ceiling is advisory and deliberately not checked here.
func (l *Ledger) Check(itemID string, now time.Time) error {
	if last, ok := l.PerItem[itemID]; ok {
		if since := now.Sub(last); since < ItemCooldown {
			remaining := ItemCooldown - since
			return &RateLimitError{
				Reason:     fmt.Sprintf("item reviewed recently, try again in %.1f hours", remaining.Hours()),
				RetryAfter: remaining,
			}
		}
	}

	bucket := hourBucket(now)
	if l.Hourly[bucket] >= HourlyReviewCap {
		nextBucket := time.UnixMilli((bucket + 1) * hourBucketMillis)
		return &RateLimitError{
			Reason:     fmt.Sprintf("hourly limit of %d reviews reached", HourlyReviewCap),
			RetryAfter: nextBucket.Sub(now),
		}
	}

	if l.LastReview != nil {
		if since := now.Sub(*l.LastReview); since < MinReviewSpacing {
			return &RateLimitError{
				Reason:     "reviews submitted too quickly, slow down",
				RetryAfter: MinReviewSpacing - since,
			}
		}
	}

	return nil
}

// Record books an accepted review of itemID at now earning xp points.
func (l *Ledger) Record(itemID string, now time.Time, xp int) {
	if l.PerItem == nil {
		l.PerItem = make(map[string]time.Time)
	}
	if l.Hourly == nil {
		l.Hourly = make(map[int64]int)
	}
	if l.DailyXP == nil {
		l.DailyXP = make(map[string]int)
	}
	t := now
	l.LastReview = &t
	l.PerItem[itemID] = now
	l.Hourly[hourBucket(now)]++
	l.DailyXP[dateKey(now)] += xp
}

// XPToday returns the XP accumulated on now's calendar date.
func (l *Ledger) XPToday(now time.Time) int {
	return l.DailyXP[dateKey(now)]
}

// ReviewsThisHour returns the accepted-review count in now's hour bucket.
func (l *Ledger) ReviewsThisHour(now time.Time) int {
	return l.Hourly[hourBucket(now)]
}

// Compact drops hour and per-item entries older than the cutoff and daily
// buckets before the cutoff's date. The engine never calls it; long-running
// hosts may, purely to bound memory.
func (l *Ledger) Compact(cutoff time.Time) {
	cutBucket := hourBucket(cutoff)
	for b := range l.Hourly {
		if b < cutBucket {
			delete(l.Hourly, b)
		}
	}
	cutDate := dateKey(cutoff)
	for d := range l.DailyXP {
		if d < cutDate {
			delete(l.DailyXP, d)
		}
	}
	for id, t := range l.PerItem {
		if t.Before(cutoff) {
			delete(l.PerItem, id)
		}
	}
}

// clone returns a deep copy of the ledger.
func (l Ledger) clone() Ledger {
	out := Ledger{
		PerItem: make(map[string]time.Time, len(l.PerItem)),
		Hourly:  make(map[int64]int, len(l.Hourly)),
		DailyXP: make(map[string]int, len(l.DailyXP)),
	}
	if l.LastReview != nil {
		v := *l.LastReview
		out.LastReview = &v
	}
	for k, v := range l.PerItem {
		out.PerItem[k] = v
	}
	for k, v := range l.Hourly {
		out.Hourly[k] = v
	}
	for k, v := range l.DailyXP {
		out.DailyXP[k] = v
	}
	return out
}
