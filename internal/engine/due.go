// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package engine

import (
	"sort"
	"time"
)

// DueItems returns the ids of all items due at now: never scheduled, or
// scheduled at or before now. The result is sorted never-reviewed first,
// then by scheduled instant ascending, with the id as tiebreak, so callers
// get a stable review queue.
//
// The set is recomputed on demand; the progress map is bounded by content
// size, not review volume, so no cached index is kept. Host code must not
// duplicate the due test — this is the single definition.
func DueItems(progress map[string]ItemProgress, now time.Time) []string {
	var due []string
	for id, p := range progress {
		if p.Due(now) {
			due = append(due, id)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		pi, pj := progress[due[i]], progress[due[j]]
		switch {
		case pi.NextReview == nil && pj.NextReview != nil:
			return true
		case pi.NextReview != nil && pj.NextReview == nil:
			return false
		case pi.NextReview != nil && pj.NextReview != nil && !pi.NextReview.Equal(*pj.NextReview):
			return pi.NextReview.Before(*pj.NextReview)
		}
		return due[i] < due[j]
	})

	return due
}
