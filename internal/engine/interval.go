// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package engine

import "time"

// baseIntervalDays maps mastery level to the base re-review interval in days.
// Levels at or above MaxLevel use the last entry.
var baseIntervalDays = [...]float64{1, 3, 7, 14, 30, 90}

// NextDue returns the next review instant for an item at the given mastery
// level and difficulty factor. The effective interval is the level's base
// interval multiplied by the difficulty factor, with fractional days kept:
// persistently hard items (difficulty < 1) resurface sooner than the table
// alone would dictate, easy ones drift further out.
//
// NextDue is total over its domain: out-of-range levels are clamped and no
// error is possible.
func NextDue(level int, difficulty float64, now time.Time) time.Time {
	level = clampLevel(level)
	days := baseIntervalDays[level] * difficulty
	return now.Add(time.Duration(days * float64(24*time.Hour)))
}

// AdjustDifficulty returns the updated difficulty factor and
// consecutive-correct counter after a review outcome.
//
// The adjustment is asymmetric: a correct answer climbs by 0.1 (amplified
// x1.5 once the new consecutive-correct count exceeds 3), while an incorrect
// answer multiplies the factor by 0.75 and resets the counter. A single miss
// costs more than one success gains. The result is clamped to
// [MinDifficulty, MaxDifficulty].
func AdjustDifficulty(p ItemProgress, correct bool) (difficulty float64, consecutive int) {
	if !correct {
		difficulty = p.Difficulty * 0.75
		if difficulty < MinDifficulty {
			difficulty = MinDifficulty
		}
		return difficulty, 0
	}

	consecutive = p.ConsecutiveCorrect + 1
	step := 0.1
	if consecutive > 3 {
		step *= 1.5
	}
	difficulty = p.Difficulty + step
	if difficulty > MaxDifficulty {
		difficulty = MaxDifficulty
	}
	return difficulty, consecutive
}
