// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultDailyGoal is the cards-per-day target used when none is configured.
const DefaultDailyGoal = 20

// Config configures an Engine. Zero values produce sensible defaults.
type Config struct {
	Groups    []Group       // content, ordered; required
	DailyGoal int           // zero → DefaultDailyGoal
	Clock     Clock         // nil → SystemClock
	Snapshot  *SessionState // nil → fresh state; otherwise hydrated
}

// Engine is the progress state machine. It exclusively owns the canonical
// SessionState and applies every action as one atomic transition: the next
// snapshot is built in full, then swapped in. Callers must serialize Apply
// calls; the engine itself holds no locks and never blocks.
type Engine struct {
	clock  Clock
	groups []Group
	items  map[string]Item
	state  SessionState
}

// New creates an Engine over the given content. Duplicate item ids are
// rejected. A snapshot, if supplied, is hydrated with its cursor clamped to
// the current content bounds; progress entries for items no longer in the
// content are kept (they go inert, and return if the item does).
func New(cfg Config) (*Engine, error) {
	if len(cfg.Groups) == 0 {
		return nil, ErrNoContent
	}

	items := make(map[string]Item)
	for _, g := range cfg.Groups {
		for _, it := range g.Items {
			if it.ID == "" {
				return nil, fmt.Errorf("engine: item in group %q has empty id", g.ID)
			}
			if _, ok := items[it.ID]; ok {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateItem, it.ID)
			}
			items[it.ID] = it
		}
	}

	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock()
	}

	goal := cfg.DailyGoal
	if goal == 0 {
		goal = DefaultDailyGoal
	}

	var state SessionState
	if cfg.Snapshot != nil {
		state = cfg.Snapshot.clone()
		if state.Progress == nil {
			state.Progress = make(map[string]ItemProgress)
		}
		if state.DailyGoal == 0 {
			state.DailyGoal = goal
		}
		state.clampCursor(cfg.Groups)
	} else {
		state = NewSessionState(goal)
	}

	return &Engine{
		clock:  clock,
		groups: cfg.Groups,
		items:  items,
		state:  state,
	}, nil
}

// ReviewResult reports the outcome of an accepted SubmitReview transition.
type ReviewResult struct {
	ItemID     string
	Correct    bool
	WasDue     bool
	XPEarned   int
	Level      int
	Difficulty float64
	NextReview time.Time
	Milestone  Milestone
}

// Apply runs one transition. A non-nil ReviewResult is returned only for an
// accepted SubmitReview. A RateLimited rejection records its reason in the
// state (the only field that changes) and returns the *RateLimitError; an
// unknown item leaves the state untouched and returns ErrNoSuchItem.
func (e *Engine) Apply(a Action) (*ReviewResult, error) {
	switch act := a.(type) {
	case SubmitReview:
		return e.submitReview(act.ItemID, act.Correct)
	case MarkForgotten:
		return nil, e.markForgotten(act.ItemID)
	case Navigate:
		e.navigate(act.Direction)
		return nil, nil
	case ResetAll:
		e.resetAll()
		return nil, nil
	default:
		return nil, fmt.Errorf("engine: unknown action %T", a)
	}
}

// submitReview is the ten-step review transition. All steps land on a clone
// of the state which replaces the canonical snapshot only on success.
func (e *Engine) submitReview(itemID string, correct bool) (*ReviewResult, error) {
	now := e.clock.Now()

	if _, ok := e.items[itemID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchItem, itemID)
	}

	if err := e.state.Ledger.Check(itemID, now); err != nil {
		var rl *RateLimitError
		if errors.As(err, &rl) {
			e.state.LastRejection = rl.Reason
		}
		return nil, err
	}

	next := e.state.clone()

	prog, ok := next.Progress[itemID]
	if !ok {
		prog = e.initialProgress(itemID)
	}
	pre := prog
	wasDue := prog.Due(now)

	difficulty, consecutive := AdjustDifficulty(prog, correct)

	level := prog.Level
	if correct {
		level++
	} else {
		level--
	}
	level = clampLevel(level)

	nextDue := NextDue(level, difficulty, now)

	// XP is computed from the pre-update progress so the reward reflects
	// the state the user actually reviewed from.
	xp := XPForReview(pre, wasDue, now)

	prog.Level = level
	prog.Difficulty = difficulty
	prog.ConsecutiveCorrect = consecutive
	reviewedAt := now
	prog.LastReview = &reviewedAt
	prog.NextReview = &nextDue
	prog.TotalReviews++
	if correct {
		prog.CorrectReviews++
	}
	next.Progress[itemID] = prog

	next.XPTotal += xp
	next.Ledger.Record(itemID, now, xp)

	milestone := advanceStreak(&next, now)

	next.advanceCursor(e.groups)
	next.LastRejection = ""

	e.state = next

	return &ReviewResult{
		ItemID:     itemID,
		Correct:    correct,
		WasDue:     wasDue,
		XPEarned:   xp,
		Level:      level,
		Difficulty: difficulty,
		NextReview: nextDue,
		Milestone:  milestone,
	}, nil
}

// markForgotten resets the item's progress to defaults while counting the
// reset as an unsuccessful review attempt.
func (e *Engine) markForgotten(itemID string) error {
	if _, ok := e.items[itemID]; !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchItem, itemID)
	}

	next := e.state.clone()
	prog := next.Progress[itemID]

	reset := NewItemProgress()
	reset.TotalReviews = prog.TotalReviews + 1
	reset.CorrectReviews = prog.CorrectReviews
	next.Progress[itemID] = reset

	e.state = next
	return nil
}

func (e *Engine) navigate(dir Direction) {
	next := e.state.clone()
	if dir == Previous {
		next.retreatCursor(e.groups)
	} else {
		next.advanceCursor(e.groups)
	}
	e.state = next
}

func (e *Engine) resetAll() {
	e.state = NewSessionState(e.state.DailyGoal)
}

// State returns a deep copy of the current snapshot, suitable for
// persistence or inspection. Mutating it has no effect on the engine.
func (e *Engine) State() SessionState {
	return e.state.clone()
}

// Groups returns the content the engine was built over.
func (e *Engine) Groups() []Group {
	return e.groups
}

// Item returns the item with the given id.
func (e *Engine) Item(id string) (Item, bool) {
	it, ok := e.items[id]
	return it, ok
}

// Current returns the item under the navigation cursor.
func (e *Engine) Current() (Item, bool) {
	c := e.state.Cursor
	if c.Group >= len(e.groups) {
		return Item{}, false
	}
	g := e.groups[c.Group]
	if c.Item >= len(g.Items) {
		return Item{}, false
	}
	return g.Items[c.Item], true
}

// Progress returns the progress record for an item, defaulted if the item
// has never been reviewed.
func (e *Engine) Progress(id string) ItemProgress {
	if p, ok := e.state.Progress[id]; ok {
		return p.clone()
	}
	return e.initialProgress(id)
}

// initialProgress builds the first progress record for an item. A numeric
// declared difficulty on the item seeds the factor, clamped to range;
// anything else stays neutral.
func (e *Engine) initialProgress(id string) ItemProgress {
	p := NewItemProgress()
	it, ok := e.items[id]
	if !ok {
		return p
	}
	if d, err := strconv.ParseFloat(strings.TrimSpace(it.Difficulty), 64); err == nil {
		if d < MinDifficulty {
			d = MinDifficulty
		}
		if d > MaxDifficulty {
			d = MaxDifficulty
		}
		p.Difficulty = d
	}
	return p
}

// Due returns the ids of items due right now, most urgent first. Items with
// no progress record yet are due by definition and sort first.
func (e *Engine) Due() []string {
	now := e.clock.Now()
	progress := make(map[string]ItemProgress, len(e.items))
	for id := range e.items {
		if p, ok := e.state.Progress[id]; ok {
			progress[id] = p
		} else {
			progress[id] = e.initialProgress(id)
		}
	}
	return DueItems(progress, now)
}

// XPStats returns the current point-economy summary, including the advisory
// remaining-XP figure for the 1000/day ceiling.
func (e *Engine) XPStats() XPStats {
	now := e.clock.Now()
	daily := e.state.Ledger.XPToday(now)
	remaining := DailyXPCeiling - daily
	if remaining < 0 {
		remaining = 0
	}
	return XPStats{
		TotalXP:       e.state.XPTotal,
		DailyXP:       daily,
		RemainingXP:   remaining,
		HourlyReviews: e.state.Ledger.ReviewsThisHour(now),
		HourlyCap:     HourlyReviewCap,
		StreakDays:    e.state.StreakDays,
		CardsToday:    e.state.CardsStudiedToday,
		DailyGoal:     e.state.DailyGoal,
	}
}
