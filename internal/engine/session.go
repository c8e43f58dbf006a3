// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package engine

import "time"

// Cursor is the navigation position over the content: group index, then
// item index within the group.
type Cursor struct {
	Group int `json:"group"`
	Item  int `json:"item"`
}

// SessionState is the canonical engine state: one immutable snapshot per
// accepted transition. The Engine is its sole owner and mutator; everything
// else in this package is a pure function over it or its parts.
type SessionState struct {
	Cursor            Cursor                  `json:"cursor"`
	StreakDays        int                     `json:"streak_days"`
	LastStudyDate     *time.Time              `json:"last_study_date,omitempty"`
	CardsStudiedToday int                     `json:"cards_studied_today"`
	DailyGoal         int                     `json:"daily_goal"`
	XPTotal           int                     `json:"xp_total"`
	Progress          map[string]ItemProgress `json:"progress"`
	Ledger            Ledger                  `json:"ledger"`
	LastRejection     string                  `json:"last_rejection,omitempty"`
}

// NewSessionState returns a fresh state with the given daily goal.
func NewSessionState(dailyGoal int) SessionState {
	return SessionState{
		DailyGoal: dailyGoal,
		Progress:  make(map[string]ItemProgress),
		Ledger:    NewLedger(),
	}
}

// clone returns a deep copy of the state. Transitions build the next
// snapshot on a clone and swap it in whole, so no partial update is ever
// observable.
func (s SessionState) clone() SessionState {
	out := s
	if s.LastStudyDate != nil {
		v := *s.LastStudyDate
		out.LastStudyDate = &v
	}
	out.Progress = make(map[string]ItemProgress, len(s.Progress))
	for id, p := range s.Progress {
		out.Progress[id] = p.clone()
	}
	out.Ledger = s.Ledger.clone()
	return out
}

// advanceCursor moves the cursor to the next item, wrapping to the next
// group and clamping at the end of content.
func (s *SessionState) advanceCursor(groups []Group) {
	g := s.Cursor.Group
	if g >= len(groups) {
		return
	}
	if s.Cursor.Item+1 < len(groups[g].Items) {
		s.Cursor.Item++
		return
	}
	if g+1 < len(groups) {
		s.Cursor.Group = g + 1
		s.Cursor.Item = 0
	}
	// Already on the last item of the last group: stay put.
}

// retreatCursor moves the cursor to the previous item, wrapping to the end
// of the previous group and clamping at the start of content.
func (s *SessionState) retreatCursor(groups []Group) {
	if s.Cursor.Item > 0 {
		s.Cursor.Item--
		return
	}
	if s.Cursor.Group > 0 {
		s.Cursor.Group--
		if n := len(groups[s.Cursor.Group].Items); n > 0 {
			s.Cursor.Item = n - 1
		} else {
			s.Cursor.Item = 0
		}
	}
}

// clampCursor pulls an out-of-range cursor (stale snapshot, shrunk content)
// back inside the content bounds.
func (s *SessionState) clampCursor(groups []Group) {
	if len(groups) == 0 {
		s.Cursor = Cursor{}
		return
	}
	if s.Cursor.Group >= len(groups) {
		s.Cursor.Group = len(groups) - 1
	}
	if s.Cursor.Group < 0 {
		s.Cursor.Group = 0
	}
	if n := len(groups[s.Cursor.Group].Items); s.Cursor.Item >= n {
		if n == 0 {
			s.Cursor.Item = 0
		} else {
			s.Cursor.Item = n - 1
		}
	}
	if s.Cursor.Item < 0 {
		s.Cursor.Item = 0
	}
}
