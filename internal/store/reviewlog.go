// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReviewRecord is one accepted review, kept for history and stats. The
// engine's ledger is authoritative for rate limiting; this log is purely
// informational.
type ReviewRecord struct {
	ID         string    `json:"id"`
	User       string    `json:"user"`
	ItemID     string    `json:"item_id"`
	Correct    bool      `json:"correct"`
	Forgotten  bool      `json:"forgotten,omitempty"`
	XPEarned   int       `json:"xp_earned"`
	Level      int       `json:"level"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

func reviewKey(id string) string        { return fmt.Sprintf("studydeck:review:%s", id) }
func reviewIndexKey(user string) string { return fmt.Sprintf("studydeck:reviews:%s", user) }

// AppendReview stores the record (assigning an id if empty) and adds it to
// the user's index.
func (s *SessionStore) AppendReview(ctx context.Context, rec ReviewRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal review: %w", err)
	}
	if err := s.kv.Set(ctx, reviewKey(rec.ID), data); err != nil {
		return fmt.Errorf("store review: %w", err)
	}

	ids, err := s.reviewIndex(ctx, rec.User)
	if err != nil {
		return err
	}
	ids = append(ids, rec.ID)
	idxData, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal review index: %w", err)
	}
	if err := s.kv.Set(ctx, reviewIndexKey(rec.User), idxData); err != nil {
		return fmt.Errorf("store review index: %w", err)
	}
	return nil
}

// ListReviews returns the user's reviews, oldest first. A limit > 0 keeps
// only the most recent entries.
func (s *SessionStore) ListReviews(ctx context.Context, user string, limit int) ([]*ReviewRecord, error) {
	ids, err := s.reviewIndex(ctx, user)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[len(ids)-limit:]
	}

	var out []*ReviewRecord
	for _, id := range ids {
		data, err := s.kv.Get(ctx, reviewKey(id))
		if err != nil {
			continue // index entries can outlive records; skip holes
		}
		var rec ReviewRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		out = append(out, &rec)
	}
	return out, nil
}

func (s *SessionStore) reviewIndex(ctx context.Context, user string) ([]string, error) {
	data, err := s.kv.Get(ctx, reviewIndexKey(user))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, nil // corrupt index rebuilds from scratch
	}
	return ids, nil
}
