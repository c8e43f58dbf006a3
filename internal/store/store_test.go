// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/studydeck/internal/engine"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()

	if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing key: got %v, want ErrNotFound", err)
	}

	if err := kv.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := kv.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}

	// Returned slice is a copy.
	got[0] = 'x'
	again, _ := kv.Get(ctx, "k")
	if string(again) != "v" {
		t.Error("Get must return a copy")
	}

	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := kv.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete: got %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/test.db"

	kv, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	defer kv.Close()

	if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing key: got %v, want ErrNotFound", err)
	}

	if err := kv.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	// Upsert overwrites.
	if err := kv.Set(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("Set again: %v", err)
	}
	got, err := kv.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v2" {
		t.Errorf("Get = %q, want %q", got, "v2")
	}
}

func TestSessionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionStore(NewMemoryStore())

	if _, err := sessions.Load(ctx, "alex"); !errors.Is(err, ErrNotFound) {
		t.Errorf("fresh user: got %v, want ErrNotFound", err)
	}

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	state := engine.NewSessionState(20)
	state.XPTotal = 130
	state.StreakDays = 4
	state.LastStudyDate = &now
	state.Ledger.Record("42", now, 13)
	next := now.Add(72 * time.Hour)
	state.Progress["42"] = engine.ItemProgress{
		Level:              1,
		Difficulty:         1.1,
		ConsecutiveCorrect: 1,
		TotalReviews:       1,
		CorrectReviews:     1,
		LastReview:         &now,
		NextReview:         &next,
	}

	if err := sessions.Save(ctx, "alex", state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := sessions.Load(ctx, "alex")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.XPTotal != 130 || loaded.StreakDays != 4 {
		t.Errorf("loaded totals = %d/%d, want 130/4", loaded.XPTotal, loaded.StreakDays)
	}
	p := loaded.Progress["42"]
	if p.Level != 1 || p.Difficulty != 1.1 || p.TotalReviews != 1 {
		t.Errorf("loaded progress = %+v", p)
	}
	if p.NextReview == nil || !p.NextReview.Equal(next) {
		t.Errorf("NextReview = %v, want %v", p.NextReview, next)
	}

	// The bucketed ledger maps survive the JSON round trip.
	if got := loaded.Ledger.XPToday(now); got != 13 {
		t.Errorf("ledger daily XP = %d, want 13", got)
	}
	if got := loaded.Ledger.ReviewsThisHour(now); got != 1 {
		t.Errorf("ledger hourly count = %d, want 1", got)
	}
}
