// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/studydeck/internal/content"
	"github.com/example/studydeck/internal/engine"
	"github.com/example/studydeck/internal/store"
)

// loadEngine builds an engine from the configured deck and, if present, the
// user's persisted snapshot.
func loadEngine(ctx context.Context, deps *Deps) (*engine.Engine, error) {
	if deps.Config.Deck == "" {
		return nil, fmt.Errorf("no deck configured: set deck in ~/.studydeck.yaml or STUDYDECK_DECK")
	}

	groups, err := content.Load(ctx, deps.Config.Deck)
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}
	if len(deps.Tags) > 0 {
		groups = content.FilterByTags(groups, deps.Tags)
		if len(groups) == 0 {
			return nil, fmt.Errorf("no items match tags %v", deps.Tags)
		}
	}

	snapshot, err := deps.Sessions.Load(ctx, deps.Config.User)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load session: %w", err)
	}

	eng, err := engine.New(engine.Config{
		Groups:    groups,
		DailyGoal: deps.Config.DailyGoal,
		Snapshot:  snapshot,
	})
	if err != nil {
		return nil, fmt.Errorf("init engine: %w", err)
	}
	return eng, nil
}

// saveEngine persists the current snapshot. Failures are logged and
// swallowed: a failed save never invalidates the in-memory transition.
func saveEngine(ctx context.Context, deps *Deps, eng *engine.Engine) {
	if err := deps.Sessions.Save(ctx, deps.Config.User, eng.State()); err != nil {
		deps.Logger.Warn("session save failed",
			zap.String("user", deps.Config.User),
			zap.Error(err))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
