// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/studydeck/internal/config"
	"github.com/example/studydeck/internal/store"
)

// Deps carries what every command needs: resolved config, a logger, and
// the session store.
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Sessions *store.SessionStore

	// Tags is the active tag filter, set by the persistent --tag flag.
	// When non-empty, the engine runs over the matching slice of the deck.
	Tags []string
}

// NewRootCmd creates the root command for studydeck.
func NewRootCmd(deps *Deps) *cobra.Command {
	root := &cobra.Command{
		Use:   "studydeck",
		Short: "Spaced-repetition study tracker with an XP economy",
		Long: `Track your flashcard reviews with spaced repetition.

studydeck provides tools to:
- Review items and earn XP, with streaks and daily goals
- See which items are due and when the rest come back
- Load decks from CSV files, published sheets, or XLSX workbooks
- Watch a deck file for edits
- Browse your deck and stats in a local web view`,
	}

	root.PersistentFlags().StringSliceVar(&deps.Tags, "tag", nil, "Only study items with these tags")

	root.AddCommand(newReviewCmd(deps))
	root.AddCommand(newForgotCmd(deps))
	root.AddCommand(newDueCmd(deps))
	root.AddCommand(newStudyCmd(deps))
	root.AddCommand(newStatsCmd(deps))
	root.AddCommand(newHistoryCmd(deps))
	root.AddCommand(newDeckCmd(deps))
	root.AddCommand(newResetCmd(deps))
	root.AddCommand(newWatchCmd(deps))
	root.AddCommand(newServeCmd(deps))

	return root
}
