// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/studydeck/internal/engine"
	"github.com/example/studydeck/internal/store"
)

func newForgotCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forgot <item-id>",
		Short: "Mark an item as forgotten",
		Long: `Reset an item back to the start of the schedule.

Forgetting drops the item to level 0 and neutral difficulty, so it comes
up again immediately. It counts as a review attempt but earns no XP, and
it is never rate limited.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, err := loadEngine(ctx, deps)
			if err != nil {
				return err
			}

			itemID := args[0]
			if _, err := eng.Apply(engine.MarkForgotten{ItemID: itemID}); err != nil {
				return err
			}
			saveEngine(ctx, deps, eng)

			rec := store.ReviewRecord{
				User:       deps.Config.User,
				ItemID:     itemID,
				Forgotten:  true,
				ReviewedAt: time.Now(),
			}
			if err := deps.Sessions.AppendReview(ctx, rec); err != nil {
				deps.Logger.Warn("review log append failed", zap.Error(err))
			}

			fmt.Printf("Marked %s as forgotten; it is due again now.\n", itemID)
			return nil
		},
	}

	return cmd
}
