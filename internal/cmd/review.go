// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/studydeck/internal/engine"
	"github.com/example/studydeck/internal/output"
	"github.com/example/studydeck/internal/store"
)

func newReviewCmd(deps *Deps) *cobra.Command {
	var out output.Options
	var wrong bool

	cmd := &cobra.Command{
		Use:   "review [item-id]",
		Short: "Record a review for an item",
		Long: `Record a review for an item and earn XP.

With no item id, reviews the item under the study cursor. Pass --wrong
if you did not recall the answer; the item will come back sooner.

Examples:
  studydeck review            # Review the current card as correct
  studydeck review 12         # Review item 12 as correct
  studydeck review 12 --wrong # Review item 12 as incorrect`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}
			ctx := cmd.Context()

			eng, err := loadEngine(ctx, deps)
			if err != nil {
				return err
			}

			itemID := ""
			if len(args) > 0 {
				itemID = args[0]
			} else {
				cur, ok := eng.Current()
				if !ok {
					return fmt.Errorf("no current item; pass an item id")
				}
				itemID = cur.ID
			}

			res, err := eng.Apply(engine.SubmitReview{ItemID: itemID, Correct: !wrong})
			if err != nil {
				var rl *engine.RateLimitError
				if errors.As(err, &rl) {
					// The rejection itself is state (LastRejection), so
					// persist before reporting it.
					saveEngine(ctx, deps, eng)
					if rl.RetryAfter > 0 {
						return fmt.Errorf("review rejected: %s (retry in %s)", rl.Reason, rl.RetryAfter.Round(time.Second))
					}
					return fmt.Errorf("review rejected: %s", rl.Reason)
				}
				return err
			}

			saveEngine(ctx, deps, eng)

			rec := store.ReviewRecord{
				User:       deps.Config.User,
				ItemID:     res.ItemID,
				Correct:    res.Correct,
				XPEarned:   res.XPEarned,
				Level:      res.Level,
				ReviewedAt: time.Now(),
			}
			if err := deps.Sessions.AppendReview(ctx, rec); err != nil {
				deps.Logger.Warn("review log append failed", zap.Error(err))
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(res)
			}

			verdict := "correct"
			if !res.Correct {
				verdict = "incorrect"
			}
			fmt.Printf("Reviewed %s (%s): +%d XP, level %d, difficulty %.2f\n",
				res.ItemID, verdict, res.XPEarned, res.Level, res.Difficulty)
			fmt.Printf("Next review %s\n", humanize.Time(res.NextReview))
			if res.Milestone != engine.MilestoneNone {
				fmt.Printf("Milestone reached: %s\n", res.Milestone)
			}
			if eng.XPStats().RemainingXP == 0 {
				fmt.Println("Note: you have hit the advisory 1000 XP daily ceiling.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&wrong, "wrong", false, "Record the review as incorrect")
	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}
