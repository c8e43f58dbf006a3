// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/example/studydeck/internal/output"
)

func newHistoryCmd(deps *Deps) *cobra.Command {
	var out output.Options
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			recs, err := deps.Sessions.ListReviews(cmd.Context(), deps.Config.User, limit)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Println("No reviews recorded yet.")
				return nil
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(recs)
			}

			table := output.NewTable("When", "Item", "Result", "XP", "Level")
			for _, r := range recs {
				result := "correct"
				switch {
				case r.Forgotten:
					result = "forgotten"
				case !r.Correct:
					result = "incorrect"
				}
				table.AddRow(
					humanize.Time(r.ReviewedAt),
					r.ItemID,
					result,
					fmt.Sprintf("%d", r.XPEarned),
					fmt.Sprintf("%d", r.Level),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of reviews to show")
	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}
