// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/studydeck/internal/output"
)

func newStatsCmd(deps *Deps) *cobra.Command {
	var out output.Options

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show XP, streak, and accuracy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			eng, err := loadEngine(cmd.Context(), deps)
			if err != nil {
				return err
			}

			stats := eng.XPStats()
			if out.Is(output.OutputJSON) {
				return output.JSON(stats)
			}

			state := eng.State()
			total, correct := 0, 0
			for _, p := range state.Progress {
				total += p.TotalReviews
				correct += p.CorrectReviews
			}
			accuracy := 0.0
			if total > 0 {
				accuracy = float64(correct) / float64(total) * 100
			}

			fmt.Printf("Total XP:        %d\n", stats.TotalXP)
			fmt.Printf("XP today:        %d (%d before the daily cap)\n", stats.DailyXP, stats.RemainingXP)
			fmt.Printf("Streak:          %d day(s)\n", stats.StreakDays)
			fmt.Printf("Cards today:     %d / %d goal\n", stats.CardsToday, stats.DailyGoal)
			fmt.Printf("Reviews/hour:    %d / %d\n", stats.HourlyReviews, stats.HourlyCap)
			fmt.Printf("Accuracy:        %.1f%% (%d of %d reviews)\n", accuracy, correct, total)
			fmt.Printf("Items due:       %d\n", len(eng.Due()))
			if state.LastRejection != "" {
				fmt.Printf("Last rejection:  %s\n", state.LastRejection)
			}
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}
