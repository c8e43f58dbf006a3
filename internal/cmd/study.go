// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/example/studydeck/internal/engine"
	"github.com/example/studydeck/internal/output"
)

func newStudyCmd(deps *Deps) *cobra.Command {
	var out output.Options
	var next, prev bool

	cmd := &cobra.Command{
		Use:   "study",
		Short: "Show the current card",
		Long: `Show the card under the study cursor.

Pass --next or --prev to move the cursor first. Moving past the end of a
group wraps to the next group; the cursor stops at the last card of the
last group.

Examples:
  studydeck study          # Show the current card
  studydeck study --next   # Move forward, then show
  studydeck study --prev   # Move backward, then show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}
			if next && prev {
				return fmt.Errorf("--next and --prev are mutually exclusive")
			}
			ctx := cmd.Context()

			eng, err := loadEngine(ctx, deps)
			if err != nil {
				return err
			}

			if next {
				if _, err := eng.Apply(engine.Navigate{Direction: engine.Next}); err != nil {
					return err
				}
				saveEngine(ctx, deps, eng)
			}
			if prev {
				if _, err := eng.Apply(engine.Navigate{Direction: engine.Previous}); err != nil {
					return err
				}
				saveEngine(ctx, deps, eng)
			}

			it, ok := eng.Current()
			if !ok {
				return fmt.Errorf("no current item")
			}
			p := eng.Progress(it.ID)

			if out.Is(output.OutputJSON) {
				return output.JSON(map[string]any{
					"item":     it,
					"progress": p,
				})
			}

			fmt.Printf("[%s] %s\n", it.Tag, it.Title)
			fmt.Println()
			fmt.Println(it.Content)
			fmt.Println()
			fmt.Printf("id %s | level %d | difficulty %.2f", it.ID, p.Level, p.Difficulty)
			if p.NextReview == nil {
				fmt.Printf(" | never reviewed\n")
			} else {
				fmt.Printf(" | next review %s\n", humanize.Time(*p.NextReview))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&next, "next", false, "Move to the next card first")
	cmd.Flags().BoolVar(&prev, "prev", false, "Move to the previous card first")
	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}
