// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/example/studydeck/internal/output"
)

func newDueCmd(deps *Deps) *cobra.Command {
	var out output.Options
	var limit int

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List items due for review",
		Long: `List the items whose next review has arrived, most urgent first.

Items that have never been reviewed are due by definition and sort to
the top.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			eng, err := loadEngine(cmd.Context(), deps)
			if err != nil {
				return err
			}

			ids := eng.Due()
			if limit > 0 && len(ids) > limit {
				ids = ids[:limit]
			}

			if len(ids) == 0 {
				fmt.Println("Nothing due. Come back later.")
				return nil
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(ids)
			}

			table := output.NewTable("ID", "Title", "Tag", "Level", "Due")
			for _, id := range ids {
				it, ok := eng.Item(id)
				if !ok {
					continue
				}
				p := eng.Progress(id)
				due := "now"
				if p.NextReview != nil {
					due = humanize.Time(*p.NextReview)
				}
				table.AddRow(it.ID, truncate(it.Title, 40), it.Tag, fmt.Sprintf("%d", p.Level), due)
			}
			table.Render()

			fmt.Printf("\nTotal: %d item(s) due\n", len(ids))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit the number of items shown")
	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}
