// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/studydeck/internal/content"
	"github.com/example/studydeck/internal/output"
)

func newDeckCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Inspect the configured deck",
	}

	cmd.AddCommand(newDeckItemsCmd(deps))
	cmd.AddCommand(newDeckTagsCmd(deps))
	return cmd
}

func newDeckItemsCmd(deps *Deps) *cobra.Command {
	var out output.Options
	var tags []string

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List deck items",
		Long: `List every item in the configured deck, grouped by tag.

Examples:
  studydeck deck items
  studydeck deck items --tag Grammar --tag Idioms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			groups, err := content.Load(cmd.Context(), deps.Config.Deck)
			if err != nil {
				return err
			}
			if len(tags) > 0 {
				groups = content.FilterByTags(groups, tags)
			}
			if len(groups) == 0 {
				fmt.Println("No items matched.")
				return nil
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(groups)
			}

			table := output.NewTable("ID", "Tag", "Title", "Content")
			count := 0
			for _, g := range groups {
				for _, it := range g.Items {
					table.AddRow(it.ID, it.Tag, truncate(it.Title, 35), truncate(it.Content, 45))
					count++
				}
			}
			table.Render()

			fmt.Printf("\nTotal: %d item(s) in %d group(s)\n", count, len(groups))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Only show items with these tags")
	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}

func newDeckTagsCmd(deps *Deps) *cobra.Command {
	var out output.Options

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List deck tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			groups, err := content.Load(cmd.Context(), deps.Config.Deck)
			if err != nil {
				return err
			}

			tags := content.Tags(groups)
			if out.Is(output.OutputJSON) {
				return output.JSON(tags)
			}
			fmt.Println(strings.Join(tags, "\n"))
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}
