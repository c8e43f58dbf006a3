// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/studydeck/internal/engine"
)

func newResetCmd(deps *Deps) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset all progress",
		Long: `Discard every progress record, the XP total, the streak, and the
rate-limit ledger. The daily goal is kept. This cannot be undone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Print("Reset all progress? This cannot be undone. [y/N] ")
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if strings.ToLower(strings.TrimSpace(answer)) != "y" {
					fmt.Println("Aborted.")
					return nil
				}
			}
			ctx := cmd.Context()

			eng, err := loadEngine(ctx, deps)
			if err != nil {
				return err
			}
			if _, err := eng.Apply(engine.ResetAll{}); err != nil {
				return err
			}
			saveEngine(ctx, deps, eng)

			fmt.Println("Progress reset.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")
	return cmd
}
