// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/studydeck/internal/content"
)

func newWatchCmd(deps *Deps) *cobra.Command {
	var debounceMs int

	cmd := &cobra.Command{
		Use:   "watch [deck-file]",
		Short: "Watch the deck file and revalidate on edits",
		Long: `Monitor a deck file for changes and reload it on every save.

Each reload re-parses the deck and reports its item count, so editing
mistakes (missing columns, empty rows) surface immediately instead of
on your next review.

Examples:
  studydeck watch                 # Watch the configured deck
  studydeck watch ./my-deck.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := deps.Config.Deck
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no deck configured and no file given")
			}
			if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
				return fmt.Errorf("watch needs a local file, not a URL")
			}
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("cannot access %s: %w", path, err)
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer watcher.Close()

			// Watch the parent directory: editors that save via rename
			// replace the inode, and a direct file watch goes stale.
			dir := filepath.Dir(path)
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}

			reload := func() {
				groups, err := content.Load(cmd.Context(), path)
				if err != nil {
					deps.Logger.Error("deck reload failed", zap.String("path", path), zap.Error(err))
					return
				}
				items := 0
				for _, g := range groups {
					items += len(g.Items)
				}
				fmt.Printf("Reloaded %s: %d item(s) in %d group(s)\n", path, items, len(groups))
			}
			reload()

			fmt.Printf("Watching %s (Ctrl+C to stop)\n", path)

			var pendingMu sync.Mutex
			var pending *time.Timer

			abs, _ := filepath.Abs(path)
			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					evAbs, _ := filepath.Abs(event.Name)
					if evAbs != abs {
						continue
					}
					if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
						continue
					}

					pendingMu.Lock()
					if pending != nil {
						pending.Stop()
					}
					pending = time.AfterFunc(time.Duration(debounceMs)*time.Millisecond, reload)
					pendingMu.Unlock()

				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					deps.Logger.Warn("watcher error", zap.Error(err))
				}
			}
		},
	}

	cmd.Flags().IntVar(&debounceMs, "debounce", 500, "Debounce milliseconds for file events")
	return cmd
}
