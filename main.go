// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/example/studydeck/internal/cmd"
	"github.com/example/studydeck/internal/config"
	"github.com/example/studydeck/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "studydeck: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "studydeck: failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var kv store.KVStore

	switch cfg.Storage {
	case "sqlite":
		// If SQLite fails (missing dir, corrupted, permissions), fall back
		// to the in-memory store so the tool remains usable without
		// persistence.
		path := cfg.DBPath
		if path == "" {
			path = store.DefaultDBPath()
		}
		sqlite, err := store.OpenSQLiteStore(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: cannot open SQLite database: %v\n", err)
			fmt.Fprintln(os.Stderr, "         falling back to in-memory store (no persistence)")
			kv = store.NewMemoryStore()
			break
		}
		kv = sqlite

	case "memory":
		kv = store.NewMemoryStore()

	default:
		fmt.Fprintf(os.Stderr, "studydeck: unknown storage backend %q (choose sqlite or memory)\n", cfg.Storage)
		os.Exit(1)
	}
	defer kv.Close()

	deps := &cmd.Deps{
		Config:   cfg,
		Logger:   logger,
		Sessions: store.NewSessionStore(kv),
	}

	root := cmd.NewRootCmd(deps)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "prod" {
		return zap.NewProduction()
	}
	zcfg := zap.NewDevelopmentConfig()
	return zcfg.Build()
}
