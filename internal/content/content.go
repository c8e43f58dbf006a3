// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package content loads study decks from tabular sources: local CSV files,
// published-sheet CSV URLs, XLSX workbooks, and YAML deck files. It produces
// the ordered groups the engine runs over and never touches engine state.
package content

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/example/studydeck/internal/engine"
)

// DefaultTag is assigned to rows with no tag column value.
const DefaultTag = "Untagged"

// Load reads a deck from a local path or an http(s) URL. Format is picked
// by extension for paths (.csv, .xlsx, .yaml/.yml); URLs are fetched as CSV,
// which is what published Google Sheets export.
func Load(ctx context.Context, source string) ([]engine.Group, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return FetchCSV(ctx, source)
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".csv":
		return LoadCSVFile(source)
	case ".xlsx":
		return LoadXLSX(source)
	case ".yaml", ".yml":
		return LoadYAMLDeck(source)
	default:
		return nil, fmt.Errorf("content: unsupported deck format %q", filepath.Ext(source))
	}
}

// row is one parsed tabular record before grouping.
type row struct {
	ID         string
	Title      string
	Content    string
	Tag        string
	ImageURL   string
	Difficulty string
}

// groupRows folds rows into groups keyed by tag, in order of first
// appearance. Rows missing a title or content are dropped, matching how the
// sheet-backed viewer treats half-filled spreadsheet lines. Rows without an
// explicit id get their 1-based sheet position, so ids stay stable as long
// as the sheet order does.
func groupRows(rows []row) []engine.Group {
	var groups []engine.Group
	index := make(map[string]int)

	n := 0
	for _, r := range rows {
		n++
		if r.Title == "" || r.Content == "" {
			continue
		}
		tag := r.Tag
		if tag == "" {
			tag = DefaultTag
		}
		id := r.ID
		if id == "" {
			id = fmt.Sprintf("%d", n)
		}

		gi, ok := index[tag]
		if !ok {
			gi = len(groups)
			index[tag] = gi
			groups = append(groups, engine.Group{ID: slug(tag), Title: tag})
		}

		groups[gi].Items = append(groups[gi].Items, engine.Item{
			ID:         id,
			GroupID:    groups[gi].ID,
			Title:      r.Title,
			Content:    r.Content,
			Tag:        tag,
			ImageURL:   r.ImageURL,
			Difficulty: r.Difficulty,
		})
	}

	return groups
}

// FilterByTags returns only the groups whose title matches one of the active
// tags. An empty filter returns the input unchanged.
func FilterByTags(groups []engine.Group, tags []string) []engine.Group {
	if len(tags) == 0 {
		return groups
	}
	active := make(map[string]bool, len(tags))
	for _, t := range tags {
		active[strings.ToLower(t)] = true
	}
	var out []engine.Group
	for _, g := range groups {
		if active[strings.ToLower(g.Title)] {
			out = append(out, g)
		}
	}
	return out
}

// Tags returns the distinct group titles, in deck order.
func Tags(groups []engine.Group) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Title)
	}
	return out
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
