// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package content

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/example/studydeck/internal/engine"
)

// header aliases accepted in the first row, lowercased. The imageUrl
// spelling is what sheet templates tend to use.
var csvColumns = map[string]string{
	"id":         "id",
	"title":      "title",
	"content":    "content",
	"tag":        "tag",
	"topic":      "tag",
	"imageurl":   "image_url",
	"image_url":  "image_url",
	"difficulty": "difficulty",
}

// ParseCSV reads a headered CSV deck. Required columns: title, content.
// Optional: id, tag (or topic), imageUrl, difficulty. Unknown columns are
// ignored.
func ParseCSV(r io.Reader) ([]row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // sheets pad rows unevenly
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int)
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := csvColumns[key]; ok {
			cols[canonical] = i
		}
	}
	if _, ok := cols["title"]; !ok {
		return nil, fmt.Errorf("deck has no title column (header: %v)", header)
	}
	if _, ok := cols["content"]; !ok {
		return nil, fmt.Errorf("deck has no content column (header: %v)", header)
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		rows = append(rows, row{
			ID:         field(record, "id"),
			Title:      field(record, "title"),
			Content:    field(record, "content"),
			Tag:        field(record, "tag"),
			ImageURL:   field(record, "image_url"),
			Difficulty: field(record, "difficulty"),
		})
	}
	return rows, nil
}

// LoadCSVFile parses a local CSV deck into groups.
func LoadCSVFile(path string) ([]engine.Group, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deck: %w", err)
	}
	defer f.Close()

	rows, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return groupRows(rows), nil
}

// FetchCSV downloads and parses a published-sheet CSV deck.
func FetchCSV(ctx context.Context, url string) ([]engine.Group, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "studydeck/1.0")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch deck: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch deck: %s returned %s", url, resp.Status)
	}

	rows, err := ParseCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return groupRows(rows), nil
}
