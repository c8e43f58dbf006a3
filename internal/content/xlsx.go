// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package content

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/studydeck/internal/engine"
)

// LoadXLSX parses the first sheet of an XLSX workbook as a deck. The first
// row is the header and uses the same column names as CSV decks.
func LoadXLSX(path string) ([]engine.Group, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	cols := make(map[string]int)
	for i, name := range records[0] {
		key := strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := csvColumns[key]; ok {
			cols[canonical] = i
		}
	}
	if _, ok := cols["title"]; !ok {
		return nil, fmt.Errorf("sheet %s has no title column", sheets[0])
	}
	if _, ok := cols["content"]; !ok {
		return nil, fmt.Errorf("sheet %s has no content column", sheets[0])
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []row
	for _, record := range records[1:] {
		rows = append(rows, row{
			ID:         field(record, "id"),
			Title:      field(record, "title"),
			Content:    field(record, "content"),
			Tag:        field(record, "tag"),
			ImageURL:   field(record, "image_url"),
			Difficulty: field(record, "difficulty"),
		})
	}
	return groupRows(rows), nil
}
