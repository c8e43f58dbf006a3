// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package output provides the CLI's table and JSON rendering helpers.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// Format selects how command results render.
type Format string

const (
	OutputTable Format = "table"
	OutputJSON  Format = "json"
)

// Options carries the per-command output flag.
type Options struct {
	format string
	def    Format
}

// AddOutputFlags registers the --output flag with the given default.
func (o *Options) AddOutputFlags(cmd *cobra.Command, def Format) {
	o.def = def
	cmd.Flags().StringVarP(&o.format, "output", "o", string(def), "Output format: table or json")
}

// Resolve validates the chosen format.
func (o *Options) Resolve() error {
	if o.format == "" {
		o.format = string(o.def)
	}
	switch Format(o.format) {
	case OutputTable, OutputJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (choose table or json)", o.format)
	}
}

// Is reports whether the resolved format matches f.
func (o *Options) Is(f Format) bool {
	return Format(o.format) == f
}

// JSON writes v as indented JSON to stdout.
func JSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table renders aligned rows to stdout.
type Table struct {
	w       *tabwriter.Writer
	columns int
}

// NewTable creates a table with the given header.
func NewTable(headers ...string) *Table {
	t := &Table{
		w:       tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0),
		columns: len(headers),
	}
	t.AddRow(headers...)
	return t
}

// AddRow appends one row; extra cells are dropped, missing ones padded.
func (t *Table) AddRow(cells ...string) {
	if len(cells) > t.columns {
		cells = cells[:t.columns]
	}
	for len(cells) < t.columns {
		cells = append(cells, "")
	}
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(t.w, "\t")
		}
		fmt.Fprint(t.w, c)
	}
	fmt.Fprintln(t.w)
}

// Render flushes the table to stdout.
func (t *Table) Render() {
	t.w.Flush()
}
