// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package engine

// Item is an atomic learning unit. Items are owned by the content
// collaborator; the engine never mutates them.
type Item struct {
	ID         string `json:"id" yaml:"id"`
	GroupID    string `json:"group_id" yaml:"group_id"`
	Title      string `json:"title" yaml:"title"`
	Content    string `json:"content" yaml:"content"` // markdown body
	Tag        string `json:"tag,omitempty" yaml:"tag,omitempty"`
	ImageURL   string `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	Difficulty string `json:"difficulty,omitempty" yaml:"difficulty,omitempty"` // declared tag, informational
}

// Group is an ordered collection of items sharing a grouping key
// (a chapter, a spreadsheet tag, a deck section).
type Group struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Items []Item `json:"items" yaml:"items"`
}
