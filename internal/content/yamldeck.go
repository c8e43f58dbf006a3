// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/example/studydeck/internal/engine"
)

// yamlDeck is the hand-authored deck file format: explicit groups with
// explicit items, for decks maintained outside a spreadsheet.
type yamlDeck struct {
	Title  string `yaml:"title"`
	Groups []struct {
		ID    string `yaml:"id"`
		Title string `yaml:"title"`
		Items []struct {
			ID         string `yaml:"id"`
			Title      string `yaml:"title"`
			Content    string `yaml:"content"`
			ImageURL   string `yaml:"image_url"`
			Difficulty string `yaml:"difficulty"`
		} `yaml:"items"`
	} `yaml:"groups"`
}

// LoadYAMLDeck parses a YAML deck file into groups. Group and item ids
// default to slugs of their titles.
func LoadYAMLDeck(path string) ([]engine.Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}

	var deck yamlDeck
	if err := yaml.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var groups []engine.Group
	for _, g := range deck.Groups {
		gid := g.ID
		if gid == "" {
			gid = slug(g.Title)
		}
		group := engine.Group{ID: gid, Title: g.Title}
		for i, it := range g.Items {
			id := it.ID
			if id == "" {
				id = fmt.Sprintf("%s-%d", gid, i+1)
			}
			group.Items = append(group.Items, engine.Item{
				ID:         id,
				GroupID:    gid,
				Title:      it.Title,
				Content:    it.Content,
				Tag:        g.Title,
				ImageURL:   it.ImageURL,
				Difficulty: it.Difficulty,
			})
		}
		groups = append(groups, group)
	}
	return groups, nil
}
