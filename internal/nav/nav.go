// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package nav assembles the two-level navigation tree the storefront
// renders in its header menu.
package nav

import (
	"seatrade/internal/models"
)

// Item is one top-level menu entry with its nested subcategories.
type Item struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Href       string    `json:"href"`
	IsCategory bool      `json:"isCategory"`
	Visible    bool      `json:"visible"`
	Order      int       `json:"order"`
	Image      *string   `json:"image,omitempty"`
	Items      []SubItem `json:"items"`
}

// SubItem is a second-level menu entry.
type SubItem struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Href    string  `json:"href"`
	Visible bool    `json:"visible"`
	Order   int     `json:"order"`
	Image   *string `json:"image,omitempty"`
}

// Build nests subcategories under their categories. Input order is
// preserved, so callers pass lists already sorted by sort_order. Plain
// link nodes (IsCategory false) come out with an empty Items slice.
func Build(categories []models.Category, subcategories []models.Subcategory) []Item {
	byCategory := make(map[string][]SubItem, len(categories))
	for _, sc := range subcategories {
		key := sc.CategoryID.String()
		byCategory[key] = append(byCategory[key], SubItem{
			ID:      sc.ID.String(),
			Name:    sc.Name,
			Href:    sc.Href,
			Visible: sc.Visible,
			Order:   sc.SortOrder,
			Image:   sc.Image,
		})
	}

	items := make([]Item, 0, len(categories))
	for _, c := range categories {
		children := byCategory[c.ID.String()]
		if children == nil {
			children = []SubItem{}
		}
		items = append(items, Item{
			ID:         c.ID.String(),
			Name:       c.Name,
			Href:       c.Href,
			IsCategory: c.IsCategory,
			Visible:    c.Visible,
			Order:      c.SortOrder,
			Image:      c.Image,
			Items:      children,
		})
	}
	return items
}

// VisibleOnly prunes hidden categories and hidden subcategories from a
// tree. A hidden category hides its whole subtree regardless of the
// children's own flags.
func VisibleOnly(items []Item) []Item {
	result := make([]Item, 0, len(items))
	for _, it := range items {
		if !it.Visible {
			continue
		}
		kept := make([]SubItem, 0, len(it.Items))
		for _, sub := range it.Items {
			if sub.Visible {
				kept = append(kept, sub)
			}
		}
		it.Items = kept
		result = append(result, it)
	}
	return result
}
