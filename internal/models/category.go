// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a top-level navigation node. A category either owns
// subcategories (IsCategory true) or is a plain link node pointing straight
// at a page. JSON uses the camelCase shape the storefront consumes.
type Category struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Href       string    `json:"href"`
	IsCategory bool      `json:"isCategory"`
	Visible    bool      `json:"visible"`
	SortOrder  int       `json:"order"`
	Image      *string   `json:"image,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Subcategory is a second-level navigation node owned by exactly one
// category. SortOrder is scoped to its siblings within that category.
type Subcategory struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"categoryId"`
	Name       string    `json:"name"`
	Href       string    `json:"href"`
	Visible    bool      `json:"visible"`
	SortOrder  int       `json:"order"`
	Image      *string   `json:"image,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
