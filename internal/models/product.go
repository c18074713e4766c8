// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StringList is a JSONB-backed ordered list of strings (image URLs,
// feature bullet points).
type StringList []string

// Value implements driver.Valuer for JSONB storage.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (l *StringList) Scan(src any) error {
	return scanJSON(src, l, "StringList")
}

// SpecMap is a JSONB-backed open-ended map of technical attributes
// (e.g. "Body Material" → "Bronze"). Keys are free-form and admin-defined.
type SpecMap map[string]string

// Value implements driver.Valuer for JSONB storage.
func (m SpecMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (m *SpecMap) Scan(src any) error {
	return scanJSON(src, m, "SpecMap")
}

// Review is a single customer review entry.
type Review struct {
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Date    string `json:"date"`
}

// ReviewsData is the aggregate review payload stored on a product:
// average rating, review count, and the individual entries.
type ReviewsData struct {
	Rating  float64  `json:"rating"`
	Count   int      `json:"count"`
	Entries []Review `json:"entries"`
}

// Value implements driver.Valuer for JSONB storage.
func (r ReviewsData) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (r *ReviewsData) Scan(src any) error {
	return scanJSON(src, r, "ReviewsData")
}

// scanJSON unmarshals a JSONB column value ([]byte or string) into dst.
func scanJSON(src, dst any, typeName string) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("scan %s: unsupported source type %T", typeName, src)
	}
}

// Product is a catalog item. Slug is the preferred public lookup key;
// the UUID id remains valid as a fallback. Inactive products stay
// retrievable by id/slug for the admin but are excluded from every public
// listing and search.
type Product struct {
	ID               uuid.UUID   `json:"id"`
	Name             string      `json:"name"`
	Slug             string      `json:"slug"`
	ShortDescription string      `json:"shortDescription"`
	LongDescription  string      `json:"longDescription"`
	CardImage        string      `json:"cardImage"`
	DetailImages     StringList  `json:"detailImages"`
	ShortFeatures    StringList  `json:"shortFeatures"`
	Specifications   SpecMap     `json:"specifications"`
	Reviews          ReviewsData `json:"reviewsData"`
	CatalogFile      *string     `json:"catalogFile,omitempty"`
	CategoryID       *uuid.UUID  `json:"categoryId,omitempty"`
	SubcategoryID    *uuid.UUID  `json:"subcategoryId,omitempty"`
	IsActive         bool        `json:"isActive"`
	ViewCount        int         `json:"viewCount"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}
