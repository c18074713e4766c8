// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// DashboardStats is a cached projection of row counts across the source
// tables, kept so the admin dashboard doesn't count five tables on every
// load. It is not authoritative — Recalculate re-derives it at any time.
type DashboardStats struct {
	Products      int       `json:"products"`
	Categories    int       `json:"categories"`
	Subcategories int       `json:"subcategories"`
	Contacts      int       `json:"contacts"`
	Enquiries     int       `json:"enquiries"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// StatsCounter names one of the dashboard counters for increment/decrement
// operations.
type StatsCounter string

const (
	CounterProducts      StatsCounter = "products"
	CounterCategories    StatsCounter = "categories"
	CounterSubcategories StatsCounter = "subcategories"
	CounterContacts      StatsCounter = "contacts"
	CounterEnquiries     StatsCounter = "enquiries"
)

// Valid reports whether c names a known counter column.
func (c StatsCounter) Valid() bool {
	switch c {
	case CounterProducts, CounterCategories, CounterSubcategories, CounterContacts, CounterEnquiries:
		return true
	}
	return false
}
