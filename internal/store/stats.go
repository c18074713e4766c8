// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"seatrade/internal/models"
)

// StatsStore manages the single-row dashboard counter cache. All writes
// are single statements so concurrent handlers cannot lose updates, and
// Recalculate can always rebuild the row from the source tables.
type StatsStore struct {
	db *sql.DB
}

// NewStatsStore returns a new StatsStore.
func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

const statsColumns = `products, categories, subcategories, contacts, enquiries, updated_at`

func scanStats(scanner interface{ Scan(...any) error }) (*models.DashboardStats, error) {
	var st models.DashboardStats
	err := scanner.Scan(
		&st.Products, &st.Categories, &st.Subcategories,
		&st.Contacts, &st.Enquiries, &st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Get returns the current dashboard stats. A missing row (fresh database
// before seeding) comes back as all zeros rather than an error.
func (s *StatsStore) Get() (*models.DashboardStats, error) {
	row := s.db.QueryRow(`SELECT ` + statsColumns + ` FROM dashboard_stats WHERE id = 1`)
	st, err := scanStats(row)
	if err == sql.ErrNoRows {
		return &models.DashboardStats{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get dashboard stats: %w", err)
	}
	return st, nil
}

// Increment bumps one counter by one. The upsert creates the row if the
// seed never ran.
func (s *StatsStore) Increment(counter models.StatsCounter) error {
	if !counter.Valid() {
		return fmt.Errorf("increment stats: unknown counter %q", counter)
	}
	query := fmt.Sprintf(`
		INSERT INTO dashboard_stats (id, %[1]s) VALUES (1, 1)
		ON CONFLICT (id) DO UPDATE SET
			%[1]s = dashboard_stats.%[1]s + 1,
			updated_at = NOW()
	`, counter)
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("increment stats %s: %w", counter, err)
	}
	return nil
}

// Decrement lowers one counter by one, clamped at zero so a drifted cache
// can never go negative.
func (s *StatsStore) Decrement(counter models.StatsCounter) error {
	if !counter.Valid() {
		return fmt.Errorf("decrement stats: unknown counter %q", counter)
	}
	query := fmt.Sprintf(`
		UPDATE dashboard_stats SET
			%[1]s = GREATEST(%[1]s - 1, 0),
			updated_at = NOW()
		WHERE id = 1
	`, counter)
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("decrement stats %s: %w", counter, err)
	}
	return nil
}

// Recalculate rebuilds every counter from the source tables in one
// statement. This is the repair path for any drift the incremental
// updates accumulate.
func (s *StatsStore) Recalculate() (*models.DashboardStats, error) {
	row := s.db.QueryRow(`
		INSERT INTO dashboard_stats (id, products, categories, subcategories, contacts, enquiries, updated_at)
		SELECT 1,
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM subcategories),
			(SELECT COUNT(*) FROM contacts),
			(SELECT COUNT(*) FROM enquiries),
			NOW()
		ON CONFLICT (id) DO UPDATE SET
			products = EXCLUDED.products,
			categories = EXCLUDED.categories,
			subcategories = EXCLUDED.subcategories,
			contacts = EXCLUDED.contacts,
			enquiries = EXCLUDED.enquiries,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + statsColumns)
	st, err := scanStats(row)
	if err != nil {
		return nil, fmt.Errorf("recalculate dashboard stats: %w", err)
	}
	return st, nil
}
