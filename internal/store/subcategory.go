// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"seatrade/internal/models"
)

// SubcategoryStore manages second-level navigation nodes. Every
// subcategory belongs to exactly one category and orders among its
// siblings only.
type SubcategoryStore struct {
	db *sql.DB
}

// NewSubcategoryStore returns a new SubcategoryStore.
func NewSubcategoryStore(db *sql.DB) *SubcategoryStore {
	return &SubcategoryStore{db: db}
}

const subcategoryColumns = `id, category_id, name, href, visible, sort_order, image, created_at, updated_at`

func scanSubcategory(scanner interface{ Scan(...any) error }) (*models.Subcategory, error) {
	var sc models.Subcategory
	err := scanner.Scan(
		&sc.ID, &sc.CategoryID, &sc.Name, &sc.Href, &sc.Visible,
		&sc.SortOrder, &sc.Image, &sc.CreatedAt, &sc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

// List returns all subcategories grouped by category then sibling order.
func (s *SubcategoryStore) List() ([]models.Subcategory, error) {
	return s.list(`SELECT ` + subcategoryColumns + ` FROM subcategories ORDER BY category_id, sort_order, name`)
}

// ListByCategory returns a category's subcategories in sibling order,
// hidden ones included. The public nav filters visibility itself.
func (s *SubcategoryStore) ListByCategory(categoryID uuid.UUID) ([]models.Subcategory, error) {
	return s.list(`SELECT `+subcategoryColumns+` FROM subcategories WHERE category_id = $1 ORDER BY sort_order, name`, categoryID)
}

// ListVisibleByCategory returns only the visible subcategories of a category.
func (s *SubcategoryStore) ListVisibleByCategory(categoryID uuid.UUID) ([]models.Subcategory, error) {
	return s.list(`SELECT `+subcategoryColumns+` FROM subcategories WHERE category_id = $1 AND visible = TRUE ORDER BY sort_order, name`, categoryID)
}

func (s *SubcategoryStore) list(query string, args ...any) ([]models.Subcategory, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	var items []models.Subcategory
	for rows.Next() {
		sc, err := scanSubcategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		items = append(items, *sc)
	}
	return items, rows.Err()
}

// FindByID retrieves a subcategory by ID. Returns nil if not found.
func (s *SubcategoryStore) FindByID(id uuid.UUID) (*models.Subcategory, error) {
	row := s.db.QueryRow(`SELECT `+subcategoryColumns+` FROM subcategories WHERE id = $1`, id)
	sc, err := scanSubcategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find subcategory by id: %w", err)
	}
	return sc, nil
}

// Create inserts a subcategory. A zero SortOrder means "append after the
// last sibling in the same category".
func (s *SubcategoryStore) Create(sc *models.Subcategory) (*models.Subcategory, error) {
	order := sc.SortOrder
	if order == 0 {
		next, err := s.NextSortOrder(sc.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("create subcategory: %w", err)
		}
		order = next
	}

	row := s.db.QueryRow(`
		INSERT INTO subcategories (category_id, name, href, visible, sort_order, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+subcategoryColumns,
		sc.CategoryID, sc.Name, sc.Href, sc.Visible, order, sc.Image,
	)
	result, err := scanSubcategory(row)
	if err != nil {
		return nil, fmt.Errorf("create subcategory: %w", err)
	}
	return result, nil
}

// Update modifies a subcategory and returns the updated row, or nil when
// no row matched the id. Moving it to another category is allowed.
func (s *SubcategoryStore) Update(sc *models.Subcategory) (*models.Subcategory, error) {
	row := s.db.QueryRow(`
		UPDATE subcategories SET
			category_id = $1, name = $2, href = $3, visible = $4,
			sort_order = $5, image = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING `+subcategoryColumns,
		sc.CategoryID, sc.Name, sc.Href, sc.Visible, sc.SortOrder, sc.Image, sc.ID,
	)
	result, err := scanSubcategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update subcategory: %w", err)
	}
	return result, nil
}

// SetVisible toggles a subcategory's visibility.
func (s *SubcategoryStore) SetVisible(id uuid.UUID, visible bool) error {
	_, err := s.db.Exec(`
		UPDATE subcategories SET visible = $1, updated_at = NOW() WHERE id = $2
	`, visible, id)
	if err != nil {
		return fmt.Errorf("set subcategory visibility: %w", err)
	}
	return nil
}

// Delete removes a subcategory by ID.
func (s *SubcategoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	return nil
}

// NextSortOrder returns max(sort_order)+1 among a category's subcategories.
// Gaps in the existing sequence are preserved, not compacted.
func (s *SubcategoryStore) NextSortOrder(categoryID uuid.UUID) (int, error) {
	var maxOrder sql.NullInt64
	err := s.db.QueryRow(`SELECT MAX(sort_order) FROM subcategories WHERE category_id = $1`, categoryID).Scan(&maxOrder)
	if err != nil {
		return 0, fmt.Errorf("next subcategory sort order: %w", err)
	}
	if maxOrder.Valid {
		return int(maxOrder.Int64) + 1, nil
	}
	return 1, nil
}

// Count returns the number of subcategories.
func (s *SubcategoryStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM subcategories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count subcategories: %w", err)
	}
	return count, nil
}
