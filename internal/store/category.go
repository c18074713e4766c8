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

// CategoryStore manages top-level navigation categories.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, href, is_category, visible, sort_order, image, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Href, &c.IsCategory, &c.Visible,
		&c.SortOrder, &c.Image, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns every category, visible or not, ordered for the admin
// navbar editor.
func (s *CategoryStore) List() ([]models.Category, error) {
	return s.list(`SELECT ` + categoryColumns + ` FROM categories ORDER BY sort_order, name`)
}

// ListVisible returns visible categories in ascending sort order. This is
// the feed for the public navigation menu.
func (s *CategoryStore) ListVisible() ([]models.Category, error) {
	return s.list(`SELECT ` + categoryColumns + ` FROM categories WHERE visible = TRUE ORDER BY sort_order, name`)
}

func (s *CategoryStore) list(query string, args ...any) ([]models.Category, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindByHref resolves a site-relative path back to its owning category.
// Returns nil if not found.
func (s *CategoryStore) FindByHref(href string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE href = $1`, href)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by href: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it. When SortOrder is zero the
// category is appended after the current last one.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	order := c.SortOrder
	if order == 0 {
		next, err := s.NextSortOrder()
		if err != nil {
			return nil, fmt.Errorf("create category: %w", err)
		}
		order = next
	}

	row := s.db.QueryRow(`
		INSERT INTO categories (name, href, is_category, visible, sort_order, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+categoryColumns,
		c.Name, c.Href, c.IsCategory, c.Visible, order, c.Image,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies an existing category and returns the updated row, or nil
// when no row matched the id.
func (s *CategoryStore) Update(c *models.Category) (*models.Category, error) {
	row := s.db.QueryRow(`
		UPDATE categories SET
			name = $1, href = $2, is_category = $3, visible = $4,
			sort_order = $5, image = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING `+categoryColumns,
		c.Name, c.Href, c.IsCategory, c.Visible, c.SortOrder, c.Image, c.ID,
	)
	result, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return result, nil
}

// SetVisible toggles a category's visibility without touching other fields.
func (s *CategoryStore) SetVisible(id uuid.UUID, visible bool) error {
	_, err := s.db.Exec(`
		UPDATE categories SET visible = $1, updated_at = NOW() WHERE id = $2
	`, visible, id)
	if err != nil {
		return fmt.Errorf("set category visibility: %w", err)
	}
	return nil
}

// Delete removes a category and its subcategories in one transaction.
// The foreign key also cascades, but the explicit delete keeps the policy
// in application code rather than buried in the schema.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete category: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM subcategories WHERE category_id = $1`, id); err != nil {
		return fmt.Errorf("delete category subcategories: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	return tx.Commit()
}

// NextSortOrder returns max(sort_order)+1 across all categories, so a new
// category lands at the end of the menu.
func (s *CategoryStore) NextSortOrder() (int, error) {
	var maxOrder sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(sort_order) FROM categories`).Scan(&maxOrder); err != nil {
		return 0, fmt.Errorf("next category sort order: %w", err)
	}
	if maxOrder.Valid {
		return int(maxOrder.Int64) + 1, nil
	}
	return 1, nil
}

// Count returns the number of categories.
func (s *CategoryStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return count, nil
}
