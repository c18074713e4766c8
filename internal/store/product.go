// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"seatrade/internal/models"
	"seatrade/internal/rowmap"
)

// ProductStore manages catalog products in the database.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore returns a new ProductStore.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, name, slug, short_description, long_description, card_image,
	detail_images, short_features, specifications, reviews, catalog_file,
	category_id, subcategory_id, is_active, view_count, created_at, updated_at`

// scanProduct scans a row into a Product struct.
func scanProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := scanner.Scan(
		&p.ID, &p.Name, &p.Slug, &p.ShortDescription, &p.LongDescription,
		&p.CardImage, &p.DetailImages, &p.ShortFeatures, &p.Specifications,
		&p.Reviews, &p.CatalogFile, &p.CategoryID, &p.SubcategoryID,
		&p.IsActive, &p.ViewCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ProductFilter narrows List queries. Nil pointer fields are not applied.
type ProductFilter struct {
	CategoryID    *uuid.UUID
	SubcategoryID *uuid.UUID
	ActiveOnly    bool
	Search        string
	Limit         int
	Offset        int
}

// List returns products matching the filter, newest first.
func (s *ProductStore) List(f ProductFilter) ([]models.Product, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ActiveOnly {
		conds = append(conds, "is_active = TRUE")
	}
	if f.CategoryID != nil {
		conds = append(conds, "category_id = "+arg(*f.CategoryID))
	}
	if f.SubcategoryID != nil {
		conds = append(conds, "subcategory_id = "+arg(*f.SubcategoryID))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		conds = append(conds, "(name ILIKE "+p+" OR short_description ILIKE "+p+" OR long_description ILIKE "+p+")")
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit)
	}
	if f.Offset > 0 {
		query += " OFFSET " + arg(f.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var items []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// ListActive returns all active products, newest first.
func (s *ProductStore) ListActive() ([]models.Product, error) {
	return s.List(ProductFilter{ActiveOnly: true})
}

// ListByCategory returns active products in a category.
func (s *ProductStore) ListByCategory(categoryID uuid.UUID) ([]models.Product, error) {
	return s.List(ProductFilter{ActiveOnly: true, CategoryID: &categoryID})
}

// ListBySubcategory returns active products in a subcategory.
func (s *ProductStore) ListBySubcategory(subcategoryID uuid.UUID) ([]models.Product, error) {
	return s.List(ProductFilter{ActiveOnly: true, SubcategoryID: &subcategoryID})
}

// Search returns active products whose name or short description matches
// the query, case-insensitively.
func (s *ProductStore) Search(query string, limit int) ([]models.Product, error) {
	return s.List(ProductFilter{ActiveOnly: true, Search: query, Limit: limit})
}

// Featured returns the most viewed active products.
func (s *ProductStore) Featured(limit int) ([]models.Product, error) {
	return s.ordered("view_count DESC, created_at DESC", limit)
}

// Latest returns the most recently added active products.
func (s *ProductStore) Latest(limit int) ([]models.Product, error) {
	return s.ordered("created_at DESC", limit)
}

func (s *ProductStore) ordered(order string, limit int) ([]models.Product, error) {
	rows, err := s.db.Query(`
		SELECT `+productColumns+` FROM products
		WHERE is_active = TRUE
		ORDER BY `+order+`
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var items []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a product by ID regardless of active state.
// Returns nil if not found.
func (s *ProductStore) FindByID(id uuid.UUID) (*models.Product, error) {
	row := s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a product by slug regardless of active state.
// Returns nil if not found.
func (s *ProductStore) FindBySlug(slug string) (*models.Product, error) {
	row := s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by slug: %w", err)
	}
	return p, nil
}

// FindByIDOrSlug resolves a public URL segment to a product. Slug is
// tried first; the id lookup only runs when the segment parses as a UUID,
// so arbitrary strings never reach the id query.
func (s *ProductStore) FindByIDOrSlug(idOrSlug string) (*models.Product, error) {
	p, err := s.FindBySlug(idOrSlug)
	if err != nil || p != nil {
		return p, err
	}
	if !rowmap.IsValidUUID(idOrSlug) {
		return nil, nil
	}
	id, err := uuid.Parse(idOrSlug)
	if err != nil {
		return nil, nil
	}
	return s.FindByID(id)
}

// Create inserts a new product and returns it.
func (s *ProductStore) Create(p *models.Product) (*models.Product, error) {
	row := s.db.QueryRow(`
		INSERT INTO products (
			name, slug, short_description, long_description, card_image,
			detail_images, short_features, specifications, reviews,
			catalog_file, category_id, subcategory_id, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+productColumns,
		p.Name, p.Slug, p.ShortDescription, p.LongDescription, p.CardImage,
		p.DetailImages, p.ShortFeatures, p.Specifications, p.Reviews,
		p.CatalogFile, p.CategoryID, p.SubcategoryID, p.IsActive,
	)
	result, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return result, nil
}

// Update modifies a product and returns the updated row, or nil when no
// row matched the id. ViewCount is deliberately not part of the update;
// it only moves through IncrementViewCount.
func (s *ProductStore) Update(p *models.Product) (*models.Product, error) {
	row := s.db.QueryRow(`
		UPDATE products SET
			name = $1, slug = $2, short_description = $3, long_description = $4,
			card_image = $5, detail_images = $6, short_features = $7,
			specifications = $8, reviews = $9, catalog_file = $10,
			category_id = $11, subcategory_id = $12, is_active = $13,
			updated_at = NOW()
		WHERE id = $14
		RETURNING `+productColumns,
		p.Name, p.Slug, p.ShortDescription, p.LongDescription, p.CardImage,
		p.DetailImages, p.ShortFeatures, p.Specifications, p.Reviews,
		p.CatalogFile, p.CategoryID, p.SubcategoryID, p.IsActive, p.ID,
	)
	result, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return result, nil
}

// SetActive toggles a product's active flag without touching other fields.
func (s *ProductStore) SetActive(id uuid.UUID, active bool) error {
	_, err := s.db.Exec(`
		UPDATE products SET is_active = $1, updated_at = NOW() WHERE id = $2
	`, active, id)
	if err != nil {
		return fmt.Errorf("set product active: %w", err)
	}
	return nil
}

// IncrementViewCount bumps a product's view counter in a single statement,
// so concurrent page views never lose updates.
func (s *ProductStore) IncrementViewCount(id uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE products SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment product view count: %w", err)
	}
	return nil
}

// Delete removes a product by ID. Deleting an id that does not exist is
// not an error.
func (s *ProductStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// Count returns the number of products.
func (s *ProductStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}
