// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"seatrade/internal/models"
)

func TestProductStoreCreate(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)

	slug := "test-bronze-gate-valve"
	t.Cleanup(func() { cleanProducts(t, db, slug) })

	p, err := s.Create(&models.Product{
		Name:             "Bronze Gate Valve DN50",
		Slug:             slug,
		ShortDescription: "Marine grade bronze gate valve.",
		CardImage:        "/media/valve-card.webp",
		ShortFeatures:    models.StringList{"Bronze body", "DN50"},
		Specifications:   models.SpecMap{"Body Material": "Bronze", "DN": "50"},
		IsActive:         true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if p.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if p.ViewCount != 0 {
		t.Errorf("view count: got %d, want 0", p.ViewCount)
	}
	if len(p.ShortFeatures) != 2 {
		t.Errorf("short features: got %v", p.ShortFeatures)
	}
	if p.Specifications["DN"] != "50" {
		t.Errorf("specifications: got %v", p.Specifications)
	}
	if len(p.DetailImages) != 0 {
		t.Errorf("detail images should default empty, got %v", p.DetailImages)
	}
}

func TestProductStoreFindByIDOrSlug(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)

	slug := "test-idorslug-anchor"
	t.Cleanup(func() { cleanProducts(t, db, slug) })

	created, err := s.Create(&models.Product{
		Name: "Stockless Anchor", Slug: slug,
		ShortDescription: "x", CardImage: "/media/a.webp", IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// By slug.
	p, err := s.FindByIDOrSlug(slug)
	if err != nil {
		t.Fatalf("FindByIDOrSlug (slug): %v", err)
	}
	if p == nil || p.ID != created.ID {
		t.Error("slug lookup failed")
	}

	// By id string.
	p, err = s.FindByIDOrSlug(created.ID.String())
	if err != nil {
		t.Fatalf("FindByIDOrSlug (id): %v", err)
	}
	if p == nil || p.ID != created.ID {
		t.Error("id lookup failed")
	}

	// A non-UUID non-slug string resolves to nil without error. The id
	// query never runs for it.
	p, err = s.FindByIDOrSlug("definitely-not-here")
	if err != nil {
		t.Fatalf("FindByIDOrSlug (miss): %v", err)
	}
	if p != nil {
		t.Error("expected nil for unknown segment")
	}
}

func TestProductStoreSlugWinsOverID(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)

	// A product whose slug happens to be a valid UUID string must be found
	// by slug, not shadowed by the id lookup.
	uuidSlug := "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	t.Cleanup(func() { cleanProducts(t, db, uuidSlug) })

	created, err := s.Create(&models.Product{
		Name: "UUID Slug Product", Slug: uuidSlug,
		ShortDescription: "x", CardImage: "/media/u.webp", IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	p, err := s.FindByIDOrSlug(uuidSlug)
	if err != nil {
		t.Fatalf("FindByIDOrSlug: %v", err)
	}
	if p == nil || p.ID != created.ID {
		t.Error("slug should take precedence over id lookup")
	}
}

func TestProductStoreListActiveExcludesInactive(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)

	activeSlug := "test-active-pump"
	inactiveSlug := "test-inactive-pump"
	t.Cleanup(func() { cleanProducts(t, db, activeSlug, inactiveSlug) })

	s.Create(&models.Product{Name: "Active Pump", Slug: activeSlug, ShortDescription: "x", CardImage: "/m/a.webp", IsActive: true})
	hidden, _ := s.Create(&models.Product{Name: "Inactive Pump", Slug: inactiveSlug, ShortDescription: "x", CardImage: "/m/i.webp", IsActive: false})

	active, err := s.ListActive()
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	for _, p := range active {
		if p.Slug == inactiveSlug {
			t.Error("inactive product leaked into ListActive")
		}
	}

	// Inactive products stay reachable by direct lookup for the admin.
	p, err := s.FindByID(hidden.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if p == nil {
		t.Error("inactive product should remain findable by id")
	}
}

func TestProductStoreSearch(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)

	slug := "test-search-windlass"
	t.Cleanup(func() { cleanProducts(t, db, slug) })

	s.Create(&models.Product{
		Name: "Hydraulic Windlass", Slug: slug,
		ShortDescription: "Anchor handling winch.",
		LongDescription:  "Fit the chain gypsy before applying installation torque.",
		CardImage:        "/m/w.webp", IsActive: true,
	})

	// Case-insensitive name match.
	hits, err := s.Search("WINDLASS", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	var found bool
	for _, p := range hits {
		if p.Slug == slug {
			found = true
		}
	}
	if !found {
		t.Error("expected case-insensitive name match")
	}

	// Description match.
	hits, err = s.Search("anchor handling", 10)
	if err != nil {
		t.Fatalf("Search (description): %v", err)
	}
	found = false
	for _, p := range hits {
		if p.Slug == slug {
			found = true
		}
	}
	if !found {
		t.Error("expected description match")
	}

	// A term present only in the long description must also match.
	hits, err = s.Search("installation torque", 10)
	if err != nil {
		t.Fatalf("Search (long description): %v", err)
	}
	found = false
	for _, p := range hits {
		if p.Slug == slug {
			found = true
		}
	}
	if !found {
		t.Error("expected long description match")
	}
}

func TestProductStoreIncrementViewCount(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)

	slug := "test-viewcount"
	t.Cleanup(func() { cleanProducts(t, db, slug) })

	p, _ := s.Create(&models.Product{Name: "Counted", Slug: slug, ShortDescription: "x", CardImage: "/m/c.webp", IsActive: true})

	for i := 0; i < 3; i++ {
		if err := s.IncrementViewCount(p.ID); err != nil {
			t.Fatalf("IncrementViewCount: %v", err)
		}
	}

	p, _ = s.FindByID(p.ID)
	if p.ViewCount != 3 {
		t.Errorf("view count: got %d, want 3", p.ViewCount)
	}
}

func TestProductStoreUpdatePreservesViewCount(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)

	slug := "test-update-views"
	t.Cleanup(func() { cleanProducts(t, db, slug) })

	p, _ := s.Create(&models.Product{Name: "Viewed", Slug: slug, ShortDescription: "x", CardImage: "/m/v.webp", IsActive: true})
	s.IncrementViewCount(p.ID)

	p.Name = "Viewed Renamed"
	p.ViewCount = 999 // must be ignored by Update
	updated, err := s.Update(p)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Viewed Renamed" {
		t.Errorf("name: got %q", updated.Name)
	}
	if updated.ViewCount != 1 {
		t.Errorf("view count: got %d, want 1 (Update must not touch it)", updated.ViewCount)
	}
}

func TestProductStoreDeleteMissingIsNoop(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)

	if err := s.Delete(uuid.New()); err != nil {
		t.Errorf("deleting a missing id should not error: %v", err)
	}
}

func TestProductStoreCategoryDetachOnDelete(t *testing.T) {
	db := testDB(t)
	cats := NewCategoryStore(db)
	products := NewProductStore(db)

	catName := "Detach Category"
	slug := "test-detach-product"
	t.Cleanup(func() {
		cleanProducts(t, db, slug)
		cleanCategories(t, db, catName)
	})

	cat, _ := cats.Create(&models.Category{Name: catName, Href: "/categories/detach", IsCategory: true, Visible: true})
	p, err := products.Create(&models.Product{
		Name: "Detachable", Slug: slug, ShortDescription: "x",
		CardImage: "/m/d.webp", CategoryID: &cat.ID, IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create product: %v", err)
	}

	// Deleting the category detaches the product instead of deleting it.
	if err := cats.Delete(cat.ID); err != nil {
		t.Fatalf("Delete category: %v", err)
	}

	p, _ = products.FindByID(p.ID)
	if p == nil {
		t.Fatal("product should survive category delete")
	}
	if p.CategoryID != nil {
		t.Errorf("category_id should be null after category delete, got %v", p.CategoryID)
	}
}
