// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"seatrade/internal/models"
)

func TestStatsStoreIncrementDecrement(t *testing.T) {
	db := testDB(t)
	s := NewStatsStore(db)

	// Start from a known baseline.
	base, err := s.Recalculate()
	if err != nil {
		t.Fatalf("Recalculate: %v", err)
	}

	if err := s.Increment(models.CounterProducts); err != nil {
		t.Fatalf("Increment: %v", err)
	}
	st, err := s.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if st.Products != base.Products+1 {
		t.Errorf("products: got %d, want %d", st.Products, base.Products+1)
	}

	if err := s.Decrement(models.CounterProducts); err != nil {
		t.Fatalf("Decrement: %v", err)
	}
	st, _ = s.Get()
	if st.Products != base.Products {
		t.Errorf("products after decrement: got %d, want %d", st.Products, base.Products)
	}

	t.Cleanup(func() { s.Recalculate() })
}

func TestStatsStoreDecrementClampsAtZero(t *testing.T) {
	db := testDB(t)
	s := NewStatsStore(db)

	t.Cleanup(func() { s.Recalculate() })

	// Drive the counter to zero, then push past it.
	st, err := s.Recalculate()
	if err != nil {
		t.Fatalf("Recalculate: %v", err)
	}
	for i := 0; i < st.Enquiries+2; i++ {
		if err := s.Decrement(models.CounterEnquiries); err != nil {
			t.Fatalf("Decrement: %v", err)
		}
	}

	st, _ = s.Get()
	if st.Enquiries != 0 {
		t.Errorf("enquiries: got %d, want 0 (clamped)", st.Enquiries)
	}
}

func TestStatsStoreRejectsUnknownCounter(t *testing.T) {
	db := testDB(t)
	s := NewStatsStore(db)

	if err := s.Increment(models.StatsCounter("users; DROP TABLE users")); err == nil {
		t.Error("expected error for unknown counter")
	}
	if err := s.Decrement(models.StatsCounter("bogus")); err == nil {
		t.Error("expected error for unknown counter")
	}
}

func TestStatsStoreRecalculateMatchesTables(t *testing.T) {
	db := testDB(t)
	s := NewStatsStore(db)
	products := NewProductStore(db)

	slug := "test-stats-recalc"
	t.Cleanup(func() {
		cleanProducts(t, db, slug)
		s.Recalculate()
	})

	// Skew the cache, insert a product, then recalculate.
	s.Increment(models.CounterProducts)
	s.Increment(models.CounterProducts)

	products.Create(&models.Product{
		Name: "Recalc Probe", Slug: slug,
		ShortDescription: "x", CardImage: "/m/r.webp", IsActive: true,
	})

	st, err := s.Recalculate()
	if err != nil {
		t.Fatalf("Recalculate: %v", err)
	}

	actual, err := products.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if st.Products != actual {
		t.Errorf("products: cache %d, tables %d", st.Products, actual)
	}
}

func TestAuditStoreLogAndRecent(t *testing.T) {
	db := testDB(t)
	audits := NewAuditStore(db)
	products := NewProductStore(db)

	slug := "test-audit-product"
	t.Cleanup(func() { cleanProducts(t, db, slug) })

	p, err := products.Create(&models.Product{
		Name: "Audited", Slug: slug,
		ShortDescription: "x", CardImage: "/m/a.webp", IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create product: %v", err)
	}

	audits.Log("product", p.ID, "create", "admin@seatrade.local")

	entries, err := audits.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	var found bool
	for _, e := range entries {
		if e.EntityID == p.ID && e.Action == "create" {
			found = true
			if e.Entity != "product" {
				t.Errorf("entity: got %q", e.Entity)
			}
			if e.Actor != "admin@seatrade.local" {
				t.Errorf("actor: got %q", e.Actor)
			}
		}
	}
	if !found {
		t.Error("logged entry missing from Recent")
	}
}
