// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"seatrade/internal/cache"
	"seatrade/internal/models"
)

func TestPublicNavExcludesHidden(t *testing.T) {
	env := newTestEnv(t)
	cleanCategories(t, env.DB, "Pub Nav Visible", "Pub Nav Hidden")
	t.Cleanup(func() { cleanCategories(t, env.DB, "Pub Nav Visible", "Pub Nav Hidden") })

	_, err := env.CategoryStore.Create(&models.Category{
		Name: "Pub Nav Visible", Href: "/products/pub-nav-visible", IsCategory: true, Visible: true,
	})
	if err != nil {
		t.Fatalf("create visible: %v", err)
	}
	_, err = env.CategoryStore.Create(&models.Category{
		Name: "Pub Nav Hidden", Href: "/products/pub-nav-hidden", IsCategory: true, Visible: false,
	})
	if err != nil {
		t.Fatalf("create hidden: %v", err)
	}

	env.NavCache.InvalidateNav(context.Background())

	req := httptest.NewRequest(http.MethodGet, "/api/nav", nil)
	rec := httptest.NewRecorder()
	env.Public.Nav(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Nav []struct {
			Name string `json:"name"`
		} `json:"nav"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var sawVisible, sawHidden bool
	for _, item := range body.Nav {
		if item.Name == "Pub Nav Visible" {
			sawVisible = true
		}
		if item.Name == "Pub Nav Hidden" {
			sawHidden = true
		}
	}
	if !sawVisible {
		t.Error("visible category missing from nav")
	}
	if sawHidden {
		t.Error("hidden category leaked into nav")
	}

	// Second call should be served from cache with identical content.
	if _, ok := env.NavCache.Get(context.Background(), cache.KeyNavTree); !ok {
		t.Error("nav payload was not cached")
	}
}

func TestPublicProductShow(t *testing.T) {
	env := newTestEnv(t)
	cleanProducts(t, env.DB, "pub-show-windlass")
	t.Cleanup(func() { cleanProducts(t, env.DB, "pub-show-windlass") })

	created, err := env.ProductStore.Create(&models.Product{
		Name: "Pub Show Windlass", Slug: "pub-show-windlass", IsActive: true,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products/pub-show-windlass", nil)
	req = withChiURLParam(req, "idOrSlug", "pub-show-windlass")
	rec := httptest.NewRecorder()
	env.Public.ProductShow(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Product models.Product `json:"product"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Product.ID != created.ID {
		t.Errorf("got product %s, want %s", body.Product.ID, created.ID)
	}
	if body.Product.ViewCount != 1 {
		t.Errorf("view count = %d, want 1", body.Product.ViewCount)
	}

	// The stored row carries the increment too.
	stored, err := env.ProductStore.FindByID(created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.ViewCount != 1 {
		t.Errorf("stored view count = %d, want 1", stored.ViewCount)
	}
}

func TestPublicProductShowInactive(t *testing.T) {
	env := newTestEnv(t)
	cleanProducts(t, env.DB, "pub-inactive-pump")
	t.Cleanup(func() { cleanProducts(t, env.DB, "pub-inactive-pump") })

	_, err := env.ProductStore.Create(&models.Product{
		Name: "Pub Inactive Pump", Slug: "pub-inactive-pump", IsActive: false,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products/pub-inactive-pump", nil)
	req = withChiURLParam(req, "idOrSlug", "pub-inactive-pump")
	rec := httptest.NewRecorder()
	env.Public.ProductShow(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "error") {
		t.Errorf("expected error body, got %s", rec.Body.String())
	}
}

func TestPublicContactSubmit(t *testing.T) {
	env := newTestEnv(t)
	email := "pub-contact@test.local"
	cleanProducts(t, env.DB, "pub-contact-valve")
	cleanMessages(t, env.DB, email)
	t.Cleanup(func() {
		cleanProducts(t, env.DB, "pub-contact-valve")
		cleanMessages(t, env.DB, email)
	})

	product, err := env.ProductStore.Create(&models.Product{
		Name: "Pub Contact Valve", Slug: "pub-contact-valve", CardImage: "/img/valve.jpg", IsActive: true,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	payload := `{
		"name": "Test Buyer",
		"email": "` + email + `",
		"subject": "Quote request",
		"message": "Please quote 10 units.",
		"productId": "` + product.ID.String() + `"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	env.Public.ContactSubmit(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Contact models.Contact `json:"contact"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Contact.Status != models.StatusNew {
		t.Errorf("status = %q, want new", body.Contact.Status)
	}
	if body.Contact.ProductName == nil || *body.Contact.ProductName != "Pub Contact Valve" {
		t.Error("product name was not denormalised onto the contact")
	}
	if body.Contact.ProductImage == nil || *body.Contact.ProductImage != "/img/valve.jpg" {
		t.Error("product image was not denormalised onto the contact")
	}
}

func TestPublicContactSubmitRejectsBadEmail(t *testing.T) {
	env := newTestEnv(t)

	payload := `{"name": "X", "email": "nope", "subject": "Hi", "message": "Hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	env.Public.ContactSubmit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPublicEnquirySubmitRecordsMetadata(t *testing.T) {
	env := newTestEnv(t)
	email := "pub-enquiry@test.local"
	cleanMessages(t, env.DB, email)
	t.Cleanup(func() { cleanMessages(t, env.DB, email) })

	payload := `{
		"name": "Test Visitor",
		"email": "` + email + `",
		"subject": "General question",
		"message": "Do you ship worldwide?",
		"source": "/contact"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/enquiry", strings.NewReader(payload))
	req.RemoteAddr = "203.0.113.9:4412"
	req.Header.Set("User-Agent", "test-agent/1.0")
	rec := httptest.NewRecorder()
	env.Public.EnquirySubmit(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Enquiry models.Enquiry `json:"enquiry"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Enquiry.IPAddress != "203.0.113.9" {
		t.Errorf("ip = %q, want 203.0.113.9", body.Enquiry.IPAddress)
	}
	if body.Enquiry.UserAgent != "test-agent/1.0" {
		t.Errorf("user agent = %q", body.Enquiry.UserAgent)
	}
	if body.Enquiry.Source != "/contact" {
		t.Errorf("source = %q, want /contact", body.Enquiry.Source)
	}
}

func TestPublicProductsFilterByCategoryHref(t *testing.T) {
	env := newTestEnv(t)
	cleanCategories(t, env.DB, "Pub Filter Cat")
	cleanProducts(t, env.DB, "pub-filter-in", "pub-filter-out")
	t.Cleanup(func() {
		cleanProducts(t, env.DB, "pub-filter-in", "pub-filter-out")
		cleanCategories(t, env.DB, "Pub Filter Cat")
	})

	category, err := env.CategoryStore.Create(&models.Category{
		Name: "Pub Filter Cat", Href: "/products/pub-filter-cat", IsCategory: true, Visible: true,
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	if _, err := env.ProductStore.Create(&models.Product{
		Name: "Pub Filter In", Slug: "pub-filter-in", CategoryID: &category.ID, IsActive: true,
	}); err != nil {
		t.Fatalf("create in: %v", err)
	}
	if _, err := env.ProductStore.Create(&models.Product{
		Name: "Pub Filter Out", Slug: "pub-filter-out", IsActive: true,
	}); err != nil {
		t.Fatalf("create out: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products?category=/products/pub-filter-cat", nil)
	rec := httptest.NewRecorder()
	env.Public.Products(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Products []models.Product `json:"products"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, p := range body.Products {
		if p.Slug == "pub-filter-out" {
			t.Error("uncategorised product leaked into category filter")
		}
	}
	var found bool
	for _, p := range body.Products {
		if p.Slug == "pub-filter-in" {
			found = true
		}
	}
	if !found {
		t.Error("categorised product missing from filter result")
	}
}
