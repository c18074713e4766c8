// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"seatrade/internal/cache"
	"seatrade/internal/middleware"
	"seatrade/internal/models"
	"seatrade/internal/nav"
	"seatrade/internal/rowmap"
	"seatrade/internal/store"
)

const (
	// defaultStripSize is how many products the featured/latest strips carry.
	defaultStripSize = 8

	// maxSearchResults caps public search output.
	maxSearchResults = 50
)

// Public serves the storefront-facing endpoints. Everything here is
// anonymous; inactive products and hidden categories never leave this
// layer.
type Public struct {
	categoryStore    *store.CategoryStore
	subcategoryStore *store.SubcategoryStore
	productStore     *store.ProductStore
	contactStore     *store.ContactStore
	enquiryStore     *store.EnquiryStore
	statsStore       *store.StatsStore
	navCache         *cache.NavCache
}

// NewPublic creates the public handler group. navCache may be nil if
// Valkey is not configured.
func NewPublic(
	categoryStore *store.CategoryStore,
	subcategoryStore *store.SubcategoryStore,
	productStore *store.ProductStore,
	contactStore *store.ContactStore,
	enquiryStore *store.EnquiryStore,
	statsStore *store.StatsStore,
	navCache *cache.NavCache,
) *Public {
	return &Public{
		categoryStore:    categoryStore,
		subcategoryStore: subcategoryStore,
		productStore:     productStore,
		contactStore:     contactStore,
		enquiryStore:     enquiryStore,
		statsStore:       statsStore,
		navCache:         navCache,
	}
}

// Nav returns the visible navigation tree. The assembled payload is
// cached in Valkey and invalidated whenever the admin edits the menu.
func (p *Public) Nav(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if p.navCache != nil {
		if payload, ok := p.navCache.Get(ctx, cache.KeyNavTree); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(payload)
			return
		}
	}

	tree, err := p.buildVisibleNav()
	if err != nil {
		writeServerError(w, "nav build failed", err)
		return
	}

	body, err := json.Marshal(map[string]any{"nav": tree})
	if err != nil {
		writeServerError(w, "nav encode failed", err)
		return
	}

	if p.navCache != nil {
		p.navCache.Set(ctx, cache.KeyNavTree, body)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func (p *Public) buildVisibleNav() ([]nav.Item, error) {
	categories, err := p.categoryStore.ListVisible()
	if err != nil {
		return nil, err
	}
	subcategories, err := p.subcategoryStore.List()
	if err != nil {
		return nil, err
	}
	return nav.VisibleOnly(nav.Build(categories, subcategories)), nil
}

// Categories lists visible categories for the storefront landing pages.
func (p *Public) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := p.categoryStore.ListVisible()
	if err != nil {
		writeServerError(w, "list categories failed", err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// CategorySubcategories lists the visible subcategories of one category.
func (p *Public) CategorySubcategories(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := p.categoryStore.FindByID(id)
	if err != nil {
		writeServerError(w, "find category failed", err)
		return
	}
	if category == nil || !category.Visible {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	subcategories, err := p.subcategoryStore.ListVisibleByCategory(id)
	if err != nil {
		writeServerError(w, "list subcategories failed", err)
		return
	}
	if subcategories == nil {
		subcategories = []models.Subcategory{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"subcategories": subcategories})
}

// Products lists active products, optionally narrowed by category,
// subcategory, or a search term. The category parameter accepts either
// a UUID or the category's href.
func (p *Public) Products(w http.ResponseWriter, r *http.Request) {
	filter := store.ProductFilter{ActiveOnly: true}

	if raw := r.URL.Query().Get("category"); raw != "" {
		id, ok, err := p.resolveCategoryParam(raw)
		if err != nil {
			writeServerError(w, "resolve category failed", err)
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		filter.CategoryID = &id
	}
	if raw := r.URL.Query().Get("subcategory"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid subcategory id")
			return
		}
		filter.SubcategoryID = &id
	}
	filter.Search = r.URL.Query().Get("q")
	filter.Limit = queryInt(r, "limit", 0)
	filter.Offset = queryInt(r, "offset", 0)

	products, err := p.productStore.List(filter)
	if err != nil {
		writeServerError(w, "list products failed", err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

// resolveCategoryParam turns a category query parameter into a category
// id. UUID-shaped values are looked up by id, everything else by href.
func (p *Public) resolveCategoryParam(raw string) (uuid.UUID, bool, error) {
	if rowmap.IsValidUUID(raw) {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, false, nil
		}
		category, err := p.categoryStore.FindByID(id)
		if err != nil || category == nil {
			return uuid.Nil, false, err
		}
		return category.ID, true, nil
	}

	category, err := p.categoryStore.FindByHref(raw)
	if err != nil || category == nil {
		return uuid.Nil, false, err
	}
	return category.ID, true, nil
}

// ProductShow resolves a product by slug or id and bumps its view
// counter. Inactive products answer 404 here even though the admin can
// still see them.
func (p *Public) ProductShow(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")

	product, err := p.productStore.FindByIDOrSlug(idOrSlug)
	if err != nil {
		writeServerError(w, "find product failed", err)
		return
	}
	if product == nil || !product.IsActive {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	// Best-effort: a failed counter update must not break the page.
	if err := p.productStore.IncrementViewCount(product.ID); err != nil {
		slog.Warn("view count increment failed", "product", product.ID, "error", err)
	} else {
		product.ViewCount++
	}

	writeJSON(w, http.StatusOK, map[string]any{"product": product})
}

// Featured returns the most viewed active products, cached in Valkey.
func (p *Public) Featured(w http.ResponseWriter, r *http.Request) {
	p.productStrip(w, r, cache.KeyFeatured, p.productStore.Featured)
}

// Latest returns the newest active products, cached in Valkey.
func (p *Public) Latest(w http.ResponseWriter, r *http.Request) {
	p.productStrip(w, r, cache.KeyLatest, p.productStore.Latest)
}

func (p *Public) productStrip(w http.ResponseWriter, r *http.Request, key string, load func(int) ([]models.Product, error)) {
	ctx := r.Context()

	if p.navCache != nil {
		if payload, ok := p.navCache.Get(ctx, key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(payload)
			return
		}
	}

	products, err := load(defaultStripSize)
	if err != nil {
		writeServerError(w, "load product strip failed", err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	body, err := json.Marshal(map[string]any{"products": products})
	if err != nil {
		writeServerError(w, "product strip encode failed", err)
		return
	}

	if p.navCache != nil {
		p.navCache.Set(ctx, key, body)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// Search finds active products by name or description.
func (p *Public) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusOK, map[string]any{"products": []models.Product{}})
		return
	}

	products, err := p.productStore.Search(query, maxSearchResults)
	if err != nil {
		writeServerError(w, "search failed", err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

type contactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	EnquiryType string `json:"enquiryType"`
	ProductID   string `json:"productId"`
}

// ContactSubmit accepts a product-enquiry form. When a product id is
// supplied, its name and card image are copied onto the message so the
// inbox entry outlives the product.
func (p *Public) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := validateMessage(req.Name, req.Email, req.Subject, req.Message); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	contact := &models.Contact{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Subject:     req.Subject,
		Message:     req.Message,
		EnquiryType: req.EnquiryType,
	}

	if req.ProductID != "" {
		id, err := uuid.Parse(req.ProductID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid product id")
			return
		}
		product, err := p.productStore.FindByID(id)
		if err != nil {
			writeServerError(w, "product lookup for contact failed", err)
			return
		}
		if product != nil {
			contact.ProductID = &product.ID
			contact.ProductName = &product.Name
			contact.ProductImage = &product.CardImage
		}
	}

	created, err := p.contactStore.Create(contact)
	if err != nil {
		writeServerError(w, "create contact failed", err)
		return
	}

	if err := p.statsStore.Increment(models.CounterContacts); err != nil {
		slog.Warn("stats increment failed", "counter", models.CounterContacts, "error", err)
	}

	writeJSON(w, http.StatusCreated, map[string]any{"contact": created})
}

type enquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Source  string `json:"source"`
}

// EnquirySubmit accepts a general contact-us form and records the
// request metadata for spam triage.
func (p *Public) EnquirySubmit(w http.ResponseWriter, r *http.Request) {
	var req enquiryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := validateMessage(req.Name, req.Email, req.Subject, req.Message); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := p.enquiryStore.Create(&models.Enquiry{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Source:    req.Source,
		IPAddress: middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		writeServerError(w, "create enquiry failed", err)
		return
	}

	if err := p.statsStore.Increment(models.CounterEnquiries); err != nil {
		slog.Warn("stats increment failed", "counter", models.CounterEnquiries, "error", err)
	}

	writeJSON(w, http.StatusCreated, map[string]any{"enquiry": created})
}

// queryInt reads an integer query parameter, falling back when absent or
// malformed.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
