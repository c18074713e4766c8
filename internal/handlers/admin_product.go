// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"seatrade/internal/models"
	"seatrade/internal/slug"
	"seatrade/internal/store"
)

// ProductsList returns products for the admin table. Unlike the public
// listing it includes inactive products and accepts the same filters.
func (a *Admin) ProductsList(w http.ResponseWriter, r *http.Request) {
	filter := store.ProductFilter{}

	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid category id")
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

	products, err := a.productStore.List(filter)
	if err != nil {
		writeServerError(w, "list products failed", err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

type productRequest struct {
	Name             string             `json:"name"`
	Slug             string             `json:"slug"`
	ShortDescription string             `json:"shortDescription"`
	LongDescription  string             `json:"longDescription"`
	CardImage        string             `json:"cardImage"`
	DetailImages     models.StringList  `json:"detailImages"`
	ShortFeatures    models.StringList  `json:"shortFeatures"`
	Specifications   models.SpecMap     `json:"specifications"`
	Reviews          models.ReviewsData `json:"reviewsData"`
	CatalogFile      *string            `json:"catalogFile"`
	CategoryID       *string            `json:"categoryId"`
	SubcategoryID    *string            `json:"subcategoryId"`
	IsActive         *bool              `json:"isActive"`
}

// toModel maps the request onto a product model. The view counter is
// deliberately absent; only the storefront moves it.
func (req *productRequest) toModel() (*models.Product, string) {
	product := &models.Product{
		Name:             req.Name,
		Slug:             req.Slug,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		CardImage:        req.CardImage,
		DetailImages:     req.DetailImages,
		ShortFeatures:    req.ShortFeatures,
		Specifications:   req.Specifications,
		Reviews:          req.Reviews,
		CatalogFile:      req.CatalogFile,
		IsActive:         true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, "invalid category id"
		}
		product.CategoryID = &id
	}
	if req.SubcategoryID != nil && *req.SubcategoryID != "" {
		id, err := uuid.Parse(*req.SubcategoryID)
		if err != nil {
			return nil, "invalid subcategory id"
		}
		product.SubcategoryID = &id
	}
	return product, ""
}

// slugTaken reports whether another product already owns the slug.
func (a *Admin) slugTaken(s string, selfID uuid.UUID) bool {
	existing, err := a.productStore.FindBySlug(s)
	if err != nil {
		slog.Warn("slug lookup failed", "slug", s, "error", err)
		return true
	}
	return existing != nil && existing.ID != selfID
}

// ProductCreate adds a product. A missing slug is generated from the
// name; either way the slug is de-duplicated against existing products.
func (a *Admin) ProductCreate(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateProduct(req.Name, req.Slug, req.ShortDescription, req.LongDescription, req.CardImage); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	product, errMsg := req.toModel()
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	base := slug.Generate(product.Slug)
	if base == "" {
		base = slug.Generate(product.Name)
	}
	if base == "" {
		writeError(w, http.StatusBadRequest, "Name must contain letters or digits.")
		return
	}
	product.Slug = slug.Unique(base, func(s string) bool {
		return a.slugTaken(s, uuid.Nil)
	})

	created, err := a.productStore.Create(product)
	if err != nil {
		writeServerError(w, "create product failed", err)
		return
	}

	a.auditStore.Log("product", created.ID, "create", a.actor(r))
	a.bumpStats(func() error { return a.statsStore.Increment(models.CounterProducts) })
	a.invalidateProducts(r)

	writeJSON(w, http.StatusCreated, map[string]any{"product": created})
}

// ProductShow returns one product by id or slug, inactive included.
func (a *Admin) ProductShow(w http.ResponseWriter, r *http.Request) {
	product, err := a.productStore.FindByIDOrSlug(chi.URLParam(r, "idOrSlug"))
	if err != nil {
		writeServerError(w, "find product failed", err)
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": product})
}

// ProductUpdate replaces a product's editable fields. The view counter
// is preserved regardless of what the client sends.
func (a *Admin) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateProduct(req.Name, req.Slug, req.ShortDescription, req.LongDescription, req.CardImage); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	product, errMsg := req.toModel()
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}
	product.ID = id

	base := slug.Generate(product.Slug)
	if base == "" {
		base = slug.Generate(product.Name)
	}
	product.Slug = slug.Unique(base, func(s string) bool {
		return a.slugTaken(s, id)
	})

	updated, err := a.productStore.Update(product)
	if err != nil {
		writeServerError(w, "update product failed", err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	a.auditStore.Log("product", id, "update", a.actor(r))
	a.invalidateProducts(r)

	writeJSON(w, http.StatusOK, map[string]any{"product": updated})
}

type activeRequest struct {
	IsActive bool `json:"isActive"`
}

// ProductSetActive publishes or hides a product without touching the
// rest of the record.
func (a *Admin) ProductSetActive(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req activeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.productStore.SetActive(id, req.IsActive); err != nil {
		writeServerError(w, "set product active failed", err)
		return
	}

	a.auditStore.Log("product", id, "set_active", a.actor(r))
	a.invalidateProducts(r)
	writeSuccess(w)
}

// ProductDelete removes a product. Its images stay in object storage;
// orphan cleanup is a separate maintenance task.
func (a *Admin) ProductDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := a.productStore.Delete(id); err != nil {
		writeServerError(w, "delete product failed", err)
		return
	}

	a.auditStore.Log("product", id, "delete", a.actor(r))
	a.bumpStats(func() error { return a.statsStore.Decrement(models.CounterProducts) })
	a.invalidateProducts(r)
	writeSuccess(w)
}
