// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"seatrade/internal/models"
)

// --- Categories ---

// CategoriesList returns every category, hidden ones included.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categoryStore.List()
	if err != nil {
		writeServerError(w, "list categories failed", err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

type categoryRequest struct {
	Name       string  `json:"name"`
	Href       string  `json:"href"`
	IsCategory bool    `json:"isCategory"`
	Visible    *bool   `json:"visible"`
	Order      int     `json:"order"`
	Image      *string `json:"image"`
}

// CategoryCreate adds a navigation node. Order zero means append after
// the current last entry.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateCategory(req.Name, req.Href); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	created, err := a.categoryStore.Create(&models.Category{
		Name:       req.Name,
		Href:       req.Href,
		IsCategory: req.IsCategory,
		Visible:    visible,
		SortOrder:  req.Order,
		Image:      req.Image,
	})
	if err != nil {
		writeServerError(w, "create category failed", err)
		return
	}

	a.auditStore.Log("category", created.ID, "create", a.actor(r))
	a.bumpStats(func() error { return a.statsStore.Increment(models.CounterCategories) })
	a.invalidateNav(r)

	writeJSON(w, http.StatusCreated, map[string]any{"category": created})
}

// CategoryShow returns one category by id.
func (a *Admin) CategoryShow(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := a.categoryStore.FindByID(id)
	if err != nil {
		writeServerError(w, "find category failed", err)
		return
	}
	if category == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"category": category})
}

// CategoryUpdate replaces a category's editable fields.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateCategory(req.Name, req.Href); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	updated, err := a.categoryStore.Update(&models.Category{
		ID:         id,
		Name:       req.Name,
		Href:       req.Href,
		IsCategory: req.IsCategory,
		Visible:    visible,
		SortOrder:  req.Order,
		Image:      req.Image,
	})
	if err != nil {
		writeServerError(w, "update category failed", err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	a.auditStore.Log("category", id, "update", a.actor(r))
	a.invalidateNav(r)

	writeJSON(w, http.StatusOK, map[string]any{"category": updated})
}

type visibilityRequest struct {
	Visible bool `json:"visible"`
}

// CategorySetVisible toggles storefront visibility without touching the
// rest of the record.
func (a *Admin) CategorySetVisible(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var req visibilityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.categoryStore.SetVisible(id, req.Visible); err != nil {
		writeServerError(w, "set category visibility failed", err)
		return
	}

	a.auditStore.Log("category", id, "set_visible", a.actor(r))
	a.invalidateNav(r)
	writeSuccess(w)
}

// CategoryDelete removes a category and its subcategories in one
// transaction. Products keep existing with their category reference
// cleared.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	// Count children first so the cached stats stay roughly honest.
	subcategories, err := a.subcategoryStore.ListByCategory(id)
	if err != nil {
		writeServerError(w, "list subcategories failed", err)
		return
	}

	if err := a.categoryStore.Delete(id); err != nil {
		writeServerError(w, "delete category failed", err)
		return
	}

	a.auditStore.Log("category", id, "delete", a.actor(r))
	a.bumpStats(func() error { return a.statsStore.Decrement(models.CounterCategories) })
	for range subcategories {
		a.bumpStats(func() error { return a.statsStore.Decrement(models.CounterSubcategories) })
	}
	a.invalidateNav(r)
	writeSuccess(w)
}

// --- Subcategories ---

// SubcategoriesList returns the subcategories of one category, or all of
// them when no category filter is given.
func (a *Admin) SubcategoriesList(w http.ResponseWriter, r *http.Request) {
	var (
		subcategories []models.Subcategory
		err           error
	)
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			writeError(w, http.StatusBadRequest, "invalid category id")
			return
		}
		subcategories, err = a.subcategoryStore.ListByCategory(id)
	} else {
		subcategories, err = a.subcategoryStore.List()
	}
	if err != nil {
		writeServerError(w, "list subcategories failed", err)
		return
	}
	if subcategories == nil {
		subcategories = []models.Subcategory{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"subcategories": subcategories})
}

type subcategoryRequest struct {
	CategoryID string  `json:"categoryId"`
	Name       string  `json:"name"`
	Href       string  `json:"href"`
	Visible    *bool   `json:"visible"`
	Order      int     `json:"order"`
	Image      *string `json:"image"`
}

// SubcategoryCreate adds a subcategory under an existing category.
func (a *Admin) SubcategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req subcategoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateCategory(req.Name, req.Href); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	parent, err := a.categoryStore.FindByID(categoryID)
	if err != nil {
		writeServerError(w, "find parent category failed", err)
		return
	}
	if parent == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	created, err := a.subcategoryStore.Create(&models.Subcategory{
		CategoryID: categoryID,
		Name:       req.Name,
		Href:       req.Href,
		Visible:    visible,
		SortOrder:  req.Order,
		Image:      req.Image,
	})
	if err != nil {
		writeServerError(w, "create subcategory failed", err)
		return
	}

	a.auditStore.Log("subcategory", created.ID, "create", a.actor(r))
	a.bumpStats(func() error { return a.statsStore.Increment(models.CounterSubcategories) })
	a.invalidateNav(r)

	writeJSON(w, http.StatusCreated, map[string]any{"subcategory": created})
}

// SubcategoryUpdate replaces a subcategory's editable fields, including
// moving it to another category.
func (a *Admin) SubcategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid subcategory id")
		return
	}

	var req subcategoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateCategory(req.Name, req.Href); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	updated, err := a.subcategoryStore.Update(&models.Subcategory{
		ID:         id,
		CategoryID: categoryID,
		Name:       req.Name,
		Href:       req.Href,
		Visible:    visible,
		SortOrder:  req.Order,
		Image:      req.Image,
	})
	if err != nil {
		writeServerError(w, "update subcategory failed", err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "subcategory not found")
		return
	}

	a.auditStore.Log("subcategory", id, "update", a.actor(r))
	a.invalidateNav(r)

	writeJSON(w, http.StatusOK, map[string]any{"subcategory": updated})
}

// SubcategorySetVisible toggles storefront visibility.
func (a *Admin) SubcategorySetVisible(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid subcategory id")
		return
	}

	var req visibilityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.subcategoryStore.SetVisible(id, req.Visible); err != nil {
		writeServerError(w, "set subcategory visibility failed", err)
		return
	}

	a.auditStore.Log("subcategory", id, "set_visible", a.actor(r))
	a.invalidateNav(r)
	writeSuccess(w)
}

// SubcategoryDelete removes one subcategory.
func (a *Admin) SubcategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid subcategory id")
		return
	}

	if err := a.subcategoryStore.Delete(id); err != nil {
		writeServerError(w, "delete subcategory failed", err)
		return
	}

	a.auditStore.Log("subcategory", id, "delete", a.actor(r))
	a.bumpStats(func() error { return a.statsStore.Decrement(models.CounterSubcategories) })
	a.invalidateNav(r)
	writeSuccess(w)
}
