// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"seatrade/internal/models"
	"seatrade/internal/rowmap"
)

// legacyShape converts a model into the flat object shape the legacy
// storefront admin expects: camelCase keys plus a Mongo-style "_id"
// duplicate of the id.
func legacyShape(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	return rowmap.ToModel(rowmap.ToRow(obj)), nil
}

// NavExport dumps the complete menu, hidden nodes included, in the
// legacy import/export format: categories in order, each carrying its
// subcategories under "items".
func (a *Admin) NavExport(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categoryStore.List()
	if err != nil {
		writeServerError(w, "list categories failed", err)
		return
	}
	subcategories, err := a.subcategoryStore.List()
	if err != nil {
		writeServerError(w, "list subcategories failed", err)
		return
	}

	children := make(map[uuid.UUID][]map[string]any)
	for _, sc := range subcategories {
		obj, err := legacyShape(sc)
		if err != nil {
			writeServerError(w, "nav export encode failed", err)
			return
		}
		children[sc.CategoryID] = append(children[sc.CategoryID], obj)
	}

	export := make([]map[string]any, 0, len(categories))
	for _, c := range categories {
		obj, err := legacyShape(c)
		if err != nil {
			writeServerError(w, "nav export encode failed", err)
			return
		}
		items := children[c.ID]
		if items == nil {
			items = []map[string]any{}
		}
		obj["items"] = items
		export = append(export, obj)
	}

	writeJSON(w, http.StatusOK, map[string]any{"nav": export})
}

type navImportRequest struct {
	Nav []navImportCategory `json:"nav"`
}

type navImportCategory struct {
	Name       string          `json:"name"`
	Href       string          `json:"href"`
	IsCategory bool            `json:"isCategory"`
	Visible    *bool           `json:"visible"`
	Image      *string         `json:"image"`
	Items      []navImportItem `json:"items"`
}

type navImportItem struct {
	Name    string  `json:"name"`
	Href    string  `json:"href"`
	Visible *bool   `json:"visible"`
	Image   *string `json:"image"`
}

// NavImport replaces the whole menu with the supplied tree. Payload
// order becomes sort order. Existing categories and subcategories are
// removed first, so this is strictly a restore operation.
func (a *Admin) NavImport(w http.ResponseWriter, r *http.Request) {
	var req navImportRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Nav) == 0 {
		writeError(w, http.StatusBadRequest, "nav payload is empty")
		return
	}

	// Validate everything before touching the database.
	for _, c := range req.Nav {
		if msg := validateCategory(c.Name, c.Href); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		for _, item := range c.Items {
			if msg := validateCategory(item.Name, item.Href); msg != "" {
				writeError(w, http.StatusBadRequest, msg)
				return
			}
		}
	}

	existing, err := a.categoryStore.List()
	if err != nil {
		writeServerError(w, "list categories failed", err)
		return
	}
	for _, c := range existing {
		if err := a.categoryStore.Delete(c.ID); err != nil {
			writeServerError(w, "clear existing nav failed", err)
			return
		}
	}

	for i, c := range req.Nav {
		visible := true
		if c.Visible != nil {
			visible = *c.Visible
		}
		created, err := a.categoryStore.Create(&models.Category{
			Name:       c.Name,
			Href:       c.Href,
			IsCategory: c.IsCategory,
			Visible:    visible,
			SortOrder:  i + 1,
			Image:      c.Image,
		})
		if err != nil {
			writeServerError(w, "import category failed", err)
			return
		}

		for j, item := range c.Items {
			itemVisible := true
			if item.Visible != nil {
				itemVisible = *item.Visible
			}
			_, err := a.subcategoryStore.Create(&models.Subcategory{
				CategoryID: created.ID,
				Name:       item.Name,
				Href:       item.Href,
				Visible:    itemVisible,
				SortOrder:  j + 1,
				Image:      item.Image,
			})
			if err != nil {
				writeServerError(w, "import subcategory failed", err)
				return
			}
		}
	}

	a.auditStore.Log("nav", uuid.Nil, "import", a.actor(r))
	if _, err := a.statsStore.Recalculate(); err != nil {
		writeServerError(w, "stats recalculate failed", err)
		return
	}
	a.invalidateNav(r)
	writeSuccess(w)
}
