// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"seatrade/internal/cache"
	"seatrade/internal/middleware"
	"seatrade/internal/session"
	"seatrade/internal/storage"
	"seatrade/internal/store"
)

// Admin groups the back-office HTTP handlers and their dependencies.
// Everything under /api/admin runs behind session auth plus 2FA.
type Admin struct {
	sessions         *session.Store
	userStore        *store.UserStore
	categoryStore    *store.CategoryStore
	subcategoryStore *store.SubcategoryStore
	productStore     *store.ProductStore
	contactStore     *store.ContactStore
	enquiryStore     *store.EnquiryStore
	statsStore       *store.StatsStore
	auditStore       *store.AuditStore
	storageClient    *storage.Client
	navCache         *cache.NavCache
}

// NewAdmin creates the admin handler group. storageClient and navCache
// may be nil if S3 or Valkey is not configured.
func NewAdmin(
	sessions *session.Store,
	userStore *store.UserStore,
	categoryStore *store.CategoryStore,
	subcategoryStore *store.SubcategoryStore,
	productStore *store.ProductStore,
	contactStore *store.ContactStore,
	enquiryStore *store.EnquiryStore,
	statsStore *store.StatsStore,
	auditStore *store.AuditStore,
	storageClient *storage.Client,
	navCache *cache.NavCache,
) *Admin {
	return &Admin{
		sessions:         sessions,
		userStore:        userStore,
		categoryStore:    categoryStore,
		subcategoryStore: subcategoryStore,
		productStore:     productStore,
		contactStore:     contactStore,
		enquiryStore:     enquiryStore,
		statsStore:       statsStore,
		auditStore:       auditStore,
		storageClient:    storageClient,
		navCache:         navCache,
	}
}

// actor returns the email of the logged-in admin for audit entries.
func (a *Admin) actor(r *http.Request) string {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		return sess.Email
	}
	return "unknown"
}

// invalidateNav drops the cached navigation tree after menu edits.
func (a *Admin) invalidateNav(r *http.Request) {
	if a.navCache != nil {
		a.navCache.InvalidateNav(r.Context())
	}
}

// invalidateProducts drops the cached product strips after catalog edits.
func (a *Admin) invalidateProducts(r *http.Request) {
	if a.navCache != nil {
		a.navCache.InvalidateProducts(r.Context())
	}
}

// bumpStats increments a dashboard counter, logging but not failing on
// error. The cached stats row is advisory; Recalculate restores truth.
func (a *Admin) bumpStats(op func() error) {
	if err := op(); err != nil {
		slog.Warn("dashboard stats update failed", "error", err)
	}
}

// Dashboard returns the cached dashboard stats together with the most
// recent messages so the admin landing page loads from one call.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := a.statsStore.Get()
	if err != nil {
		writeServerError(w, "load dashboard stats failed", err)
		return
	}

	contacts, err := a.contactStore.Recent(5)
	if err != nil {
		writeServerError(w, "load recent contacts failed", err)
		return
	}
	enquiries, err := a.enquiryStore.Recent(5)
	if err != nil {
		writeServerError(w, "load recent enquiries failed", err)
		return
	}

	newContacts, err := a.contactStore.CountByStatus("new")
	if err != nil {
		writeServerError(w, "count new contacts failed", err)
		return
	}
	newEnquiries, err := a.enquiryStore.CountByStatus("new")
	if err != nil {
		writeServerError(w, "count new enquiries failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stats":           stats,
		"recentContacts":  contacts,
		"recentEnquiries": enquiries,
		"newContacts":     newContacts,
		"newEnquiries":    newEnquiries,
	})
}

// StatsRecalculate re-derives the dashboard counters from the source
// tables. The counters drift only if increments were lost, so this is a
// manual repair action.
func (a *Admin) StatsRecalculate(w http.ResponseWriter, r *http.Request) {
	stats, err := a.statsStore.Recalculate()
	if err != nil {
		writeServerError(w, "stats recalculate failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}

// AuditLog returns the most recent admin actions.
func (a *Admin) AuditLog(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit > 500 {
		limit = 500
	}
	entries, err := a.auditStore.Recent(limit)
	if err != nil {
		writeServerError(w, "load audit log failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}
