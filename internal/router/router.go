// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains for the
// SeaTrade API: anonymous storefront endpoints under /api and the
// session-protected back office under /api/admin.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"seatrade/internal/handlers"
	"seatrade/internal/middleware"
	"seatrade/internal/session"
)

// submissionLimit throttles the public form endpoints per client IP.
const (
	submissionLimit  = 5
	submissionWindow = time.Minute
)

// New creates the configured chi router with all middleware and route
// groups wired up. secureCookies marks the CSRF cookie HTTPS-only. The
// returned rate limiter must be stopped on shutdown.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, secureCookies bool) (chi.Router, *middleware.RateLimiter) {
	r := chi.NewRouter()

	csrf := middleware.NewCSRF(secureCookies)
	formLimiter := middleware.NewRateLimiter(submissionLimit, submissionWindow)

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check. No auth, no CSRF.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Public storefront endpoints.
		r.Get("/nav", public.Nav)
		r.Get("/categories", public.Categories)
		r.Get("/categories/{id}/subcategories", public.CategorySubcategories)
		r.Get("/products", public.Products)
		r.Get("/products/featured", public.Featured)
		r.Get("/products/latest", public.Latest)
		r.Get("/products/search", public.Search)
		r.Get("/products/{idOrSlug}", public.ProductShow)

		// Form submissions are rate limited per client IP.
		r.Group(func(r chi.Router) {
			r.Use(formLimiter.Middleware)
			r.Post("/contact", public.ContactSubmit)
			r.Post("/enquiry", public.EnquirySubmit)
		})

		// Authentication.
		r.Route("/auth", func(r chi.Router) {
			r.Use(csrf)
			r.Post("/login", auth.Login)
			r.Post("/logout", auth.Logout)
			r.Get("/me", auth.Me)

			// 2FA requires a session but not completed verification.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/2fa/setup", auth.TwoFASetup)
				r.Post("/2fa/verify", auth.TwoFAVerify)
			})
		})

		// Back office. Session plus completed 2FA.
		r.Route("/admin", func(r chi.Router) {
			r.Use(csrf)
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Get("/dashboard", admin.Dashboard)
			r.Post("/stats/recalculate", admin.StatsRecalculate)
			r.Get("/audit", admin.AuditLog)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", admin.CategoriesList)
				r.Post("/", admin.CategoryCreate)
				r.Get("/{id}", admin.CategoryShow)
				r.Put("/{id}", admin.CategoryUpdate)
				r.Patch("/{id}/visible", admin.CategorySetVisible)
				r.Delete("/{id}", admin.CategoryDelete)
			})

			r.Route("/subcategories", func(r chi.Router) {
				r.Get("/", admin.SubcategoriesList)
				r.Post("/", admin.SubcategoryCreate)
				r.Put("/{id}", admin.SubcategoryUpdate)
				r.Patch("/{id}/visible", admin.SubcategorySetVisible)
				r.Delete("/{id}", admin.SubcategoryDelete)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", admin.ProductsList)
				r.Post("/", admin.ProductCreate)
				r.Get("/{idOrSlug}", admin.ProductShow)
				r.Put("/{id}", admin.ProductUpdate)
				r.Patch("/{id}/active", admin.ProductSetActive)
				r.Delete("/{id}", admin.ProductDelete)
			})

			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", admin.ContactsList)
				r.Get("/{id}", admin.ContactShow)
				r.Post("/{id}/read", admin.ContactMarkRead)
				r.Post("/{id}/replied", admin.ContactMarkReplied)
				r.Patch("/{id}/priority", admin.ContactSetPriority)
				r.Delete("/{id}", admin.ContactDelete)
			})

			r.Route("/enquiries", func(r chi.Router) {
				r.Get("/", admin.EnquiriesList)
				r.Get("/{id}", admin.EnquiryShow)
				r.Post("/{id}/read", admin.EnquiryMarkRead)
				r.Post("/{id}/replied", admin.EnquiryMarkReplied)
				r.Patch("/{id}/priority", admin.EnquirySetPriority)
				r.Delete("/{id}", admin.EnquiryDelete)
			})

			r.Route("/nav", func(r chi.Router) {
				r.Get("/export", admin.NavExport)
				r.Post("/import", admin.NavImport)
			})

			r.Route("/media", func(r chi.Router) {
				r.Post("/", admin.MediaUpload)
				r.Delete("/", admin.MediaDelete)
			})

			// User management, admin role only.
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", admin.UsersList)
				r.Post("/", admin.UserCreate)
				r.Post("/{id}/reset-2fa", admin.UserResetTwoFA)
				r.Delete("/{id}", admin.UserDelete)
			})
		})
	})

	return r, formLimiter
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
