// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"seatrade/internal/middleware"
	"seatrade/internal/models"
)

// UsersList returns all back-office accounts. Admin only.
func (a *Admin) UsersList(w http.ResponseWriter, r *http.Request) {
	users, err := a.userStore.List()
	if err != nil {
		writeServerError(w, "list users failed", err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

type userCreateRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

// UserCreate adds a back-office account. Admin only.
func (a *Admin) UserCreate(w http.ResponseWriter, r *http.Request) {
	var req userCreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}
	if len(req.Password) < 12 {
		writeError(w, http.StatusBadRequest, "Password must be at least 12 characters.")
		return
	}

	role := models.Role(req.Role)
	if role != models.RoleAdmin && role != models.RoleEditor {
		role = models.RoleEditor
	}

	existing, err := a.userStore.FindByEmail(req.Email)
	if err != nil {
		writeServerError(w, "user lookup failed", err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "An account with this email already exists.")
		return
	}

	created, err := a.userStore.Create(req.Email, req.Password, req.DisplayName, role)
	if err != nil {
		writeServerError(w, "create user failed", err)
		return
	}

	a.auditStore.Log("user", created.ID, "create", a.actor(r))
	writeJSON(w, http.StatusCreated, map[string]any{"user": created})
}

// UserResetTwoFA clears a user's TOTP enrollment so they can re-enroll
// after losing their device. Admin only.
func (a *Admin) UserResetTwoFA(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := a.userStore.ResetTOTP(id); err != nil {
		writeServerError(w, "reset 2fa failed", err)
		return
	}

	a.auditStore.Log("user", id, "reset_2fa", a.actor(r))
	writeSuccess(w)
}

// UserDelete removes a back-office account. Admins cannot delete their
// own account while logged in with it.
func (a *Admin) UserDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && sess.UserID == id {
		writeError(w, http.StatusBadRequest, "You cannot delete your own account.")
		return
	}

	if err := a.userStore.Delete(id); err != nil {
		writeServerError(w, "delete user failed", err)
		return
	}

	a.auditStore.Log("user", id, "delete", a.actor(r))
	writeSuccess(w)
}
