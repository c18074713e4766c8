// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"time"

	"seatrade/internal/models"
	"seatrade/internal/store"
)

// messageFilterFromQuery builds a message filter from the shared inbox
// query parameters. Invalid status or priority values answer with the
// second return value set.
func messageFilterFromQuery(r *http.Request) (store.MessageFilter, string) {
	var f store.MessageFilter

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.MessageStatus(raw)
		if !status.Valid() {
			return f, "invalid status filter"
		}
		f.Status = status
	}
	if raw := r.URL.Query().Get("priority"); raw != "" {
		priority := models.MessagePriority(raw)
		if !priority.Valid() {
			return f, "invalid priority filter"
		}
		f.Priority = priority
	}
	if raw := r.URL.Query().Get("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, "invalid since timestamp"
		}
		f.Since = &t
	}
	if raw := r.URL.Query().Get("until"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, "invalid until timestamp"
		}
		f.Until = &t
	}
	f.Limit = queryInt(r, "limit", 0)
	f.Offset = queryInt(r, "offset", 0)
	return f, ""
}

// --- Contacts inbox ---

// ContactsList returns product-enquiry messages, filterable by status,
// priority, and date window.
func (a *Admin) ContactsList(w http.ResponseWriter, r *http.Request) {
	filter, msg := messageFilterFromQuery(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	contacts, err := a.contactStore.List(filter)
	if err != nil {
		writeServerError(w, "list contacts failed", err)
		return
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"contacts": contacts})
}

// ContactShow returns one message.
func (a *Admin) ContactShow(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	contact, err := a.contactStore.FindByID(id)
	if err != nil {
		writeServerError(w, "find contact failed", err)
		return
	}
	if contact == nil {
		writeError(w, http.StatusNotFound, "contact not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contact": contact})
}

// ContactMarkRead advances a new message to read. Messages already past
// new are left alone; the call still succeeds.
func (a *Admin) ContactMarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	if err := a.contactStore.MarkAsRead(id); err != nil {
		writeServerError(w, "mark contact read failed", err)
		return
	}
	writeSuccess(w)
}

// ContactMarkReplied moves a message to the terminal replied state and
// stamps the reply time once.
func (a *Admin) ContactMarkReplied(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	if err := a.contactStore.MarkAsReplied(id); err != nil {
		writeServerError(w, "mark contact replied failed", err)
		return
	}
	a.auditStore.Log("contact", id, "replied", a.actor(r))
	writeSuccess(w)
}

type priorityRequest struct {
	Priority string `json:"priority"`
}

// ContactSetPriority changes the triage priority.
func (a *Admin) ContactSetPriority(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	var req priorityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	priority := models.MessagePriority(req.Priority)
	if !priority.Valid() {
		writeError(w, http.StatusBadRequest, "invalid priority")
		return
	}

	if err := a.contactStore.SetPriority(id, priority); err != nil {
		writeServerError(w, "set contact priority failed", err)
		return
	}
	writeSuccess(w)
}

// ContactDelete removes a message from the inbox.
func (a *Admin) ContactDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	if err := a.contactStore.Delete(id); err != nil {
		writeServerError(w, "delete contact failed", err)
		return
	}

	a.auditStore.Log("contact", id, "delete", a.actor(r))
	a.bumpStats(func() error { return a.statsStore.Decrement(models.CounterContacts) })
	writeSuccess(w)
}

// --- Enquiries inbox ---

// EnquiriesList returns general contact-us messages with the same
// filters as the contacts inbox.
func (a *Admin) EnquiriesList(w http.ResponseWriter, r *http.Request) {
	filter, msg := messageFilterFromQuery(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	enquiries, err := a.enquiryStore.List(filter)
	if err != nil {
		writeServerError(w, "list enquiries failed", err)
		return
	}
	if enquiries == nil {
		enquiries = []models.Enquiry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"enquiries": enquiries})
}

// EnquiryShow returns one enquiry.
func (a *Admin) EnquiryShow(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid enquiry id")
		return
	}

	enquiry, err := a.enquiryStore.FindByID(id)
	if err != nil {
		writeServerError(w, "find enquiry failed", err)
		return
	}
	if enquiry == nil {
		writeError(w, http.StatusNotFound, "enquiry not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"enquiry": enquiry})
}

// EnquiryMarkRead advances a new enquiry to read.
func (a *Admin) EnquiryMarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid enquiry id")
		return
	}

	if err := a.enquiryStore.MarkAsRead(id); err != nil {
		writeServerError(w, "mark enquiry read failed", err)
		return
	}
	writeSuccess(w)
}

// EnquiryMarkReplied moves an enquiry to replied.
func (a *Admin) EnquiryMarkReplied(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid enquiry id")
		return
	}

	if err := a.enquiryStore.MarkAsReplied(id); err != nil {
		writeServerError(w, "mark enquiry replied failed", err)
		return
	}
	a.auditStore.Log("enquiry", id, "replied", a.actor(r))
	writeSuccess(w)
}

// EnquirySetPriority changes the triage priority.
func (a *Admin) EnquirySetPriority(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid enquiry id")
		return
	}

	var req priorityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	priority := models.MessagePriority(req.Priority)
	if !priority.Valid() {
		writeError(w, http.StatusBadRequest, "invalid priority")
		return
	}

	if err := a.enquiryStore.SetPriority(id, priority); err != nil {
		writeServerError(w, "set enquiry priority failed", err)
		return
	}
	writeSuccess(w)
}

// EnquiryDelete removes an enquiry from the inbox.
func (a *Admin) EnquiryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid enquiry id")
		return
	}

	if err := a.enquiryStore.Delete(id); err != nil {
		writeServerError(w, "delete enquiry failed", err)
		return
	}

	a.auditStore.Log("enquiry", id, "delete", a.actor(r))
	a.bumpStats(func() error { return a.statsStore.Decrement(models.CounterEnquiries) })
	writeSuccess(w)
}
