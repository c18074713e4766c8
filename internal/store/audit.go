// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// AuditStore records admin mutations for traceability. Logging is
// best-effort: a failed insert must never fail the mutation it describes.
type AuditStore struct {
	db *sql.DB
}

// NewAuditStore returns a new AuditStore.
func NewAuditStore(db *sql.DB) *AuditStore {
	return &AuditStore{db: db}
}

// AuditEntry is one recorded admin action.
type AuditEntry struct {
	ID        uuid.UUID `json:"id"`
	Entity    string    `json:"entity"`
	EntityID  uuid.UUID `json:"entityId"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"createdAt"`
}

// Log records an action against an entity. Errors are logged and swallowed.
func (s *AuditStore) Log(entity string, entityID uuid.UUID, action, actor string) {
	_, err := s.db.Exec(`
		INSERT INTO audit_log (entity, entity_id, action, actor)
		VALUES ($1, $2, $3, $4)
	`, entity, entityID, action, actor)
	if err != nil {
		slog.Warn("failed to write audit log entry",
			"entity", entity, "entity_id", entityID, "action", action, "error", err)
	}
}

// Recent returns the newest audit entries, up to limit.
func (s *AuditStore) Recent(limit int) ([]AuditEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, entity, entity_id, action, actor, created_at
		FROM audit_log
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.Entity, &e.EntityID, &e.Action, &e.Actor, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
