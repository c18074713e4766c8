// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"seatrade/internal/models"
)

// EnquiryStore manages general "contact us" submissions. It shares the
// status workflow with ContactStore but carries request metadata instead
// of a product reference.
type EnquiryStore struct {
	db *sql.DB
}

// NewEnquiryStore returns a new EnquiryStore.
func NewEnquiryStore(db *sql.DB) *EnquiryStore {
	return &EnquiryStore{db: db}
}

const enquiryColumns = `id, name, email, subject, message, status, priority,
	source, ip_address, user_agent, replied_at, created_at, updated_at`

func scanEnquiry(scanner interface{ Scan(...any) error }) (*models.Enquiry, error) {
	var e models.Enquiry
	err := scanner.Scan(
		&e.ID, &e.Name, &e.Email, &e.Subject, &e.Message,
		&e.Status, &e.Priority, &e.Source, &e.IPAddress, &e.UserAgent,
		&e.RepliedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns enquiries matching the filter, newest first.
func (s *EnquiryStore) List(f MessageFilter) ([]models.Enquiry, error) {
	where, args := f.where()
	query := `SELECT ` + enquiryColumns + ` FROM enquiries` + where + ` ORDER BY created_at DESC` + f.limits(&args)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list enquiries: %w", err)
	}
	defer rows.Close()

	var items []models.Enquiry
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan enquiry: %w", err)
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

// Recent returns the newest enquiries for the dashboard inbox preview.
func (s *EnquiryStore) Recent(limit int) ([]models.Enquiry, error) {
	return s.List(MessageFilter{Limit: limit})
}

// FindByID retrieves an enquiry by ID. Returns nil if not found.
func (s *EnquiryStore) FindByID(id uuid.UUID) (*models.Enquiry, error) {
	row := s.db.QueryRow(`SELECT `+enquiryColumns+` FROM enquiries WHERE id = $1`, id)
	e, err := scanEnquiry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find enquiry by id: %w", err)
	}
	return e, nil
}

// Create inserts a new enquiry. Status always starts at new.
func (s *EnquiryStore) Create(e *models.Enquiry) (*models.Enquiry, error) {
	priority := e.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	row := s.db.QueryRow(`
		INSERT INTO enquiries (name, email, subject, message, priority, source, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+enquiryColumns,
		e.Name, e.Email, e.Subject, e.Message, priority,
		e.Source, e.IPAddress, e.UserAgent,
	)
	result, err := scanEnquiry(row)
	if err != nil {
		return nil, fmt.Errorf("create enquiry: %w", err)
	}
	return result, nil
}

// MarkAsRead advances an enquiry from new to read.
func (s *EnquiryStore) MarkAsRead(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE enquiries SET status = 'read', updated_at = NOW()
		WHERE id = $1 AND status = 'new'
	`, id)
	if err != nil {
		return fmt.Errorf("mark enquiry read: %w", err)
	}
	return nil
}

// MarkAsReplied advances an enquiry to replied, stamping replied_at on the
// first call only.
func (s *EnquiryStore) MarkAsReplied(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE enquiries SET
			status = 'replied',
			replied_at = COALESCE(replied_at, NOW()),
			updated_at = NOW()
		WHERE id = $1 AND status <> 'replied'
	`, id)
	if err != nil {
		return fmt.Errorf("mark enquiry replied: %w", err)
	}
	return nil
}

// SetPriority changes an enquiry's triage priority.
func (s *EnquiryStore) SetPriority(id uuid.UUID, p models.MessagePriority) error {
	_, err := s.db.Exec(`
		UPDATE enquiries SET priority = $1, updated_at = NOW() WHERE id = $2
	`, p, id)
	if err != nil {
		return fmt.Errorf("set enquiry priority: %w", err)
	}
	return nil
}

// Delete removes an enquiry by ID.
func (s *EnquiryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM enquiries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete enquiry: %w", err)
	}
	return nil
}

// Count returns the number of enquiries.
func (s *EnquiryStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM enquiries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count enquiries: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of enquiries in a given state.
func (s *EnquiryStore) CountByStatus(status models.MessageStatus) (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM enquiries WHERE status = $1`, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("count enquiries by status: %w", err)
	}
	return count, nil
}
