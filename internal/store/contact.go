// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"seatrade/internal/models"
)

// ContactStore manages product-enquiry messages from the public site.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore returns a new ContactStore.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

const contactColumns = `id, name, email, phone, subject, message, status, priority,
	enquiry_type, product_id, product_name, product_image, replied_at, created_at, updated_at`

func scanContact(scanner interface{ Scan(...any) error }) (*models.Contact, error) {
	var c models.Contact
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message,
		&c.Status, &c.Priority, &c.EnquiryType,
		&c.ProductID, &c.ProductName, &c.ProductImage,
		&c.RepliedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// MessageFilter narrows contact and enquiry listings. Empty fields are
// not applied.
type MessageFilter struct {
	Status   models.MessageStatus
	Priority models.MessagePriority
	Since    *time.Time
	Until    *time.Time
	Limit    int
	Offset   int
}

func (f MessageFilter) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Status != "" {
		conds = append(conds, "status = "+arg(f.Status))
	}
	if f.Priority != "" {
		conds = append(conds, "priority = "+arg(f.Priority))
	}
	if f.Since != nil {
		conds = append(conds, "created_at >= "+arg(*f.Since))
	}
	if f.Until != nil {
		conds = append(conds, "created_at < "+arg(*f.Until))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (f MessageFilter) limits(args *[]any) string {
	var sb strings.Builder
	if f.Limit > 0 {
		*args = append(*args, f.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(*args))
	}
	if f.Offset > 0 {
		*args = append(*args, f.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(*args))
	}
	return sb.String()
}

// List returns contacts matching the filter, newest first.
func (s *ContactStore) List(f MessageFilter) ([]models.Contact, error) {
	where, args := f.where()
	query := `SELECT ` + contactColumns + ` FROM contacts` + where + ` ORDER BY created_at DESC` + f.limits(&args)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var items []models.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Recent returns the newest contacts for the dashboard inbox preview.
func (s *ContactStore) Recent(limit int) ([]models.Contact, error) {
	return s.List(MessageFilter{Limit: limit})
}

// FindByID retrieves a contact by ID. Returns nil if not found.
func (s *ContactStore) FindByID(id uuid.UUID) (*models.Contact, error) {
	row := s.db.QueryRow(`SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)
	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find contact by id: %w", err)
	}
	return c, nil
}

// Create inserts a new contact. Status always starts at new; the caller's
// status and replied_at are ignored.
func (s *ContactStore) Create(c *models.Contact) (*models.Contact, error) {
	priority := c.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	row := s.db.QueryRow(`
		INSERT INTO contacts (
			name, email, phone, subject, message, priority, enquiry_type,
			product_id, product_name, product_image
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+contactColumns,
		c.Name, c.Email, c.Phone, c.Subject, c.Message, priority,
		c.EnquiryType, c.ProductID, c.ProductName, c.ProductImage,
	)
	result, err := scanContact(row)
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return result, nil
}

// MarkAsRead advances a contact from new to read. The guard is in the SQL
// so a message already read or replied is left untouched.
func (s *ContactStore) MarkAsRead(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE contacts SET status = 'read', updated_at = NOW()
		WHERE id = $1 AND status = 'new'
	`, id)
	if err != nil {
		return fmt.Errorf("mark contact read: %w", err)
	}
	return nil
}

// MarkAsReplied advances a contact to replied and stamps replied_at once.
// COALESCE keeps the original reply time if the call is repeated.
func (s *ContactStore) MarkAsReplied(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE contacts SET
			status = 'replied',
			replied_at = COALESCE(replied_at, NOW()),
			updated_at = NOW()
		WHERE id = $1 AND status <> 'replied'
	`, id)
	if err != nil {
		return fmt.Errorf("mark contact replied: %w", err)
	}
	return nil
}

// SetPriority changes a contact's triage priority.
func (s *ContactStore) SetPriority(id uuid.UUID, p models.MessagePriority) error {
	_, err := s.db.Exec(`
		UPDATE contacts SET priority = $1, updated_at = NOW() WHERE id = $2
	`, p, id)
	if err != nil {
		return fmt.Errorf("set contact priority: %w", err)
	}
	return nil
}

// Delete removes a contact by ID.
func (s *ContactStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

// Count returns the number of contacts.
func (s *ContactStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM contacts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of contacts in a given state. Used for
// the unread badge in the admin inbox.
func (s *ContactStore) CountByStatus(status models.MessageStatus) (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM contacts WHERE status = $1`, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("count contacts by status: %w", err)
	}
	return count, nil
}
