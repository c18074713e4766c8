// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageStatus is the workflow state of a contact or enquiry message.
// It only ever moves forward: new → read → replied.
type MessageStatus string

const (
	StatusNew     MessageStatus = "new"
	StatusRead    MessageStatus = "read"
	StatusReplied MessageStatus = "replied"
)

// statusRank orders the workflow states for transition checks.
var statusRank = map[MessageStatus]int{
	StatusNew:     0,
	StatusRead:    1,
	StatusReplied: 2,
}

// Valid reports whether s is a known workflow state.
func (s MessageStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanAdvanceTo reports whether moving from s to next is a legal forward
// transition. Replied is terminal.
func (s MessageStatus) CanAdvanceTo(next MessageStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	return statusRank[next] > statusRank[s]
}

// MessagePriority is the admin triage priority of a message.
type MessagePriority string

const (
	PriorityLow    MessagePriority = "low"
	PriorityMedium MessagePriority = "medium"
	PriorityHigh   MessagePriority = "high"
)

// Valid reports whether p is a known priority.
func (p MessagePriority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Contact is a product-enquiry form submission from the public site. It
// optionally references the product it was sent from; the product name and
// image are denormalised so the message stays meaningful if the product is
// later removed.
type Contact struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Subject      string          `json:"subject"`
	Message      string          `json:"message"`
	Status       MessageStatus   `json:"status"`
	Priority     MessagePriority `json:"priority"`
	EnquiryType  string          `json:"enquiryType"`
	ProductID    *uuid.UUID      `json:"productId,omitempty"`
	ProductName  *string         `json:"productName,omitempty"`
	ProductImage *string         `json:"productImage,omitempty"`
	RepliedAt    *time.Time      `json:"repliedAt,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Enquiry is a general "contact us" form submission, carrying request
// metadata (source page, client IP, user agent) instead of a product link.
type Enquiry struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Subject   string          `json:"subject"`
	Message   string          `json:"message"`
	Status    MessageStatus   `json:"status"`
	Priority  MessagePriority `json:"priority"`
	Source    string          `json:"source"`
	IPAddress string          `json:"ipAddress"`
	UserAgent string          `json:"userAgent"`
	RepliedAt *time.Time      `json:"repliedAt,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
