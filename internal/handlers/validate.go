package handlers

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Validation limits for catalog and message fields.
const (
	maxNameLen      = 300
	maxSlugLen      = 300
	maxShortDescLen = 1_000
	maxLongDescLen  = 100_000
	maxHrefLen      = 500
	maxSubjectLen   = 300
	maxMessageLen   = 10_000
	maxEmailLen     = 320
	maxPhoneLen     = 50
)

// validateCategory checks category inputs and returns the first error found.
func validateCategory(name, href string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 300 characters)."
	}
	href = strings.TrimSpace(href)
	if href == "" {
		return "Href is required."
	}
	if utf8.RuneCountInString(href) > maxHrefLen {
		return "Href is too long (max 500 characters)."
	}
	return ""
}

// validateProduct checks product inputs and returns the first error found.
func validateProduct(name, slug, shortDesc, longDesc, cardImage string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	if strings.TrimSpace(shortDesc) == "" {
		return "Short description is required."
	}
	if utf8.RuneCountInString(shortDesc) > maxShortDescLen {
		return "Short description is too long (max 1,000 characters)."
	}
	if strings.TrimSpace(cardImage) == "" {
		return "Card image is required."
	}
	if utf8.RuneCountInString(longDesc) > maxLongDescLen {
		return "Long description is too long (max 100,000 characters)."
	}
	return ""
}

// validateMessage checks the shared fields of contact and enquiry
// submissions.
func validateMessage(name, email, subject, message string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 300 characters)."
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required."
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return "Email is too long."
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "Email address is not valid."
	}
	if strings.TrimSpace(subject) == "" {
		return "Subject is required."
	}
	if utf8.RuneCountInString(subject) > maxSubjectLen {
		return "Subject is too long (max 300 characters)."
	}
	if strings.TrimSpace(message) == "" {
		return "Message is required."
	}
	if utf8.RuneCountInString(message) > maxMessageLen {
		return "Message is too long (max 10,000 characters)."
	}
	return ""
}
