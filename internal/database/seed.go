package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data.
// It creates a default admin user and a small navigation taxonomy so the
// public site renders something on a fresh install. The admin will be
// prompted to set up 2FA on first login (totp_enabled = false).
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Insert default admin user. 2FA is not enabled — they must set it up
	// on first login.
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@seatrade.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// Insert the starter navigation taxonomy.
	seedCategories := []struct {
		name  string
		href  string
		order int
	}{
		{"Valves", "/products/valves", 1},
		{"Pumps", "/products/pumps", 2},
		{"Deck Equipment", "/products/deck-equipment", 3},
	}
	for _, c := range seedCategories {
		_, err = db.Exec(`
			INSERT INTO categories (name, href, is_category, visible, sort_order)
			VALUES ($1, $2, TRUE, TRUE, $3)
		`, c.name, c.href, c.order)
		if err != nil {
			return fmt.Errorf("seed insert category: %w", err)
		}
	}

	// Initialise the dashboard stats row from actual counts.
	_, err = db.Exec(`
		INSERT INTO dashboard_stats (id, products, categories, subcategories, contacts, enquiries)
		VALUES (1,
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM subcategories),
			(SELECT COUNT(*) FROM contacts),
			(SELECT COUNT(*) FROM enquiries))
		ON CONFLICT (id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("seed insert stats: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@seatrade.local",
		"password", "admin",
	)

	return nil
}
