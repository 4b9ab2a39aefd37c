package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data.
// It creates a demo project pointing at a public site so the pipeline can
// be exercised immediately. No-op if any project exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM projects").Scan(&count); err != nil {
		return fmt.Errorf("seed check projects: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	_, err := db.Exec(`
		INSERT INTO projects (name, source_url, brand, status)
		VALUES ($1, $2, $3, $4)
	`, "Demo Project", "https://example.com", "Example", "new")
	if err != nil {
		return fmt.Errorf("seed insert project: %w", err)
	}

	slog.Info("database seeded with demo project", "url", "https://example.com")
	return nil
}
