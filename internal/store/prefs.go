// Package store holds parley's durable client-side preferences in sqlite.
// The stored theme is authoritative for rendering and is read at startup
// before any network round-trip completes.
package store

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"parley/internal/models"
)

// Prefs is the preference store.
type Prefs struct {
	db *sql.DB
}

// Open opens (and creates if needed) the preference database at dir.
func Open(dir string) (*Prefs, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "parley.db"))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	schema := `CREATE TABLE IF NOT EXISTS prefs (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Prefs{db: db}, nil
}

// Close releases the database handle.
func (p *Prefs) Close() error {
	return p.db.Close()
}

const themeKey = "theme"

// Theme returns the stored theme preference, defaulting to light when unset.
func (p *Prefs) Theme() (string, error) {
	var value string
	err := p.db.QueryRow("SELECT value FROM prefs WHERE key = ?", themeKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ThemeLight, nil
	}
	if err != nil {
		return models.ThemeLight, err
	}
	if value != models.ThemeLight && value != models.ThemeDark {
		return models.ThemeLight, nil
	}
	return value, nil
}

// SetTheme stores the theme preference.
func (p *Prefs) SetTheme(theme string) error {
	_, err := p.db.Exec(
		"INSERT INTO prefs(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		themeKey,
		theme,
	)
	return err
}
