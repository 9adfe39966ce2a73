// Package storage contains the logic for storing application data in a local SQLite database.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hraharahra/pathfinder/internal/app"
)

// Storage provides access to all objects in the database.
type Storage struct {
	db *sql.DB
}

// New creates a new storage and returns it.
func New(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// InitDB initializes the database and returns it.
func InitDB(dataSourceName string) (*sql.DB, error) {
	v := url.Values{}
	v.Add("_fk", "on")
	v.Add("_journal_mode", "WAL")
	v.Add("_synchronous", "normal")
	dsn := fmt.Sprintf("%s?%s", dataSourceName, v.Encode())
	slog.Debug("Connecting to sqlite", "dsn", dsn)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if err := ApplyMigrations(db); err != nil {
		return nil, err
	}
	slog.Info("Connected to database")
	return db, nil
}

// ApplyMigrations creates missing tables and indexes.
func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// convertGetError converts a database error for fetching an object
// into the domain error.
func convertGetError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return app.ErrNotFound
	}
	return err
}
