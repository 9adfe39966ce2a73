// Package testutil contains factories for creating test objects in the database.
package testutil

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hraharahra/pathfinder/internal/app/storage"
)

// NewDBInMemory creates and returns a database in memory for tests.
func NewDBInMemory() (*sql.DB, *storage.Storage, Factory) {
	// in-memory DB for faster running tests
	db, err := sql.Open("sqlite3", "file::memory:?_fk=on")
	if err != nil {
		panic(err)
	}
	// an in-memory sqlite exists per connection
	db.SetMaxOpenConns(1)
	if err := storage.ApplyMigrations(db); err != nil {
		panic(err)
	}
	st := storage.New(db)
	factory := NewFactory(st)
	return db, st, factory
}

// TruncateTables will purge data from all tables. This is meant for tests.
func TruncateTables(db *sql.DB) {
	_, err := db.Exec("PRAGMA foreign_keys = 0")
	if err != nil {
		panic(err)
	}
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = "table"`)
	if err != nil {
		panic(err)
	}
	defer rows.Close()
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			panic(err)
		}
		tables = append(tables, name)
	}
	for _, n := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s;", n)); err != nil {
			panic(err)
		}
	}
	for _, n := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM SQLITE_SEQUENCE WHERE name='%s'", n)); err != nil {
			panic(err)
		}
	}
	_, err = db.Exec("PRAGMA foreign_keys = 1")
	if err != nil {
		panic(err)
	}
}
