// Package store provides the SQLite-backed snapshot catalog.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database; its contents vanish with the process.
const MemoryDSN = ":memory:"

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Store represents a SQLite database connection for snapshot storage.
type Store struct {
	db  *sql.DB
	dsn string
}

// New opens the database at dsn and runs migrations.
//
// The pool is pinned to a single connection: an in-memory SQLite database exists per
// connection, and snapshots must all land in the same one.
func New(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{
		db:  db,
		dsn: dsn,
	}

	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// NewMemory opens a fresh in-memory store.
func NewMemory() (*Store, error) {
	return New(MemoryDSN)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}
