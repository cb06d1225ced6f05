package repositories

import "database/sql"

// Store is the MySQL-backed data access used by the sync and report
// services. Methods take a context so callers control per-query timeouts.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}
