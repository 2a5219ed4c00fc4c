// Package sqlite implements repository.JokeRepository on top of SQLite.
//
// WHY SQLITE FOR A STORE THAT NEVER PERSISTS?
// The joke store lives only as long as the process, so the database is opened
// as ":memory:". SQLite still gives us two things for free: AUTOINCREMENT ids
// that are never reused, and rowid order that matches insertion order.
//
// modernc.org/sqlite is a pure Go translation of SQLite, so no C compiler is
// needed and cross-compilation keeps working.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// DB wraps a sql.DB and implements repository.JokeRepository.
type DB struct {
	conn *sql.DB
}

// New opens the database and creates the jokes table.
//
// ONE CONNECTION ONLY:
// Every connection to ":memory:" gets its OWN empty database. sql.DB is a pool,
// so a second pooled connection would see no tables at all. Pinning the pool
// to a single connection keeps every query on the same database, and
// database/sql serializes access to it for us.
func New(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	// an idle connection must never be closed, or the data goes with it
	conn.SetConnMaxLifetime(0)
	conn.SetConnMaxIdleTime(0)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection. For an in-memory database this discards every joke.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema.
//
// AUTOINCREMENT makes SQLite remember the largest id ever handed out, so ids
// keep increasing even if rows were somehow removed. Plain INTEGER PRIMARY KEY
// could reuse the max id after a delete.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS jokes (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			text     TEXT NOT NULL CHECK (length(text) > 0),
			category TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating jokes table: %w", err)
	}
	return nil
}
