// Package sqlite stores catalog definitions in an SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/lexreg/internal/log"
)

// Schema creates the catalog tables. Every statement is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS concepts (
	code      INTEGER PRIMARY KEY,
	name      TEXT NOT NULL,
	since     TEXT NOT NULL DEFAULT '',
	path      TEXT NOT NULL DEFAULT '[]',
	evaluator TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS concept_revisions (
	concept_code INTEGER NOT NULL REFERENCES concepts(code) ON DELETE CASCADE,
	position     INTEGER NOT NULL,
	since        TEXT NOT NULL DEFAULT '',
	version      INTEGER NOT NULL DEFAULT 0,
	path         TEXT,
	evaluator    TEXT,
	PRIMARY KEY (concept_code, position)
);

CREATE TABLE IF NOT EXISTS articles (
	code  INTEGER PRIMARY KEY,
	name  TEXT NOT NULL,
	since TEXT NOT NULL DEFAULT '',
	seqs  INTEGER NOT NULL DEFAULT 0,
	role  INTEGER NOT NULL DEFAULT 0,
	sums  TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS article_revisions (
	article_code INTEGER NOT NULL REFERENCES articles(code) ON DELETE CASCADE,
	position     INTEGER NOT NULL,
	since        TEXT NOT NULL DEFAULT '',
	version      INTEGER NOT NULL DEFAULT 0,
	seqs         INTEGER,
	role         INTEGER,
	sums         TEXT,
	PRIMARY KEY (article_code, position)
);
`

// DB owns the connection to a catalog database.
type DB struct {
	conn *sql.DB
}

// NewDB opens (creating if needed) the catalog database at path and ensures the schema.
// The parent directory is created with 0700 permissions when missing.
func NewDB(ctx context.Context, path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := EnsureSchema(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	log.Debug(log.CatDB, "opened catalog database", "path", path)
	return &DB{conn: conn}, nil
}

// OpenReadOnly opens an existing catalog database without modifying it.
func OpenReadOnly(ctx context.Context, path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("catalog database: %w", err)
	}

	conn, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &DB{conn: conn}, nil
}

// EnsureSchema creates the catalog tables on conn if they do not exist.
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create catalog schema: %w", err)
	}
	return nil
}

// Catalogs returns the repository for catalog definitions.
func (db *DB) Catalogs() *CatalogRepository {
	return newCatalogRepository(db.conn)
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
