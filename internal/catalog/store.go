// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog indexes manifest records in SQLite and supports
// full-text search over titles and descriptions.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/agent-catalog/internal/scan"
	"github.com/pdiddy/agent-catalog/pkg/types"
)

const dbFile = "catalog.db"

// Store manages the catalog SQLite database.
type Store struct {
	db           *sql.DB
	catalogDir   string
	manifestFile string
	maxResults   int
}

// NewStore opens or creates the catalog database at
// catalogDir/catalog.db, creating the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.CatalogDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.CatalogDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:           db,
		catalogDir:   cfg.CatalogDir,
		manifestFile: cfg.ManifestFile,
		maxResults:   maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL,
			type TEXT NOT NULL,
			filename TEXT NOT NULL,
			title TEXT,
			description TEXT,
			UNIQUE(path, type)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_type ON records(type)`,
		`CREATE TABLE IF NOT EXISTS manifest_status (
			manifest_path TEXT PRIMARY KEY,
			generated_at TEXT,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='records_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE records_fts USING fts5(title, description, filename, content=records, content_rowid=rowid)`,
			`CREATE TRIGGER records_ai AFTER INSERT ON records BEGIN
				INSERT INTO records_fts(rowid, title, description, filename) VALUES (new.rowid, new.title, new.description, new.filename);
			END`,
			`CREATE TRIGGER records_ad AFTER DELETE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, title, description, filename) VALUES('delete', old.rowid, old.title, old.description, old.filename);
			END`,
			`CREATE TRIGGER records_au AFTER UPDATE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, title, description, filename) VALUES('delete', old.rowid, old.title, old.description, old.filename);
				INSERT INTO records_fts(rowid, title, description, filename) VALUES (new.rowid, new.title, new.description, new.filename);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a catalog indexing run.
type IngestSummary struct {
	Indexed int
	Skipped bool
}

// Ingest reads the metadata manifest and replaces the catalog contents
// with its records. When the manifest file is unchanged since the last
// ingest the catalog is left as-is and Skipped is set.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	info, err := os.Stat(s.manifestFile)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("stat manifest %s: %w", s.manifestFile, err)
	}
	modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

	var storedModTime string
	err = s.db.QueryRowContext(ctx,
		`SELECT file_mod_time FROM manifest_status WHERE manifest_path = ?`, s.manifestFile,
	).Scan(&storedModTime)
	if err == nil && storedModTime == modTime {
		fmt.Fprintf(w, "skipped %s (unchanged)\n", s.manifestFile)
		return IngestSummary{Skipped: true}, nil
	}

	manifest, err := scan.ReadManifest(s.manifestFile)
	if err != nil {
		return IngestSummary{}, err
	}

	if err := s.replaceRecords(ctx, manifest, modTime); err != nil {
		return IngestSummary{}, err
	}

	fmt.Fprintf(w, "indexed %d record(s) from %s\n", len(manifest.Items), s.manifestFile)
	return IngestSummary{Indexed: len(manifest.Items)}, nil
}

func (s *Store) replaceRecords(ctx context.Context, manifest types.Manifest, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Records are recomputed from scratch every run; the catalog mirrors that.
	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (path, type, filename, title, description)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range manifest.Items {
		if _, err := stmt.ExecContext(ctx,
			rec.Path, rec.Type, rec.Filename, rec.Title, rec.Description,
		); err != nil {
			return fmt.Errorf("inserting record %s: %w", rec.Path, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO manifest_status (manifest_path, generated_at, file_mod_time) VALUES (?, ?, ?)
		 ON CONFLICT(manifest_path) DO UPDATE SET
			generated_at=excluded.generated_at, file_mod_time=excluded.file_mod_time`,
		s.manifestFile, manifest.GeneratedAt, modTime,
	); err != nil {
		return fmt.Errorf("updating manifest status: %w", err)
	}

	return tx.Commit()
}
