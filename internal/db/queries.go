package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS journal_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT NOT NULL,
		date TEXT NOT NULL,
		content TEXT NOT NULL,
		embedding BLOB NOT NULL,
		chunk_index INTEGER NOT NULL,
		UNIQUE(filename, chunk_index)
	)`,
	`CREATE TABLE IF NOT EXISTS index_meta (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		model TEXT NOT NULL,
		dimensions INTEGER NOT NULL,
		chunk_window INTEGER NOT NULL,
		chunk_overlap INTEGER NOT NULL,
		built_at TEXT NOT NULL
	)`,
}

// Init creates the schema if it is absent. Safe to call repeatedly.
func (s *Store) Init(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Clear deletes every record and the build metadata. Used only on a
// forced rebuild.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM journal_entries`); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM index_meta`); err != nil {
		return fmt.Errorf("failed to clear index metadata: %w", err)
	}
	return nil
}

// Count returns the total number of stored chunk records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal_entries`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}

// InsertChunk upserts one chunk record. Chunk identity is the
// (filename, chunk_index) pair, so re-running an interrupted build
// overwrites instead of duplicating.
func (s *Store) InsertChunk(ctx context.Context, rec *EmbeddingRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO journal_entries (filename, date, content, embedding, chunk_index)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(filename, chunk_index) DO UPDATE SET
			date = excluded.date,
			content = excluded.content,
			embedding = excluded.embedding`,
		rec.Filename, rec.Date, rec.Content, rec.Embedding, rec.ChunkIndex,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chunk: %w", err)
	}
	return nil
}

// ReadAll returns every stored record. Similarity search scans these
// exhaustively; no ordering is guaranteed.
func (s *Store) ReadAll(ctx context.Context) ([]*EmbeddingRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, date, content, embedding, chunk_index FROM journal_entries`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	defer rows.Close()

	var records []*EmbeddingRecord
	for rows.Next() {
		var rec EmbeddingRecord
		if err := rows.Scan(
			&rec.ID, &rec.Filename, &rec.Date, &rec.Content, &rec.Embedding, &rec.ChunkIndex,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// ListEntries returns the distinct (filename, date) pairs in the index,
// newest date first with undated entries last.
func (s *Store) ListEntries(ctx context.Context) ([]EntryInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT filename, date
		 FROM journal_entries
		 ORDER BY (date = 'Unknown'), date DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []EntryInfo
	for rows.Next() {
		var e EntryInfo
		if err := rows.Scan(&e.Filename, &e.Date); err != nil {
			return nil, fmt.Errorf("failed to scan entry listing: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveMeta records the build parameters, replacing any previous record.
func (s *Store) SaveMeta(ctx context.Context, meta *IndexMeta) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO index_meta (id, model, dimensions, chunk_window, chunk_overlap, built_at)
		 VALUES (1, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			model = excluded.model,
			dimensions = excluded.dimensions,
			chunk_window = excluded.chunk_window,
			chunk_overlap = excluded.chunk_overlap,
			built_at = excluded.built_at`,
		meta.Model, meta.Dimensions, meta.ChunkWindow, meta.ChunkOverlap,
		meta.BuiltAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save index metadata: %w", err)
	}
	return nil
}

// Meta returns the recorded build parameters, or nil when no build has
// written them yet.
func (s *Store) Meta(ctx context.Context) (*IndexMeta, error) {
	var meta IndexMeta
	var builtAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT model, dimensions, chunk_window, chunk_overlap, built_at FROM index_meta WHERE id = 1`,
	).Scan(&meta.Model, &meta.Dimensions, &meta.ChunkWindow, &meta.ChunkOverlap, &builtAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read index metadata: %w", err)
	}

	meta.BuiltAt, err = time.Parse(time.RFC3339, builtAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index build time: %w", err)
	}
	return &meta, nil
}
