// Package store archives completed insight runs in SQLite, so earlier
// reports stay intact whatever happens to later runs.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/leeguhn/crawler/internal/idgen"
)

// ErrNotFound is returned when a report id does not exist.
var ErrNotFound = errors.New("store: report not found")

// Report is one archived insight run.
type Report struct {
	ID           string
	CSVPath      string
	Instruction  string
	Model        string
	ReviewCount  int
	ChunkCount   int
	ChunkReports []string
	Final        string
	CreatedAt    time.Time
}

// Store wraps the report archive database.
type Store struct {
	DB    *sql.DB
	NewID idgen.Generator
}

// NewStore creates a Store from an already-opened database. Open the
// database with the Schema applied.
func NewStore(db *sql.DB) *Store {
	return &Store{DB: db, NewID: idgen.Default}
}

// Save archives a run and returns its assigned id.
func (s *Store) Save(ctx context.Context, r *Report) (string, error) {
	id := s.NewID()
	now := time.Now().UnixMilli()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reports (id, csv_path, instruction, model, review_count, chunk_count, final_report, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, r.CSVPath, r.Instruction, r.Model, r.ReviewCount, r.ChunkCount, r.Final, now)
	if err != nil {
		return "", fmt.Errorf("store: insert report: %w", err)
	}

	for i, content := range r.ChunkReports {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO chunk_reports (report_id, chunk_index, content) VALUES (?, ?, ?)`,
			id, i, content)
		if err != nil {
			return "", fmt.Errorf("store: insert chunk report %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("store: commit: %w", err)
	}
	return id, nil
}

// Get loads one archived run, chunk reports included.
func (s *Store) Get(ctx context.Context, id string) (*Report, error) {
	r := &Report{ID: id}
	var createdAt int64
	err := s.DB.QueryRowContext(ctx, `
		SELECT csv_path, instruction, model, review_count, chunk_count, final_report, created_at
		FROM reports WHERE id = ?`, id).
		Scan(&r.CSVPath, &r.Instruction, &r.Model, &r.ReviewCount, &r.ChunkCount, &r.Final, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get report: %w", err)
	}
	r.CreatedAt = time.UnixMilli(createdAt)

	rows, err := s.DB.QueryContext(ctx, `
		SELECT content FROM chunk_reports WHERE report_id = ? ORDER BY chunk_index`, id)
	if err != nil {
		return nil, fmt.Errorf("store: get chunk reports: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("store: scan chunk report: %w", err)
		}
		r.ChunkReports = append(r.ChunkReports, content)
	}
	return r, rows.Err()
}

// List returns the most recent runs, newest first, without chunk
// reports. limit <= 0 defaults to 20.
func (s *Store) List(ctx context.Context, limit int) ([]*Report, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, csv_path, instruction, model, review_count, chunk_count, final_report, created_at
		FROM reports ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list reports: %w", err)
	}
	defer rows.Close()

	var out []*Report
	for rows.Next() {
		r := &Report{}
		var createdAt int64
		if err := rows.Scan(&r.ID, &r.CSVPath, &r.Instruction, &r.Model, &r.ReviewCount, &r.ChunkCount, &r.Final, &createdAt); err != nil {
			return nil, fmt.Errorf("store: scan report: %w", err)
		}
		r.CreatedAt = time.UnixMilli(createdAt)
		out = append(out, r)
	}
	return out, rows.Err()
}
