package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-requirements-extractor/internal/extract"
)

// Listing limits for ListAnalyses
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Analysis is a stored report keyed by the hash of the analyzed text
type Analysis struct {
	ID               uuid.UUID       `json:"id"`
	ContentHash      string          `json:"content_hash"`
	Source           string          `json:"source,omitempty"`
	Report           json.RawMessage `json:"report"`
	RequirementCount int             `json:"requirement_count"`
	ComplexityScore  float64         `json:"complexity_score"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// DecodeReport unmarshals the stored report
func (a *Analysis) DecodeReport() (*extract.Report, error) {
	if len(a.Report) == 0 {
		return nil, errors.New("analysis has no report")
	}
	var report extract.Report
	if err := json.Unmarshal(a.Report, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", a.ID, err)
	}
	return &report, nil
}

// ErrNotFound is returned by operations that require an existing row
var ErrNotFound = errors.New("not found")

// AnalysisSummary is the listing view of an Analysis without the report body
type AnalysisSummary struct {
	ID               uuid.UUID `json:"id"`
	ContentHash      string    `json:"content_hash"`
	Source           string    `json:"source,omitempty"`
	RequirementCount int       `json:"requirement_count"`
	ComplexityScore  float64   `json:"complexity_score"`
	CreatedAt        time.Time `json:"created_at"`
}

// SaveAnalysis stores report under contentHash, replacing any earlier report
// for the same content
func (db *DB) SaveAnalysis(ctx context.Context, contentHash, source string, report *extract.Report) (*Analysis, error) {
	if contentHash == "" {
		return nil, errors.New("content hash is required")
	}
	if report == nil {
		return nil, errors.New("report is required")
	}
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	var a Analysis
	err = db.pool.QueryRow(ctx,
		`INSERT INTO job_analyses (content_hash, source, report, requirement_count, complexity_score)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (content_hash) DO UPDATE SET
		     source = $2,
		     report = $3,
		     requirement_count = $4,
		     complexity_score = $5,
		     updated_at = NOW()
		 RETURNING id, content_hash, source, report, requirement_count, complexity_score,
		           created_at, updated_at`,
		contentHash, source, reportJSON, report.RequirementCount(), report.ComplexityScore,
	).Scan(&a.ID, &a.ContentHash, &a.Source, &a.Report, &a.RequirementCount, &a.ComplexityScore,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return &a, nil
}

// GetAnalysisByHash returns the stored analysis for contentHash, or nil if none exists
func (db *DB) GetAnalysisByHash(ctx context.Context, contentHash string) (*Analysis, error) {
	a, err := db.getAnalysis(ctx, `WHERE content_hash = $1`, contentHash)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis by hash: %w", err)
	}
	return a, nil
}

// GetAnalysis returns the stored analysis with id, or nil if none exists
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	a, err := db.getAnalysis(ctx, `WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return a, nil
}

func (db *DB) getAnalysis(ctx context.Context, where string, arg any) (*Analysis, error) {
	var a Analysis
	err := db.pool.QueryRow(ctx,
		`SELECT id, content_hash, source, report, requirement_count, complexity_score,
		        created_at, updated_at
		 FROM job_analyses `+where,
		arg,
	).Scan(&a.ID, &a.ContentHash, &a.Source, &a.Report, &a.RequirementCount, &a.ComplexityScore,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// ListAnalyses returns summaries newest first
func (db *DB) ListAnalyses(ctx context.Context, limit, offset int) ([]AnalysisSummary, error) {
	limit, offset = normalizePage(limit, offset)

	rows, err := db.pool.Query(ctx,
		`SELECT id, content_hash, source, requirement_count, complexity_score, created_at
		 FROM job_analyses ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	analyses := []AnalysisSummary{}
	for rows.Next() {
		var s AnalysisSummary
		if err := rows.Scan(&s.ID, &s.ContentHash, &s.Source, &s.RequirementCount, &s.ComplexityScore, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return analyses, nil
}

// DeleteAnalysis removes the analysis with id
func (db *DB) DeleteAnalysis(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM job_analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("analysis %s: %w", id, ErrNotFound)
	}
	return nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
