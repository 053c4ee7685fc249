package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"

	domain "github.com/bryanwahyu/securewatch/internal/domain/scans"
)

const scanColumns = `id, user_id, scan_type, input, risk_score, risk_level, verdict, details, evidence_url, created_at`

type ScanRepository struct {
	db *sql.DB
}

func NewScanRepository(db *sql.DB) *ScanRepository {
	return &ScanRepository{db: db}
}

// Save inserts a record. Scans are immutable, so there is no upsert path.
func (r *ScanRepository) Save(ctx context.Context, s *domain.Scan) error {
	details, err := json.Marshal(s.Details)
	if err != nil {
		return fmt.Errorf("encoding details: %w", err)
	}
	const q = `
INSERT INTO scan_results (` + scanColumns + `)
VALUES (?,?,?,?,?,?,?,?,?,?);`
	_, err = r.db.ExecContext(ctx, q,
		s.ID, s.UserID, s.Type, s.Input, s.RiskScore, s.RiskLevel, s.Verdict,
		string(details), s.EvidenceURL, s.CreatedAt,
	)
	return err
}

// Get by ID + user
func (r *ScanRepository) Get(ctx context.Context, userID string, id domain.ScanID) (*domain.Scan, error) {
	const q = `
SELECT ` + scanColumns + `
FROM scan_results
WHERE user_id=? AND id=? LIMIT 1;`
	return scanRow(r.db.QueryRowContext(ctx, q, userID, id))
}

// Latest scans per user, most recent first
func (r *ScanRepository) Latest(ctx context.Context, userID string, limit int) ([]*domain.Scan, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT ` + scanColumns + `
FROM scan_results
WHERE user_id=? ORDER BY created_at DESC, id DESC LIMIT ?;`
	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

// All returns the user's full collection, most recent first.
func (r *ScanRepository) All(ctx context.Context, userID string) ([]*domain.Scan, error) {
	const q = `
SELECT ` + scanColumns + `
FROM scan_results
WHERE user_id=? ORDER BY created_at DESC, id DESC;`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

// Paginate with offset + limit (classic pagination)
func (r *ScanRepository) Paginate(ctx context.Context, userID string, page, pageSize int, filters map[string]interface{}) (domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := `
SELECT ` + scanColumns + `
FROM scan_results
WHERE user_id=?`
	args := []interface{}{userID}
	query, args = applyFilters(query, args, filters)
	query += "\nORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("querying scans: %w", err)
	}
	scans, err := scanRows(rows)
	if err != nil {
		return domain.PaginatedResult{}, err
	}

	total, err := r.Count(ctx, userID, filters)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("getting total count: %w", err)
	}

	return domain.PaginatedResult{
		Data:       scans,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// Count returns the total number of records matching the given filters
func (r *ScanRepository) Count(ctx context.Context, userID string, filters map[string]interface{}) (int64, error) {
	query := "SELECT COUNT(*) FROM scan_results WHERE user_id = ?"
	args := []interface{}{userID}
	query, args = applyFilters(query, args, filters)

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes one record owned by the user.
func (r *ScanRepository) Delete(ctx context.Context, userID string, id domain.ScanID) error {
	const q = `DELETE FROM scan_results WHERE user_id=? AND id=?;`
	_, err := r.db.ExecContext(ctx, q, userID, id)
	return err
}

// DeleteAll wipes the user's partition.
func (r *ScanRepository) DeleteAll(ctx context.Context, userID string) error {
	const q = `DELETE FROM scan_results WHERE user_id=?;`
	_, err := r.db.ExecContext(ctx, q, userID)
	return err
}

func applyFilters(query string, args []interface{}, filters map[string]interface{}) (string, []interface{}) {
	if filters == nil {
		return query, args
	}
	if v, ok := filters["type"]; ok {
		query += " AND scan_type = ?"
		args = append(args, v)
	}
	if v, ok := filters["level"]; ok {
		query += " AND risk_level = ?"
		args = append(args, v)
	}
	return query, args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRow(row rowScanner) (*domain.Scan, error) {
	var s domain.Scan
	var details string
	if err := row.Scan(
		&s.ID, &s.UserID, &s.Type, &s.Input, &s.RiskScore, &s.RiskLevel, &s.Verdict,
		&details, &s.EvidenceURL, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(details), &s.Details); err != nil {
		return nil, fmt.Errorf("decoding details: %w", err)
	}
	return &s, nil
}

func scanRows(rows *sql.Rows) ([]*domain.Scan, error) {
	defer rows.Close()
	var out []*domain.Scan
	for rows.Next() {
		s, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
