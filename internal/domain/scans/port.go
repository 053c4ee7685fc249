package scans

import (
	"context"
	"io"
)

// Repository port (interface untuk persistence). Records are partitioned
// by user id; no operation crosses that boundary.
type Repository interface {
	Save(ctx context.Context, s *Scan) error
	Get(ctx context.Context, userID string, id ScanID) (*Scan, error)
	Latest(ctx context.Context, userID string, limit int) ([]*Scan, error)
	All(ctx context.Context, userID string) ([]*Scan, error)
	Paginate(ctx context.Context, userID string, page, pageSize int, filters map[string]interface{}) (PaginatedResult, error)
	Count(ctx context.Context, userID string, filters map[string]interface{}) (int64, error)
	Delete(ctx context.Context, userID string, id ScanID) error
	DeleteAll(ctx context.Context, userID string) error
}

// EvidenceStore port (interface untuk penyimpanan media evidence)
type EvidenceStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}
