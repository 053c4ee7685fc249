package scans

import (
	"time"

	"github.com/bryanwahyu/securewatch/internal/domain/risk"
)

// ID tipe untuk Scan
type ScanID string

// Aggregate Root: Scan. Immutable once created; records are only ever
// created and deleted, never updated.
type Scan struct {
	ID          ScanID        `json:"id"`
	UserID      string        `json:"user_id"`
	Type        risk.ScanType `json:"type"`
	Input       string        `json:"input"`
	RiskScore   int           `json:"risk_score"`
	RiskLevel   risk.Level    `json:"risk_level"`
	Verdict     string        `json:"verdict"`
	Details     []string      `json:"details"`
	EvidenceURL string        `json:"evidence_url,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}
