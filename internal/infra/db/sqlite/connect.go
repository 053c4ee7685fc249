package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure-Go sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS scan_results (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  scan_type TEXT NOT NULL,
  input TEXT NOT NULL,
  risk_score INTEGER NOT NULL,
  risk_level TEXT NOT NULL,
  verdict TEXT NOT NULL,
  details TEXT NOT NULL,
  evidence_url TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scan_results_user ON scan_results(user_id, created_at);
`

// Connect opens (and bootstraps) the embedded database. A single writer
// connection avoids sqlite busy errors under concurrent scans.
func Connect(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx2, `PRAGMA journal_mode = WAL; PRAGMA busy_timeout = 5000;`); err != nil {
		return nil, fmt.Errorf("sqlite pragmas: %w", err)
	}
	if _, err := db.ExecContext(ctx2, schema); err != nil {
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return db, nil
}
