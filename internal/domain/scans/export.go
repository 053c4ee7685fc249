package scans

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bryanwahyu/securewatch/internal/domain/risk"
)

// csvHeader matches the dashboard's history download byte for byte.
const csvHeader = "Type,Input,Risk Score,Risk Level,Verdict,Timestamp"

// csvTimeLayout is an ISO-8601 UTC timestamp with millisecond precision.
const csvTimeLayout = "2006-01-02T15:04:05.000Z"

// WriteCSV renders a scan history export. Input and Verdict are always
// double-quoted; embedded quotes are doubled so the output stays parseable.
func WriteCSV(w io.Writer, list []*Scan) error {
	if _, err := io.WriteString(w, csvHeader); err != nil {
		return err
	}
	for _, s := range list {
		row := fmt.Sprintf("\n%s,%s,%d,%s,%s,%s",
			s.Type,
			quoteField(s.Input),
			s.RiskScore,
			s.RiskLevel,
			quoteField(s.Verdict),
			s.CreatedAt.UTC().Format(csvTimeLayout),
		)
		if _, err := io.WriteString(w, row); err != nil {
			return err
		}
	}
	return nil
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ParseCSV reads an export back into scan records. Only the exported
// columns are recovered; ids, details and user scoping are not part of
// the CSV format.
func ParseCSV(r io.Reader) ([]*Scan, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty export")
	}
	if got := strings.Join(rows[0], ","); got != csvHeader {
		return nil, fmt.Errorf("unexpected header: %q", got)
	}

	var out []*Scan
	for i, row := range rows[1:] {
		if len(row) != 6 {
			return nil, fmt.Errorf("row %d: expected 6 fields, got %d", i+1, len(row))
		}
		score, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: risk score: %w", i+1, err)
		}
		ts, err := time.Parse(csvTimeLayout, row[5])
		if err != nil {
			return nil, fmt.Errorf("row %d: timestamp: %w", i+1, err)
		}
		out = append(out, &Scan{
			Type:      risk.ScanType(row[0]),
			Input:     row[1],
			RiskScore: score,
			RiskLevel: risk.Level(row[3]),
			Verdict:   row[4],
			CreatedAt: ts,
		})
	}
	return out, nil
}
