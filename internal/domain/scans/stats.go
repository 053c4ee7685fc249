package scans

import "github.com/bryanwahyu/securewatch/internal/domain/risk"

// Stats is the dashboard aggregate over one user's scan collection.
// Recomputed on demand, never persisted.
type Stats struct {
	TotalScans      int `json:"total_scans"`
	PhishingThreats int `json:"phishing_threats"`
	DeepfakeAlerts  int `json:"deepfake_alerts"`
	SafeScans       int `json:"safe_scans"`
	SuspiciousScans int `json:"suspicious_scans"`
	DangerScans     int `json:"danger_scans"`
}

// CalculateStats walks the full collection. A threat/alert is any non-safe
// scan of the corresponding type.
func CalculateStats(list []*Scan) Stats {
	st := Stats{TotalScans: len(list)}
	for _, s := range list {
		if s.Type == risk.TypePhishing && s.RiskLevel != risk.LevelSafe {
			st.PhishingThreats++
		}
		if s.Type == risk.TypeDeepfake && s.RiskLevel != risk.LevelSafe {
			st.DeepfakeAlerts++
		}
		switch s.RiskLevel {
		case risk.LevelSafe:
			st.SafeScans++
		case risk.LevelSuspicious:
			st.SuspiciousScans++
		case risk.LevelDanger:
			st.DangerScans++
		}
	}
	return st
}
