package risk_test

import (
	"testing"

	"github.com/bryanwahyu/securewatch/internal/domain/risk"
)

func TestLevelForBoundaries(t *testing.T) {
	th := risk.DefaultConfig().Thresholds

	cases := []struct {
		score int
		want  risk.Level
	}{
		{0, risk.LevelSafe},
		{30, risk.LevelSafe},
		{31, risk.LevelSuspicious},
		{70, risk.LevelSuspicious},
		{71, risk.LevelDanger},
		{100, risk.LevelDanger},
	}
	for _, c := range cases {
		if got := th.LevelFor(c.score); got != c.want {
			t.Errorf("LevelFor(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}

func TestCustomThresholds(t *testing.T) {
	th := risk.Thresholds{SafeMax: 5, SuspiciousMax: 50}
	if got := th.LevelFor(6); got != risk.LevelSuspicious {
		t.Errorf("LevelFor(6) = %s, want suspicious", got)
	}
	if got := th.LevelFor(51); got != risk.LevelDanger {
		t.Errorf("LevelFor(51) = %s, want danger", got)
	}
}

func TestVerdictTable(t *testing.T) {
	cases := []struct {
		scanType risk.ScanType
		level    risk.Level
		want     string
	}{
		{risk.TypePhishing, risk.LevelSafe, "URL appears to be safe"},
		{risk.TypePhishing, risk.LevelSuspicious, "URL shows suspicious characteristics"},
		{risk.TypePhishing, risk.LevelDanger, "High probability of phishing attempt"},
		{risk.TypeDeepfake, risk.LevelSafe, "No manipulation detected"},
		{risk.TypeDeepfake, risk.LevelSuspicious, "Possible signs of manipulation"},
		{risk.TypeDeepfake, risk.LevelDanger, "High probability of deepfake content"},
	}
	for _, c := range cases {
		if got := risk.VerdictFor(c.scanType, c.level); got != c.want {
			t.Errorf("VerdictFor(%s, %s) = %q, want %q", c.scanType, c.level, got, c.want)
		}
	}
}

func TestDefaultConfigTables(t *testing.T) {
	cfg := risk.DefaultConfig()
	if len(cfg.SuspiciousKeywords) != 27 {
		t.Errorf("keywords = %d, want 27", len(cfg.SuspiciousKeywords))
	}
	if len(cfg.SuspiciousTLDs) != 16 {
		t.Errorf("tlds = %d, want 16", len(cfg.SuspiciousTLDs))
	}
	if len(cfg.TrustedDomains) != 10 {
		t.Errorf("trusted domains = %d, want 10", len(cfg.TrustedDomains))
	}
	if cfg.Thresholds.SafeMax != 30 || cfg.Thresholds.SuspiciousMax != 70 {
		t.Errorf("thresholds = %+v, want 30/70", cfg.Thresholds)
	}
}
