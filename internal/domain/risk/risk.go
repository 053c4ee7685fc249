package risk

// Level enum
type Level string

const (
	LevelSafe       Level = "safe"
	LevelSuspicious Level = "suspicious"
	LevelDanger     Level = "danger"
)

// ScanType enum
type ScanType string

const (
	TypePhishing ScanType = "phishing"
	TypeDeepfake ScanType = "deepfake"
)

// MediaType enum for deepfake scans
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Analysis is the result of one pipeline run. Built fresh per scan,
// never mutated afterwards.
type Analysis struct {
	Score   int      `json:"score"`
	Level   Level    `json:"level"`
	Verdict string   `json:"verdict"`
	Details []string `json:"details"`
}

// Thresholds map a clamped score to a Level.
type Thresholds struct {
	SafeMax       int `yaml:"safeMax"`
	SuspiciousMax int `yaml:"suspiciousMax"`
}

// LevelFor buckets a score. Boundaries are inclusive on the lower side:
// 30 is still safe, 70 is still suspicious.
func (t Thresholds) LevelFor(score int) Level {
	if score <= t.SafeMax {
		return LevelSafe
	}
	if score <= t.SuspiciousMax {
		return LevelSuspicious
	}
	return LevelDanger
}

// Config holds the fixed constant tables the rule sets evaluate against.
// Loaded once at startup and passed into the analyzer constructors.
type Config struct {
	Thresholds         Thresholds `yaml:"thresholds"`
	SuspiciousKeywords []string   `yaml:"suspiciousKeywords"`
	SuspiciousTLDs     []string   `yaml:"suspiciousTlds"`
	TrustedDomains     []string   `yaml:"trustedDomains"`
}

// DefaultConfig returns the built-in tables.
func DefaultConfig() Config {
	return Config{
		Thresholds: Thresholds{SafeMax: 30, SuspiciousMax: 70},
		SuspiciousKeywords: []string{
			"login", "signin", "verify", "account", "password", "secure", "update",
			"confirm", "banking", "paypal", "amazon", "apple", "microsoft", "google",
			"facebook", "netflix", "support", "help", "urgent", "suspended", "locked",
			"unusual", "activity", "recover", "restore", "validate", "expire",
		},
		SuspiciousTLDs: []string{
			".xyz", ".top", ".tk", ".ml", ".ga", ".cf", ".gq", ".pw", ".cc",
			".click", ".link", ".work", ".date", ".download", ".stream", ".racing",
		},
		TrustedDomains: []string{
			"google.com", "facebook.com", "amazon.com", "apple.com", "microsoft.com",
			"github.com", "twitter.com", "linkedin.com", "netflix.com", "paypal.com",
		},
	}
}

// checkResult is one rule's contribution: a non-negative score and an
// optional human-readable detail.
type checkResult struct {
	score  int
	detail string
}

// clampScore keeps the aggregate inside [0,100]. Contributions are all
// non-negative but the lower bound is enforced anyway.
func clampScore(total int) int {
	if total > 100 {
		return 100
	}
	if total < 0 {
		return 0
	}
	return total
}

// aggregate sums the checks in evaluation order and collects non-empty
// details in that same order.
func aggregate(checks []checkResult) (int, []string) {
	total := 0
	var details []string
	for _, c := range checks {
		total += c.score
		if c.detail != "" {
			details = append(details, c.detail)
		}
	}
	return clampScore(total), details
}
