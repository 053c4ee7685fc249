package risk

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var ipPattern = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)

// URLAnalyzer runs the phishing rule set against a raw URL string.
// All checks are deterministic and side-effect free; malformed input is
// absorbed into score contributions, never returned as an error.
type URLAnalyzer struct {
	cfg Config
}

func NewURLAnalyzer(cfg Config) *URLAnalyzer {
	return &URLAnalyzer{cfg: cfg}
}

// Analyze evaluates every rule in declaration order, sums and clamps the
// contributions, and resolves the verdict. Total over its input domain.
func (a *URLAnalyzer) Analyze(rawURL string) Analysis {
	checks := []checkResult{
		checkURLLength(rawURL),
		checkScheme(rawURL),
		a.checkKeywords(rawURL),
		a.checkTLD(rawURL),
		checkIPAddress(rawURL),
		checkSubdomains(rawURL),
		a.checkTyposquatting(rawURL),
		checkAtSymbol(rawURL),
	}

	score, details := aggregate(checks)

	// A clean result must not look like nothing was checked.
	if len(details) == 0 {
		details = []string{
			"No suspicious patterns detected",
			"HTTPS encryption verified",
			"Domain appears legitimate",
		}
	}

	level := a.cfg.Thresholds.LevelFor(score)
	return Analysis{
		Score:   score,
		Level:   level,
		Verdict: VerdictFor(TypePhishing, level),
		Details: details,
	}
}

func checkURLLength(rawURL string) checkResult {
	if len(rawURL) > 75 {
		return checkResult{15, "URL is unusually long (>75 characters)"}
	}
	if len(rawURL) > 50 {
		return checkResult{8, "URL is moderately long (>50 characters)"}
	}
	return checkResult{}
}

// parseURL mirrors the strictness of the WHATWG URL constructor the
// dashboard relied on: a relative or host-less parse counts as a failure.
func parseURL(rawURL string) (*url.URL, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, false
	}
	return u, true
}

func checkScheme(rawURL string) checkResult {
	u, ok := parseURL(rawURL)
	if !ok {
		return checkResult{25, "Invalid URL format"}
	}
	if u.Scheme != "https" {
		return checkResult{20, "URL does not use HTTPS encryption"}
	}
	return checkResult{}
}

func (a *URLAnalyzer) checkKeywords(rawURL string) checkResult {
	lower := strings.ToLower(rawURL)
	var found []string
	for _, kw := range a.cfg.SuspiciousKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	if len(found) >= 3 {
		return checkResult{25, fmt.Sprintf("Multiple suspicious keywords found: %s", strings.Join(found[:3], ", "))}
	}
	if len(found) > 0 {
		return checkResult{10, fmt.Sprintf("Suspicious keyword detected: %s", found[0])}
	}
	return checkResult{}
}

func (a *URLAnalyzer) checkTLD(rawURL string) checkResult {
	lower := strings.ToLower(rawURL)
	for _, tld := range a.cfg.SuspiciousTLDs {
		if strings.Contains(lower, tld) {
			return checkResult{20, fmt.Sprintf("Suspicious top-level domain: %s", tld)}
		}
	}
	return checkResult{}
}

func checkIPAddress(rawURL string) checkResult {
	if ipPattern.MatchString(rawURL) {
		return checkResult{25, "URL uses IP address instead of domain name"}
	}
	return checkResult{}
}

// checkSubdomains counts hostname labels beyond domain+TLD. Parse failure
// is a silent skip here, not a finding.
func checkSubdomains(rawURL string) checkResult {
	u, ok := parseURL(rawURL)
	if !ok {
		return checkResult{}
	}
	depth := len(strings.Split(u.Hostname(), ".")) - 2
	if depth > 3 {
		return checkResult{15, "URL has excessive subdomains"}
	}
	if depth > 1 {
		return checkResult{5, "URL has multiple subdomains"}
	}
	return checkResult{}
}

// checkTyposquatting flags hostnames that contain a trusted brand token
// without ending in the trusted domain itself. First match wins.
func (a *URLAnalyzer) checkTyposquatting(rawURL string) checkResult {
	u, ok := parseURL(rawURL)
	if !ok {
		return checkResult{}
	}
	hostname := strings.ToLower(u.Hostname())
	for _, trusted := range a.cfg.TrustedDomains {
		brand := strings.SplitN(trusted, ".", 2)[0]
		if strings.Contains(hostname, brand) && !strings.HasSuffix(hostname, trusted) {
			return checkResult{30, fmt.Sprintf("Possible typosquatting of %s", trusted)}
		}
	}
	return checkResult{}
}

func checkAtSymbol(rawURL string) checkResult {
	if strings.Contains(rawURL, "@") {
		return checkResult{20, "URL contains @ symbol (possible credential attack)"}
	}
	return checkResult{}
}
