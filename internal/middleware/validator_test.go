package middleware_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/bryanwahyu/securewatch/internal/domain/risk"
	"github.com/bryanwahyu/securewatch/internal/middleware"
)

func TestValidateUserID(t *testing.T) {
	for _, ok := range []string{"alice", "user_01", "a-b-c", strings.Repeat("x", 64)} {
		if err := middleware.ValidateUserID(ok); err != nil {
			t.Errorf("ValidateUserID(%q) = %v, want nil", ok, err)
		}
	}
	for _, bad := range []string{"", "a b", "user/../etc", strings.Repeat("x", 65), "ünïcode"} {
		err := middleware.ValidateUserID(bad)
		if !errors.Is(err, middleware.ErrInvalid) {
			t.Errorf("ValidateUserID(%q) = %v, want ErrInvalid", bad, err)
		}
	}
}

func TestValidateScanID(t *testing.T) {
	good := "3b9f0a6e-1f0e-4a57-9b1a-3c8d2e4f5a6b-phishing"
	if err := middleware.ValidateScanID(good); err != nil {
		t.Fatalf("ValidateScanID(%q) = %v", good, err)
	}
	for _, bad := range []string{
		"",
		"3b9f0a6e-1f0e-4a57-9b1a-3c8d2e4f5a6b",          // missing type suffix
		"3b9f0a6e-1f0e-4a57-9b1a-3c8d2e4f5a6b-malware",  // unknown type
		"3B9F0A6E-1f0e-4a57-9b1a-3c8d2e4f5a6b-phishing", // uppercase uuid
		"not-a-uuid-phishing",
	} {
		if err := middleware.ValidateScanID(bad); !errors.Is(err, middleware.ErrInvalid) {
			t.Errorf("ValidateScanID(%q) = %v, want ErrInvalid", bad, err)
		}
	}
}

func TestSanitizeScanURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{"example.com", "https://example.com"},
		{"  example.com  ", "https://example.com"},
		{"http://example.com", "http://example.com"},
		{"https://example.com", "https://example.com"},
		{"", ""},
	}
	for _, c := range cases {
		if got := middleware.SanitizeScanURL(c.in); got != c.want {
			t.Errorf("SanitizeScanURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidateScanURL(t *testing.T) {
	if err := middleware.ValidateScanURL("not even a url"); err != nil {
		t.Errorf("non-empty submission rejected: %v", err)
	}
	for _, bad := range []string{"", "   ", "\t\n"} {
		if err := middleware.ValidateScanURL(bad); !errors.Is(err, middleware.ErrInvalid) {
			t.Errorf("ValidateScanURL(%q) = %v, want ErrInvalid", bad, err)
		}
	}
}

func TestMediaTypeOf(t *testing.T) {
	cases := []struct {
		contentType string
		want        risk.MediaType
	}{
		{"image/png", risk.MediaImage},
		{"image/jpeg", risk.MediaImage},
		{"IMAGE/PNG", risk.MediaImage},
		{"video/mp4", risk.MediaVideo},
		{"video/quicktime", risk.MediaVideo},
		{"video/webm; codecs=vp9", risk.MediaVideo},
	}
	for _, c := range cases {
		got, err := middleware.MediaTypeOf(c.contentType)
		if err != nil || got != c.want {
			t.Errorf("MediaTypeOf(%q) = %s, %v; want %s", c.contentType, got, err, c.want)
		}
	}

	for _, bad := range []string{"", "application/pdf", "audio/mpeg", "image/svg+xml"} {
		if _, err := middleware.MediaTypeOf(bad); !errors.Is(err, middleware.ErrInvalid) {
			t.Errorf("MediaTypeOf(%q) = %v, want ErrInvalid", bad, err)
		}
	}
}

func TestValidateLimitAndPageSize(t *testing.T) {
	if got := middleware.ValidateLimit(0); got != 20 {
		t.Errorf("ValidateLimit(0) = %d, want default 20", got)
	}
	if got := middleware.ValidateLimit(500); got != 100 {
		t.Errorf("ValidateLimit(500) = %d, want cap 100", got)
	}
	if got := middleware.ValidateLimit(7); got != 7 {
		t.Errorf("ValidateLimit(7) = %d", got)
	}
	if got := middleware.ValidatePageSize(-1); got != 20 {
		t.Errorf("ValidatePageSize(-1) = %d, want default 20", got)
	}
	if got := middleware.ValidatePageSize(101); got != 100 {
		t.Errorf("ValidatePageSize(101) = %d, want cap 100", got)
	}
}

func TestHistoryFilters(t *testing.T) {
	if got := middleware.HistoryFilters("", ""); got != nil {
		t.Errorf("no filters = %v, want nil", got)
	}
	if got := middleware.HistoryFilters("malware", "extreme"); got != nil {
		t.Errorf("unknown values = %v, want nil", got)
	}
	got := middleware.HistoryFilters("phishing", "danger")
	want := map[string]interface{}{"type": "phishing", "level": "danger"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("filters = %v, want %v", got, want)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := middleware.SanitizeString("  hello\x00world\x07  "); got != "helloworld" {
		t.Errorf("SanitizeString = %q", got)
	}
	if got := middleware.SanitizeString("line1\nline2"); got != "line1\nline2" {
		t.Errorf("newlines must survive: %q", got)
	}
}
