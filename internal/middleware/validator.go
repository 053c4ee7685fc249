package middleware

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bryanwahyu/securewatch/internal/domain/risk"
)

// Input validation and sanitization. Everything here runs BEFORE the
// analysis pipeline: the pipeline itself absorbs malformed input into
// score contributions, so rejection with a descriptive message is the
// caller's job.

// ErrInvalid marks a rejected submission; handlers map it to 400.
var ErrInvalid = errors.New("invalid input")

var (
	userIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
	scanIDPattern = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}-(phishing|deepfake)$`)
)

// ValidateUserID validates the partition key taken from the URL.
func ValidateUserID(user string) error {
	if user == "" {
		return fmt.Errorf("user id cannot be empty: %w", ErrInvalid)
	}
	if !userIDPattern.MatchString(user) {
		return fmt.Errorf("invalid user id format (alphanumeric, dash, underscore only, max 64 chars): %w", ErrInvalid)
	}
	return nil
}

// ValidateScanID validates the uuid-with-type-suffix id scheme.
func ValidateScanID(scanID string) error {
	if !scanIDPattern.MatchString(scanID) {
		return fmt.Errorf("invalid scan id format: %w", ErrInvalid)
	}
	return nil
}

// SanitizeScanURL trims the submission and prepends https:// when no
// scheme was typed, matching what the dashboard input field does.
func SanitizeScanURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	return s
}

// ValidateScanURL rejects empty submissions. Anything non-empty is fair
// game for the pipeline, malformed or not.
func ValidateScanURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("url cannot be empty: %w", ErrInvalid)
	}
	return nil
}

var mediaContentTypes = map[string]risk.MediaType{
	"image/jpeg":      risk.MediaImage,
	"image/png":       risk.MediaImage,
	"image/gif":       risk.MediaImage,
	"image/webp":      risk.MediaImage,
	"video/mp4":       risk.MediaVideo,
	"video/webm":      risk.MediaVideo,
	"video/quicktime": risk.MediaVideo,
	"video/x-msvideo": risk.MediaVideo,
}

// MediaTypeOf maps an upload's content type to the declared media type.
// Unsupported uploads are rejected here, never inside the pipeline.
func MediaTypeOf(contentType string) (risk.MediaType, error) {
	// strip parameters like "; charset=..."
	base := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	if m, ok := mediaContentTypes[strings.ToLower(base)]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unsupported media type %q (images: jpeg, png, gif, webp; videos: mp4, webm, quicktime, avi): %w", contentType, ErrInvalid)
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}

// ValidatePageSize validates page size for history pagination
func ValidatePageSize(size int) int {
	if size <= 0 {
		return 20
	}
	if size > 100 {
		return 100
	}
	return size
}

// HistoryFilters builds repository filters from query values, dropping
// anything that is not a known type or level.
func HistoryFilters(scanType, level string) map[string]interface{} {
	filters := map[string]interface{}{}
	switch risk.ScanType(scanType) {
	case risk.TypePhishing, risk.TypeDeepfake:
		filters["type"] = scanType
	}
	switch risk.Level(level) {
	case risk.LevelSafe, risk.LevelSuspicious, risk.LevelDanger:
		filters["level"] = level
	}
	if len(filters) == 0 {
		return nil
	}
	return filters
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}
