package risk

import (
	"math/rand"
	"regexp"
	"time"
)

var standardExtPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|mp4|mov|avi|webm)$`)

// MediaAnalyzer runs the deepfake rule set. Five of the six checks stand
// in for real model inference with a uniform draw in [0,1); the draw is an
// injected dependency so tests can pin outcomes, and so a genuine
// inference call can replace a simulated check later without touching the
// pipeline contract.
type MediaAnalyzer struct {
	cfg  Config
	draw func() float64
}

// NewMediaAnalyzer wires a dedicated rand source to avoid contention on
// the global one.
func NewMediaAnalyzer(cfg Config) *MediaAnalyzer {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &MediaAnalyzer{cfg: cfg, draw: rng.Float64}
}

// NewMediaAnalyzerWithDraw injects the randomness source. draw must return
// values in [0,1).
func NewMediaAnalyzerWithDraw(cfg Config, draw func() float64) *MediaAnalyzer {
	return &MediaAnalyzer{cfg: cfg, draw: draw}
}

// Analyze evaluates the six checks in fixed order. The caller is expected
// to have validated the media type already; the two video-only checks
// contribute exactly 0 for anything else.
func (a *MediaAnalyzer) Analyze(filename string, media MediaType, fileSize int64) Analysis {
	checks := []checkResult{
		checkExtension(filename),
		a.checkCompression(fileSize),
		a.checkFacialFeatures(),
		a.checkTemporalConsistency(media),
		a.checkAudioVisualSync(media),
		a.checkBackground(),
	}

	score, details := aggregate(checks)
	level := a.cfg.Thresholds.LevelFor(score)
	return Analysis{
		Score:   score,
		Level:   level,
		Verdict: VerdictFor(TypeDeepfake, level),
		Details: details,
	}
}

func checkExtension(filename string) checkResult {
	if !standardExtPattern.MatchString(filename) {
		return checkResult{15, "Unusual file extension detected"}
	}
	return checkResult{0, "File format appears standard"}
}

func (a *MediaAnalyzer) checkCompression(fileSize int64) checkResult {
	switch r := a.draw(); {
	case r < 0.1:
		return checkResult{25, "Unusual compression artifacts detected"}
	case r < 0.25:
		return checkResult{15, "Minor compression inconsistencies"}
	}
	return checkResult{0, "Compression analysis passed"}
}

// checkFacialFeatures runs for images and videos alike.
func (a *MediaAnalyzer) checkFacialFeatures() checkResult {
	switch r := a.draw(); {
	case r < 0.08:
		return checkResult{35, "Facial boundary inconsistencies detected"}
	case r < 0.2:
		return checkResult{20, "Slight facial asymmetry detected"}
	case r < 0.35:
		return checkResult{10, "Minor facial lighting irregularities"}
	}
	return checkResult{0, "Facial analysis passed"}
}

func (a *MediaAnalyzer) checkTemporalConsistency(media MediaType) checkResult {
	if media != MediaVideo {
		return checkResult{}
	}
	switch r := a.draw(); {
	case r < 0.1:
		return checkResult{30, "Frame-to-frame inconsistencies detected"}
	case r < 0.25:
		return checkResult{15, "Minor temporal flickering observed"}
	}
	return checkResult{0, "Temporal consistency verified"}
}

func (a *MediaAnalyzer) checkAudioVisualSync(media MediaType) checkResult {
	if media != MediaVideo {
		return checkResult{}
	}
	switch r := a.draw(); {
	case r < 0.15:
		return checkResult{25, "Lip sync inconsistencies detected"}
	case r < 0.3:
		return checkResult{10, "Minor audio-visual desync"}
	}
	return checkResult{0, "Audio-visual sync verified"}
}

func (a *MediaAnalyzer) checkBackground() checkResult {
	switch r := a.draw(); {
	case r < 0.05:
		return checkResult{20, "Background blending artifacts detected"}
	case r < 0.15:
		return checkResult{8, "Slight background edge irregularities"}
	}
	return checkResult{0, "Background analysis passed"}
}
