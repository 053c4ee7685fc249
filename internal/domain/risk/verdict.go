package risk

// verdicts is a fixed lookup table: 2 scan types x 3 levels.
var verdicts = map[ScanType]map[Level]string{
	TypePhishing: {
		LevelSafe:       "URL appears to be safe",
		LevelSuspicious: "URL shows suspicious characteristics",
		LevelDanger:     "High probability of phishing attempt",
	},
	TypeDeepfake: {
		LevelSafe:       "No manipulation detected",
		LevelSuspicious: "Possible signs of manipulation",
		LevelDanger:     "High probability of deepfake content",
	},
}

// VerdictFor returns the canned sentence for a scan type and level.
func VerdictFor(t ScanType, l Level) string {
	return verdicts[t][l]
}
