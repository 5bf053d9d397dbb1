package models

// ClassificationResult is the externally visible output of the pipeline.
// Category and MatchScore are present only when IsRomantic is true.
type ClassificationResult struct {
	Action     ModerationAction `json:"action"`
	Severity   Severity         `json:"severity"`
	Response   string           `json:"response"`
	IsRomantic bool             `json:"is_romantic"`
	Flagged    bool             `json:"flagged"`
	Category   *string          `json:"category,omitempty"`
	MatchScore *float64         `json:"match_score,omitempty"`
}
