package models

import (
	"regexp"
	"time"
)

// HarmfulPattern is a single compiled content detector. The built-in set is
// fixed at startup; patterns added at runtime are appended after it and are
// never removed.
type HarmfulPattern struct {
	Matcher  *regexp.Regexp
	Severity Severity
	Category string
}

// Flag records one harmful-pattern match within a message.
type Flag struct {
	Category string   `db:"category" json:"category"`
	Severity Severity `db:"severity" json:"severity"`
	Matched  string   `db:"matched" json:"matched"`
}

// FlaggedEntry is an audit record created once per harmful detection and
// appended to the flagged-content log. It is never mutated afterwards.
type FlaggedEntry struct {
	ID        string    `db:"id" json:"id"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
	UserID    string    `db:"user_id" json:"user_id"`
	Text      string    `db:"text" json:"text"`
	Flags     []Flag    `json:"flags"`
	Severity  Severity  `db:"severity" json:"severity"`
}

// Analysis is the result of scanning one message against the pattern set.
type Analysis struct {
	IsHarmful   bool     `json:"is_harmful"`
	Flags       []Flag   `json:"flags"`
	Severity    Severity `json:"severity"`
	ShouldBlock bool     `json:"should_block"`
}

// ModerationAction is the disposition the moderator assigns to a message.
type ModerationAction string

const (
	ActionAllow ModerationAction = "ALLOW"
	ActionFlag  ModerationAction = "FLAG"
	ActionBlock ModerationAction = "BLOCK"
)

// Decision is the full moderation outcome for one message. Response is only
// meaningful when Action is FLAG or BLOCK; on ALLOW it is empty.
type Decision struct {
	OriginalText string           `json:"original_text"`
	Action       ModerationAction `json:"action"`
	Analysis     Analysis         `json:"analysis"`
	Response     string           `json:"response"`
}

// TrainedPhrase is an exact abusive phrase produced by the offline trainer.
// Phrase hits add a fixed bonus on top of keyword scoring.
type TrainedPhrase struct {
	Text     string   `db:"text" json:"text"`
	Severity Severity `db:"severity" json:"severity"`
}

// KeywordStat holds trained frequency counts for one lowercase token.
// AbusiveCount never exceeds TotalCount; only the offline trainer writes it.
type KeywordStat struct {
	Word         string `db:"word" json:"word"`
	TotalCount   int64  `db:"total_count" json:"total_count"`
	AbusiveCount int64  `db:"abusive_count" json:"abusive_count"`
}

// AbusiveRatio returns abusive/total, or 0 for an untrained word.
func (k KeywordStat) AbusiveRatio() float64 {
	if k.TotalCount == 0 {
		return 0
	}
	return float64(k.AbusiveCount) / float64(k.TotalCount)
}

// ModerationStats is the moderator dashboard summary.
type ModerationStats struct {
	TotalFlagged int64           `json:"total_flagged"`
	Critical     int64           `json:"critical"`
	High         int64           `json:"high"`
	Medium       int64           `json:"medium"`
	LastUpdated  time.Time       `json:"last_updated"`
	RecentFlags  []*FlaggedEntry `json:"recent_flags"`
}

// FlaggedFilter narrows a flagged-content query. Zero values mean no filter.
type FlaggedFilter struct {
	Severity Severity
	Category string
	Limit    int
}
