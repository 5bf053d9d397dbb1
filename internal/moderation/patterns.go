package moderation

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"moderation-service/internal/models"
)

// ErrInvalidPattern is returned when an admin-supplied pattern does not
// compile or names an unknown severity. The pattern set is left unchanged.
var ErrInvalidPattern = errors.New("invalid harmful pattern")

// builtinPatterns is the fixed detector set, ordered by descending severity.
// Evaluation order matters for which flag comes first, but every pattern is
// always evaluated.
var builtinPatterns = []struct {
	source   string
	severity models.Severity
	category string
}{
	{
		source:   `kill.*yourself|kys|want.*to.*hurt|hurt\s+myself|self\s+harm|self\s+injure|suicide|end\s+it\s+all|want\s+to\s+die|cut\s+myself|slash\s+wrists`,
		severity: models.SeverityCritical,
		category: "self_harm",
	},
	{
		source:   `hate\s+(speech|all|everyone|people)|should\s+die|deserve\s+to\s+die|kill\s+(them|people)|rape|murder|assault\s+(someone|him|her)`,
		severity: models.SeverityHigh,
		category: "hate_speech",
	},
	{
		source:   `you\s+suck|you're\s+stupid|idiot|moron|dumbass|loser|worthless|pathetic|piece\s+of\s+shit|fat|ugly|disgusting`,
		severity: models.SeverityMedium,
		category: "harassment",
	},
	{
		source:   `fuck|shit|damn|crap|asshole|bitch`,
		severity: models.SeverityLow,
		category: "profanity",
	},
}

// PatternStore owns the ordered harmful-pattern set. Built-in patterns come
// first; runtime-added patterns are appended and never removed.
type PatternStore struct {
	mu       sync.RWMutex
	patterns []models.HarmfulPattern
}

// NewPatternStore compiles the built-in detector set.
func NewPatternStore() *PatternStore {
	s := &PatternStore{}
	for _, p := range builtinPatterns {
		// Built-in sources are compile-checked by tests.
		s.patterns = append(s.patterns, models.HarmfulPattern{
			Matcher:  regexp.MustCompile(`(?i)` + p.source),
			Severity: p.severity,
			Category: p.category,
		})
	}
	return s
}

// Add compiles source case-insensitively and appends it to the pattern set.
func (s *PatternStore) Add(source string, severity models.Severity, category string) error {
	if _, err := models.ParseSeverity(string(severity)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	matcher, err := regexp.Compile(`(?i)` + source)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns = append(s.patterns, models.HarmfulPattern{
		Matcher:  matcher,
		Severity: severity,
		Category: category,
	})
	return nil
}

// Snapshot returns the current ordered pattern list. The returned slice must
// not be modified.
func (s *PatternStore) Snapshot() []models.HarmfulPattern {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.patterns[:len(s.patterns):len(s.patterns)]
}

// Len returns the number of patterns, built-in plus added.
func (s *PatternStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.patterns)
}
