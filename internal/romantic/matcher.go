package romantic

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"moderation-service/internal/models"
)

// ErrCategoryNotFound is returned by RandomResponseByCategory when the
// corpus has no entries in the requested category.
var ErrCategoryNotFound = errors.New("romantic category not found")

// DefaultMatchThreshold is the minimum similarity for a fuzzy match.
const DefaultMatchThreshold = 0.6

// romanticKeywords gates the matcher: the similarity scan only runs when the
// input contains at least one of these (English and transliterated Hindi
// terms of endearment).
var romanticKeywords = []string{
	"love", "pyaar", "miss", "yaad", "beautiful", "handsome",
	"smile", "laugh", "hug", "kiss", "forever", "soulmate",
	"proposal", "marriage", "wedding", "anniversary", "romantic",
	"coffee", "date", "heart", "jaan", "sweetheart",
}

// Matcher finds the closest canned reply for a romantic message. The corpus
// is read-only after construction; matching runs the Levenshtein scan over
// every entry, which is fine at tens of entries but worth revisiting if the
// corpus grows into the thousands.
type Matcher struct {
	entries   []models.RomanticEntry
	threshold float64
	logger    *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMatcher builds a matcher over the given corpus, preserving insertion
// order. threshold <= 0 selects the default.
func NewMatcher(entries []models.RomanticEntry, threshold float64, logger *zap.Logger) *Matcher {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return &Matcher{
		entries:   entries,
		threshold: threshold,
		logger:    logger,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRand replaces the random source used by RandomResponseByCategory, so
// tests can seed it.
func (m *Matcher) SetRand(rng *rand.Rand) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rng = rng
}

// IsRomanticInput reports whether text contains any romantic keyword. Cheap
// pre-filter run before Match.
func (m *Matcher) IsRomanticInput(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range romanticKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Match finds the corpus entry closest to text. An exact case-insensitive
// phrase match wins immediately with score 1.0; otherwise the entry with the
// strictly highest similarity at or above the threshold wins. Equal scores
// keep the first-encountered entry, so corpus insertion order breaks ties.
// Returns nil when nothing clears the threshold.
func (m *Matcher) Match(text string) *models.RomanticMatch {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	for _, entry := range m.entries {
		if strings.ToLower(entry.InputPhrase) == lower {
			return &models.RomanticMatch{Entry: entry, Score: 1.0}
		}
	}

	var best *models.RomanticMatch
	for _, entry := range m.entries {
		score := similarity(lower, strings.ToLower(entry.InputPhrase))
		if score < m.threshold {
			continue
		}
		if best == nil || score > best.Score {
			best = &models.RomanticMatch{Entry: entry, Score: score}
		}
	}
	return best
}

// ProcessRomanticInput wraps Match into the result shape handed to callers.
func (m *Matcher) ProcessRomanticInput(text string) models.RomanticResult {
	match := m.Match(text)
	if match == nil {
		return models.RomanticResult{Success: false}
	}
	return models.RomanticResult{
		Success:    true,
		Response:   match.Entry.Response,
		Category:   match.Entry.Category,
		MatchScore: match.Score,
	}
}

// RandomResponseByCategory picks a uniformly random entry in the category.
func (m *Matcher) RandomResponseByCategory(category string) (*models.RomanticEntry, error) {
	var matching []models.RomanticEntry
	for _, entry := range m.entries {
		if entry.Category == category {
			matching = append(matching, entry)
		}
	}
	if len(matching) == 0 {
		return nil, ErrCategoryNotFound
	}

	m.mu.Lock()
	picked := matching[m.rng.Intn(len(matching))]
	m.mu.Unlock()
	return &picked, nil
}

// Statistics aggregates the loaded corpus. Pure, no side effects.
func (m *Matcher) Statistics() models.RomanticStats {
	byCategory := make(map[string]int)
	var categories []string
	for _, entry := range m.entries {
		if byCategory[entry.Category] == 0 {
			categories = append(categories, entry.Category)
		}
		byCategory[entry.Category]++
	}
	return models.RomanticStats{
		TotalRomanticResponses: len(m.entries),
		Categories:             categories,
		ByCategory:             byCategory,
	}
}
