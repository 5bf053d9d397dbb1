package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"moderation-service/internal/models"
)

// Entry is one knowledge-base record keyed by message text.
type Entry struct {
	Response   string   `json:"response"`
	Confidence float64  `json:"confidence"`
	Categories []string `json:"categories"`
	Language   string   `json:"language,omitempty"`
}

// Store holds the knowledge base loaded once at startup. Document order is
// preserved so downstream tie-breaks stay deterministic across loads.
type Store struct {
	phrases []string
	entries map[string]Entry
	logger  *zap.Logger
}

// LoadStore reads the knowledge-base JSON document. A missing file yields an
// empty store; only a malformed document is an error.
func LoadStore(path string, logger *zap.Logger) (*Store, error) {
	s := &Store{entries: make(map[string]Entry), logger: logger}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Knowledge base file not found, starting empty", zap.String("path", path))
			return s, nil
		}
		return nil, fmt.Errorf("failed to open knowledge base: %w", err)
	}
	defer f.Close()

	// Token-wise decode keeps the document's key order, which a plain map
	// decode would throw away.
	dec := json.NewDecoder(f)
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read knowledge base: %w", err)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read knowledge base key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected knowledge base key token %v", keyTok)
		}
		var entry Entry
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("failed to decode knowledge base entry %q: %w", key, err)
		}
		s.phrases = append(s.phrases, key)
		s.entries[key] = entry
	}

	logger.Info("Knowledge base loaded", zap.String("path", path), zap.Int("entries", len(s.phrases)))
	return s, nil
}

// RomanticEntries extracts the romantic corpus in document order: entries
// whose categories include "romantic". The second category element names the
// entry's own category, defaulting to "general".
func (s *Store) RomanticEntries() []models.RomanticEntry {
	var out []models.RomanticEntry
	for _, phrase := range s.phrases {
		entry := s.entries[phrase]
		if !containsString(entry.Categories, "romantic") {
			continue
		}
		category := "general"
		if len(entry.Categories) > 1 {
			category = entry.Categories[1]
		}
		confidence := entry.Confidence
		if confidence == 0 {
			confidence = 0.9
		}
		out = append(out, models.RomanticEntry{
			InputPhrase: phrase,
			Response:    entry.Response,
			Category:    category,
			Confidence:  confidence,
		})
	}
	return out
}

// Lookup finds an exact (case-insensitive) knowledge-base answer.
func (s *Store) Lookup(text string) (string, bool) {
	if entry, ok := s.entries[text]; ok {
		return entry.Response, true
	}
	lower := strings.ToLower(text)
	for _, phrase := range s.phrases {
		if strings.ToLower(phrase) == lower {
			return s.entries[phrase].Response, true
		}
	}
	return "", false
}

// Len returns the number of loaded entries.
func (s *Store) Len() int {
	return len(s.phrases)
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
