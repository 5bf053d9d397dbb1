package moderation

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"moderation-service/internal/models"
	"moderation-service/internal/repository"
)

const recentTailSize = 1000

const crisisMessage = "I can't engage with that content. If you need help, please contact a mental health professional or crisis service."

var educationMessages = map[string]string{
	"self_harm":   "I'm concerned about what you've said. If you're having thoughts of self-harm, please reach out to a mental health professional or crisis helpline.",
	"hate_speech": "Hate speech is harmful and goes against respectful communication. Let's keep our conversation inclusive and kind.",
	"harassment":  "That language can be hurtful. I encourage respectful and constructive communication.",
	"profanity":   "I'd appreciate if we could keep our conversation family-friendly and respectful.",
}

const genericEducationMessage = "I'd prefer if we could communicate respectfully."

var declineResponses = []string{
	"I can't respond to that language. Could you rephrase in a respectful way?",
	"I'm designed to have helpful and respectful conversations. Let's try again with different language.",
	"I need to decline responding to that. Let's keep our chat constructive and kind.",
}

// Moderator decides, for a single text input, whether it is safe, should be
// flagged for review, or must be blocked.
//
// Flagged inputs are appended to a bounded in-memory tail and persisted one
// row at a time; a failed persist is logged and never fails the analysis.
type Moderator struct {
	store   *PatternStore
	flagged repository.FlaggedRepository
	logger  *zap.Logger

	mu     sync.RWMutex
	recent []*models.FlaggedEntry
	rng    *rand.Rand
}

// NewModerator creates a moderator. flagged may be nil, in which case the
// audit log lives only in the in-memory tail.
func NewModerator(store *PatternStore, flagged repository.FlaggedRepository, logger *zap.Logger) *Moderator {
	m := &Moderator{
		store:   store,
		flagged: flagged,
		logger:  logger,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	// Rehydrate the tail so the recent window survives restarts.
	if flagged != nil {
		entries, err := flagged.GetFlagged(models.FlaggedFilter{Limit: recentTailSize})
		if err != nil {
			logger.Warn("Failed to load recent flagged entries", zap.Error(err))
		} else {
			// GetFlagged returns newest first; the tail stores oldest first.
			for i := len(entries) - 1; i >= 0; i-- {
				m.recent = append(m.recent, entries[i])
			}
		}
	}
	return m
}

// SetRand replaces the random source used for decline responses. Tests use
// this to make response selection deterministic.
func (m *Moderator) SetRand(rng *rand.Rand) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rng = rng
}

// Analyze evaluates text against every pattern in order and records an audit
// entry when anything matches. Empty text returns a clean analysis with no
// side effects.
func (m *Moderator) Analyze(text, userID string) models.Analysis {
	if text == "" {
		return models.Analysis{IsHarmful: false, Flags: nil, Severity: models.SeverityNone}
	}
	if userID == "" {
		userID = "unknown"
	}

	var flags []models.Flag
	maxSeverity := models.SeverityNone

	for _, p := range m.store.Snapshot() {
		matched := p.Matcher.FindString(text)
		if matched == "" {
			continue
		}
		flags = append(flags, models.Flag{
			Category: p.Category,
			Severity: p.Severity,
			Matched:  matched,
		})
		if p.Severity.GreaterThan(maxSeverity) {
			maxSeverity = p.Severity
		}
	}

	isHarmful := len(flags) > 0
	if isHarmful {
		m.logFlagged(&models.FlaggedEntry{
			ID:        uuid.New().String(),
			Timestamp: time.Now().UTC(),
			UserID:    userID,
			Text:      text,
			Flags:     flags,
			Severity:  maxSeverity,
		})
	}

	return models.Analysis{
		IsHarmful:   isHarmful,
		Flags:       flags,
		Severity:    maxSeverity,
		ShouldBlock: maxSeverity == models.SeverityHigh || maxSeverity == models.SeverityCritical,
	}
}

// ProcessUserInput runs Analyze and turns the result into a moderation
// decision. On ALLOW the Response field is left empty: the source system
// filled it with a decline message even for clean input, which callers had
// to know to ignore.
func (m *Moderator) ProcessUserInput(text, userID string) models.Decision {
	analysis := m.Analyze(text, userID)

	decision := models.Decision{
		OriginalText: text,
		Analysis:     analysis,
	}

	switch {
	case analysis.ShouldBlock:
		decision.Action = models.ActionBlock
		decision.Response = m.educationalResponse(analysis.Flags, analysis.Severity)
	case analysis.IsHarmful:
		decision.Action = models.ActionFlag
		decision.Response = m.declineResponse()
	default:
		decision.Action = models.ActionAllow
	}

	return decision
}

// educationalResponse picks the message for a blocked input. Critical
// severity always gets the crisis referral; otherwise the first flag's
// category decides.
func (m *Moderator) educationalResponse(flags []models.Flag, severity models.Severity) string {
	if severity == models.SeverityCritical {
		return crisisMessage
	}
	if len(flags) > 0 {
		if msg, ok := educationMessages[flags[0].Category]; ok {
			return msg
		}
		return genericEducationMessage
	}
	return "I can't respond to that language."
}

func (m *Moderator) declineResponse() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return declineResponses[m.rng.Intn(len(declineResponses))]
}

// logFlagged appends the entry to the in-memory tail and persists it
// best-effort.
func (m *Moderator) logFlagged(entry *models.FlaggedEntry) {
	m.mu.Lock()
	m.recent = append(m.recent, entry)
	if len(m.recent) > recentTailSize {
		m.recent = m.recent[len(m.recent)-recentTailSize:]
	}
	m.mu.Unlock()

	if m.flagged == nil {
		return
	}
	if err := m.flagged.SaveEntry(entry); err != nil {
		m.logger.Error("Failed to persist flagged entry",
			zap.String("entry_id", entry.ID),
			zap.Error(err))
	}
}

// Stats returns the moderator dashboard summary. Severity counts come from
// the persistent log when available, otherwise from the in-memory tail.
func (m *Moderator) Stats() models.ModerationStats {
	stats := models.ModerationStats{LastUpdated: time.Now().UTC()}

	if m.flagged != nil {
		persisted, err := m.flagged.Stats()
		if err == nil {
			stats.TotalFlagged = persisted.TotalFlagged
			stats.Critical = persisted.Critical
			stats.High = persisted.High
			stats.Medium = persisted.Medium
			stats.RecentFlags = m.recentFlags(10)
			return stats
		}
		m.logger.Error("Failed to read flagged stats, falling back to memory", zap.Error(err))
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	stats.TotalFlagged = int64(len(m.recent))
	for _, e := range m.recent {
		switch e.Severity {
		case models.SeverityCritical:
			stats.Critical++
		case models.SeverityHigh:
			stats.High++
		case models.SeverityMedium:
			stats.Medium++
		}
	}
	stats.RecentFlags = m.recentLocked(10)
	return stats
}

// FlaggedContent returns audit entries matching the filter, newest first.
func (m *Moderator) FlaggedContent(filter models.FlaggedFilter) ([]*models.FlaggedEntry, error) {
	if m.flagged != nil {
		return m.flagged.GetFlagged(filter)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*models.FlaggedEntry
	for i := len(m.recent) - 1; i >= 0; i-- {
		e := m.recent[i]
		if filter.Severity != "" && e.Severity != filter.Severity {
			continue
		}
		if filter.Category != "" && !hasCategory(e.Flags, filter.Category) {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (m *Moderator) recentFlags(n int) []*models.FlaggedEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.recentLocked(n)
}

// recentLocked returns the last n entries newest first. Caller holds mu.
func (m *Moderator) recentLocked(n int) []*models.FlaggedEntry {
	if len(m.recent) < n {
		n = len(m.recent)
	}
	out := make([]*models.FlaggedEntry, 0, n)
	for i := len(m.recent) - 1; i >= len(m.recent)-n; i-- {
		out = append(out, m.recent[i])
	}
	return out
}

func hasCategory(flags []models.Flag, category string) bool {
	for _, f := range flags {
		if f.Category == category {
			return true
		}
	}
	return false
}
