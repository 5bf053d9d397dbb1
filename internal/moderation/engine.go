package moderation

import (
	"math"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"moderation-service/internal/models"
)

// keywordFlagRatio is the abusive ratio above which a trained keyword is
// reported as a flag.
const keywordFlagRatio = 0.7

var tokenSplit = regexp.MustCompile(`\W+`)

// AbuseFlag is one signal contributing to a trained-detection verdict.
type AbuseFlag struct {
	Word       string  `json:"word,omitempty"`
	Match      string  `json:"match,omitempty"`
	Likelihood float64 `json:"likelihood,omitempty"`
	Type       string  `json:"type"`
}

// AbuseReport is the trained keyword engine's verdict on one text.
type AbuseReport struct {
	IsAbusive  bool        `json:"is_abusive"`
	Confidence float64     `json:"confidence"`
	Flags      []AbuseFlag `json:"flags"`
	Trained    bool        `json:"trained"`
}

// Engine scores text against keyword statistics produced by the offline
// trainer. It complements the pattern-based Moderator: patterns are curated,
// keyword statistics are learned.
type Engine struct {
	mu        sync.RWMutex
	keywords  map[string]models.KeywordStat
	phrases   []models.TrainedPhrase
	threshold float64
	logger    *zap.Logger
}

// NewEngine builds an engine over the given trained statistics.
func NewEngine(keywords []models.KeywordStat, phrases []models.TrainedPhrase, logger *zap.Logger) *Engine {
	kw := make(map[string]models.KeywordStat, len(keywords))
	for _, k := range keywords {
		kw[strings.ToLower(k.Word)] = k
	}
	return &Engine{
		keywords:  kw,
		phrases:   phrases,
		threshold: 0.7,
		logger:    logger,
	}
}

// DetectAbusiveContent scores text against trained keywords and exact
// phrases. Keyword ratios accumulate into an abuse score; exact phrase hits
// add a fixed bonus. Confidence is the score normalized to [0,1].
func (e *Engine) DetectAbusiveContent(text string) AbuseReport {
	if text == "" {
		return AbuseReport{}
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	lower := strings.ToLower(text)
	var flags []AbuseFlag
	var score float64

	for _, word := range tokenSplit.Split(lower, -1) {
		stat, ok := e.keywords[word]
		if !ok {
			continue
		}
		ratio := stat.AbusiveRatio()
		score += ratio
		if ratio > keywordFlagRatio {
			flags = append(flags, AbuseFlag{
				Word:       word,
				Likelihood: ratio,
				Type:       "keyword",
			})
		}
	}

	for _, p := range e.phrases {
		if strings.Contains(lower, strings.ToLower(p.Text)) {
			score += 2
			flags = append(flags, AbuseFlag{
				Match: p.Text,
				Type:  "exact_match",
			})
		}
	}

	confidence := math.Min(score/10, 1)
	return AbuseReport{
		IsAbusive:  confidence >= e.threshold,
		Confidence: math.Round(confidence*100) / 100,
		Flags:      flags,
		Trained:    len(e.keywords) > 0,
	}
}

// SetConfidenceThreshold updates the detection threshold. Values outside
// [0,1] are ignored.
func (e *Engine) SetConfidenceThreshold(threshold float64) {
	if threshold < 0 || threshold > 1 {
		e.logger.Warn("Ignoring out-of-range confidence threshold", zap.Float64("threshold", threshold))
		return
	}
	e.mu.Lock()
	e.threshold = threshold
	e.mu.Unlock()
}

// Statistics returns a summary of the trained state.
func (e *Engine) Statistics() map[string]interface{} {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return map[string]interface{}{
		"unique_keywords": len(e.keywords),
		"trained_phrases": len(e.phrases),
		"threshold":       e.threshold,
		"last_updated":    time.Now().UTC().Format(time.RFC3339),
	}
}
