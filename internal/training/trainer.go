package training

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"moderation-service/internal/models"
	"moderation-service/internal/repository"
)

// minKeywordLen filters out articles, pronouns, and other short noise words.
const minKeywordLen = 4

var wordSplit = regexp.MustCompile(`\W+`)

// Sample is one labeled training record.
type Sample struct {
	Text      string `json:"text"`
	IsAbusive bool   `json:"is_abusive"`
	Category  string `json:"category,omitempty"`
	Severity  string `json:"severity,omitempty"`
}

// Summary reports what a training run did.
type Summary struct {
	TotalSamples   int `json:"total_samples"`
	AbusiveSamples int `json:"abusive_samples"`
	SafeSamples    int `json:"safe_samples"`
	KeywordUpdates int `json:"keyword_updates"`
	PhraseUpdates  int `json:"phrase_updates"`
}

// Trainer ingests labeled samples into the keyword-statistics table. It runs
// offline; the request path only ever reads what it writes.
type Trainer struct {
	keywords repository.KeywordRepository
	logger   *zap.Logger
}

func NewTrainer(keywords repository.KeywordRepository, logger *zap.Logger) *Trainer {
	return &Trainer{keywords: keywords, logger: logger}
}

// TrainFile loads a JSON array of samples and trains on each.
func (t *Trainer) TrainFile(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read training file: %w", err)
	}

	var samples []Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("failed to decode training file: %w", err)
	}

	return t.Train(samples)
}

// Train increments keyword statistics for every sample. Failed increments
// are logged and skipped; training is resumable by re-running.
func (t *Trainer) Train(samples []Sample) (*Summary, error) {
	summary := &Summary{}

	for _, sample := range samples {
		if sample.Text == "" {
			continue
		}
		summary.TotalSamples++
		if sample.IsAbusive {
			summary.AbusiveSamples++

			// Abusive samples also train the exact-phrase detector.
			severity := models.SeverityMedium
			if s, err := models.ParseSeverity(sample.Severity); err == nil {
				severity = s
			}
			phrase := models.TrainedPhrase{Text: sample.Text, Severity: severity}
			if err := t.keywords.SavePhrase(phrase); err != nil {
				t.logger.Error("Failed to save trained phrase",
					zap.String("text", sample.Text),
					zap.Error(err))
			} else {
				summary.PhraseUpdates++
			}
		} else {
			summary.SafeSamples++
		}

		for _, word := range ExtractKeywords(sample.Text) {
			if err := t.keywords.Increment(word, sample.IsAbusive); err != nil {
				t.logger.Error("Failed to update keyword stat",
					zap.String("word", word),
					zap.Error(err))
				continue
			}
			summary.KeywordUpdates++
		}
	}

	t.logger.Info("Training run complete",
		zap.Int("total", summary.TotalSamples),
		zap.Int("abusive", summary.AbusiveSamples),
		zap.Int("safe", summary.SafeSamples),
		zap.Int("keyword_updates", summary.KeywordUpdates),
		zap.Int("phrase_updates", summary.PhraseUpdates))
	return summary, nil
}

// ExtractKeywords lowercases text, splits on non-word runs, and keeps tokens
// long enough to carry signal.
func ExtractKeywords(text string) []string {
	var keywords []string
	for _, word := range wordSplit.Split(strings.ToLower(text), -1) {
		if len(word) >= minKeywordLen {
			keywords = append(keywords, word)
		}
	}
	return keywords
}
