package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"moderation-service/internal/models"
)

// KeywordRepository stores the trained moderation model: per-word statistics
// plus exact abusive phrases. Writes come from the offline trainer; the
// request path only reads.
type KeywordRepository interface {
	Increment(word string, abusive bool) error
	GetAll() ([]models.KeywordStat, error)
	SavePhrase(phrase models.TrainedPhrase) error
	GetPhrases() ([]models.TrainedPhrase, error)
}

type keywordRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewKeywordRepository(db *sql.DB, logger *zap.Logger) KeywordRepository {
	return &keywordRepository{db: db, logger: logger}
}

// Increment bumps the total count for word, and the abusive count when the
// containing sample was labeled abusive. The abusive count can never exceed
// the total count because both move in the same statement.
func (r *keywordRepository) Increment(word string, abusive bool) error {
	abusiveInc := 0
	if abusive {
		abusiveInc = 1
	}

	query := `
		INSERT INTO keyword_stats (word, total_count, abusive_count)
		VALUES (?, 1, ?)
		ON CONFLICT(word) DO UPDATE SET
			total_count = total_count + 1,
			abusive_count = abusive_count + ?
	`
	_, err := r.db.Exec(query, word, abusiveInc, abusiveInc)
	if err != nil {
		return fmt.Errorf("failed to increment keyword stat: %w", err)
	}
	return nil
}

// SavePhrase upserts an exact abusive phrase. Re-training the same phrase
// refreshes its severity.
func (r *keywordRepository) SavePhrase(phrase models.TrainedPhrase) error {
	query := `
		INSERT INTO trained_phrases (text, severity)
		VALUES (?, ?)
		ON CONFLICT(text) DO UPDATE SET severity = excluded.severity
	`
	_, err := r.db.Exec(query, phrase.Text, string(phrase.Severity))
	if err != nil {
		return fmt.Errorf("failed to save trained phrase: %w", err)
	}
	return nil
}

// GetPhrases returns every trained abusive phrase.
func (r *keywordRepository) GetPhrases() ([]models.TrainedPhrase, error) {
	rows, err := r.db.Query(`SELECT text, severity FROM trained_phrases`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trained phrases: %w", err)
	}
	defer rows.Close()

	var phrases []models.TrainedPhrase
	for rows.Next() {
		var p models.TrainedPhrase
		var severity string
		if err := rows.Scan(&p.Text, &severity); err != nil {
			r.logger.Error("Failed to scan trained phrase", zap.Error(err))
			continue
		}
		p.Severity = models.Severity(severity)
		phrases = append(phrases, p)
	}
	return phrases, rows.Err()
}

// GetAll returns every trained keyword statistic.
func (r *keywordRepository) GetAll() ([]models.KeywordStat, error) {
	rows, err := r.db.Query(`SELECT word, total_count, abusive_count FROM keyword_stats`)
	if err != nil {
		return nil, fmt.Errorf("failed to query keyword stats: %w", err)
	}
	defer rows.Close()

	var stats []models.KeywordStat
	for rows.Next() {
		var s models.KeywordStat
		if err := rows.Scan(&s.Word, &s.TotalCount, &s.AbusiveCount); err != nil {
			r.logger.Error("Failed to scan keyword stat", zap.Error(err))
			continue
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
