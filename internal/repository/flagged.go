package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"moderation-service/internal/models"
)

// FlaggedRepository is the persistent audit log of flagged inputs. Entries
// are append-only: there is no update or delete path.
type FlaggedRepository interface {
	SaveEntry(entry *models.FlaggedEntry) error
	GetFlagged(filter models.FlaggedFilter) ([]*models.FlaggedEntry, error)
	Stats() (*models.ModerationStats, error)
}

type flaggedRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewFlaggedRepository(db *sql.DB, logger *zap.Logger) FlaggedRepository {
	return &flaggedRepository{db: db, logger: logger}
}

// SaveEntry inserts a single audit row. Flags are stored as a JSON array so
// the row mirrors the exported log format.
func (r *flaggedRepository) SaveEntry(entry *models.FlaggedEntry) error {
	flags, err := json.Marshal(entry.Flags)
	if err != nil {
		return fmt.Errorf("failed to encode flags: %w", err)
	}

	query := `
		INSERT INTO flagged_content (id, timestamp, user_id, text, flags, severity)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, entry.ID, entry.Timestamp, entry.UserID, entry.Text, string(flags), string(entry.Severity))
	if err != nil {
		return fmt.Errorf("failed to save flagged entry: %w", err)
	}
	return nil
}

// GetFlagged returns entries matching the filter, newest first. Severity is
// filtered in SQL; category filtering happens after decoding the flags.
func (r *flaggedRepository) GetFlagged(filter models.FlaggedFilter) ([]*models.FlaggedEntry, error) {
	query := `
		SELECT id, timestamp, user_id, text, flags, severity
		FROM flagged_content
	`
	var args []interface{}
	if filter.Severity != "" {
		query += ` WHERE severity = ?`
		args = append(args, string(filter.Severity))
	}
	query += ` ORDER BY timestamp DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query flagged content: %w", err)
	}
	defer rows.Close()

	var entries []*models.FlaggedEntry
	for rows.Next() {
		entry := &models.FlaggedEntry{}
		var flagsJSON string
		var severity string
		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.UserID, &entry.Text, &flagsJSON, &severity); err != nil {
			r.logger.Error("Failed to scan flagged entry", zap.Error(err))
			continue
		}
		entry.Severity = models.Severity(severity)
		if err := json.Unmarshal([]byte(flagsJSON), &entry.Flags); err != nil {
			r.logger.Error("Failed to decode flags", zap.String("entry_id", entry.ID), zap.Error(err))
			continue
		}

		if filter.Category != "" && !flagsHaveCategory(entry.Flags, filter.Category) {
			continue
		}

		entries = append(entries, entry)
		if filter.Limit > 0 && len(entries) == filter.Limit {
			break
		}
	}

	return entries, rows.Err()
}

// Stats returns severity counts over the whole log. RecentFlags is left to
// the caller, which keeps an in-memory tail.
func (r *flaggedRepository) Stats() (*models.ModerationStats, error) {
	query := `
		SELECT severity, COUNT(*) FROM flagged_content GROUP BY severity
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query flagged stats: %w", err)
	}
	defer rows.Close()

	stats := &models.ModerationStats{}
	for rows.Next() {
		var severity string
		var count int64
		if err := rows.Scan(&severity, &count); err != nil {
			continue
		}
		stats.TotalFlagged += count
		switch models.Severity(severity) {
		case models.SeverityCritical:
			stats.Critical = count
		case models.SeverityHigh:
			stats.High = count
		case models.SeverityMedium:
			stats.Medium = count
		}
	}

	return stats, rows.Err()
}

func flagsHaveCategory(flags []models.Flag, category string) bool {
	for _, f := range flags {
		if f.Category == category {
			return true
		}
	}
	return false
}
