package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// NewSQLiteDB opens (or creates) the service database and runs migrations.
func NewSQLiteDB(path string, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database initialized", zap.String("path", path))
	return db, nil
}

// migrate creates tables.
func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS flagged_content (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		user_id TEXT NOT NULL,
		text TEXT NOT NULL,
		flags TEXT NOT NULL,
		severity TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_flagged_severity ON flagged_content(severity);
	CREATE INDEX IF NOT EXISTS idx_flagged_timestamp ON flagged_content(timestamp);

	CREATE TABLE IF NOT EXISTS keyword_stats (
		word TEXT PRIMARY KEY,
		total_count INTEGER NOT NULL DEFAULT 0,
		abusive_count INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS trained_phrases (
		text TEXT PRIMARY KEY,
		severity TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := db.Exec(schema)
	return err
}
