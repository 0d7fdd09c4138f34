package db

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Migrate runs all schema migrations. Statements are idempotent and portable
// between sqlite and postgres.
func Migrate(db *sqlx.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate re-applied ALTER TABLE ... ADD COLUMN statements.
			msg := err.Error()
			if strings.Contains(msg, "duplicate column name") || strings.Contains(msg, "already exists") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS activity_logs (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL,
		timestamp        TEXT NOT NULL,
		app_name         TEXT NOT NULL DEFAULT '',
		window_title     TEXT NOT NULL DEFAULT '',
		category         TEXT NOT NULL,
		duration_seconds DOUBLE PRECISION NOT NULL DEFAULT 0,
		date             TEXT NOT NULL,
		created_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activity_logs_user_date ON activity_logs(user_id, date)`,

	`CREATE TABLE IF NOT EXISTS daily_summary (
		user_id               TEXT NOT NULL,
		date                  TEXT NOT NULL,
		study_minutes         DOUBLE PRECISION NOT NULL DEFAULT 0,
		entertainment_minutes DOUBLE PRECISION NOT NULL DEFAULT 0,
		others_minutes        DOUBLE PRECISION NOT NULL DEFAULT 0,
		work_minutes          DOUBLE PRECISION NOT NULL DEFAULT 0,
		social_minutes        DOUBLE PRECISION NOT NULL DEFAULT 0,
		productivity_minutes  DOUBLE PRECISION NOT NULL DEFAULT 0,
		gaming_minutes        DOUBLE PRECISION NOT NULL DEFAULT 0,
		most_used_app         TEXT NOT NULL DEFAULT '',
		updated_at            TEXT NOT NULL,
		PRIMARY KEY (user_id, date)
	)`,

	`CREATE TABLE IF NOT EXISTS weekly_summary (
		user_id               TEXT NOT NULL,
		year                  INTEGER NOT NULL,
		week_number           INTEGER NOT NULL,
		week_start            TEXT NOT NULL,
		study_minutes         DOUBLE PRECISION NOT NULL DEFAULT 0,
		entertainment_minutes DOUBLE PRECISION NOT NULL DEFAULT 0,
		others_minutes        DOUBLE PRECISION NOT NULL DEFAULT 0,
		work_minutes          DOUBLE PRECISION NOT NULL DEFAULT 0,
		social_minutes        DOUBLE PRECISION NOT NULL DEFAULT 0,
		productivity_minutes  DOUBLE PRECISION NOT NULL DEFAULT 0,
		gaming_minutes        DOUBLE PRECISION NOT NULL DEFAULT 0,
		most_used_app         TEXT NOT NULL DEFAULT '',
		most_productive_day   TEXT NOT NULL DEFAULT '',
		updated_at            TEXT NOT NULL,
		PRIMARY KEY (user_id, year, week_number)
	)`,

	`CREATE TABLE IF NOT EXISTS app_usage (
		user_id       TEXT NOT NULL,
		date          TEXT NOT NULL,
		app_name      TEXT NOT NULL,
		category      TEXT NOT NULL,
		total_minutes DOUBLE PRECISION NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, date, app_name, category)
	)`,

	`CREATE TABLE IF NOT EXISTS phone_usage_logs (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		app_name   TEXT NOT NULL,
		duration   TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_phone_usage_user_created ON phone_usage_logs(user_id, created_at)`,
}
