package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ashlinalex1/mindstride/internal/db"
	"github.com/ashlinalex1/mindstride/internal/domain"
)

// SQLActivityLogRepo implements ActivityLogRepo on sqlite or postgres.
type SQLActivityLogRepo struct {
	db db.DBTX
}

func NewSQLActivityLogRepo(db db.DBTX) *SQLActivityLogRepo {
	return &SQLActivityLogRepo{db: db}
}

type activityLogRow struct {
	ID              string  `db:"id"`
	UserID          string  `db:"user_id"`
	Timestamp       string  `db:"timestamp"`
	AppName         string  `db:"app_name"`
	WindowTitle     string  `db:"window_title"`
	Category        string  `db:"category"`
	DurationSeconds float64 `db:"duration_seconds"`
	Date            string  `db:"date"`
	CreatedAt       string  `db:"created_at"`
}

const activityLogColumns = `id, user_id, timestamp, app_name, window_title, category, duration_seconds, date, created_at`

func (r *SQLActivityLogRepo) InsertBatch(ctx context.Context, logs []*domain.ActivityLog) error {
	query := r.db.Rebind(`INSERT INTO activity_logs (` + activityLogColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	for _, l := range logs {
		_, err := r.db.ExecContext(ctx, query,
			l.ID,
			l.UserID,
			l.Timestamp.Format(time.RFC3339),
			l.AppName,
			l.WindowTitle,
			string(l.Category),
			l.DurationSeconds,
			l.Date,
			l.CreatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting activity log %s: %w", l.ID, err)
		}
	}
	return nil
}

func (r *SQLActivityLogRepo) ListByDate(ctx context.Context, userID string, date time.Time, limit int) ([]*domain.ActivityLog, error) {
	query := r.db.Rebind(`SELECT ` + activityLogColumns + `
		FROM activity_logs
		WHERE user_id = ? AND date = ?
		ORDER BY timestamp DESC, id
		LIMIT ?`)
	var rows []activityLogRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, FormatDate(date), limit); err != nil {
		return nil, fmt.Errorf("listing activity logs by date: %w", err)
	}
	return toActivityLogs(rows)
}

func (r *SQLActivityLogRepo) ListRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.ActivityLog, error) {
	query := r.db.Rebind(`SELECT ` + activityLogColumns + `
		FROM activity_logs
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY timestamp, id`)
	var rows []activityLogRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, FormatDate(from), FormatDate(to)); err != nil {
		return nil, fmt.Errorf("listing activity logs in range: %w", err)
	}
	return toActivityLogs(rows)
}

func (r *SQLActivityLogRepo) DeleteBefore(ctx context.Context, userID string, date time.Time) (int64, error) {
	query := r.db.Rebind(`DELETE FROM activity_logs WHERE user_id = ? AND date < ?`)
	res, err := r.db.ExecContext(ctx, query, userID, FormatDate(date))
	if err != nil {
		return 0, fmt.Errorf("deleting old activity logs: %w", err)
	}
	return rowsAffected(res), nil
}

func toActivityLogs(rows []activityLogRow) ([]*domain.ActivityLog, error) {
	logs := make([]*domain.ActivityLog, 0, len(rows))
	for _, row := range rows {
		ts, err := time.Parse(time.RFC3339, row.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp of %s: %w", row.ID, err)
		}
		created, err := time.Parse(time.RFC3339, row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at of %s: %w", row.ID, err)
		}
		logs = append(logs, &domain.ActivityLog{
			ID:              row.ID,
			UserID:          row.UserID,
			Timestamp:       ts,
			AppName:         row.AppName,
			WindowTitle:     row.WindowTitle,
			Category:        domain.Category(row.Category),
			DurationSeconds: row.DurationSeconds,
			Date:            row.Date,
			CreatedAt:       created,
		})
	}
	return logs, nil
}
