package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ashlinalex1/mindstride/internal/db"
	"github.com/ashlinalex1/mindstride/internal/domain"
)

// SQLPhoneUsageRepo implements PhoneUsageRepo.
type SQLPhoneUsageRepo struct {
	db db.DBTX
}

func NewSQLPhoneUsageRepo(db db.DBTX) *SQLPhoneUsageRepo {
	return &SQLPhoneUsageRepo{db: db}
}

type phoneUsageRow struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	AppName   string `db:"app_name"`
	Duration  string `db:"duration"`
	CreatedAt string `db:"created_at"`
}

func (r *SQLPhoneUsageRepo) Create(ctx context.Context, l *domain.PhoneUsageLog) error {
	query := r.db.Rebind(`INSERT INTO phone_usage_logs (id, user_id, app_name, duration, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.UserID,
		l.AppName,
		l.Duration,
		l.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting phone usage log: %w", err)
	}
	return nil
}

func (r *SQLPhoneUsageRepo) ListSince(ctx context.Context, userID string, since time.Time) ([]*domain.PhoneUsageLog, error) {
	query := r.db.Rebind(`SELECT id, user_id, app_name, duration, created_at
		FROM phone_usage_logs
		WHERE user_id = ? AND created_at >= ?
		ORDER BY created_at DESC, id`)
	var rows []phoneUsageRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, since.UTC().Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf("listing phone usage: %w", err)
	}

	out := make([]*domain.PhoneUsageLog, 0, len(rows))
	for _, row := range rows {
		created, err := time.Parse(time.RFC3339, row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at of %s: %w", row.ID, err)
		}
		out = append(out, &domain.PhoneUsageLog{
			ID:        row.ID,
			UserID:    row.UserID,
			AppName:   row.AppName,
			Duration:  row.Duration,
			CreatedAt: created,
		})
	}
	return out, nil
}

func (r *SQLPhoneUsageRepo) DeleteBefore(ctx context.Context, userID string, before time.Time) (int64, error) {
	query := r.db.Rebind(`DELETE FROM phone_usage_logs WHERE user_id = ? AND created_at < ?`)
	res, err := r.db.ExecContext(ctx, query, userID, before.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("deleting old phone usage: %w", err)
	}
	return rowsAffected(res), nil
}
