package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ashlinalex1/mindstride/internal/db"
	"github.com/ashlinalex1/mindstride/internal/domain"
)

// SQLAppUsageRepo implements AppUsageRepo.
type SQLAppUsageRepo struct {
	db db.DBTX
}

func NewSQLAppUsageRepo(db db.DBTX) *SQLAppUsageRepo {
	return &SQLAppUsageRepo{db: db}
}

type appUsageRow struct {
	AppName      string  `db:"app_name"`
	Category     string  `db:"category"`
	TotalMinutes float64 `db:"total_minutes"`
}

func (r *SQLAppUsageRepo) ReplaceForDate(ctx context.Context, userID string, date time.Time, usages []domain.AppUsage) error {
	day := FormatDate(date)
	del := r.db.Rebind(`DELETE FROM app_usage WHERE user_id = ? AND date = ?`)
	if _, err := r.db.ExecContext(ctx, del, userID, day); err != nil {
		return fmt.Errorf("clearing app usage for %s: %w", day, err)
	}

	ins := r.db.Rebind(`INSERT INTO app_usage (user_id, date, app_name, category, total_minutes)
		VALUES (?, ?, ?, ?, ?)`)
	for _, u := range usages {
		if _, err := r.db.ExecContext(ctx, ins, userID, day, u.AppName, string(u.Category), u.TotalMinutes); err != nil {
			return fmt.Errorf("inserting app usage %s: %w", u.AppName, err)
		}
	}
	return nil
}

func (r *SQLAppUsageRepo) TopByCategory(ctx context.Context, userID string, from time.Time, perCategory int) (map[domain.Category][]domain.AppUsage, error) {
	query := r.db.Rebind(`SELECT app_name, category, SUM(total_minutes) AS total_minutes
		FROM app_usage
		WHERE user_id = ? AND date >= ?
		GROUP BY app_name, category
		ORDER BY total_minutes DESC, app_name`)
	var rows []appUsageRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, FormatDate(from)); err != nil {
		return nil, fmt.Errorf("listing top apps: %w", err)
	}

	out := map[domain.Category][]domain.AppUsage{}
	for _, row := range rows {
		c := domain.Category(row.Category)
		if len(out[c]) >= perCategory {
			continue
		}
		out[c] = append(out[c], domain.AppUsage{
			UserID:       userID,
			AppName:      row.AppName,
			Category:     c,
			TotalMinutes: row.TotalMinutes,
		})
	}
	return out, nil
}

func (r *SQLAppUsageRepo) DeleteBefore(ctx context.Context, userID string, date time.Time) (int64, error) {
	query := r.db.Rebind(`DELETE FROM app_usage WHERE user_id = ? AND date < ?`)
	res, err := r.db.ExecContext(ctx, query, userID, FormatDate(date))
	if err != nil {
		return 0, fmt.Errorf("deleting old app usage: %w", err)
	}
	return rowsAffected(res), nil
}
