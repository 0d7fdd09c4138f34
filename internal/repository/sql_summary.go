package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ashlinalex1/mindstride/internal/db"
	"github.com/ashlinalex1/mindstride/internal/domain"
)

// minutesRow holds the per-category columns shared by daily and weekly rows.
type minutesRow struct {
	Study         float64 `db:"study_minutes"`
	Entertainment float64 `db:"entertainment_minutes"`
	Others        float64 `db:"others_minutes"`
	Work          float64 `db:"work_minutes"`
	Social        float64 `db:"social_minutes"`
	Productivity  float64 `db:"productivity_minutes"`
	Gaming        float64 `db:"gaming_minutes"`
	MostUsedApp   string  `db:"most_used_app"`
	UpdatedAt     string  `db:"updated_at"`
}

const minutesColumns = `study_minutes, entertainment_minutes, others_minutes, work_minutes,
	social_minutes, productivity_minutes, gaming_minutes, most_used_app, updated_at`

const minutesUpdates = `study_minutes = excluded.study_minutes,
	entertainment_minutes = excluded.entertainment_minutes,
	others_minutes = excluded.others_minutes,
	work_minutes = excluded.work_minutes,
	social_minutes = excluded.social_minutes,
	productivity_minutes = excluded.productivity_minutes,
	gaming_minutes = excluded.gaming_minutes,
	most_used_app = excluded.most_used_app,
	updated_at = excluded.updated_at`

func minutesArgs(s domain.ActivitySummary) []any {
	updated := s.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	return []any{
		s.StudyMinutes(),
		s.EntertainmentMinutes(),
		s.OtherMinutes(),
		s.WorkMinutes(),
		s.SocialMinutes(),
		s.ProductivityMinutes(),
		s.GamingMinutes(),
		s.MostUsedApp,
		updated.UTC().Format(time.RFC3339),
	}
}

func (m minutesRow) summary() (domain.ActivitySummary, error) {
	bucket := domain.CategoryBucket{}
	put := func(c domain.Category, v float64) {
		if v != 0 {
			bucket[c] = v
		}
	}
	put(domain.CategoryStudy, m.Study)
	put(domain.CategoryEntertainment, m.Entertainment)
	put(domain.CategoryOther, m.Others)
	put(domain.CategoryWork, m.Work)
	put(domain.CategorySocial, m.Social)
	put(domain.CategoryProductivity, m.Productivity)
	put(domain.CategoryGaming, m.Gaming)

	s := domain.NewActivitySummary(bucket)
	s.MostUsedApp = m.MostUsedApp
	updated, err := time.Parse(time.RFC3339, m.UpdatedAt)
	if err != nil {
		return s, fmt.Errorf("parsing updated_at: %w", err)
	}
	s.UpdatedAt = updated
	return s, nil
}

// SQLDailySummaryRepo implements DailySummaryRepo.
type SQLDailySummaryRepo struct {
	db db.DBTX
}

func NewSQLDailySummaryRepo(db db.DBTX) *SQLDailySummaryRepo {
	return &SQLDailySummaryRepo{db: db}
}

type dailyRow struct {
	UserID string `db:"user_id"`
	Date   string `db:"date"`
	minutesRow
}

func (r *SQLDailySummaryRepo) Upsert(ctx context.Context, s *domain.DailySummary) error {
	query := r.db.Rebind(`INSERT INTO daily_summary (user_id, date, ` + minutesColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date) DO UPDATE SET ` + minutesUpdates)
	args := append([]any{s.UserID, FormatDate(s.Date)}, minutesArgs(s.ActivitySummary)...)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting daily summary: %w", err)
	}
	return nil
}

func (r *SQLDailySummaryRepo) Get(ctx context.Context, userID string, date time.Time) (*domain.DailySummary, error) {
	query := r.db.Rebind(`SELECT user_id, date, ` + minutesColumns + `
		FROM daily_summary WHERE user_id = ? AND date = ?`)
	var row dailyRow
	if err := r.db.GetContext(ctx, &row, query, userID, FormatDate(date)); err != nil {
		return nil, notFound("daily summary", err)
	}
	return row.toDomain()
}

func (r *SQLDailySummaryRepo) ListRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailySummary, error) {
	query := r.db.Rebind(`SELECT user_id, date, ` + minutesColumns + `
		FROM daily_summary
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date`)
	var rows []dailyRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, FormatDate(from), FormatDate(to)); err != nil {
		return nil, fmt.Errorf("listing daily summaries: %w", err)
	}
	out := make([]*domain.DailySummary, 0, len(rows))
	for _, row := range rows {
		d, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *SQLDailySummaryRepo) DeleteBefore(ctx context.Context, userID string, date time.Time) (int64, error) {
	query := r.db.Rebind(`DELETE FROM daily_summary WHERE user_id = ? AND date < ?`)
	res, err := r.db.ExecContext(ctx, query, userID, FormatDate(date))
	if err != nil {
		return 0, fmt.Errorf("deleting old daily summaries: %w", err)
	}
	return rowsAffected(res), nil
}

func (row dailyRow) toDomain() (*domain.DailySummary, error) {
	date, err := parseDate(row.Date)
	if err != nil {
		return nil, err
	}
	s, err := row.summary()
	if err != nil {
		return nil, fmt.Errorf("daily summary %s: %w", row.Date, err)
	}
	return &domain.DailySummary{UserID: row.UserID, Date: date, ActivitySummary: s}, nil
}

// SQLWeeklySummaryRepo implements WeeklySummaryRepo.
type SQLWeeklySummaryRepo struct {
	db db.DBTX
}

func NewSQLWeeklySummaryRepo(db db.DBTX) *SQLWeeklySummaryRepo {
	return &SQLWeeklySummaryRepo{db: db}
}

type weeklyRow struct {
	UserID            string `db:"user_id"`
	Year              int    `db:"year"`
	WeekNumber        int    `db:"week_number"`
	WeekStart         string `db:"week_start"`
	MostProductiveDay string `db:"most_productive_day"`
	minutesRow
}

func (r *SQLWeeklySummaryRepo) Upsert(ctx context.Context, s *domain.WeeklySummary) error {
	query := r.db.Rebind(`INSERT INTO weekly_summary (user_id, year, week_number, week_start, most_productive_day, ` + minutesColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, year, week_number) DO UPDATE SET
		week_start = excluded.week_start,
		most_productive_day = excluded.most_productive_day,
		` + minutesUpdates)
	var productive string
	if !s.MostProductiveDay.IsZero() {
		productive = FormatDate(s.MostProductiveDay)
	}
	args := append([]any{s.UserID, s.Year, s.Week, FormatDate(s.WeekStart), productive}, minutesArgs(s.ActivitySummary)...)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting weekly summary: %w", err)
	}
	return nil
}

func (r *SQLWeeklySummaryRepo) Get(ctx context.Context, userID string, year, week int) (*domain.WeeklySummary, error) {
	query := r.db.Rebind(`SELECT user_id, year, week_number, week_start, most_productive_day, ` + minutesColumns + `
		FROM weekly_summary WHERE user_id = ? AND year = ? AND week_number = ?`)
	var row weeklyRow
	if err := r.db.GetContext(ctx, &row, query, userID, year, week); err != nil {
		return nil, notFound("weekly summary", err)
	}
	start, err := parseDate(row.WeekStart)
	if err != nil {
		return nil, err
	}
	productive, err := parseNullableDate(row.MostProductiveDay)
	if err != nil {
		return nil, err
	}
	s, err := row.summary()
	if err != nil {
		return nil, fmt.Errorf("weekly summary %d-W%02d: %w", year, week, err)
	}
	return &domain.WeeklySummary{
		UserID:            row.UserID,
		Year:              row.Year,
		Week:              row.WeekNumber,
		WeekStart:         start,
		MostProductiveDay: productive,
		ActivitySummary:   s,
	}, nil
}
