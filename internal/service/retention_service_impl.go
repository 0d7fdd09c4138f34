package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ashlinalex1/mindstride/internal/app"
	"github.com/ashlinalex1/mindstride/internal/db"
	"github.com/ashlinalex1/mindstride/internal/repository"
)

type retentionService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewRetentionService(uow db.UnitOfWork, observers ...UseCaseObserver) RetentionService {
	return &retentionService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Cleanup removes raw logs dated before now minus KeepDays. Summaries are
// only removed when IncludeSummaries is set.
func (s *retentionService) Cleanup(ctx context.Context, userID string, req app.CleanupRequest) (result *app.CleanupResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"keep_days": req.KeepDays, "include_summaries": req.IncludeSummaries}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "cleanup",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if req.KeepDays < 1 {
		return nil, &app.RequestError{
			Code:    app.ErrInvalidRange,
			Message: fmt.Sprintf("keep days must be at least 1, got %d", req.KeepDays),
		}
	}
	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}
	cutoff := midnight(now).AddDate(0, 0, -req.KeepDays)
	result = &app.CleanupResult{Cutoff: repository.FormatDate(cutoff)}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		if result.ActivityLogs, err = repository.NewSQLActivityLogRepo(tx).DeleteBefore(ctx, userID, cutoff); err != nil {
			return err
		}
		if result.PhoneLogs, err = repository.NewSQLPhoneUsageRepo(tx).DeleteBefore(ctx, userID, cutoff); err != nil {
			return err
		}
		if !req.IncludeSummaries {
			return nil
		}
		if result.DailySummaries, err = repository.NewSQLDailySummaryRepo(tx).DeleteBefore(ctx, userID, cutoff); err != nil {
			return err
		}
		result.AppUsageRows, err = repository.NewSQLAppUsageRepo(tx).DeleteBefore(ctx, userID, cutoff)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("cleaning up before %s: %w", result.Cutoff, err)
	}
	fields["activity_logs"] = result.ActivityLogs
	return result, nil
}
