package service

import (
	"context"
	"sync"
	"testing"

	"github.com/ashlinalex1/mindstride/internal/repository"
	"github.com/ashlinalex1/mindstride/internal/testutil"
	"github.com/jmoiron/sqlx"
)

type testRepos struct {
	db     *sqlx.DB
	logs   *repository.SQLActivityLogRepo
	daily  *repository.SQLDailySummaryRepo
	weekly *repository.SQLWeeklySummaryRepo
	apps   *repository.SQLAppUsageRepo
	phone  *repository.SQLPhoneUsageRepo
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		db:     database,
		logs:   repository.NewSQLActivityLogRepo(database),
		daily:  repository.NewSQLDailySummaryRepo(database),
		weekly: repository.NewSQLWeeklySummaryRepo(database),
		apps:   repository.NewSQLAppUsageRepo(database),
		phone:  repository.NewSQLPhoneUsageRepo(database),
	}
}

func (r testRepos) summaryService(observers ...UseCaseObserver) SummaryService {
	return NewSummaryService(r.logs, r.daily, r.weekly, r.apps, observers...)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
