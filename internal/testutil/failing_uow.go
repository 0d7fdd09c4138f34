package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ashlinalex1/mindstride/internal/db"
	"github.com/jmoiron/sqlx"
)

// FailingTableUoW runs the callback in a real transaction but fails every
// write statement that targets Table with Err. Reads pass through, so a test
// can break one step of a multi-table use case and assert the rollback.
type FailingTableUoW struct {
	DB    *sqlx.DB
	Table string
	Err   error

	// Writes counts the write statements seen, including the failed ones.
	Writes int
}

func (u *FailingTableUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(ctx, &tableFailer{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type tableFailer struct {
	db.DBTX
	uow *FailingTableUoW
}

func (f *tableFailer) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.uow.Writes++
	if targetsTable(query, f.uow.Table) {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// targetsTable reports whether an INSERT, UPDATE or DELETE statement writes
// to table.
func targetsTable(query, table string) bool {
	fields := strings.Fields(strings.ToLower(query))
	for i, f := range fields {
		if (f == "into" || f == "update" || f == "from") && i+1 < len(fields) {
			if fields[i+1] == table {
				return true
			}
		}
	}
	return false
}
