// Package syncer reconciles a table with its model declaration by backing
// up its rows, dropping it, recreating it and restoring the rows.
//
// The cycle is only as atomic as the Connection it runs on. Between the
// drop and the final commit the backup exists only in memory; on a
// connection without transactional DDL a crash in that window loses the
// table and its rows.
package syncer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/tordrt/schemasync/internal/ddl"
	"github.com/tordrt/schemasync/internal/schema"
)

// Connection is the storage the synchronizer runs against.
type Connection interface {
	HasTable(ctx context.Context, name string) (bool, error)
	Exec(ctx context.Context, stmt string, args ...any) error
	Query(ctx context.Context, stmt string) ([]schema.Row, error)
	Commit() error
}

// Synchronizer runs backup, drop, create and restore for one model at a time.
type Synchronizer struct {
	logger *slog.Logger
}

// New creates a synchronizer. A nil logger discards output.
func New(logger *slog.Logger) *Synchronizer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Synchronizer{logger: logger}
}

// Synchronize recreates the model's table on conn, keeping its rows.
// Configuration errors are returned before conn is used. Connection errors
// are returned wrapped and unchanged in identity.
func (s *Synchronizer) Synchronize(ctx context.Context, conn Connection, m *schema.Model) error {
	plan, err := ddl.Build(m)
	if err != nil {
		return err
	}
	table := plan.Table
	log := s.logger.With("table", table)

	exists, err := conn.HasTable(ctx, table)
	if err != nil {
		return fmt.Errorf("failed to check table %s: %w", table, err)
	}

	var backup []schema.Row
	if exists {
		backup, err = conn.Query(ctx, ddl.SelectAll(table))
		if err != nil {
			return fmt.Errorf("failed to back up table %s: %w", table, err)
		}
		log.Debug("backed up table", "rows", len(backup))

		if err := conn.Exec(ctx, ddl.DropTable(table)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	if err := conn.Exec(ctx, plan.CreateTable); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}
	for _, stmt := range plan.Indexes {
		if err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", table, err)
		}
	}

	if exists {
		if err := restore(ctx, conn, plan, backup); err != nil {
			return err
		}
		log.Debug("restored table", "rows", len(backup))
	}

	if err := conn.Commit(); err != nil {
		return fmt.Errorf("failed to commit table %s: %w", table, err)
	}

	log.Info("synchronized table", "existed", exists, "rows", len(backup), "indexes", len(plan.Indexes))
	return nil
}

func restore(ctx context.Context, conn Connection, plan *ddl.Plan, backup []schema.Row) error {
	keep := make(map[string]bool, len(plan.Columns))
	for _, col := range plan.Columns {
		keep[col] = true
	}

	for i, row := range backup {
		columns, values := Retain(row, keep)
		if err := conn.Exec(ctx, ddl.Insert(plan.Table, columns), values...); err != nil {
			return fmt.Errorf("failed to restore row %d of %s: %w", i, plan.Table, err)
		}
	}
	return nil
}

// Retain returns the row's columns that are present in keep, with their
// values, in the row's own order.
func Retain(row schema.Row, keep map[string]bool) ([]string, []any) {
	columns := make([]string, 0, len(row.Columns))
	values := make([]any, 0, len(row.Columns))
	for i, col := range row.Columns {
		if !keep[col] {
			continue
		}
		columns = append(columns, col)
		values = append(values, row.Values[i])
	}
	return columns, values
}
