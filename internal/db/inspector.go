package db

import (
	"context"
	"fmt"

	"github.com/tordrt/schemasync/internal/schema"
)

// Inspector reports the stored state of tables so an operator can check
// the result of a synchronization, including one that failed midway.
type Inspector interface {
	// InspectSchema inspects the named tables. If tables is empty, every
	// table in the database is inspected.
	InspectSchema(ctx context.Context, tables []string) (*schema.Schema, error)
}

// tableInspector is the per-engine part of an Inspector.
type tableInspector interface {
	tableNames(ctx context.Context) ([]string, error)
	hasTable(ctx context.Context, name string) (bool, error)
	rowCount(ctx context.Context, name string) (int64, error)
	columns(ctx context.Context, name string) ([]schema.Column, []string, error)
	relations(ctx context.Context, name string) ([]schema.Relation, error)
	indexes(ctx context.Context, name string) ([]schema.Index, error)
}

// inspectSchema drives a tableInspector over the requested tables.
func inspectSchema(ctx context.Context, ti tableInspector, requested []string) (*schema.Schema, error) {
	names := requested
	if len(names) == 0 {
		var err error
		names, err = ti.tableNames(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get table names: %w", err)
		}
	}

	tables := make([]schema.Table, 0, len(names))
	for _, name := range names {
		table, err := inspectTable(ctx, ti, name)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect table %s: %w", name, err)
		}
		tables = append(tables, *table)
	}

	return &schema.Schema{Tables: tables}, nil
}

// inspectTable collects everything known about a single table
func inspectTable(ctx context.Context, ti tableInspector, name string) (*schema.Table, error) {
	table := &schema.Table{Name: name}

	exists, err := ti.hasTable(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existence: %w", err)
	}
	if !exists {
		return table, nil
	}
	table.Exists = true

	if table.RowCount, err = ti.rowCount(ctx, name); err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	if table.Columns, table.PrimaryKey, err = ti.columns(ctx, name); err != nil {
		return nil, fmt.Errorf("failed to extract columns: %w", err)
	}

	if table.Relations, err = ti.relations(ctx, name); err != nil {
		return nil, fmt.Errorf("failed to extract relations: %w", err)
	}

	if table.Indexes, err = ti.indexes(ctx, name); err != nil {
		return nil, fmt.Errorf("failed to extract indexes: %w", err)
	}

	return table, nil
}
