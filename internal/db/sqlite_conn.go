package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tordrt/schemasync/internal/schema"
)

// ErrForeignKeyViolation is returned by Commit when restored rows reference
// parent rows that no longer exist.
var ErrForeignKeyViolation = errors.New("foreign key violation")

// SQLiteConn runs statements inside one transaction on a pinned connection.
// SQLite DDL is transactional, so a drop that is never committed is undone
// by Rollback.
type SQLiteConn struct {
	ctx         context.Context
	conn        *sql.Conn
	tx          *sql.Tx
	foreignKeys bool
	done        bool
}

// HasTable reports whether a table with the given name exists
func (c *SQLiteConn) HasTable(ctx context.Context, name string) (bool, error) {
	var count int
	err := c.tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Exec executes a statement with positional arguments
func (c *SQLiteConn) Exec(ctx context.Context, stmt string, args ...any) error {
	_, err := c.tx.ExecContext(ctx, stmt, args...)
	return err
}

// Query runs stmt and materializes every row
func (c *SQLiteConn) Query(ctx context.Context, stmt string) ([]schema.Row, error) {
	rows, err := c.tx.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

// Commit commits the transaction. When foreign keys were enforced on the
// connection, every reference is checked first and a violation rolls the
// transaction back instead.
func (c *SQLiteConn) Commit() error {
	if c.done {
		return sql.ErrTxDone
	}
	c.done = true
	defer c.release()

	if c.foreignKeys {
		if err := c.foreignKeyCheck(); err != nil {
			_ = c.tx.Rollback()
			return err
		}
	}
	return c.tx.Commit()
}

// Rollback aborts the transaction. It is a no-op after Commit.
func (c *SQLiteConn) Rollback() error {
	if c.done {
		return nil
	}
	c.done = true
	defer c.release()

	if err := c.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

func (c *SQLiteConn) foreignKeyCheck() error {
	rows, err := c.tx.QueryContext(c.ctx, "PRAGMA foreign_key_check")
	if err != nil {
		return fmt.Errorf("failed to check foreign keys: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		var table, parent string
		var rowid sql.NullInt64
		var fkid int
		if err := rows.Scan(&table, &rowid, &parent, &fkid); err != nil {
			return err
		}
		return fmt.Errorf("%w: row %d of %s references a missing row of %s", ErrForeignKeyViolation, rowid.Int64, table, parent)
	}
	return rows.Err()
}

// release restores the foreign key setting and hands the connection back
// to the pool.
func (c *SQLiteConn) release() {
	if c.conn == nil {
		return
	}
	if c.foreignKeys {
		_, _ = c.conn.ExecContext(context.Background(), "PRAGMA foreign_keys = ON")
	}
	_ = c.conn.Close()
	c.conn = nil
}

// scanRows copies each row's column names and values
func scanRows(rows *sql.Rows) ([]schema.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result []schema.Row
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		names := make([]string, len(columns))
		copy(names, columns)
		result = append(result, schema.Row{Columns: names, Values: values})
	}

	return result, rows.Err()
}
