package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteClient manages the connection to SQLite
type SQLiteClient struct {
	db *sql.DB
}

// NewSQLiteClient creates a new SQLite client
func NewSQLiteClient(ctx context.Context, path string) (*SQLiteClient, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection so ":memory:" databases and transactions see one file
	db.SetMaxOpenConns(1)

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteClient{db: db}, nil
}

// NewSQLiteClientFromDB wraps an already opened database
func NewSQLiteClientFromDB(db *sql.DB) *SQLiteClient {
	return &SQLiteClient{db: db}
}

// Close closes the database connection
func (c *SQLiteClient) Close() error {
	return c.db.Close()
}

// GetDB returns the underlying database connection
func (c *SQLiteClient) GetDB() *sql.DB {
	return c.db
}

// Begin starts a transaction that a whole synchronization runs in.
//
// Foreign key enforcement is switched off on the connection for the length
// of the transaction, since with it on DROP TABLE deletes the parent rows
// first and cascades into child tables before they are backed up. The
// previous setting is restored by Commit or Rollback.
func (c *SQLiteClient) Begin(ctx context.Context) (*SQLiteConn, error) {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get connection: %w", err)
	}

	var enforced bool
	if err := conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enforced); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to read foreign key setting: %w", err)
	}
	if enforced {
		if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to disable foreign keys: %w", err)
		}
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		if enforced {
			_, _ = conn.ExecContext(ctx, "PRAGMA foreign_keys = ON")
		}
		_ = conn.Close()
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &SQLiteConn{ctx: ctx, conn: conn, tx: tx, foreignKeys: enforced}, nil
}
