//go:build integration

package db

import (
	"testing"

	"github.com/tordrt/schemasync/internal/schema"
)

// inspectFixture is created by each integration test before inspection.
var inspectFixture = []string{"sync_users", "sync_orders"}

// findTable finds a table by name in the schema
func findTable(s *schema.Schema, tableName string) *schema.Table {
	for i := range s.Tables {
		if s.Tables[i].Name == tableName {
			return &s.Tables[i]
		}
	}
	return nil
}

// verifyFixture checks the tables every engine's fixture creates
func verifyFixture(t *testing.T, s *schema.Schema) {
	t.Helper()

	if len(s.Tables) != len(inspectFixture) {
		t.Fatalf("Expected %d tables, got %d", len(inspectFixture), len(s.Tables))
	}

	users := findTable(s, "sync_users")
	if users == nil || !users.Exists {
		t.Fatal("sync_users table not found")
	}
	if users.RowCount != 2 {
		t.Errorf("Expected 2 rows in sync_users, got %d", users.RowCount)
	}
	if len(users.PrimaryKey) != 1 || users.PrimaryKey[0] != "id" {
		t.Errorf("Expected primary key [id], got %v", users.PrimaryKey)
	}
	verifyColumns(t, users, []string{"id", "email", "status"})
	verifyIndex(t, users, "sync_users_email", []string{"email"})

	orders := findTable(s, "sync_orders")
	if orders == nil || !orders.Exists {
		t.Fatal("sync_orders table not found")
	}
	if orders.RowCount != 0 {
		t.Errorf("Expected empty sync_orders, got %d rows", orders.RowCount)
	}
	verifyForeignKey(t, orders, "user_id", "sync_users", "CASCADE")
}

// verifyColumns checks that expected columns exist in a table, in order
func verifyColumns(t *testing.T, table *schema.Table, expected []string) {
	t.Helper()

	if len(table.Columns) != len(expected) {
		t.Fatalf("Expected columns %v in %s, got %d columns", expected, table.Name, len(table.Columns))
	}
	for i, name := range expected {
		if table.Columns[i].Name != name {
			t.Errorf("Expected column %d of %s to be %s, got %s", i, table.Name, name, table.Columns[i].Name)
		}
	}
}

// verifyForeignKey checks that a foreign key relationship exists
func verifyForeignKey(t *testing.T, table *schema.Table, sourceColumn, targetTable, onDelete string) {
	t.Helper()

	for _, rel := range table.Relations {
		if rel.TargetTable == targetTable && rel.SourceColumn == sourceColumn {
			if rel.OnDelete != onDelete {
				t.Errorf("Expected ON DELETE %s, got %s", onDelete, rel.OnDelete)
			}
			return
		}
	}

	t.Errorf("Expected foreign key from %s.%s to %s not found", table.Name, sourceColumn, targetTable)
}

// verifyIndex checks that a unique index exists with the expected columns
func verifyIndex(t *testing.T, table *schema.Table, indexName string, expected []string) {
	t.Helper()

	for _, idx := range table.Indexes {
		if idx.Name != indexName {
			continue
		}
		if !idx.IsUnique {
			t.Errorf("Expected index %s to be unique", indexName)
		}
		if len(idx.Columns) != len(expected) {
			t.Errorf("Expected index %s on %v, got %v", indexName, expected, idx.Columns)
			return
		}
		for i, col := range expected {
			if idx.Columns[i] != col {
				t.Errorf("Expected index %s on %v, got %v", indexName, expected, idx.Columns)
				return
			}
		}
		return
	}

	t.Errorf("Expected index %s on %s not found", indexName, table.Name)
}
