package ddl

import (
	"fmt"
	"strings"

	"github.com/tordrt/schemasync/internal/schema"
)

// Plan is the set of statements that recreate a model's table.
type Plan struct {
	Table       string
	Columns     []string
	CreateTable string
	Indexes     []string
}

// Statements returns the plan's DDL in execution order.
func (p *Plan) Statements() []string {
	return append([]string{p.CreateTable}, p.Indexes...)
}

// Build validates the model and derives its CREATE TABLE and
// CREATE UNIQUE INDEX statements.
func Build(m *schema.Model) (*Plan, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	var clauses, foreignKeys, indexes []string
	for _, f := range m.Fields {
		switch f.Kind {
		case schema.KindForeignKey:
			clause, err := ForeignKeyClause(f.ForeignKey)
			if err != nil {
				return nil, fmt.Errorf("model %s: field %s: %w", m.Name, f.ID, err)
			}
			foreignKeys = append(foreignKeys, clause)
		case schema.KindUniqueIndex:
			indexes = append(indexes, CreateUniqueIndex(f.IndexName(), m.Table(), f.Index.Columns))
		default:
			clause, err := ColumnClause(f, m.PrimaryKey)
			if err != nil {
				return nil, fmt.Errorf("model %s: field %s: %w", m.Name, f.ID, err)
			}
			clauses = append(clauses, clause)
		}
	}

	return &Plan{
		Table:       m.Table(),
		Columns:     m.Columns(),
		CreateTable: CreateTable(m.Table(), append(clauses, foreignKeys...)),
		Indexes:     indexes,
	}, nil
}

// ColumnClause renders "<name> <type>[ NOT NULL][ PRIMARY KEY]".
func ColumnClause(f schema.Field, primaryKey string) (string, error) {
	typ, err := ColumnType(f)
	if err != nil {
		return "", err
	}

	parts := []string{Ident(f.ColumnName()), typ}
	if f.NotNull {
		parts = append(parts, "NOT NULL")
	}
	if primaryKey != "" && f.ColumnName() == primaryKey {
		parts = append(parts, "PRIMARY KEY")
	}
	return strings.Join(parts, " "), nil
}

// ForeignKeyClause renders a table-level FOREIGN KEY constraint. Local and
// referenced columns are paired by position.
func ForeignKeyClause(fk *schema.ForeignKey) (string, error) {
	if fk == nil || len(fk.Columns) == 0 || len(fk.Columns) != len(fk.References) {
		return "", schema.ErrForeignKeyArity
	}
	onDelete, err := schema.ReferentialAction(fk.OnDelete)
	if err != nil {
		return "", err
	}
	onUpdate, err := schema.ReferentialAction(fk.OnUpdate)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s) ON DELETE %s ON UPDATE %s",
		idents(fk.Columns),
		Ident(fk.Table),
		idents(fk.References),
		onDelete,
		onUpdate), nil
}

// CreateTable renders a CREATE TABLE statement from prepared clauses.
func CreateTable(table string, clauses []string) string {
	return fmt.Sprintf("CREATE TABLE %s (%s)", Ident(table), strings.Join(clauses, ", "))
}

// CreateUniqueIndex renders a CREATE UNIQUE INDEX statement.
func CreateUniqueIndex(name, table string, columns []string) string {
	return fmt.Sprintf("CREATE UNIQUE INDEX %s on %s (%s)", Ident(name), Ident(table), idents(columns))
}

// DropTable renders a DROP TABLE statement.
func DropTable(table string) string {
	return "DROP TABLE " + Ident(table)
}

// SelectAll renders the backup query for a table.
func SelectAll(table string) string {
	return "SELECT * FROM " + Ident(table)
}

// Insert renders an INSERT for the given columns with one positional
// placeholder per column. With no columns the row takes every default.
func Insert(table string, columns []string) string {
	if len(columns) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", Ident(table))
	}
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		Ident(table),
		idents(columns),
		strings.Join(placeholders, ","))
}
