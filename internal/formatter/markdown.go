package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/schemasync/internal/ddl"
	"github.com/tordrt/schemasync/internal/schema"
)

// MarkdownFormatter formats inspections and plans as markdown
type MarkdownFormatter struct {
	writer io.Writer
}

// NewMarkdownFormatter creates a new markdown formatter
func NewMarkdownFormatter(w io.Writer) *MarkdownFormatter {
	return &MarkdownFormatter{writer: w}
}

// Format writes the inspected tables
func (f *MarkdownFormatter) Format(s *schema.Schema) error {
	_, _ = fmt.Fprintln(f.writer, "# Database Tables")
	_, _ = fmt.Fprintln(f.writer)

	for _, t := range s.Tables {
		f.formatTable(t)
	}
	return nil
}

// FormatPlans writes each plan as a fenced SQL block
func (f *MarkdownFormatter) FormatPlans(plans []*ddl.Plan) error {
	_, _ = fmt.Fprintln(f.writer, "# Synchronization Plan")
	_, _ = fmt.Fprintln(f.writer)

	for _, p := range plans {
		_, _ = fmt.Fprintf(f.writer, "## %s\n\n", p.Table)
		_, _ = fmt.Fprintln(f.writer, "```sql")
		for _, stmt := range p.Statements() {
			_, _ = fmt.Fprintf(f.writer, "%s;\n", stmt)
		}
		_, _ = fmt.Fprintln(f.writer, "```")
		_, _ = fmt.Fprintln(f.writer)
	}
	return nil
}

func (f *MarkdownFormatter) formatTable(t schema.Table) {
	_, _ = fmt.Fprintf(f.writer, "## %s\n\n", t.Name)

	if !t.Exists {
		_, _ = fmt.Fprintln(f.writer, "_Table does not exist._")
		_, _ = fmt.Fprintln(f.writer)
		return
	}

	_, _ = fmt.Fprintf(f.writer, "Rows: %d\n\n", t.RowCount)

	_, _ = fmt.Fprintln(f.writer, "### Columns")
	_, _ = fmt.Fprintln(f.writer)
	for _, col := range t.Columns {
		constraintStr := formatConstraints(col, t.PrimaryKey)
		if constraintStr != "" {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s, %s\n", col.Name, columnType(col), constraintStr)
		} else {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s\n", col.Name, columnType(col))
		}
	}
	_, _ = fmt.Fprintln(f.writer)

	if len(t.Relations) > 0 {
		_, _ = fmt.Fprintln(f.writer, "### References")
		_, _ = fmt.Fprintln(f.writer)
		for _, rel := range t.Relations {
			_, _ = fmt.Fprintf(f.writer, "- %s → %s.%s (on delete %s, on update %s)\n",
				rel.SourceColumn, rel.TargetTable, rel.TargetColumn,
				strings.ToLower(rel.OnDelete), strings.ToLower(rel.OnUpdate))
		}
		_, _ = fmt.Fprintln(f.writer)
	}

	if len(t.Indexes) > 0 {
		_, _ = fmt.Fprintln(f.writer, "### Indexes")
		_, _ = fmt.Fprintln(f.writer)
		for _, idx := range t.Indexes {
			unique := ""
			if idx.IsUnique {
				unique = ", unique"
			}
			_, _ = fmt.Fprintf(f.writer, "- %s on (%s)%s\n", idx.Name, strings.Join(idx.Columns, ", "), unique)
		}
		_, _ = fmt.Fprintln(f.writer)
	}
}

func formatConstraints(col schema.Column, primaryKey []string) string {
	var constraints []string

	for _, pk := range primaryKey {
		if pk == col.Name {
			constraints = append(constraints, "PK")
			break
		}
	}

	if !col.Nullable {
		constraints = append(constraints, "NOT NULL")
	}

	if col.DefaultValue != nil {
		constraints = append(constraints, fmt.Sprintf("DEFAULT %s", *col.DefaultValue))
	}

	return strings.Join(constraints, ", ")
}
