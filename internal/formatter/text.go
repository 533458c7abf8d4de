package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tordrt/schemasync/internal/ddl"
	"github.com/tordrt/schemasync/internal/schema"
)

// TextFormatter formats inspections as terminal tables and plans as a SQL
// script
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// Format writes the inspected tables
func (f *TextFormatter) Format(s *schema.Schema) error {
	for i, t := range s.Tables {
		if i > 0 {
			_, _ = fmt.Fprintln(f.writer) // Blank line between tables
		}
		f.formatTable(t)
	}
	return nil
}

// FormatPlans writes the statements of each plan, one per line
func (f *TextFormatter) FormatPlans(plans []*ddl.Plan) error {
	for i, p := range plans {
		if i > 0 {
			_, _ = fmt.Fprintln(f.writer)
		}
		_, _ = fmt.Fprintf(f.writer, "-- %s\n", p.Table)
		for _, stmt := range p.Statements() {
			_, _ = fmt.Fprintf(f.writer, "%s;\n", stmt)
		}
	}
	return nil
}

func (f *TextFormatter) formatTable(t schema.Table) {
	if !t.Exists {
		_, _ = fmt.Fprintf(f.writer, "TABLE %s (missing)\n", t.Name)
		return
	}

	pkStr := ""
	if len(t.PrimaryKey) > 0 {
		pkStr = fmt.Sprintf(" (PK: %s)", strings.Join(t.PrimaryKey, ", "))
	}
	_, _ = fmt.Fprintf(f.writer, "TABLE %s%s, %d rows\n", t.Name, pkStr, t.RowCount)

	tw := table.NewWriter()
	tw.SetOutputMirror(f.writer)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Column", "Type", "Null", "Default"})
	for _, col := range t.Columns {
		tw.AppendRow(table.Row{col.Name, columnType(col), nullText(col.Nullable), defaultText(col.DefaultValue)})
	}
	tw.Render()

	if len(t.Relations) > 0 {
		_, _ = fmt.Fprintln(f.writer, "  RELATIONS:")
		for _, rel := range t.Relations {
			_, _ = fmt.Fprintf(f.writer, "    %s → %s.%s (ON DELETE %s, ON UPDATE %s)\n",
				rel.SourceColumn, rel.TargetTable, rel.TargetColumn, rel.OnDelete, rel.OnUpdate)
		}
	}

	if len(t.Indexes) > 0 {
		_, _ = fmt.Fprintln(f.writer, "  INDEXES:")
		for _, idx := range t.Indexes {
			unique := ""
			if idx.IsUnique {
				unique = " UNIQUE"
			}
			_, _ = fmt.Fprintf(f.writer, "    %s (%s)%s\n", idx.Name, strings.Join(idx.Columns, ", "), unique)
		}
	}
}

func columnType(col schema.Column) string {
	if len(col.EnumValues) > 0 {
		return fmt.Sprintf("%s (%s)", col.Type, strings.Join(col.EnumValues, "|"))
	}
	return col.Type
}

func nullText(nullable bool) string {
	if nullable {
		return "YES"
	}
	return "NO"
}

func defaultText(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
