// Package formatter renders inspection reports and synchronization plans.
package formatter

import (
	"fmt"
	"io"

	"github.com/tordrt/schemasync/internal/ddl"
	"github.com/tordrt/schemasync/internal/schema"
)

// Formatter renders inspected tables and planned statements
type Formatter interface {
	Format(s *schema.Schema) error
	FormatPlans(plans []*ddl.Plan) error
}

// New returns the formatter for the named format: "text" or "markdown"
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "", "text":
		return NewTextFormatter(w), nil
	case "markdown", "md":
		return NewMarkdownFormatter(w), nil
	default:
		return nil, fmt.Errorf("invalid format: %s (must be 'text' or 'markdown')", format)
	}
}
