// Package ddl turns model declarations into SQLite statement text.
//
// Every function here is pure: it takes a model or field and returns
// statement text, so the output can be checked without a database.
// Identifiers are interpolated; row values are only ever bound through
// placeholders.
package ddl

import (
	"fmt"

	"github.com/tordrt/schemasync/internal/schema"
)

// Native column types.
const (
	TypeInteger = "INTEGER"
	TypeReal    = "REAL"
	TypeText    = "TEXT"
	TypeBlob    = "BLOB"
)

// ColumnType returns the native column type of a scalar field.
//
// DateTime values are stored as text; encoding them is up to the caller.
// Enum values are stored as text and their allowed set is not enforced.
func ColumnType(f schema.Field) (string, error) {
	switch f.Kind {
	case schema.KindInteger:
		return TypeInteger, nil
	case schema.KindFloat, schema.KindDecimal:
		return TypeReal, nil
	case schema.KindString, schema.KindText, schema.KindDateTime, schema.KindEnum:
		return TypeText, nil
	case schema.KindBlob:
		return TypeBlob, nil
	default:
		return "", fmt.Errorf("%w: %s has no column type", schema.ErrUnmappedKind, f.Kind)
	}
}
