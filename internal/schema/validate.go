package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors. They are reported before any statement is executed.
var (
	ErrUnmappedKind      = errors.New("unmapped field kind")
	ErrForeignKeyArity   = errors.New("foreign key column count mismatch")
	ErrEmptyIndex        = errors.New("unique index has no columns")
	ErrPrimaryKey        = errors.New("primary key is not a scalar field")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrReferentialAction = errors.New("invalid referential action")
	ErrMissingPayload    = errors.New("field payload missing")
)

const defaultReferentialAction = "NO ACTION"

var referentialActions = map[string]bool{
	"CASCADE":     true,
	"RESTRICT":    true,
	"SET NULL":    true,
	"SET DEFAULT": true,
	"NO ACTION":   true,
}

// ValidIdentifier reports whether name is a plain identifier: a letter or
// underscore followed by letters, digits or underscores. SQLite keywords
// pass and are quoted when rendered.
func ValidIdentifier(name string) bool {
	if name == "" || len(name) > 128 {
		return false
	}
	for i, r := range name {
		letter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		if i == 0 && !letter {
			return false
		}
		if !letter && !(r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// ReferentialAction normalizes an ON DELETE / ON UPDATE action.
// An empty action means NO ACTION.
func ReferentialAction(action string) (string, error) {
	a := strings.Join(strings.Fields(strings.ToUpper(action)), " ")
	if a == "" {
		return defaultReferentialAction, nil
	}
	if !referentialActions[a] {
		return "", fmt.Errorf("%w: %q", ErrReferentialAction, action)
	}
	return a, nil
}

// Validate checks the model for configuration errors.
func (m *Model) Validate() error {
	if !ValidIdentifier(m.Name) {
		return fmt.Errorf("%w: table %q", ErrInvalidIdentifier, m.Name)
	}

	pkFound := m.PrimaryKey == ""
	for _, f := range m.Fields {
		if err := validateField(f); err != nil {
			return fmt.Errorf("model %s: field %s: %w", m.Name, f.ID, err)
		}
		if f.Kind.Scalar() && f.ColumnName() == m.PrimaryKey {
			pkFound = true
		}
	}
	if !pkFound {
		return fmt.Errorf("model %s: %w: %q", m.Name, ErrPrimaryKey, m.PrimaryKey)
	}
	return nil
}

func validateField(f Field) error {
	switch f.Kind {
	case KindInteger, KindFloat, KindDecimal, KindString, KindText,
		KindBlob, KindDateTime, KindEnum:
		return validateIdentifiers("column", f.ColumnName())
	case KindForeignKey:
		fk := f.ForeignKey
		if fk == nil {
			return fmt.Errorf("%w: foreign_key", ErrMissingPayload)
		}
		if len(fk.Columns) == 0 || len(fk.Columns) != len(fk.References) {
			return fmt.Errorf("%w: %d local, %d referenced", ErrForeignKeyArity, len(fk.Columns), len(fk.References))
		}
		if err := validateIdentifiers("referenced table", fk.Table); err != nil {
			return err
		}
		if err := validateIdentifiers("column", fk.Columns...); err != nil {
			return err
		}
		if err := validateIdentifiers("referenced column", fk.References...); err != nil {
			return err
		}
		if _, err := ReferentialAction(fk.OnDelete); err != nil {
			return err
		}
		_, err := ReferentialAction(fk.OnUpdate)
		return err
	case KindUniqueIndex:
		if f.Index == nil || len(f.Index.Columns) == 0 {
			return ErrEmptyIndex
		}
		if err := validateIdentifiers("index", f.IndexName()); err != nil {
			return err
		}
		return validateIdentifiers("column", f.Index.Columns...)
	default:
		return fmt.Errorf("%w: %s", ErrUnmappedKind, f.Kind)
	}
}

func validateIdentifiers(what string, names ...string) error {
	for _, name := range names {
		if !ValidIdentifier(name) {
			return fmt.Errorf("%w: %s %q", ErrInvalidIdentifier, what, name)
		}
	}
	return nil
}
