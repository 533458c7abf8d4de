package schema

import (
	"fmt"
	"strings"
)

// Kind is the closed set of field descriptor variants.
type Kind int

const (
	KindInvalid Kind = iota
	KindInteger
	KindFloat
	KindDecimal
	KindString
	KindText
	KindBlob
	KindDateTime
	KindEnum
	KindForeignKey
	KindUniqueIndex
)

var kindNames = map[Kind]string{
	KindInteger:     "integer",
	KindFloat:       "float",
	KindDecimal:     "decimal",
	KindString:      "string",
	KindText:        "text",
	KindBlob:        "blob",
	KindDateTime:    "datetime",
	KindEnum:        "enum",
	KindForeignKey:  "foreign_key",
	KindUniqueIndex: "unique_index",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Scalar reports whether fields of this kind become table columns.
func (k Kind) Scalar() bool {
	switch k {
	case KindInteger, KindFloat, KindDecimal, KindString, KindText,
		KindBlob, KindDateTime, KindEnum:
		return true
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnmappedKind, int(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so model files can name
// kinds as strings.
func (k *Kind) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for kind, n := range kindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnmappedKind, name)
}

// ForeignKey is the payload of a KindForeignKey field. Columns[i] refers
// to References[i] on Table.
type ForeignKey struct {
	Columns    []string `yaml:"columns"`
	Table      string   `yaml:"table"`
	References []string `yaml:"references"`
	OnDelete   string   `yaml:"on_delete"`
	OnUpdate   string   `yaml:"on_update"`
}

// UniqueIndex is the payload of a KindUniqueIndex field.
type UniqueIndex struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
}

// Field describes one declared model attribute.
type Field struct {
	ID      string `yaml:"id"`
	Kind    Kind   `yaml:"type"`
	Column  string `yaml:"column"`
	NotNull bool   `yaml:"not_null"`

	// Values lists allowed Enum values. They are not enforced by the schema.
	Values []string `yaml:"values,omitempty"`

	ForeignKey *ForeignKey  `yaml:"foreign_key,omitempty"`
	Index      *UniqueIndex `yaml:"unique_index,omitempty"`
}

// ColumnName returns the column a scalar field is stored in.
func (f Field) ColumnName() string {
	if f.Column != "" {
		return f.Column
	}
	return f.ID
}

// IndexName returns the name of a unique index field.
func (f Field) IndexName() string {
	if f.Index != nil && f.Index.Name != "" {
		return f.Index.Name
	}
	return f.ID
}

// Model is the declaration a table is synchronized against. Field order is
// the column order of the generated table.
type Model struct {
	Name       string  `yaml:"name"`
	Fields     []Field `yaml:"fields"`
	PrimaryKey string  `yaml:"primary_key"`

	// Engine and Charset are carried for callers and never interpreted.
	Engine  string `yaml:"engine,omitempty"`
	Charset string `yaml:"charset,omitempty"`
}

// Table returns the name of the table backing the model.
func (m *Model) Table() string {
	return m.Name
}

// Columns returns the column names of the scalar fields in declared order.
func (m *Model) Columns() []string {
	var columns []string
	for _, f := range m.Fields {
		if f.Kind.Scalar() {
			columns = append(columns, f.ColumnName())
		}
	}
	return columns
}
