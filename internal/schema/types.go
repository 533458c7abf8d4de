package schema

// Schema represents the inspected state of a set of tables
type Schema struct {
	Tables []Table
}

// Table represents an inspected database table
type Table struct {
	Name       string
	Exists     bool
	RowCount   int64
	Columns    []Column
	Relations  []Relation
	Indexes    []Index
	PrimaryKey []string
}

// Column represents a table column
type Column struct {
	Name         string
	Type         string
	Nullable     bool
	DefaultValue *string
	EnumValues   []string
}

// Relation represents one column pair of a foreign key
type Relation struct {
	TargetTable  string
	TargetColumn string
	SourceColumn string
	OnDelete     string
	OnUpdate     string
}

// Index represents a database index
type Index struct {
	Name     string
	Columns  []string
	IsUnique bool
}

// Row is one fetched row: column names and values in matching positions.
type Row struct {
	Columns []string
	Values  []any
}
