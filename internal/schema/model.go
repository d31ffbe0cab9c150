package schema

// MaxLengthUnbounded is the length the catalogs report for MAX-sized columns.
const MaxLengthUnbounded = -1

// Column is one column of one base table, as read from a live instance.
type Column struct {
	Schema    string
	Table     string
	Name      string
	DataType  string
	MaxLength *int // nil when the type has no character length
	Nullable  bool
	Ordinal   int // 1-based declaration order
}

// TableKey identifies a table inside one snapshot.
type TableKey struct {
	Schema string
	Table  string
}

func (c Column) Key() TableKey {
	return TableKey{Schema: c.Schema, Table: c.Table}
}

// Procedure is a stored procedure with its complete, untruncated source.
type Procedure struct {
	Schema     string
	Name       string
	Definition string
}

// Snapshot is everything read from one instance in one run.
type Snapshot struct {
	Columns    []Column
	Procedures []Procedure
}

// ObjectInfo is the result of a dependency spot-check.
type ObjectInfo struct {
	Name  string
	Kind  string // catalog type description, e.g. SQL_STORED_PROCEDURE
	Found bool
}

// Length returns a pointer to n, for building descriptors by hand.
func Length(n int) *int {
	return &n
}
