package diff

import "schemasync/internal/schema"

// Kind is the category of a discrepancy between source and target.
type Kind int

const (
	MissingTable Kind = iota + 1
	MissingColumn
	ColumnMismatch
	MissingProcedure
	ProcedureMismatch
	UnreadableProcedure
)

func (k Kind) String() string {
	switch k {
	case MissingTable:
		return "Missing Table"
	case MissingColumn:
		return "Missing Column"
	case ColumnMismatch:
		return "Mismatch"
	case MissingProcedure:
		return "Missing SP"
	case ProcedureMismatch:
		return "Content Mismatch"
	case UnreadableProcedure:
		return "Unreadable SP"
	default:
		return "Unknown"
	}
}

// Discrepancy is one classified difference and the statement that fixes it.
type Discrepancy struct {
	Kind   Kind
	Schema string
	Table  string // table or procedure name
	Column string // set for MissingColumn and ColumnMismatch

	Object    string   // quoted, qualified display name
	Reason    string   // differing sub-properties, each prefixed by a space
	Statement string   // remedy DDL, without batch separator; "" when there is none
	Notes     []string // caveats written as comments after the statement
}

// Generator renders the DDL for one database product.
type Generator interface {
	QualifiedName(schemaName, name string) string
	CreateTable(schemaName, table string, cols []schema.Column) string
	AddColumn(col schema.Column) string
	AlterColumn(col, current schema.Column) string
	IdempotentProcedure(p schema.Procedure) string
}
