package dialect

import "schemasync/internal/schema"

// Dialect abstracts everything product-specific: catalog queries, DDL
// syntax and the framing of the generated script.
type Dialect interface {
	Name() string

	// Metadata Queries (Snapshot Reading)
	ColumnsQuery() string
	ProceduresQuery() string
	ObjectKindQuery() string

	// Identifiers & Types
	QuoteIdent(name string) string
	QualifiedName(schemaName, name string) string
	TypeRules() schema.TypeRules

	// DDL Generation
	CreateTable(schemaName, table string, cols []schema.Column) string
	AddColumn(col schema.Column) string
	AlterColumn(col, current schema.Column) string // current is the target's column
	IdempotentProcedure(p schema.Procedure) string

	// Script Framing
	SafetyGuard(expectedHost string) string
	UseDatabase(name string) string
	BatchSeparator() string // "" when the client needs none
}
