package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"schemasync/internal/failure"
)

// Querier is the part of *sql.DB the reader needs.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Catalog supplies the metadata queries for one database product.
//
// ColumnsQuery must return (schema, table, column, data_type, max_length,
// is_nullable, ordinal_position) for base tables only, ordered by schema,
// table and ordinal. A NULL schema is read as "". ProceduresQuery must return (schema, name, definition)
// with the full definition text. ObjectKindQuery takes the object name as
// its single parameter and returns the kind of the first match.
type Catalog interface {
	ColumnsQuery() string
	ProceduresQuery() string
	ObjectKindQuery() string
}

// ---------------------------------------------------------------------
// Snapshot Reading
// ---------------------------------------------------------------------

// Read captures columns and procedures of the instance behind q.
// Nothing is returned if any query fails.
func Read(ctx context.Context, q Querier, c Catalog) (*Snapshot, error) {
	cols, err := ReadColumns(ctx, q, c)
	if err != nil {
		return nil, err
	}
	procs, err := ReadProcedures(ctx, q, c)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Columns: cols, Procedures: procs}, nil
}

func ReadColumns(ctx context.Context, q Querier, c Catalog) ([]Column, error) {
	rows, err := q.QueryContext(ctx, c.ColumnsQuery())
	if err != nil {
		return nil, failure.Classify("query columns", err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var tSchema sql.NullString // Oracle reports the owner as NULL
		var tName, cName, dType, isNull string
		var maxLen sql.NullInt64
		var ordinal int

		if err := rows.Scan(&tSchema, &tName, &cName, &dType, &maxLen, &isNull, &ordinal); err != nil {
			return nil, failure.NewQuery("scan column", err)
		}

		col := Column{
			Schema:   tSchema.String,
			Table:    tName,
			Name:     cName,
			DataType: dType,
			Nullable: strings.EqualFold(strings.TrimSpace(isNull), "YES"),
			Ordinal:  ordinal,
		}
		if maxLen.Valid {
			col.MaxLength = Length(int(maxLen.Int64))
		}
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, failure.Classify("iterate columns", err)
	}
	return cols, nil
}

func ReadProcedures(ctx context.Context, q Querier, c Catalog) ([]Procedure, error) {
	rows, err := q.QueryContext(ctx, c.ProceduresQuery())
	if err != nil {
		return nil, failure.Classify("query procedures", err)
	}
	defer rows.Close()

	var procs []Procedure
	for rows.Next() {
		var pSchema sql.NullString
		var pName string
		var def sql.NullString // NULL for encrypted modules

		if err := rows.Scan(&pSchema, &pName, &def); err != nil {
			return nil, failure.NewQuery("scan procedure", err)
		}
		procs = append(procs, Procedure{Schema: pSchema.String, Name: pName, Definition: def.String})
	}
	if err := rows.Err(); err != nil {
		return nil, failure.Classify("iterate procedures", err)
	}
	return procs, nil
}

// ---------------------------------------------------------------------
// Dependency Spot-Check
// ---------------------------------------------------------------------

// LookupObject reports whether an object called name exists anywhere in
// the instance catalog, and its kind if it does.
func LookupObject(ctx context.Context, q Querier, c Catalog, name string) (ObjectInfo, error) {
	info := ObjectInfo{Name: name}

	rows, err := q.QueryContext(ctx, c.ObjectKindQuery(), name)
	if err != nil {
		return info, failure.Classify(fmt.Sprintf("look up %q", name), err)
	}
	defer rows.Close()

	if rows.Next() {
		var kind sql.NullString
		if err := rows.Scan(&kind); err != nil {
			return info, failure.NewQuery("scan object kind", err)
		}
		info.Found = true
		info.Kind = kind.String
	}
	if err := rows.Err(); err != nil {
		return info, failure.Classify("iterate object kind", err)
	}
	return info, nil
}
