package diff

import (
	"fmt"
	"sort"
	"strings"

	"schemasync/internal/schema"
)

// CreateTableNote is attached to every generated CREATE TABLE.
const CreateTableNote = "WARNING: Primary Keys, Indexes, and Defaults are NOT included in this auto-generated script."

type tableGroup struct {
	key     schema.TableKey
	columns []schema.Column
}

// groupByTable groups columns by table, keeping the order in which tables
// first appear.
func groupByTable(cols []schema.Column) []*tableGroup {
	var groups []*tableGroup
	index := make(map[schema.TableKey]*tableGroup)

	for _, c := range cols {
		g, ok := index[c.Key()]
		if !ok {
			g = &tableGroup{key: c.Key()}
			index[c.Key()] = g
			groups = append(groups, g)
		}
		g.columns = append(g.columns, c)
	}
	return groups
}

// CompareTables diffs source columns against target columns. Only the
// source -> target direction is checked: tables and columns that exist
// only in the target are never reported.
func CompareTables(source, target []schema.Column, gen Generator) []Discrepancy {
	targetTables := make(map[schema.TableKey]map[string]schema.Column)
	for _, c := range target {
		cols, ok := targetTables[c.Key()]
		if !ok {
			cols = make(map[string]schema.Column)
			targetTables[c.Key()] = cols
		}
		cols[c.Name] = c
	}

	var out []Discrepancy
	for _, g := range groupByTable(source) {
		tableName := gen.QualifiedName(g.key.Schema, g.key.Table)

		targetCols, ok := targetTables[g.key]
		if !ok {
			cols := make([]schema.Column, len(g.columns))
			copy(cols, g.columns)
			sort.SliceStable(cols, func(i, j int) bool { return cols[i].Ordinal < cols[j].Ordinal })

			out = append(out, Discrepancy{
				Kind:      MissingTable,
				Schema:    g.key.Schema,
				Table:     g.key.Table,
				Object:    tableName,
				Statement: gen.CreateTable(g.key.Schema, g.key.Table, cols),
				Notes:     []string{CreateTableNote},
			})
			continue
		}

		for _, src := range g.columns {
			d := Discrepancy{
				Schema: src.Schema,
				Table:  src.Table,
				Column: src.Name,
				Object: tableName,
			}

			tgt, ok := targetCols[src.Name]
			if !ok {
				d.Kind = MissingColumn
				d.Statement = gen.AddColumn(src)
				out = append(out, d)
				continue
			}

			if reason := ColumnReason(src, tgt); reason != "" {
				d.Kind = ColumnMismatch
				d.Reason = reason
				d.Statement = gen.AlterColumn(src, tgt)
				out = append(out, d)
			}
		}
	}
	return out
}

// ColumnReason lists the sub-properties in which a and b differ, as
// " Type(a vs b) MaxLength(a vs b) Nullable(a vs b)". It is empty when the
// columns match.
func ColumnReason(a, b schema.Column) string {
	var sb strings.Builder

	if !strings.EqualFold(a.DataType, b.DataType) {
		fmt.Fprintf(&sb, " Type(%s vs %s)", a.DataType, b.DataType)
	}
	if !sameLength(a.MaxLength, b.MaxLength) {
		fmt.Fprintf(&sb, " MaxLength(%s vs %s)", schema.FormatLength(a.MaxLength), schema.FormatLength(b.MaxLength))
	}
	if a.Nullable != b.Nullable {
		fmt.Fprintf(&sb, " Nullable(%s vs %s)", schema.FormatNullable(a.Nullable), schema.FormatNullable(b.Nullable))
	}
	return sb.String()
}

func sameLength(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
