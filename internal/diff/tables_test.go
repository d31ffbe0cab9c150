package diff_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemasync/internal/dialect"
	"schemasync/internal/diff"
	"schemasync/internal/schema"
)

var mssql = &dialect.MSSQLDialect{}

func col(table, name, typ string, length *int, nullable bool, ordinal int) schema.Column {
	return schema.Column{
		Schema: "dbo", Table: table, Name: name, DataType: typ,
		MaxLength: length, Nullable: nullable, Ordinal: ordinal,
	}
}

func TestCompareTablesMissingTable(t *testing.T) {
	// Read order deliberately differs from ordinal order.
	source := []schema.Column{
		col("Orders", "Total", "decimal", nil, true, 2),
		col("Orders", "Id", "int", nil, false, 1),
	}

	got := diff.CompareTables(source, nil, mssql)

	require.Len(t, got, 1)
	d := got[0]
	assert.Equal(t, diff.MissingTable, d.Kind)
	assert.Equal(t, "[dbo].[Orders]", d.Object)
	assert.Equal(t, "CREATE TABLE [dbo].[Orders] (\n    [Id] int NOT NULL,\n    [Total] decimal NULL\n);", d.Statement)
	assert.Equal(t, []string{diff.CreateTableNote}, d.Notes)
	assert.NotContains(t, d.Statement, "PRIMARY KEY")
	assert.NotContains(t, d.Statement, "DEFAULT")
}

func TestCompareTablesMissingColumn(t *testing.T) {
	source := []schema.Column{
		col("Orders", "Id", "int", nil, false, 1),
		col("Orders", "Code", "varchar", schema.Length(20), true, 2),
	}
	target := []schema.Column{col("Orders", "Id", "int", nil, false, 1)}

	got := diff.CompareTables(source, target, mssql)

	require.Len(t, got, 1)
	assert.Equal(t, diff.MissingColumn, got[0].Kind)
	assert.Equal(t, "Code", got[0].Column)
	assert.Equal(t, "ALTER TABLE [dbo].[Orders] ADD [Code] varchar(20) NULL;", got[0].Statement)
}

func TestCompareTablesIdenticalColumns(t *testing.T) {
	cols := []schema.Column{
		col("Orders", "Id", "int", nil, false, 1),
		col("Orders", "Note", "nvarchar", schema.Length(-1), true, 2),
		col("Orders", "Code", "char", schema.Length(3), false, 3),
	}
	target := []schema.Column{
		col("Orders", "Id", "INT", nil, false, 1),
		col("Orders", "Note", "NVarChar", schema.Length(-1), true, 2),
		col("Orders", "Code", "char", schema.Length(3), false, 3),
	}

	assert.Empty(t, diff.CompareTables(cols, target, mssql))
}

func TestCompareTablesSinglePropertyMismatch(t *testing.T) {
	base := col("Orders", "Code", "varchar", schema.Length(20), true, 1)

	cases := []struct {
		name   string
		target schema.Column
		reason string
	}{
		{"type", col("Orders", "Code", "nvarchar", schema.Length(20), true, 1), " Type(varchar vs nvarchar)"},
		{"length", col("Orders", "Code", "varchar", schema.Length(10), true, 1), " MaxLength(20 vs 10)"},
		{"length absent", col("Orders", "Code", "varchar", nil, true, 1), " MaxLength(20 vs NULL)"},
		{"nullable", col("Orders", "Code", "varchar", schema.Length(20), false, 1), " Nullable(YES vs NO)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := diff.CompareTables([]schema.Column{base}, []schema.Column{tc.target}, mssql)

			require.Len(t, got, 1)
			assert.Equal(t, diff.ColumnMismatch, got[0].Kind)
			assert.Equal(t, tc.reason, got[0].Reason)
			assert.Equal(t, "ALTER TABLE [dbo].[Orders] ALTER COLUMN [Code] varchar(20) NULL;", got[0].Statement)
		})
	}
}

func TestCompareTablesAllPropertiesMismatch(t *testing.T) {
	src := col("T", "C", "varchar", schema.Length(-1), false, 1)
	tgt := col("T", "C", "text", nil, true, 1)

	assert.Equal(t, " Type(varchar vs text) MaxLength(MAX vs NULL) Nullable(NO vs YES)", diff.ColumnReason(src, tgt))
}

func TestCompareTablesNullabilityScenario(t *testing.T) {
	source := []schema.Column{
		col("Orders", "Id", "int", nil, false, 1),
		col("Orders", "Total", "decimal", nil, true, 2),
	}
	target := []schema.Column{
		col("Orders", "Id", "int", nil, false, 1),
		col("Orders", "Total", "decimal", nil, false, 2),
	}

	got := diff.CompareTables(source, target, mssql)

	require.Len(t, got, 1)
	assert.Equal(t, "ALTER TABLE [dbo].[Orders] ALTER COLUMN [Total] decimal NULL;", got[0].Statement)
	assert.Contains(t, got[0].Reason, "Nullable(YES vs NO)")
}

func TestCompareTablesPassesTargetColumnToAlter(t *testing.T) {
	source := []schema.Column{{Table: "ORDERS", Name: "NOTE", DataType: "VARCHAR2", MaxLength: schema.Length(80), Nullable: false, Ordinal: 1}}
	target := []schema.Column{{Table: "ORDERS", Name: "NOTE", DataType: "VARCHAR2", MaxLength: schema.Length(40), Nullable: false, Ordinal: 1}}

	got := diff.CompareTables(source, target, &dialect.OracleDialect{})
	require.Len(t, got, 1)
	assert.Equal(t, diff.ColumnMismatch, got[0].Kind)
	assert.Equal(t, `ALTER TABLE "ORDERS" MODIFY ("NOTE" VARCHAR2(80))`, got[0].Statement)
}

func TestCompareTablesIgnoresTargetOnly(t *testing.T) {
	source := []schema.Column{col("Orders", "Id", "int", nil, false, 1)}
	target := []schema.Column{
		col("Orders", "Id", "int", nil, false, 1),
		col("Orders", "Extra", "int", nil, true, 2),
		col("AuditLog", "Id", "int", nil, false, 1),
	}

	got := diff.CompareTables(source, target, mssql)
	assert.Empty(t, got)
}

func TestCompareTablesEmptySource(t *testing.T) {
	assert.Empty(t, diff.CompareTables(nil, []schema.Column{col("Orders", "Id", "int", nil, false, 1)}, mssql))
}

func TestCompareTablesKeepsTableOrder(t *testing.T) {
	source := []schema.Column{
		col("B", "Id", "int", nil, false, 1),
		col("A", "Id", "int", nil, false, 1),
		{Schema: "sales", Table: "A", Name: "Id", DataType: "int", Ordinal: 1},
	}

	got := diff.CompareTables(source, nil, mssql)

	require.Len(t, got, 3)
	var names []string
	for _, d := range got {
		names = append(names, d.Object)
	}
	assert.Equal(t, "[dbo].[B] [dbo].[A] [sales].[A]", strings.Join(names, " "))
}
