package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"schemasync/internal/schema"
)

var mssqlRules = schema.TypeRules{
	Sized: map[string]bool{
		"varchar": true, "nvarchar": true, "char": true,
		"nchar": true, "binary": true, "varbinary": true,
	},
	Unbounded: "MAX",
}

func TestRenderType(t *testing.T) {
	cases := []struct {
		col  schema.Column
		want string
	}{
		{schema.Column{DataType: "varchar", MaxLength: schema.Length(50)}, "varchar(50)"},
		{schema.Column{DataType: "NVARCHAR", MaxLength: schema.Length(schema.MaxLengthUnbounded)}, "NVARCHAR(MAX)"},
		{schema.Column{DataType: "varbinary"}, "varbinary(MAX)"},
		{schema.Column{DataType: "int"}, "int"},
		{schema.Column{DataType: "decimal", MaxLength: schema.Length(38)}, "decimal"},
		{schema.Column{DataType: "datetime2"}, "datetime2"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, schema.RenderType(tc.col, mssqlRules))
	}
}

func TestRenderTypeWithoutMaxKeyword(t *testing.T) {
	rules := schema.TypeRules{Sized: map[string]bool{"character varying": true}}

	assert.Equal(t, "character varying", schema.RenderType(schema.Column{DataType: "character varying"}, rules))
	assert.Equal(t, "character varying(20)", schema.RenderType(schema.Column{DataType: "character varying", MaxLength: schema.Length(20)}, rules))
}

func TestNullClauseAndFormatting(t *testing.T) {
	assert.Equal(t, "NULL", schema.NullClause(schema.Column{Nullable: true}))
	assert.Equal(t, "NOT NULL", schema.NullClause(schema.Column{}))

	assert.Equal(t, "NULL", schema.FormatLength(nil))
	assert.Equal(t, "MAX", schema.FormatLength(schema.Length(-1)))
	assert.Equal(t, "255", schema.FormatLength(schema.Length(255)))
	assert.Equal(t, "YES", schema.FormatNullable(true))
	assert.Equal(t, "NO", schema.FormatNullable(false))
}
