package dialect_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemasync/internal/dialect"
	"schemasync/internal/schema"
)

var ordersCols = []schema.Column{
	{Schema: "dbo", Table: "Orders", Name: "Id", DataType: "int", Ordinal: 1},
	{Schema: "dbo", Table: "Orders", Name: "Note", DataType: "nvarchar", MaxLength: schema.Length(-1), Nullable: true, Ordinal: 2},
}

func TestGetDialect(t *testing.T) {
	for driver, want := range map[string]string{
		"sqlserver":  "sqlserver",
		"MSSQL":      "sqlserver",
		"postgres":   "postgres",
		"postgresql": "postgres",
		"mysql":      "mysql",
		"oracle":     "oracle",
	} {
		d, err := dialect.GetDialect(driver)
		require.NoError(t, err, driver)
		assert.Equal(t, want, d.Name())
	}

	_, err := dialect.GetDialect("db2")
	assert.Error(t, err)
}

func TestMSSQLDDL(t *testing.T) {
	d := &dialect.MSSQLDialect{}

	assert.Equal(t, "[dbo].[Orders]", d.QualifiedName("dbo", "Orders"))
	assert.Equal(t, "[odd]]name]", d.QuoteIdent("odd]name"))

	assert.Equal(t, "CREATE TABLE [dbo].[Orders] (\n    [Id] int NOT NULL,\n    [Note] nvarchar(MAX) NULL\n);",
		d.CreateTable("dbo", "Orders", ordersCols))
	assert.Equal(t, "ALTER TABLE [dbo].[Orders] ADD [Note] nvarchar(MAX) NULL;", d.AddColumn(ordersCols[1]))
	assert.Equal(t, "ALTER TABLE [dbo].[Orders] ALTER COLUMN [Id] int NOT NULL;", d.AlterColumn(ordersCols[0], schema.Column{}))
	assert.Equal(t, "USE [TargetDB];", d.UseDatabase("TargetDB"))
	assert.Equal(t, "GO", d.BatchSeparator())
}

func TestMSSQLIdempotentProcedure(t *testing.T) {
	d := &dialect.MSSQLDialect{}
	got := d.IdempotentProcedure(schema.Procedure{
		Schema: "dbo", Name: "P",
		Definition: "create proc dbo.P AS\nPRINT 'CREATE PROCEDURE x'",
	})
	assert.Equal(t, "CREATE OR ALTER PROCEDURE dbo.P AS\nPRINT 'CREATE PROCEDURE x'", got)
}

func TestMSSQLSafetyGuard(t *testing.T) {
	guard := (&dialect.MSSQLDialect{}).SafetyGuard("192.168.1.100")

	assert.Contains(t, guard, "DECLARE @TargetIP VARCHAR(50) = '192.168.1.100';")
	assert.Contains(t, guard, "CONNECTIONPROPERTY('local_net_address')")
	assert.Contains(t, guard, "@ActualIP IS NULL")
	assert.Contains(t, guard, "RAISERROR(@ErrMsg, 20, 1) WITH LOG;")
	assert.Contains(t, guard, "SET NOEXEC ON;")
}

func TestSafetyGuardEscapesHost(t *testing.T) {
	evil := "10.0.0.1'; DROP TABLE x; --"
	for _, d := range []dialect.Dialect{&dialect.MSSQLDialect{}, &dialect.PostgresDialect{}, &dialect.MysqlDialect{}, &dialect.OracleDialect{}} {
		guard := d.SafetyGuard(evil)
		assert.Contains(t, guard, "'10.0.0.1''; DROP TABLE x; --'", d.Name())
		assert.NotContains(t, guard, "'10.0.0.1'; DROP", d.Name())
	}
}

func TestPostgresDDL(t *testing.T) {
	d := &dialect.PostgresDialect{}
	col := schema.Column{Schema: "public", Table: "orders", Name: "note", DataType: "character varying", MaxLength: schema.Length(40), Nullable: true}

	assert.Equal(t, `ALTER TABLE "public"."orders" ADD COLUMN "note" character varying(40) NULL;`, d.AddColumn(col))
	assert.Equal(t, `ALTER TABLE "public"."orders" ALTER COLUMN "note" TYPE character varying(40), ALTER COLUMN "note" DROP NOT NULL;`, d.AlterColumn(col, col))

	col.Nullable = false
	col.MaxLength = nil
	assert.Equal(t, `ALTER TABLE "public"."orders" ALTER COLUMN "note" TYPE character varying, ALTER COLUMN "note" SET NOT NULL;`, d.AlterColumn(col, col))

	proc := d.IdempotentProcedure(schema.Procedure{Definition: "CREATE OR REPLACE PROCEDURE public.p()\n LANGUAGE sql\nAS $procedure$ SELECT 1 $procedure$\n"})
	assert.Equal(t, "CREATE OR REPLACE PROCEDURE public.p()\n LANGUAGE sql\nAS $procedure$ SELECT 1 $procedure$;", proc)

	guard := d.SafetyGuard("10.0.0.5")
	assert.True(t, strings.Contains(guard, "\\set ON_ERROR_STOP on"))
	assert.Contains(t, guard, "RAISE EXCEPTION")
	assert.Equal(t, "", d.BatchSeparator())
}

func TestMysqlDDL(t *testing.T) {
	d := &dialect.MysqlDialect{}
	col := schema.Column{Table: "orders", Name: "code", DataType: "varchar", MaxLength: schema.Length(12)}

	assert.Equal(t, "`orders`", d.QualifiedName("", "orders"))
	assert.Equal(t, "ALTER TABLE `orders` MODIFY COLUMN `code` varchar(12) NOT NULL;", d.AlterColumn(col, col))

	proc := d.IdempotentProcedure(schema.Procedure{Name: "recalc", Definition: "CREATE PROCEDURE recalc()\nBEGIN\n  SELECT 1;\nEND"})
	assert.Equal(t, "DROP PROCEDURE IF EXISTS `recalc`;\nDELIMITER $$\nCREATE PROCEDURE recalc()\nBEGIN\n  SELECT 1;\nEND$$\nDELIMITER ;", proc)

	guard := d.SafetyGuard("db-prod-02")
	assert.Contains(t, guard, "@@hostname")
	assert.Contains(t, guard, "WITHOUT --force")
	assert.True(t, d.GuardUsesHostname())
}

func TestOracleDDL(t *testing.T) {
	d := &dialect.OracleDialect{}
	col := schema.Column{Table: "ORDERS", Name: "NOTE", DataType: "VARCHAR2", MaxLength: schema.Length(40), Nullable: true}

	assert.Equal(t, `"ORDERS"`, d.QualifiedName("", "ORDERS"))
	assert.Equal(t, `ALTER TABLE "ORDERS" ADD ("NOTE" VARCHAR2(40) NULL)`, d.AddColumn(col))

	create := d.CreateTable("", "ORDERS", []schema.Column{col})
	assert.True(t, strings.HasPrefix(create, `CREATE TABLE "ORDERS"`))
	assert.False(t, strings.HasSuffix(create, ";"), "SQL*Plus runs the buffer on /, a trailing ; is an error")

	assert.Equal(t, "/", d.BatchSeparator())
	assert.Equal(t, "", d.UseDatabase("ORCLPDB1"))
}

func TestOracleAlterColumnOnlyNamesChangedNullability(t *testing.T) {
	d := &dialect.OracleDialect{}
	src := schema.Column{Table: "ORDERS", Name: "NOTE", DataType: "VARCHAR2", MaxLength: schema.Length(80), Nullable: true}

	sameNull := src
	sameNull.MaxLength = schema.Length(40)
	assert.Equal(t, `ALTER TABLE "ORDERS" MODIFY ("NOTE" VARCHAR2(80))`, d.AlterColumn(src, sameNull))

	notNull := sameNull
	notNull.Nullable = false
	assert.Equal(t, `ALTER TABLE "ORDERS" MODIFY ("NOTE" VARCHAR2(80) NULL)`, d.AlterColumn(src, notNull))
}

func TestOracleProcedureAndGuard(t *testing.T) {
	d := &dialect.OracleDialect{}

	proc := d.IdempotentProcedure(schema.Procedure{Name: "RECALC", Definition: "\n  CREATE PROCEDURE \"RECALC\" AS\nBEGIN\n  NULL;\nEND;\n"})
	assert.Equal(t, "CREATE OR REPLACE PROCEDURE \"RECALC\" AS\nBEGIN\n  NULL;\nEND;", proc)

	guard := d.SafetyGuard("10.0.0.5")
	assert.True(t, strings.HasPrefix(guard, "-- SAFETY CHECK: Only allow execution on 10.0.0.5\n"))
	assert.Contains(t, guard, "WHENEVER SQLERROR EXIT FAILURE ROLLBACK")
	assert.Contains(t, guard, "UTL_INADDR.GET_HOST_ADDRESS")
	assert.Contains(t, guard, "SYS_CONTEXT('USERENV', 'SERVER_HOST')")
	assert.Contains(t, guard, "RAISE_APPLICATION_ERROR(-20001, 'SAFETY ABORT: This script is restricted to 10.0.0.5.")
	assert.True(t, strings.HasSuffix(guard, "END;"))
}
