package dialect

import (
	"fmt"
	"strings"

	"schemasync/internal/procsql"
	"schemasync/internal/schema"
)

type MSSQLDialect struct{}

func (d *MSSQLDialect) Name() string { return "sqlserver" }

func (d *MSSQLDialect) ColumnsQuery() string {
	// Base tables only; INFORMATION_SCHEMA.COLUMNS alone would include views.
	return `
		SELECT
			c.TABLE_SCHEMA,
			c.TABLE_NAME,
			c.COLUMN_NAME,
			c.DATA_TYPE,
			c.CHARACTER_MAXIMUM_LENGTH,
			c.IS_NULLABLE,
			c.ORDINAL_POSITION
		FROM INFORMATION_SCHEMA.COLUMNS c
		JOIN INFORMATION_SCHEMA.TABLES t
			ON t.TABLE_CATALOG = c.TABLE_CATALOG
			AND t.TABLE_SCHEMA = c.TABLE_SCHEMA
			AND t.TABLE_NAME = c.TABLE_NAME
		WHERE t.TABLE_TYPE = 'BASE TABLE'
		ORDER BY c.TABLE_SCHEMA, c.TABLE_NAME, c.ORDINAL_POSITION
	`
}

func (d *MSSQLDialect) ProceduresQuery() string {
	// sys.sql_modules, because INFORMATION_SCHEMA.ROUTINES cuts ROUTINE_DEFINITION at 4000 characters.
	return `
		SELECT
			s.name AS SchemaName,
			o.name AS ProcedureName,
			m.definition AS Definition
		FROM sys.sql_modules m
		INNER JOIN sys.objects o ON m.object_id = o.object_id
		INNER JOIN sys.schemas s ON o.schema_id = s.schema_id
		WHERE o.type = 'P'
		ORDER BY s.name, o.name
	`
}

func (d *MSSQLDialect) ObjectKindQuery() string {
	return `SELECT TOP 1 type_desc FROM sys.objects WHERE name = @p1`
}

func (d *MSSQLDialect) QuoteIdent(name string) string {
	return quoteWith(name, "[", "]")
}

func (d *MSSQLDialect) QualifiedName(schemaName, name string) string {
	return qualify(d.QuoteIdent, schemaName, name)
}

func (d *MSSQLDialect) TypeRules() schema.TypeRules {
	return schema.TypeRules{
		Sized:     sizedTypes("varchar", "nvarchar", "char", "nchar", "binary", "varbinary"),
		Unbounded: "MAX",
	}
}

func (d *MSSQLDialect) CreateTable(schemaName, table string, cols []schema.Column) string {
	return createTable(d, schemaName, table, cols)
}

func (d *MSSQLDialect) AddColumn(col schema.Column) string {
	return fmt.Sprintf("ALTER TABLE %s ADD %s;", d.QualifiedName(col.Schema, col.Table), columnDefinition(d, col))
}

func (d *MSSQLDialect) AlterColumn(col, _ schema.Column) string {
	return fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s;", d.QualifiedName(col.Schema, col.Table), columnDefinition(d, col))
}

// IdempotentProcedure turns the stored definition into CREATE OR ALTER,
// which runs whether or not the procedure already exists (SQL Server 2016 SP1+).
func (d *MSSQLDialect) IdempotentProcedure(p schema.Procedure) string {
	return procsql.RewriteFirstCreate(p.Definition, "CREATE OR ALTER PROCEDURE")
}

// SafetyGuard aborts the session unless the server's own address for this
// connection equals expectedHost. Severity 20 terminates the connection;
// NOEXEC keeps sqlcmd/SSMS from running the remaining batches.
func (d *MSSQLDialect) SafetyGuard(expectedHost string) string {
	host := EscapeLiteral(expectedHost)

	var sb strings.Builder
	fmt.Fprintf(&sb, "-- SAFETY CHECK: Only allow execution on %s\n", commentText(expectedHost))
	fmt.Fprintf(&sb, "DECLARE @TargetIP VARCHAR(50) = '%s';\n", host)
	sb.WriteString("DECLARE @ActualIP VARCHAR(50) = CAST(CONNECTIONPROPERTY('local_net_address') AS VARCHAR(50));\n")
	sb.WriteString("IF (@ActualIP <> @TargetIP OR @ActualIP IS NULL)\n")
	sb.WriteString("BEGIN\n")
	fmt.Fprintf(&sb, "    DECLARE @ErrMsg NVARCHAR(400) = N'SAFETY ABORT: This script is restricted to %s. Current Server IP: ' + ISNULL(@ActualIP, 'Local/Unknown');\n", host)
	sb.WriteString("    RAISERROR(@ErrMsg, 20, 1) WITH LOG; -- Severity 20 will terminate the connection\n")
	sb.WriteString("    SET NOEXEC ON; -- Stop further execution in this session\n")
	sb.WriteString("END")
	return sb.String()
}

func (d *MSSQLDialect) UseDatabase(name string) string {
	return fmt.Sprintf("USE %s;", d.QuoteIdent(name))
}

func (d *MSSQLDialect) BatchSeparator() string { return "GO" }
