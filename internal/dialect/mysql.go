package dialect

import (
	"fmt"
	"strings"

	"schemasync/internal/schema"
)

// MysqlDialect treats the connected database as the only schema and
// reports it as "", so source and target databases with different names
// still line up.
type MysqlDialect struct{}

func (d *MysqlDialect) Name() string { return "mysql" }

func (d *MysqlDialect) ColumnsQuery() string {
	return `
		SELECT
			'' AS TABLE_SCHEMA,
			c.TABLE_NAME,
			c.COLUMN_NAME,
			CASE WHEN c.DATA_TYPE IN ('enum', 'set') THEN c.COLUMN_TYPE ELSE c.DATA_TYPE END AS DATA_TYPE,
			c.CHARACTER_MAXIMUM_LENGTH,
			c.IS_NULLABLE,
			c.ORDINAL_POSITION
		FROM information_schema.COLUMNS c
		JOIN information_schema.TABLES t
			ON t.TABLE_SCHEMA = c.TABLE_SCHEMA AND t.TABLE_NAME = c.TABLE_NAME
		WHERE c.TABLE_SCHEMA = DATABASE()
			AND t.TABLE_TYPE = 'BASE TABLE'
		ORDER BY c.TABLE_NAME, c.ORDINAL_POSITION
	`
}

func (d *MysqlDialect) ProceduresQuery() string {
	// ROUTINE_DEFINITION is LONGTEXT (no truncation) but holds the body only;
	// the header is rebuilt from PARAMETERS. SHOW CREATE PROCEDURE would add
	// a DEFINER clause that differs between servers.
	return `
		SELECT
			'' AS ROUTINE_SCHEMA,
			r.ROUTINE_NAME,
			CONCAT(
				'CREATE PROCEDURE ', r.ROUTINE_NAME, '(',
				COALESCE((
					SELECT GROUP_CONCAT(
						CONCAT_WS(' ', p.PARAMETER_MODE, p.PARAMETER_NAME, p.DTD_IDENTIFIER)
						ORDER BY p.ORDINAL_POSITION SEPARATOR ', ')
					FROM information_schema.PARAMETERS p
					WHERE p.SPECIFIC_SCHEMA = r.ROUTINE_SCHEMA
						AND p.SPECIFIC_NAME = r.ROUTINE_NAME
						AND p.ROUTINE_TYPE = 'PROCEDURE'
				), ''),
				')\n',
				r.ROUTINE_DEFINITION
			) AS DEFINITION
		FROM information_schema.ROUTINES r
		WHERE r.ROUTINE_SCHEMA = DATABASE()
			AND r.ROUTINE_TYPE = 'PROCEDURE'
		ORDER BY r.ROUTINE_NAME
	`
}

func (d *MysqlDialect) ObjectKindQuery() string {
	return `
		SELECT o.kind FROM (
			SELECT TABLE_NAME AS name, TABLE_TYPE AS kind
			FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE()
			UNION ALL
			SELECT ROUTINE_NAME, ROUTINE_TYPE
			FROM information_schema.ROUTINES WHERE ROUTINE_SCHEMA = DATABASE()
		) o
		WHERE o.name = ?
		LIMIT 1
	`
}

func (d *MysqlDialect) QuoteIdent(name string) string {
	return quoteWith(name, "`", "`")
}

func (d *MysqlDialect) QualifiedName(schemaName, name string) string {
	return qualify(d.QuoteIdent, schemaName, name)
}

func (d *MysqlDialect) TypeRules() schema.TypeRules {
	return schema.TypeRules{
		Sized: sizedTypes("char", "varchar", "binary", "varbinary"),
	}
}

func (d *MysqlDialect) CreateTable(schemaName, table string, cols []schema.Column) string {
	return createTable(d, schemaName, table, cols)
}

func (d *MysqlDialect) AddColumn(col schema.Column) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", d.QualifiedName(col.Schema, col.Table), columnDefinition(d, col))
}

func (d *MysqlDialect) AlterColumn(col, _ schema.Column) string {
	return fmt.Sprintf("ALTER TABLE %s MODIFY COLUMN %s;", d.QualifiedName(col.Schema, col.Table), columnDefinition(d, col))
}

// IdempotentProcedure drops and recreates: MySQL has no CREATE OR REPLACE
// PROCEDURE. The body is wrapped in DELIMITER so its semicolons survive the
// mysql client.
func (d *MysqlDialect) IdempotentProcedure(p schema.Procedure) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "DROP PROCEDURE IF EXISTS %s;\n", d.QualifiedName(p.Schema, p.Name))
	sb.WriteString("DELIMITER $$\n")
	sb.WriteString(strings.TrimRight(p.Definition, " \t\r\n;"))
	sb.WriteString("$$\n")
	sb.WriteString("DELIMITER ;")
	return sb.String()
}

// SafetyGuard has no procedural block to raise from, so it assigns an
// invalid value to sql_mode when @@hostname differs. The resulting error
// carries the abort message and stops the mysql client (unless --force).
// expectedHost must be the server's host name, see GuardUsesHostname.
func (d *MysqlDialect) SafetyGuard(expectedHost string) string {
	host := EscapeLiteral(expectedHost)

	var sb strings.Builder
	fmt.Fprintf(&sb, "-- SAFETY CHECK: Only allow execution on %s\n", commentText(expectedHost))
	sb.WriteString("-- Compares @@hostname. Run with the mysql client WITHOUT --force, which would continue past this error.\n")
	sb.WriteString("SET @sync_actual_host = @@hostname;\n")
	fmt.Fprintf(&sb, "SET SESSION sql_mode = IF(@sync_actual_host IS NOT NULL AND @sync_actual_host = '%s', @@SESSION.sql_mode, "+
		"CONCAT('SAFETY ABORT: This script is restricted to %s. Current Server: ', IFNULL(@sync_actual_host, 'Local/Unknown')));", host, host)
	return sb.String()
}

// GuardUsesHostname reports that the guard compares @@hostname; MySQL has
// no portable way to read the server's own address.
func (d *MysqlDialect) GuardUsesHostname() bool { return true }

func (d *MysqlDialect) UseDatabase(name string) string {
	return fmt.Sprintf("USE %s;", d.QuoteIdent(name))
}

func (d *MysqlDialect) BatchSeparator() string { return "" }
