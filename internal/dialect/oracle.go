package dialect

import (
	"fmt"
	"strings"

	"schemasync/internal/procsql"
	"schemasync/internal/schema"
)

// OracleDialect works on the objects owned by the connected user. The owner
// is reported as NULL (read as "") so source and target users with
// different names still line up. Statements are written for SQL*Plus: no
// trailing semicolon on SQL, and "/" runs each buffered statement once.
type OracleDialect struct{}

func (d *OracleDialect) Name() string { return "oracle" }

func (d *OracleDialect) ColumnsQuery() string {
	// USER_TABLES has no views. CHAR_LENGTH is the declared length in
	// characters; RAW only has a byte length.
	return `
SELECT
    NULL AS OWNER,
    c.TABLE_NAME,
    c.COLUMN_NAME,
    c.DATA_TYPE,
    CASE
        WHEN c.DATA_TYPE IN ('VARCHAR2', 'NVARCHAR2', 'CHAR', 'NCHAR') THEN c.CHAR_LENGTH
        WHEN c.DATA_TYPE = 'RAW' THEN c.DATA_LENGTH
    END AS MAX_LENGTH,
    CASE c.NULLABLE WHEN 'Y' THEN 'YES' ELSE 'NO' END AS IS_NULLABLE,
    c.COLUMN_ID
FROM USER_TAB_COLUMNS c
JOIN USER_TABLES t ON t.TABLE_NAME = c.TABLE_NAME
ORDER BY c.TABLE_NAME, c.COLUMN_ID`
}

func (d *OracleDialect) ProceduresQuery() string {
	// GET_DDL returns the whole definition as a CLOB, qualified with the
	// owner; the owner prefix is removed so both users compare equal.
	return `
SELECT
    NULL AS OWNER,
    o.OBJECT_NAME,
    REPLACE(DBMS_METADATA.GET_DDL('PROCEDURE', o.OBJECT_NAME), '"' || USER || '".', '') AS DEFINITION
FROM USER_OBJECTS o
WHERE o.OBJECT_TYPE = 'PROCEDURE'
ORDER BY o.OBJECT_NAME`
}

func (d *OracleDialect) ObjectKindQuery() string {
	return `SELECT OBJECT_TYPE FROM USER_OBJECTS WHERE UPPER(OBJECT_NAME) = UPPER(:1) AND ROWNUM = 1`
}

func (d *OracleDialect) QuoteIdent(name string) string {
	return quoteWith(name, `"`, `"`)
}

func (d *OracleDialect) QualifiedName(schemaName, name string) string {
	return qualify(d.QuoteIdent, schemaName, name)
}

func (d *OracleDialect) TypeRules() schema.TypeRules {
	return schema.TypeRules{
		Sized: sizedTypes("varchar2", "nvarchar2", "char", "nchar", "raw"),
	}
}

func (d *OracleDialect) CreateTable(schemaName, table string, cols []schema.Column) string {
	return strings.TrimSuffix(createTable(d, schemaName, table, cols), ";")
}

func (d *OracleDialect) AddColumn(col schema.Column) string {
	return fmt.Sprintf("ALTER TABLE %s ADD (%s)", d.QualifiedName(col.Schema, col.Table), columnDefinition(d, col))
}

// AlterColumn names NULL / NOT NULL only when it changes: MODIFY to the
// nullability a column already has fails with ORA-01451 / ORA-01442.
func (d *OracleDialect) AlterColumn(col, current schema.Column) string {
	def := d.QuoteIdent(col.Name) + " " + schema.RenderType(col, d.TypeRules())
	if col.Nullable != current.Nullable {
		def += " " + schema.NullClause(col)
	}
	return fmt.Sprintf("ALTER TABLE %s MODIFY (%s)", d.QualifiedName(col.Schema, col.Table), def)
}

// IdempotentProcedure keeps the PL/SQL text as is (its final "END;" is
// part of the unit); GET_DDL already says CREATE OR REPLACE.
func (d *OracleDialect) IdempotentProcedure(p schema.Procedure) string {
	return strings.TrimSpace(procsql.RewriteFirstCreate(p.Definition, "CREATE OR REPLACE PROCEDURE"))
}

// SafetyGuard accepts the server when either its address or its host name
// equals expectedHost. WHENEVER SQLERROR ends the SQL*Plus session at the
// raised error. UTL_INADDR needs a network ACL; without one only the host
// name is compared.
func (d *OracleDialect) SafetyGuard(expectedHost string) string {
	host := EscapeLiteral(expectedHost)

	var sb strings.Builder
	fmt.Fprintf(&sb, "-- SAFETY CHECK: Only allow execution on %s\n", commentText(expectedHost))
	sb.WriteString("WHENEVER SQLERROR EXIT FAILURE ROLLBACK\n")
	sb.WriteString("SET SQLBLANKLINES ON\n")
	sb.WriteString("DECLARE\n")
	sb.WriteString("    actual_host VARCHAR2(255) := SYS_CONTEXT('USERENV', 'SERVER_HOST');\n")
	sb.WriteString("    actual_ip   VARCHAR2(64);\n")
	sb.WriteString("BEGIN\n")
	sb.WriteString("    BEGIN\n")
	sb.WriteString("        actual_ip := UTL_INADDR.GET_HOST_ADDRESS;\n")
	sb.WriteString("    EXCEPTION\n")
	sb.WriteString("        WHEN OTHERS THEN actual_ip := NULL;\n")
	sb.WriteString("    END;\n")
	fmt.Fprintf(&sb, "    IF NVL(actual_ip, '-') <> '%s' AND NVL(actual_host, '-') <> '%s' THEN\n", host, host)
	fmt.Fprintf(&sb, "        RAISE_APPLICATION_ERROR(-20001, 'SAFETY ABORT: This script is restricted to %s. Current Server: ' || NVL(actual_ip, NVL(actual_host, 'Local/Unknown')));\n", host)
	sb.WriteString("    END IF;\n")
	sb.WriteString("END;")
	return sb.String()
}

// UseDatabase is empty: the service is chosen by the SQL*Plus connect
// string and objects are created in the connected user's schema.
func (d *OracleDialect) UseDatabase(name string) string { return "" }

func (d *OracleDialect) BatchSeparator() string { return "/" }
