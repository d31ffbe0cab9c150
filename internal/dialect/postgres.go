package dialect

import (
	"fmt"
	"strings"

	"schemasync/internal/procsql"
	"schemasync/internal/schema"
)

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string { return "postgres" }

func (d *PostgresDialect) ColumnsQuery() string {
	// data_type is "ARRAY"/"USER-DEFINED" for some columns; format_type without
	// a typmod gives a usable keyword and, like everywhere else, no precision.
	return `SELECT
    c.table_schema,
    c.table_name,
    c.column_name,
    CASE WHEN c.data_type IN ('ARRAY', 'USER-DEFINED')
         THEN pg_catalog.format_type(a.atttypid, NULL)
         ELSE c.data_type END AS data_type,
    c.character_maximum_length,
    c.is_nullable,
    c.ordinal_position
FROM information_schema.columns c
JOIN information_schema.tables t
    ON t.table_schema = c.table_schema AND t.table_name = c.table_name
JOIN pg_catalog.pg_namespace n ON n.nspname = c.table_schema
JOIN pg_catalog.pg_class cl ON cl.relnamespace = n.oid AND cl.relname = c.table_name
JOIN pg_catalog.pg_attribute a ON a.attrelid = cl.oid AND a.attname = c.column_name
WHERE t.table_type = 'BASE TABLE'
  AND c.table_schema NOT IN ('pg_catalog', 'information_schema')
ORDER BY c.table_schema, c.table_name, c.ordinal_position`
}

func (d *PostgresDialect) ProceduresQuery() string {
	// The identity arguments keep overloads apart.
	return `SELECT
    n.nspname,
    p.proname || '(' || pg_catalog.pg_get_function_identity_arguments(p.oid) || ')',
    pg_catalog.pg_get_functiondef(p.oid)
FROM pg_catalog.pg_proc p
JOIN pg_catalog.pg_namespace n ON n.oid = p.pronamespace
WHERE p.prokind = 'p'
  AND n.nspname NOT IN ('pg_catalog', 'information_schema')
ORDER BY 1, 2`
}

func (d *PostgresDialect) ObjectKindQuery() string {
	return `SELECT kind FROM (
    SELECT CASE c.relkind
        WHEN 'r' THEN 'TABLE'
        WHEN 'p' THEN 'PARTITIONED TABLE'
        WHEN 'v' THEN 'VIEW'
        WHEN 'm' THEN 'MATERIALIZED VIEW'
        WHEN 'i' THEN 'INDEX'
        WHEN 'S' THEN 'SEQUENCE'
        ELSE 'RELATION' END AS kind
    FROM pg_catalog.pg_class c WHERE c.relname = $1
    UNION ALL
    SELECT CASE p.prokind WHEN 'p' THEN 'PROCEDURE' WHEN 'a' THEN 'AGGREGATE' ELSE 'FUNCTION' END
    FROM pg_catalog.pg_proc p WHERE p.proname = $1
) o LIMIT 1`
}

func (d *PostgresDialect) QuoteIdent(name string) string {
	return quoteWith(name, `"`, `"`)
}

func (d *PostgresDialect) QualifiedName(schemaName, name string) string {
	return qualify(d.QuoteIdent, schemaName, name)
}

func (d *PostgresDialect) TypeRules() schema.TypeRules {
	return schema.TypeRules{
		Sized: sizedTypes("character varying", "character", "bit", "bit varying"),
	}
}

func (d *PostgresDialect) CreateTable(schemaName, table string, cols []schema.Column) string {
	return createTable(d, schemaName, table, cols)
}

func (d *PostgresDialect) AddColumn(col schema.Column) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", d.QualifiedName(col.Schema, col.Table), columnDefinition(d, col))
}

// AlterColumn sets type and nullability in one statement; Postgres has no
// single "type + NULL" column clause.
func (d *PostgresDialect) AlterColumn(col, _ schema.Column) string {
	name := d.QuoteIdent(col.Name)
	nullAction := "SET NOT NULL"
	if col.Nullable {
		nullAction = "DROP NOT NULL"
	}
	return fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE %s, ALTER COLUMN %s %s;",
		d.QualifiedName(col.Schema, col.Table), name, schema.RenderType(col, d.TypeRules()), name, nullAction)
}

// IdempotentProcedure uses CREATE OR REPLACE. pg_get_functiondef output has
// no terminating semicolon, so one is added.
func (d *PostgresDialect) IdempotentProcedure(p schema.Procedure) string {
	def := strings.TrimRight(procsql.RewriteFirstCreate(p.Definition, "CREATE OR REPLACE PROCEDURE"), " \t\r\n")
	if !strings.HasSuffix(def, ";") {
		def += ";"
	}
	return def
}

// SafetyGuard compares inet_server_addr() (NULL over a Unix socket) with
// expectedHost. ON_ERROR_STOP makes psql quit at the exception.
func (d *PostgresDialect) SafetyGuard(expectedHost string) string {
	host := EscapeLiteral(expectedHost)

	var sb strings.Builder
	fmt.Fprintf(&sb, "-- SAFETY CHECK: Only allow execution on %s\n", commentText(expectedHost))
	sb.WriteString("\\set ON_ERROR_STOP on\n")
	sb.WriteString("DO $guard$\n")
	sb.WriteString("DECLARE\n")
	sb.WriteString("    actual_ip text := host(inet_server_addr());\n")
	sb.WriteString("BEGIN\n")
	fmt.Fprintf(&sb, "    IF actual_ip IS NULL OR actual_ip <> '%s' THEN\n", host)
	fmt.Fprintf(&sb, "        RAISE EXCEPTION 'SAFETY ABORT: This script is restricted to %%. Current Server IP: %%', '%s', COALESCE(actual_ip, 'Local/Unknown');\n", host)
	sb.WriteString("    END IF;\n")
	sb.WriteString("END\n")
	sb.WriteString("$guard$;")
	return sb.String()
}

func (d *PostgresDialect) UseDatabase(name string) string {
	return fmt.Sprintf("\\connect %s", d.QuoteIdent(name))
}

func (d *PostgresDialect) BatchSeparator() string { return "" }
