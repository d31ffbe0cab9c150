package dialect

import (
	"fmt"
	"strings"

	"schemasync/internal/schema"
)

const indent = "    "

// quoteWith wraps name in open/close, doubling any embedded close character.
func quoteWith(name, open, close string) string {
	return open + strings.ReplaceAll(name, close, close+close) + close
}

// qualify joins schema and name; an empty schema yields just the name.
func qualify(quote func(string) string, schemaName, name string) string {
	if schemaName == "" {
		return quote(name)
	}
	return quote(schemaName) + "." + quote(name)
}

// EscapeLiteral doubles single quotes so s can sit inside '...'.
func EscapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// columnDefinition renders "<name> <type> NULL|NOT NULL".
func columnDefinition(d Dialect, c schema.Column) string {
	return fmt.Sprintf("%s %s %s", d.QuoteIdent(c.Name), schema.RenderType(c, d.TypeRules()), schema.NullClause(c))
}

// createTable renders a CREATE TABLE with one column per line, in the
// order given.
func createTable(d Dialect, schemaName, table string, cols []schema.Column) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CREATE TABLE %s (\n", d.QualifiedName(schemaName, table))
	for i, c := range cols {
		comma := ","
		if i == len(cols)-1 {
			comma = ""
		}
		fmt.Fprintf(&sb, "%s%s%s\n", indent, columnDefinition(d, c), comma)
	}
	sb.WriteString(");")
	return sb.String()
}

// sizedTypes builds a TypeRules.Sized set.
func sizedTypes(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// commentText keeps s on a single "--" comment line.
func commentText(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
