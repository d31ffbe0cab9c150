package dialect

import (
	"fmt"
	"strings"

	"schemasync/internal/diff"
	"schemasync/internal/schema"
)

// GetDialect returns the Dialect implementation for a driver name.
func GetDialect(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "sqlserver", "mssql":
		return &MSSQLDialect{}, nil
	case "postgres", "postgresql":
		return &PostgresDialect{}, nil
	case "mysql":
		return &MysqlDialect{}, nil
	case "oracle":
		return &OracleDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q (supported: sqlserver, postgres, mysql, oracle)", driver)
	}
}

// Ensure interface implementation
var _ Dialect = (*MSSQLDialect)(nil)
var _ Dialect = (*PostgresDialect)(nil)
var _ Dialect = (*MysqlDialect)(nil)
var _ Dialect = (*OracleDialect)(nil)

var _ schema.Catalog = (Dialect)(nil)
var _ diff.Generator = (Dialect)(nil)
