package dialect

import "fmt"

// Get returns the Dialect implementation for the given engine name.
// The dialect is selected once at startup and shared read-only afterwards.
func Get(engine string) (Dialect, error) {
	switch engine {
	case "mysql":
		return &MysqlDialect{}, nil
	case "postgres", "postgresql":
		return &PostgresDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported engine %q (expected mysql or postgres)", engine)
	}
}

// Ensure interface implementation
var _ Dialect = (*MysqlDialect)(nil)
var _ Dialect = (*PostgresDialect)(nil)
