package ops

import (
	"fmt"
	"log/slog"
	"strings"

	"db-bridge/internal/dialect"
	"db-bridge/internal/pool"
	"db-bridge/internal/schema"
)

// Dispatcher is the named-operation catalog. Each method runs one invocation
// through Validate -> SafetyGuard -> Build -> Execute -> Normalize and holds
// no state across invocations; the pool is the only shared resource.
type Dispatcher struct {
	log     *slog.Logger
	pool    *pool.Pool
	dialect dialect.Dialect
	intro   *schema.Introspector
}

func New(log *slog.Logger, p *pool.Pool, d dialect.Dialect, database string) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		log:     log,
		pool:    p,
		dialect: d,
		intro:   schema.NewIntrospector(p, d, database),
	}
}

// validIdentifier rejects empty names and names containing the dialect's
// quote character. Quoting wraps, it does not escape, so an embedded quote
// would break out of the delimiters.
func (dp *Dispatcher) validIdentifier(kind, name string) error {
	if name == "" {
		return validationErrf("%s name is required", kind)
	}
	if strings.Contains(name, dp.dialect.QuoteChar()) {
		return validationErrf("%s name %q must not contain the quote character %s", kind, name, dp.dialect.QuoteChar())
	}
	return nil
}

func (dp *Dispatcher) validIdentifiers(kind string, names []string) error {
	if len(names) == 0 {
		return validationErrf("at least one %s name is required", kind)
	}
	for _, n := range names {
		if err := dp.validIdentifier(kind, n); err != nil {
			return err
		}
	}
	return nil
}

// requireConfirmation gates a destructive operation on an exact match with
// the canonical phrase.
func (dp *Dispatcher) requireConfirmation(expected, supplied string) error {
	if !ConfirmationMatches(expected, supplied) {
		return fmt.Errorf("%w: confirmation phrase mismatch, expected exactly %q", ErrUnsafeQuery, expected)
	}
	return nil
}
