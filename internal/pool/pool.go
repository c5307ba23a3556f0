package pool

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// ErrClosed is returned by every call made after Close.
var ErrClosed = errors.New("connection pool is closed")

// Pool owns the driver-provided connection pool. Each call checks out one
// pooled connection for the duration of a single statement and releases it on
// completion or failure; no connection is held across calls.
type Pool struct {
	db     *sql.DB
	log    *slog.Logger
	closed atomic.Bool
	once   sync.Once
}

// Result is the normalized shape of a row-returning statement.
type Result struct {
	Columns []string
	Rows    []map[string]any
}

// Open dials nothing; it prepares a pool for the given driver and DSN.
// Connectivity is verified separately via Ping.
func Open(driver, dsn string, log *slog.Logger) (*Pool, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open pool: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return New(db, log), nil
}

// New wraps an existing database handle. The pool takes ownership of it.
func New(db *sql.DB, log *slog.Logger) *Pool {
	if log == nil {
		log = slog.Default()
	}
	return &Pool{db: db, log: log}
}

// Ping runs the liveness probe.
func (p *Pool) Ping(ctx context.Context) error {
	if p.closed.Load() {
		return ErrClosed
	}
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("connectivity probe failed: %s", err.Error())
	}
	return nil
}

// Query runs one row-returning statement and scans every row into a
// column-name keyed map. Byte slices are converted to strings so results
// survive JSON and text rendering.
func (p *Pool) Query(ctx context.Context, text string, args ...any) (*Result, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}
	p.log.Debug("executing query", "sql", text, "args", len(args))

	rows, err := p.db.QueryContext(ctx, text, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &Result{Columns: cols, Rows: []map[string]any{}}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Exec runs one statement that returns no rows and reports the affected count.
// Drivers that cannot report affected rows yield zero, not an error.
func (p *Pool) Exec(ctx context.Context, text string, args ...any) (int64, error) {
	if p.closed.Load() {
		return 0, ErrClosed
	}
	p.log.Debug("executing statement", "sql", text, "args", len(args))

	res, err := p.db.ExecContext(ctx, text, args...)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return affected, nil
}

// Close releases all pooled connections. Safe to call more than once;
// only the first call does work.
func (p *Pool) Close() error {
	var err error
	p.once.Do(func() {
		p.closed.Store(true)
		err = p.db.Close()
		p.log.Debug("pool closed")
	})
	return err
}
