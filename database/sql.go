package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/Konsultn-Engineering/sqlbridge/cache"
)

// SqlDatabase implements Database for *sql.DB.
type SqlDatabase struct {
	db           *sql.DB
	stmts        *cache.StatementCache
	queryTimeout time.Duration
}

type SqlOption func(*SqlDatabase)

// WithStatementCache reuses prepared statements across executions.
func WithStatementCache(c *cache.StatementCache) SqlOption {
	return func(s *SqlDatabase) {
		s.stmts = c
	}
}

// WithQueryTimeout bounds every statement. Zero disables the bound.
func WithQueryTimeout(d time.Duration) SqlOption {
	return func(s *SqlDatabase) {
		s.queryTimeout = d
	}
}

// NewSqlDatabase creates a new SqlDatabase.
func NewSqlDatabase(db *sql.DB, opts ...SqlOption) *SqlDatabase {
	s := &SqlDatabase{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DB exposes the underlying pool.
func (s *SqlDatabase) DB() *sql.DB { return s.db }

// QueryContext executes a query that returns rows. A cached statement stays
// pinned until the rows are closed.
func (s *SqlDatabase) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)

	if s.stmts == nil {
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			cancel()
			return nil, err
		}
		return &SqlRows{rows: rows, cancel: cancel}, nil
	}

	stmt, release, err := s.stmts.GetOrPrepare(ctx, s.db, query)
	if err != nil {
		cancel()
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		release()
		cancel()
		return nil, err
	}
	return &SqlRows{rows: rows, cancel: cancel, release: release}, nil
}

// ExecContext executes a query without returning rows.
func (s *SqlDatabase) ExecContext(ctx context.Context, query string, args ...any) (Result, error) {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	if s.stmts != nil {
		stmt, release, err := s.stmts.GetOrPrepare(ctx, s.db, query)
		if err != nil {
			return nil, err
		}
		defer release()
		return stmt.ExecContext(ctx, args...)
	}
	return s.db.ExecContext(ctx, query, args...)
}

// PingContext verifies the connection to the database is alive.
func (s *SqlDatabase) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes cached statements, then the pool.
func (s *SqlDatabase) Close() error {
	if s.stmts != nil {
		_ = s.stmts.Close()
	}
	return s.db.Close()
}

// SqlRows implements Rows for *sql.Rows.
type SqlRows struct {
	rows    *sql.Rows
	cancel  context.CancelFunc
	release func()
}

func (s *SqlRows) Next() bool                 { return s.rows.Next() }
func (s *SqlRows) Scan(dest ...any) error     { return s.rows.Scan(dest...) }
func (s *SqlRows) Columns() ([]string, error) { return s.rows.Columns() }
func (s *SqlRows) Err() error                 { return s.rows.Err() }

// Close closes the rows iterator, unpins a cached statement and releases the
// statement deadline.
func (s *SqlRows) Close() error {
	err := s.rows.Close()
	if s.release != nil {
		s.release()
	}
	if s.cancel != nil {
		s.cancel()
	}
	return err
}

var _ Database = (*SqlDatabase)(nil)
