package database

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Konsultn-Engineering/sqlbridge/dialect"
)

// ErrLastInsertID is returned by PgxResult; PostgreSQL needs RETURNING instead.
var ErrLastInsertID = errors.New("LastInsertId not supported in PostgreSQL")

// PgxDatabase implements Database for pgxpool.Pool. Incoming "?" placeholders
// are rebound to "$n" before the statement reaches the server.
type PgxDatabase struct {
	pool         *pgxpool.Pool
	dialect      dialect.Dialect
	queryTimeout time.Duration
}

// NewPgxDatabase creates a new PgxDatabase.
func NewPgxDatabase(pool *pgxpool.Pool, queryTimeout time.Duration) *PgxDatabase {
	return &PgxDatabase{
		pool:         pool,
		dialect:      dialect.NewPostgresDialect(),
		queryTimeout: queryTimeout,
	}
}

// Pool exposes the underlying pool.
func (p *PgxDatabase) Pool() *pgxpool.Pool { return p.pool }

// QueryContext executes a query that returns rows.
func (p *PgxDatabase) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	ctx, cancel := withTimeout(ctx, p.queryTimeout)

	rows, err := p.pool.Query(ctx, p.dialect.Rebind(query), args...)
	if err != nil {
		cancel()
		return nil, err
	}
	return &PgxRows{rows: rows, cancel: cancel}, nil
}

// ExecContext executes a query without returning rows.
func (p *PgxDatabase) ExecContext(ctx context.Context, query string, args ...any) (Result, error) {
	ctx, cancel := withTimeout(ctx, p.queryTimeout)
	defer cancel()

	cmdTag, err := p.pool.Exec(ctx, p.dialect.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return &PgxResult{cmdTag: cmdTag}, nil
}

// PingContext verifies the connection to the database is alive.
func (p *PgxDatabase) PingContext(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close closes the pool.
func (p *PgxDatabase) Close() error {
	p.pool.Close()
	return nil
}

// PgxRows implements Rows for pgx.Rows.
type PgxRows struct {
	rows   pgx.Rows
	cancel context.CancelFunc
}

func (p *PgxRows) Next() bool             { return p.rows.Next() }
func (p *PgxRows) Scan(dest ...any) error { return p.rows.Scan(dest...) }
func (p *PgxRows) Err() error             { return p.rows.Err() }

func (p *PgxRows) Close() error {
	p.rows.Close()
	if p.cancel != nil {
		p.cancel()
	}
	return nil
}

// Columns returns the column names.
func (p *PgxRows) Columns() ([]string, error) {
	fields := p.rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, fd := range fields {
		columns[i] = fd.Name
	}
	return columns, nil
}

// PgxResult implements Result for pgx command tags.
type PgxResult struct {
	cmdTag pgconn.CommandTag
}

func (r *PgxResult) LastInsertId() (int64, error) {
	return 0, ErrLastInsertID
}

func (r *PgxResult) RowsAffected() (int64, error) {
	return r.cmdTag.RowsAffected(), nil
}

var _ Database = (*PgxDatabase)(nil)
