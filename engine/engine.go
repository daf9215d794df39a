package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/Konsultn-Engineering/sqlbridge/connector"
	"github.com/Konsultn-Engineering/sqlbridge/database"
	"github.com/Konsultn-Engineering/sqlbridge/dialect"
	"github.com/Konsultn-Engineering/sqlbridge/query"
)

// Engine is the long-lived entry point shared by all requests. It hands
// out one query.Builder per request.
type Engine struct {
	conn    connector.Connection
	db      database.Database
	dialect dialect.Dialect
}

// New wraps a database that is managed elsewhere. Close only closes db.
func New(db database.Database, d dialect.Dialect) *Engine {
	if d == nil {
		d = dialect.NewMySQLDialect()
	}
	return &Engine{db: db, dialect: d}
}

// FromConnection wraps an open provider connection.
func FromConnection(conn connector.Connection) *Engine {
	return &Engine{
		conn:    conn,
		db:      conn.Database(),
		dialect: conn.Dialect(),
	}
}

// Open connects through the named provider, retrying per cfg.Retry.
func Open(ctx context.Context, provider string, cfg connector.Config) (*Engine, error) {
	c, err := connector.New(provider, cfg)
	if err != nil {
		return nil, err
	}

	conn, err := c.ConnectWithRetry(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", provider, err)
	}
	return FromConnection(conn), nil
}

// Table starts a session bound to name.
func (e *Engine) Table(name string) *query.Builder {
	return query.New(e.db, e.dialect).Table(name)
}

// Raw starts a session holding a raw statement.
func (e *Engine) Raw(sql string, args ...any) *query.Builder {
	return query.New(e.db, e.dialect).Raw(sql, args...)
}

func (e *Engine) Dialect() dialect.Dialect {
	return e.dialect
}

func (e *Engine) Database() database.Database {
	return e.db
}

// Ping checks that the pool can reach the database.
func (e *Engine) Ping(ctx context.Context) error {
	if e.conn != nil {
		return e.conn.Health(ctx)
	}
	if e.db == nil {
		return errors.New("engine: no database")
	}
	return e.db.PingContext(ctx)
}

// Stats reports pool statistics. Engines built with New report zeros.
func (e *Engine) Stats() connector.ConnectionStats {
	if e.conn == nil {
		return connector.ConnectionStats{}
	}
	return e.conn.Stats()
}

func (e *Engine) Close() error {
	if e.conn != nil {
		return e.conn.Close()
	}
	if e.db != nil {
		return e.db.Close()
	}
	return nil
}
