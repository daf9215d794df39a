package connector

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Konsultn-Engineering/sqlbridge/cache"
	"github.com/Konsultn-Engineering/sqlbridge/database"
	"github.com/Konsultn-Engineering/sqlbridge/dialect"
)

// SQLConnection adapts a database/sql pool to Connection. The mysql and
// sqlite providers share it.
type SQLConnection struct {
	db       *sql.DB
	database *database.SqlDatabase
	dialect  dialect.Dialect
}

// OpenSQL opens a pool for driverName, applies the pool settings and pings it
// once so a bad address fails at startup rather than on the first request.
func OpenSQL(ctx context.Context, driverName, dsn string, d dialect.Dialect, cfg Config) (*SQLConnection, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}

	conn := NewSQLConnection(db, d, cfg)
	if err := db.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", driverName, err)
	}
	return conn, nil
}

// NewSQLConnection wraps an already opened pool.
func NewSQLConnection(db *sql.DB, d dialect.Dialect, cfg Config) *SQLConnection {
	applyPool(db, cfg.Pool)

	opts := []database.SqlOption{database.WithQueryTimeout(cfg.QueryTimeout)}
	if cfg.Pool.StatementCache > 0 {
		opts = append(opts, database.WithStatementCache(cache.NewStatementCache(cfg.Pool.StatementCache)))
	}

	return &SQLConnection{
		db:       db,
		database: database.NewSqlDatabase(db, opts...),
		dialect:  d,
	}
}

func applyPool(db *sql.DB, pool PoolConfig) {
	if pool.MaxOpen > 0 {
		db.SetMaxOpenConns(pool.MaxOpen)
	}
	if pool.MaxIdle > 0 {
		db.SetMaxIdleConns(pool.MaxIdle)
	}
	if pool.MaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.MaxLifetime)
	}
	if pool.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(pool.MaxIdleTime)
	}
}

func (c *SQLConnection) Database() database.Database { return c.database }

func (c *SQLConnection) Dialect() dialect.Dialect { return c.dialect }

// DB exposes the raw pool.
func (c *SQLConnection) DB() *sql.DB { return c.db }

func (c *SQLConnection) Health(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *SQLConnection) Stats() ConnectionStats {
	return statsFromDB(c.db.Stats())
}

func (c *SQLConnection) Close() error {
	return c.database.Close()
}

var _ Connection = (*SQLConnection)(nil)
