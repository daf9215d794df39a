package sqlite

import (
	"context"
	"net/url"

	_ "modernc.org/sqlite"

	"github.com/Konsultn-Engineering/sqlbridge/connector"
	"github.com/Konsultn-Engineering/sqlbridge/dialect"
)

// Memory is the path of a private in-memory database.
const Memory = ":memory:"

type Provider struct{}

func init() {
	connector.Register("sqlite", &Provider{})
}

func (p *Provider) buildDSN(cfg connector.Config) string {
	path := cfg.Database
	if path == "" {
		path = Memory
	}
	if len(cfg.Params) == 0 {
		return path
	}

	values := make(url.Values, len(cfg.Params))
	for k, v := range cfg.Params {
		values.Set(k, v)
	}
	return path + "?" + values.Encode()
}

// Connect opens the database file named by cfg.Database. Every pooled
// connection to ":memory:" would see its own empty database, so the pool is
// pinned to a single connection in that case.
func (p *Provider) Connect(ctx context.Context, cfg connector.Config) (connector.Connection, error) {
	if cfg.Database == "" || cfg.Database == Memory {
		cfg.Pool.MaxOpen = 1
		cfg.Pool.MaxIdle = 1
		cfg.Pool.MaxLifetime = 0
		cfg.Pool.MaxIdleTime = 0
	}
	return connector.OpenSQL(ctx, "sqlite", p.buildDSN(cfg), p.Dialect(), cfg)
}

func (p *Provider) Dialect() dialect.Dialect {
	return dialect.NewSQLiteDialect()
}
