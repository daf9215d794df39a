package mysql

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/Konsultn-Engineering/sqlbridge/connector"
	"github.com/Konsultn-Engineering/sqlbridge/dialect"
)

const defaultPort = 3306

type Provider struct{}

func init() {
	connector.Register("mysql", &Provider{})
}

func (p *Provider) buildDSN(cfg connector.Config) (string, error) {
	if cfg.Host == "" {
		return "", errors.New("host is required")
	}
	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}

	mc := mysql.NewConfig()
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
	mc.DBName = cfg.Database
	mc.ParseTime = true
	// Count matched rather than changed rows, as postgres and sqlite do.
	mc.ClientFoundRows = true
	mc.Timeout = cfg.ConnectTimeout
	mc.TLSConfig = tlsMode(cfg.SSLMode)
	if len(cfg.Params) > 0 {
		mc.Params = make(map[string]string, len(cfg.Params))
		for k, v := range cfg.Params {
			mc.Params[k] = v
		}
	}

	return mc.FormatDSN(), nil
}

func (p *Provider) Connect(ctx context.Context, cfg connector.Config) (connector.Connection, error) {
	dsn, err := p.buildDSN(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql: %w", err)
	}
	return connector.OpenSQL(ctx, "mysql", dsn, p.Dialect(), cfg)
}

func (p *Provider) Dialect() dialect.Dialect {
	return dialect.NewMySQLDialect()
}

// tlsMode maps postgres-style ssl modes onto the driver's tls values.
func tlsMode(sslMode string) string {
	switch sslMode {
	case "", "disable":
		return ""
	case "prefer", "allow":
		return "preferred"
	case "require", "verify-ca", "verify-full":
		return "true"
	default:
		return sslMode
	}
}
