package connector

import (
	"errors"
	"fmt"
	"time"
)

// Config represents database connection configuration.
type Config struct {
	Host           string            `json:"host" yaml:"host" env:"SQLBRIDGE_DB_HOST"`
	Port           int               `json:"port" yaml:"port" env:"SQLBRIDGE_DB_PORT"`
	Database       string            `json:"database" yaml:"database" env:"SQLBRIDGE_DB_NAME"`
	Username       string            `json:"username" yaml:"username" env:"SQLBRIDGE_DB_USER"`
	Password       string            `json:"password" yaml:"password" env:"SQLBRIDGE_DB_PASSWORD"`
	SSLMode        string            `json:"ssl_mode" yaml:"ssl_mode" env:"SQLBRIDGE_DB_SSL_MODE"`
	Params         map[string]string `json:"params" yaml:"params"`
	Pool           PoolConfig        `json:"pool" yaml:"pool"`
	ConnectTimeout time.Duration     `json:"connect_timeout" yaml:"connect_timeout" env:"SQLBRIDGE_DB_CONNECT_TIMEOUT"`
	QueryTimeout   time.Duration     `json:"query_timeout" yaml:"query_timeout" env:"SQLBRIDGE_DB_QUERY_TIMEOUT"`
	Retry          RetryConfig       `json:"retry" yaml:"retry"`
}

// PoolConfig defines connection pool settings. Capacity is fixed once the
// pool is opened.
type PoolConfig struct {
	MaxOpen        int           `json:"max_open" yaml:"max_open" env:"SQLBRIDGE_DB_MAX_OPEN"`
	MaxIdle        int           `json:"max_idle" yaml:"max_idle" env:"SQLBRIDGE_DB_MAX_IDLE"`
	MaxLifetime    time.Duration `json:"max_lifetime" yaml:"max_lifetime" env:"SQLBRIDGE_DB_MAX_LIFETIME"`
	MaxIdleTime    time.Duration `json:"max_idle_time" yaml:"max_idle_time" env:"SQLBRIDGE_DB_MAX_IDLE_TIME"`
	StatementCache int           `json:"statement_cache" yaml:"statement_cache" env:"SQLBRIDGE_DB_STATEMENT_CACHE"`
}

// RetryConfig defines startup connection retry behavior. Statement
// execution never retries.
type RetryConfig struct {
	MaxRetries int           `json:"max_retries" yaml:"max_retries" env:"SQLBRIDGE_DB_RETRY_MAX"`
	BaseDelay  time.Duration `json:"base_delay" yaml:"base_delay" env:"SQLBRIDGE_DB_RETRY_BASE_DELAY"`
	MaxDelay   time.Duration `json:"max_delay" yaml:"max_delay" env:"SQLBRIDGE_DB_RETRY_MAX_DELAY"`
	Backoff    float64       `json:"backoff" yaml:"backoff" env:"SQLBRIDGE_DB_RETRY_BACKOFF"`
}

const (
	DefaultMaxOpen     = 10
	DefaultMaxLifetime = time.Hour
	DefaultMaxIdleTime = 30 * time.Minute
)

// WithDefaults returns a copy with zero pool settings filled in.
func (c Config) WithDefaults() Config {
	if c.Pool.MaxOpen <= 0 {
		c.Pool.MaxOpen = DefaultMaxOpen
	}
	if c.Pool.MaxIdle <= 0 || c.Pool.MaxIdle > c.Pool.MaxOpen {
		c.Pool.MaxIdle = c.Pool.MaxOpen
	}
	if c.Pool.MaxLifetime == 0 {
		c.Pool.MaxLifetime = DefaultMaxLifetime
	}
	if c.Pool.MaxIdleTime == 0 {
		c.Pool.MaxIdleTime = DefaultMaxIdleTime
	}
	return c
}

// Validate checks settings shared by every provider. Providers validate
// their own addressing requirements.
func (c Config) Validate() error {
	var errs []error

	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}
	if c.Pool.MaxOpen < 0 {
		errs = append(errs, fmt.Errorf("pool.max_open must not be negative: %d", c.Pool.MaxOpen))
	}
	if c.Pool.StatementCache < 0 {
		errs = append(errs, fmt.Errorf("pool.statement_cache must not be negative: %d", c.Pool.StatementCache))
	}
	if c.QueryTimeout < 0 {
		errs = append(errs, fmt.Errorf("query_timeout must not be negative: %s", c.QueryTimeout))
	}
	if c.Retry.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("retry.max_retries must not be negative: %d", c.Retry.MaxRetries))
	}
	if c.Retry.Backoff != 0 && c.Retry.Backoff < 1 {
		errs = append(errs, fmt.Errorf("retry.backoff must be >= 1: %g", c.Retry.Backoff))
	}

	return errors.Join(errs...)
}
