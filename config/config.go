// Package config loads sqlbridge configuration from defaults, an optional
// YAML file and SQLBRIDGE_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Konsultn-Engineering/sqlbridge/connector"
	"github.com/Konsultn-Engineering/sqlbridge/logging"
)

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig     `yaml:"server"`
	Driver    string           `yaml:"driver" env:"SQLBRIDGE_DRIVER"`
	Database  connector.Config `yaml:"database"`
	Log       logging.Config   `yaml:"log"`
	RequestID string           `yaml:"request_id" env:"SQLBRIDGE_REQUEST_ID"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host              string        `yaml:"host" env:"SQLBRIDGE_HOST"`
	Port              int           `yaml:"port" env:"SQLBRIDGE_PORT"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"SQLBRIDGE_READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `yaml:"idle_timeout" env:"SQLBRIDGE_IDLE_TIMEOUT"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env:"SQLBRIDGE_SHUTDOWN_TIMEOUT"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" env:"SQLBRIDGE_MAX_BODY_BYTES"`
}

// Addr returns host:port for net.Listen.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Default is the stock deployment: port 3669 in front of a local
// MySQL with a pool of ten connections.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              3669,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			MaxBodyBytes:      1 << 20,
		},
		Driver: "mysql",
		Database: connector.Config{
			Host:     "localhost",
			Port:     3306,
			Database: "mysql",
			Username: "root",
			Pool: connector.PoolConfig{
				MaxOpen: connector.DefaultMaxOpen,
			},
			ConnectTimeout: 10 * time.Second,
			Retry: connector.RetryConfig{
				MaxRetries: 3,
				BaseDelay:  time.Second,
				MaxDelay:   10 * time.Second,
				Backoff:    2,
			},
		},
		Log: logging.Config{
			Level: "info",
		},
		RequestID: "uuid",
	}
}

// Load builds the configuration. An empty path skips the file; a path that
// does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := LoadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validDrivers = map[string]bool{
	"mysql":    true,
	"postgres": true,
	"sqlite":   true,
}

var validRequestIDs = map[string]bool{
	"uuid": true,
	"ulid": true,
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Server.MaxBodyBytes < 0 {
		errs = append(errs, fmt.Errorf("server.max_body_bytes must not be negative: %d", c.Server.MaxBodyBytes))
	}
	if !validDrivers[c.Driver] {
		errs = append(errs, fmt.Errorf("unsupported driver %q (expected mysql, postgres or sqlite)", c.Driver))
	}
	if c.Driver != "sqlite" && c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if !validRequestIDs[c.RequestID] {
		errs = append(errs, fmt.Errorf("unsupported request_id generator %q", c.RequestID))
	}
	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
