package connector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/sqlbridge/database"
	"github.com/Konsultn-Engineering/sqlbridge/dialect"
)

type fakeConnection struct {
	closed bool
}

func (f *fakeConnection) Database() database.Database      { return nil }
func (f *fakeConnection) Dialect() dialect.Dialect         { return dialect.NewMySQLDialect() }
func (f *fakeConnection) Health(ctx context.Context) error { return nil }
func (f *fakeConnection) Stats() ConnectionStats           { return ConnectionStats{} }
func (f *fakeConnection) Close() error                     { f.closed = true; return nil }

type fakeProvider struct {
	failures int
	calls    int
	seen     Config
}

func (p *fakeProvider) Connect(ctx context.Context, cfg Config) (Connection, error) {
	p.calls++
	p.seen = cfg
	if p.calls <= p.failures {
		return nil, errors.New("unavailable")
	}
	return &fakeConnection{}, nil
}

func (p *fakeProvider) Dialect() dialect.Dialect { return dialect.NewMySQLDialect() }

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New("does-not-exist", Config{})
	assert.ErrorContains(t, err, "not registered")
}

func TestNew_InvalidConfig(t *testing.T) {
	Register("fake-invalid", &fakeProvider{})

	_, err := New("fake-invalid", Config{Port: -5})
	assert.ErrorContains(t, err, "invalid port")
}

func TestConnect_AppliesDefaults(t *testing.T) {
	provider := &fakeProvider{}
	Register("fake-defaults", provider)

	c, err := New("fake-defaults", Config{Host: "localhost"})
	require.NoError(t, err)

	conn, err := c.Connect(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, conn)
	assert.Equal(t, DefaultMaxOpen, provider.seen.Pool.MaxOpen)
	assert.Contains(t, Providers(), "fake-defaults")
}

func TestConnectWithRetry(t *testing.T) {
	provider := &fakeProvider{failures: 1}
	Register("fake-retry", provider)

	c, err := New("fake-retry", Config{Retry: RetryConfig{MaxRetries: 2, BaseDelay: 1}})
	require.NoError(t, err)

	_, err = c.ConnectWithRetry(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)

	provider = &fakeProvider{failures: 10}
	Register("fake-retry-fail", provider)
	c, err = New("fake-retry-fail", Config{Retry: RetryConfig{MaxRetries: 1, BaseDelay: 1}})
	require.NoError(t, err)

	_, err = c.ConnectWithRetry(context.Background())
	assert.ErrorContains(t, err, "after 2 attempts")
}
