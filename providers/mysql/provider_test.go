package mysql

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/sqlbridge/connector"
)

func TestBuildDSN(t *testing.T) {
	dsn, err := (&Provider{}).buildDSN(connector.Config{
		Host:           "localhost",
		Username:       "root",
		Password:       "123456",
		Database:       "mysql",
		ConnectTimeout: 5 * time.Second,
		Params:         map[string]string{"charset": "utf8mb4"},
	})
	require.NoError(t, err)

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)

	assert.Equal(t, "root", parsed.User)
	assert.Equal(t, "123456", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "localhost:3306", parsed.Addr)
	assert.Equal(t, "mysql", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.True(t, parsed.ClientFoundRows)
	assert.Equal(t, 5*time.Second, parsed.Timeout)
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestBuildDSN_RequiresHost(t *testing.T) {
	_, err := (&Provider{}).buildDSN(connector.Config{})
	assert.ErrorContains(t, err, "host is required")
}

func TestRegistered(t *testing.T) {
	assert.Contains(t, connector.Providers(), "mysql")
	assert.Equal(t, "mysql", (&Provider{}).Dialect().Name())
}

func TestTLSMode(t *testing.T) {
	assert.Equal(t, "", tlsMode("disable"))
	assert.Equal(t, "preferred", tlsMode("prefer"))
	assert.Equal(t, "true", tlsMode("verify-full"))
	assert.Equal(t, "skip-verify", tlsMode("skip-verify"))
}
