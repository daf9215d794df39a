package engine

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/sqlbridge/connector"
	"github.com/Konsultn-Engineering/sqlbridge/database"
	"github.com/Konsultn-Engineering/sqlbridge/dialect"
	"github.com/Konsultn-Engineering/sqlbridge/query"

	_ "github.com/Konsultn-Engineering/sqlbridge/providers/sqlite"
)

func TestEngine_TableSessionsAreIndependent(t *testing.T) {
	e := New(nil, nil)

	a := e.Table("items").Where(query.Eq("id", 1))
	b := e.Table("orders")

	assert.Equal(t, "SELECT * FROM items WHERE id = ?", a.SQL())
	assert.Equal(t, "SELECT * FROM orders", b.SQL())
	assert.Equal(t, "mysql", e.Dialect().Name())
}

func TestEngine_Raw(t *testing.T) {
	e := New(nil, dialect.NewPostgresDialect())

	b := e.Raw("SELECT 1").Limit(1, 2)
	assert.Equal(t, "SELECT 1 LIMIT 1 OFFSET 1", b.SQL())
}

func TestEngine_PingAndClose(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	e := New(database.NewSqlDatabase(db), nil)

	mock.ExpectPing()
	require.NoError(t, e.Ping(context.Background()))
	assert.Equal(t, connector.ConnectionStats{}, e.Stats())

	mock.ExpectClose()
	require.NoError(t, e.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_SQLite(t *testing.T) {
	e, err := Open(context.Background(), "sqlite", connector.Config{})
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, e.Ping(context.Background()))
	assert.Equal(t, "sqlite", e.Dialect().Name())
	assert.Equal(t, 1, e.Stats().MaxOpen)

	res, err := e.Raw("SELECT 1 AS one").Execute(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Records[0]["one"])
}

func TestOpen_UnknownProvider(t *testing.T) {
	_, err := Open(context.Background(), "oracle", connector.Config{})
	assert.ErrorContains(t, err, "not registered")
}
