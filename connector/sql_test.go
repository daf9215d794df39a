package connector

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/sqlbridge/database"
	"github.com/Konsultn-Engineering/sqlbridge/dialect"
)

func TestSQLConnection(t *testing.T) {
	db, mock, err := sqlmock.New(
		sqlmock.MonitorPingsOption(true),
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual),
	)
	require.NoError(t, err)

	cfg := Config{Pool: PoolConfig{MaxOpen: 3, StatementCache: 4}}.WithDefaults()
	conn := NewSQLConnection(db, dialect.NewMySQLDialect(), cfg)

	assert.Equal(t, "mysql", conn.Dialect().Name())
	assert.Equal(t, 3, conn.Stats().MaxOpen)
	assert.IsType(t, &database.SqlDatabase{}, conn.Database())

	mock.ExpectPing()
	require.NoError(t, conn.Health(context.Background()))

	mock.ExpectPrepare("SELECT 1").ExpectQuery().WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	rows, err := conn.Database().QueryContext(context.Background(), "SELECT 1")
	require.NoError(t, err)
	records, err := database.ScanRecords(rows)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	mock.ExpectClose()
	require.NoError(t, conn.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}
