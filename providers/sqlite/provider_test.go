package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/sqlbridge/connector"
	"github.com/Konsultn-Engineering/sqlbridge/database"
)

func TestBuildDSN(t *testing.T) {
	p := &Provider{}

	assert.Equal(t, Memory, p.buildDSN(connector.Config{}))
	assert.Equal(t, "app.db", p.buildDSN(connector.Config{Database: "app.db"}))
	assert.Equal(t, "app.db?_txlock=immediate",
		p.buildDSN(connector.Config{Database: "app.db", Params: map[string]string{"_txlock": "immediate"}}))
}

func TestConnect_Memory(t *testing.T) {
	c, err := connector.New("sqlite", connector.Config{Database: Memory})
	require.NoError(t, err)

	conn, err := c.Connect(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, "sqlite", conn.Dialect().Name())
	assert.Equal(t, 1, conn.Stats().MaxOpen)
	require.NoError(t, conn.Health(context.Background()))

	ctx := context.Background()
	db := conn.Database()

	_, err = db.ExecContext(ctx, "CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT)")
	require.NoError(t, err)

	res, err := db.ExecContext(ctx, "INSERT INTO items (name) VALUES (?)", "widget")
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	assert.EqualValues(t, 1, id)

	rows, err := db.QueryContext(ctx, "SELECT id,name FROM items WHERE id = ?", id)
	require.NoError(t, err)
	records, err := database.ScanRecords(rows)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "widget", records[0]["name"])
}
