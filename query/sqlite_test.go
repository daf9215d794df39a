package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/sqlbridge/connector"
	"github.com/Konsultn-Engineering/sqlbridge/providers/sqlite"
	"github.com/Konsultn-Engineering/sqlbridge/query"
)

func openSQLite(t *testing.T) connector.Connection {
	t.Helper()

	c, err := connector.New("sqlite", connector.Config{Database: sqlite.Memory})
	require.NoError(t, err)

	conn, err := c.Connect(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = conn.Database().ExecContext(context.Background(),
		"CREATE TABLE items (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, qty INTEGER)")
	require.NoError(t, err)

	return conn
}

func TestSQLite_RoundTrip(t *testing.T) {
	conn := openSQLite(t)
	ctx := context.Background()
	b := query.New(conn.Database(), conn.Dialect()).Table("items")

	n, err := b.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	for i, name := range []string{"pen", "cup", "box"} {
		d := query.NewData()
		d.Set("name", name)
		d.Set("qty", i+1)

		res, err := b.Insert(d).Execute(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, i+1, res.LastInsertID)
	}

	n, err = b.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	res, err := b.Select([]string{"id", "name"}).OrderBy("id", "desc").Limit(2, 1).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "box", res.Records[0]["name"])
	assert.Equal(t, "cup", res.Records[1]["name"])

	res, err = b.Select(nil, query.WithMaxID()).Execute(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Records[0]["maxId"])

	upd := query.NewData()
	upd.Set("qty", 10)
	res, err = b.Where(query.Eq("name", "pen")).Update(upd).Execute(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.RowsAffected)

	res, err = b.Where(query.Eq("name", "pen")).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.EqualValues(t, 10, res.Records[0]["qty"])

	res, err = b.Delete().Where(query.Eq("id", 99)).Execute(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.RowsAffected)

	res, err = b.Delete().Where(query.Eq("id", 2)).Execute(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.RowsAffected)

	n, err = b.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestSQLite_BackendErrorResets(t *testing.T) {
	conn := openSQLite(t)
	ctx := context.Background()
	b := query.New(conn.Database(), conn.Dialect()).Table("items")

	d := query.NewData()
	d.Set("qty", 1)

	_, err := b.Insert(d).Execute(ctx)
	var qerr *query.QueryError
	require.ErrorAs(t, err, &qerr)
	assert.Contains(t, qerr.Error(), "NOT NULL")

	assert.Equal(t, "SELECT * FROM items", b.SQL())
	assert.Empty(t, b.Params())
}
