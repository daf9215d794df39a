package dialect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestByName(t *testing.T) {
	assert.Equal(t, "postgres", ByName("postgres").Name())
	assert.Equal(t, "postgres", ByName("pgx").Name())
	assert.Equal(t, "sqlite", ByName("sqlite").Name())
	assert.Equal(t, "mysql", ByName("mysql").Name())
	assert.Equal(t, "mysql", ByName("").Name())
}

func TestPlaceholders(t *testing.T) {
	my := NewMySQLDialect()
	lite := NewSQLiteDialect()
	pg := NewPostgresDialect()

	for i := 1; i <= 5; i++ {
		assert.Equal(t, "?", my.Placeholder(i))
		assert.Equal(t, "?", lite.Placeholder(i))
	}
	assert.Equal(t, "$1", pg.Placeholder(1))
	assert.Equal(t, "$12", pg.Placeholder(12))
}

func TestPostgresRebind(t *testing.T) {
	pg := NewPostgresDialect()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no placeholders", "SELECT * FROM items", "SELECT * FROM items"},
		{"single", "SELECT * FROM items WHERE id = ?", "SELECT * FROM items WHERE id = $1"},
		{"many", "UPDATE items SET a=?,b=? WHERE id = ?", "UPDATE items SET a=$1,b=$2 WHERE id = $3"},
		{"quoted question mark", "SELECT '?' AS q FROM items WHERE id = ?", "SELECT '?' AS q FROM items WHERE id = $1"},
		{"doubled quote", "SELECT 'it''s?' FROM t WHERE a = ?", "SELECT 'it''s?' FROM t WHERE a = $1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pg.Rebind(tt.in))
		})
	}

	assert.Equal(t, "a = ?", NewMySQLDialect().Rebind("a = ?"))
}

func TestLimitOffset(t *testing.T) {
	assert.Equal(t, " LIMIT 20, 10", NewMySQLDialect().LimitOffset(20, 10))
	assert.Equal(t, " LIMIT 0, 10", NewSQLiteDialect().LimitOffset(0, 10))
	assert.Equal(t, " LIMIT 10 OFFSET 20", NewPostgresDialect().LimitOffset(20, 10))
}

func TestRenderValue(t *testing.T) {
	my := NewMySQLDialect()
	pg := NewPostgresDialect()

	assert.Equal(t, "NULL", my.RenderValue(nil))
	assert.Equal(t, "'a''b'", my.RenderValue("a'b"))
	assert.Equal(t, `'c:\\tmp'`, my.RenderValue(`c:\tmp`))
	assert.Equal(t, `'c:\tmp'`, pg.RenderValue(`c:\tmp`))
	assert.Equal(t, "3", my.RenderValue(3))
	assert.Equal(t, "1.5", my.RenderValue(1.5))
	assert.Equal(t, "TRUE", pg.RenderValue(true))
	assert.Equal(t, "X'0aff'", my.RenderValue([]byte{0x0a, 0xff}))

	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "'2024-01-02 03:04:05.000000'", my.RenderValue(ts))
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, "`items`", NewMySQLDialect().QuoteIdentifier("items"))
	assert.Equal(t, `"items"`, NewPostgresDialect().QuoteIdentifier("items"))
	assert.Equal(t, `"items"`, NewSQLiteDialect().QuoteIdentifier("items"))
}
