package dialect

import "fmt"

// SQLite shares MySQL's placeholder and LIMIT syntax but not its escaping rules.
type SQLite struct {
	MySQL
}

func NewSQLiteDialect() Dialect {
	return &SQLite{}
}

func (s SQLite) Name() string {
	return "sqlite"
}

func (s SQLite) QuoteIdentifier(name string) string {
	return `"` + name + `"`
}

func (s SQLite) RenderValue(v any) string {
	return renderValue(v, false, func(b []byte) string {
		return fmt.Sprintf("X'%x'", b)
	})
}
