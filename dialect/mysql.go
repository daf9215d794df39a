package dialect

import (
	"fmt"
	"strconv"
)

type MySQL struct{}

func NewMySQLDialect() Dialect {
	return &MySQL{}
}

func (m MySQL) Name() string {
	return "mysql"
}

func (m MySQL) QuoteIdentifier(name string) string {
	return "`" + name + "`"
}

func (m MySQL) Placeholder(n int) string {
	return "?"
}

// Rebind is the identity: MySQL consumes "?" natively.
func (m MySQL) Rebind(query string) string {
	return query
}

func (m MySQL) LimitOffset(offset, size int) string {
	return " LIMIT " + strconv.Itoa(offset) + ", " + strconv.Itoa(size)
}

func (m MySQL) RenderValue(v any) string {
	return renderValue(v, true, func(b []byte) string {
		return fmt.Sprintf("X'%x'", b)
	})
}
