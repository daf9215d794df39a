package dialect

import (
	"fmt"
	"strconv"
	"strings"
)

type Postgres struct{}

func NewPostgresDialect() Dialect {
	return &Postgres{}
}

func (p Postgres) Name() string {
	return "postgres"
}

func (p Postgres) QuoteIdentifier(name string) string {
	return `"` + name + `"`
}

func (p Postgres) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// Rebind rewrites "?" placeholders to $1..$n, leaving quoted text untouched.
func (p Postgres) Rebind(query string) string {
	if !strings.Contains(query, "?") {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query) + 8)

	n := 0
	var quote byte
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '?':
			n++
			sb.WriteString(p.Placeholder(n))
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func (p Postgres) LimitOffset(offset, size int) string {
	return " LIMIT " + strconv.Itoa(size) + " OFFSET " + strconv.Itoa(offset)
}

func (Postgres) RenderValue(v any) string {
	return renderValue(v, false, func(b []byte) string {
		return fmt.Sprintf("'\\x%x'", b)
	})
}
