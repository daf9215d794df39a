package dialect

// Dialect captures the few places where backends disagree on statement text.
// Builders always emit "?" placeholders; Rebind converts them for backends
// that use numbered parameters.
type Dialect interface {
	Name() string
	QuoteIdentifier(name string) string
	Placeholder(n int) string
	Rebind(query string) string
	LimitOffset(offset, size int) string
	RenderValue(v any) string
}

// ByName returns the dialect registered for a provider name, falling back to MySQL.
func ByName(name string) Dialect {
	switch name {
	case "postgres", "pgx":
		return NewPostgresDialect()
	case "sqlite", "sqlite3":
		return NewSQLiteDialect()
	default:
		return NewMySQLDialect()
	}
}
