package query

import (
	"errors"
	"strings"

	"github.com/Konsultn-Engineering/sqlbridge/database"
	"github.com/Konsultn-Engineering/sqlbridge/dialect"
)

// Builder accumulates one statement at a time against a bound table and
// runs it with Execute. A builder is a per-request session and is not safe
// for concurrent use.
type Builder struct {
	db        database.Database
	dialect   dialect.Dialect
	table     string
	head      head
	modifiers []modifier
	errors    []error
}

// New returns a builder over db. A nil dialect means MySQL.
func New(db database.Database, d dialect.Dialect) *Builder {
	if d == nil {
		d = dialect.NewMySQLDialect()
	}
	return &Builder{
		db:      db,
		dialect: d,
		head:    &selectHead{},
	}
}

// Table binds the builder to name and resets the statement to
// SELECT * FROM name. Modifiers and recorded errors are dropped.
func (b *Builder) Table(name string) *Builder {
	b.table = ""
	b.head = &selectHead{}
	b.modifiers = nil
	b.errors = nil

	if !validIdentifier(name) {
		b.AddError(&ValidationError{Identifier: name, Context: "table"})
		return b
	}
	b.table = name
	return b
}

// TableName returns the bound table.
func (b *Builder) TableName() string {
	return b.table
}

// Select switches to a select statement. See WithCount and WithMaxID for
// aggregate forms.
func (b *Builder) Select(columns []string, opts ...SelectOption) *Builder {
	h := &selectHead{}
	for _, col := range columns {
		if !validSelectColumn(col) {
			b.AddError(&ValidationError{Identifier: col, Context: "select column"})
			continue
		}
		h.columns = append(h.columns, col)
	}
	for _, opt := range opts {
		opt(h)
	}
	b.head = h
	return b
}

// Where appends WHERE c1 = ? AND c2 = ? for every well-formed condition.
// Conditions with an empty column or a nil value, nil pointers included, are
// skipped. Calling Where twice appends a second WHERE clause.
func (b *Builder) Where(conds ...Condition) *Builder {
	parts := make([]string, 0, len(conds))
	args := make([]any, 0, len(conds))

	for _, c := range conds {
		if !c.wellFormed() {
			continue
		}
		if !validIdentifier(c.Column) {
			b.AddError(&ValidationError{Identifier: c.Column, Context: "where column"})
			continue
		}
		parts = append(parts, c.Column+" = ?")
		args = append(args, c.Value)
	}

	if len(parts) == 0 {
		return b
	}

	b.modifiers = append(b.modifiers, modifier{
		sql:  " WHERE " + strings.Join(parts, " AND "),
		args: args,
	})
	return b
}

// Limit appends a page window. pageNum is 1-based; values are not checked.
func (b *Builder) Limit(pageSize, pageNum int) *Builder {
	b.modifiers = append(b.modifiers, modifier{
		sql: b.dialect.LimitOffset(pageSize*(pageNum-1), pageSize),
	})
	return b
}

// OrderBy appends ORDER BY field ASC|DESC. Anything other than exactly
// "asc" or "desc" is ignored.
func (b *Builder) OrderBy(field, direction string) *Builder {
	if field == "" || (direction != "asc" && direction != "desc") {
		return b
	}
	if !validIdentifier(field) {
		b.AddError(&ValidationError{Identifier: field, Context: "order field"})
		return b
	}
	b.modifiers = append(b.modifiers, modifier{
		sql: " ORDER BY " + field + " " + strings.ToUpper(direction),
	})
	return b
}

// Insert switches to INSERT INTO t (k1,k2) VALUES (?,?) with the values of
// data bound in insertion order.
func (b *Builder) Insert(data *Data) *Builder {
	columns, values, errs := splitData(data)
	for _, err := range errs {
		b.AddError(err)
	}
	if len(columns) == 0 && len(errs) == 0 {
		b.AddError(ErrNoColumns)
	}
	b.head = &insertHead{columns: columns, values: values}
	return b
}

// Update switches to UPDATE t SET k1=?,k2=?. Modifiers already appended,
// such as a Where, are kept.
func (b *Builder) Update(data *Data) *Builder {
	columns, values, errs := splitData(data)
	for _, err := range errs {
		b.AddError(err)
	}
	if len(columns) == 0 && len(errs) == 0 {
		b.AddError(ErrNoColumns)
	}
	b.head = &updateHead{columns: columns, values: values}
	return b
}

// Delete switches to DELETE FROM t.
func (b *Builder) Delete() *Builder {
	b.head = &deleteHead{}
	return b
}

// Raw replaces the whole statement, including earlier modifiers. Later
// modifiers still append to it.
func (b *Builder) Raw(sql string, args ...any) *Builder {
	b.head = &rawHead{sql: sql, args: args}
	b.modifiers = nil
	return b
}

// Kind reports which statement is pending.
func (b *Builder) Kind() Kind {
	return b.head.kind()
}

// SQL renders the pending statement.
func (b *Builder) SQL() string {
	sql, _ := b.head.render(b.table)
	if len(b.modifiers) == 0 {
		return sql
	}

	var sb strings.Builder
	sb.WriteString(sql)
	for _, m := range b.modifiers {
		sb.WriteString(m.sql)
	}
	return sb.String()
}

// Params returns head parameters followed by modifier parameters, matching
// placeholder order in SQL.
func (b *Builder) Params() []any {
	_, headArgs := b.head.render(b.table)

	params := make([]any, 0, len(headArgs))
	params = append(params, headArgs...)
	for _, m := range b.modifiers {
		params = append(params, m.args...)
	}
	return params
}

// ToSQL renders the statement and checks it is safe to run.
func (b *Builder) ToSQL() (string, []any, error) {
	if err := b.Err(); err != nil {
		return "", nil, err
	}

	sql, params := b.SQL(), b.Params()
	if b.head.kind() == KindRaw {
		return sql, params, nil
	}

	if b.table == "" {
		return "", nil, ErrNoTable
	}
	if n := placeholderCount(sql); n != len(params) {
		return "", nil, ErrPlaceholderMismatch
	}
	return sql, params, nil
}

// Interpolated renders the statement with parameters inlined as literals.
// It is for logs and the render command only and must never be executed.
func (b *Builder) Interpolated() string {
	sql, params := b.SQL(), b.Params()

	var sb strings.Builder
	last, n := 0, 0
	scanPlaceholders(sql, func(i int) {
		sb.WriteString(sql[last:i])
		if n < len(params) {
			sb.WriteString(b.dialect.RenderValue(params[n]))
		} else {
			sb.WriteByte('?')
		}
		n++
		last = i + 1
	})
	sb.WriteString(sql[last:])
	return sb.String()
}

// AddError records a construction error surfaced by Execute.
func (b *Builder) AddError(err error) {
	if err != nil {
		b.errors = append(b.errors, err)
	}
}

// Errors returns the recorded construction errors.
func (b *Builder) Errors() []error {
	return b.errors
}

// Err joins the recorded construction errors, or returns nil.
func (b *Builder) Err() error {
	return errors.Join(b.errors...)
}

// reset restores SELECT * FROM table, keeping the table.
func (b *Builder) reset() {
	b.head = &selectHead{}
	b.modifiers = nil
	b.errors = nil
}
