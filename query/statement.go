package query

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies the statement a builder will run.
type Kind int

const (
	KindSelect Kind = iota
	KindInsert
	KindUpdate
	KindDelete
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "select"
	case KindInsert:
		return "insert"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// head is the leading part of a statement. Exactly one is active per builder.
type head interface {
	kind() Kind
	render(table string) (string, []any)
}

type selectHead struct {
	columns []string
	maxID   bool
	count   bool
}

func (h *selectHead) kind() Kind { return KindSelect }

func (h *selectHead) render(table string) (string, []any) {
	var cols string
	switch {
	case h.count:
		cols = "COUNT(*) AS count"
	case h.maxID:
		cols = "MAX(id) AS maxId"
	case len(h.columns) > 0:
		cols = strings.Join(h.columns, ",")
	default:
		cols = "*"
	}
	return "SELECT " + cols + " FROM " + table, nil
}

// SelectOption adjusts the select head.
type SelectOption func(*selectHead)

// WithCount selects COUNT(*) AS count. It takes precedence over everything else.
func WithCount() SelectOption {
	return func(h *selectHead) { h.count = true }
}

// WithMaxID selects MAX(id) AS maxId unless WithCount is also given.
func WithMaxID() SelectOption {
	return func(h *selectHead) { h.maxID = true }
}

type insertHead struct {
	columns []string
	values  []any
}

func (h *insertHead) kind() Kind { return KindInsert }

func (h *insertHead) render(table string) (string, []any) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(h.columns, ","))
	sb.WriteString(") VALUES (")
	for i := range h.columns {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('?')
	}
	sb.WriteByte(')')
	return sb.String(), h.values
}

type updateHead struct {
	columns []string
	values  []any
}

func (h *updateHead) kind() Kind { return KindUpdate }

func (h *updateHead) render(table string) (string, []any) {
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(table)
	sb.WriteString(" SET ")
	for i, col := range h.columns {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(col)
		sb.WriteString("=?")
	}
	return sb.String(), h.values
}

type deleteHead struct{}

func (h *deleteHead) kind() Kind { return KindDelete }

func (h *deleteHead) render(table string) (string, []any) {
	return "DELETE FROM " + table, nil
}

type rawHead struct {
	sql  string
	args []any
}

func (h *rawHead) kind() Kind { return KindRaw }

func (h *rawHead) render(string) (string, []any) {
	return h.sql, h.args
}

// modifier is a clause appended after the head: WHERE, ORDER BY or LIMIT.
type modifier struct {
	sql  string
	args []any
}

// Data is the ordered column/value set taken by Insert and Update.
type Data = orderedmap.OrderedMap[string, any]

// NewData returns empty Data.
func NewData() *Data {
	return orderedmap.New[string, any]()
}

// splitData returns the valid columns of data and their values in insertion
// order, plus one error per rejected column name.
func splitData(data *Data) ([]string, []any, []error) {
	if data == nil {
		return nil, nil, nil
	}

	columns := make([]string, 0, data.Len())
	values := make([]any, 0, data.Len())
	var errs []error
	for pair := data.Oldest(); pair != nil; pair = pair.Next() {
		if !validIdentifier(pair.Key) {
			errs = append(errs, &ValidationError{Identifier: pair.Key, Context: "column"})
			continue
		}
		columns = append(columns, pair.Key)
		values = append(values, pair.Value)
	}
	return columns, values, errs
}
