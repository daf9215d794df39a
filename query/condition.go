package query

import (
	"fmt"
	"reflect"
)

// Condition is one equality filter.
type Condition struct {
	Column string
	Value  any
}

// Eq builds the condition column = value.
func Eq(column string, value any) Condition {
	return Condition{Column: column, Value: value}
}

// wellFormed reports whether c has a column and a value. A nil value, typed
// nil pointers and decoded JSON null included, counts as absent: equality with
// NULL never matches a row.
func (c Condition) wellFormed() bool {
	return c.Column != "" && !isNil(c.Value)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// ParseConditions converts untyped [column, value] pairs, such as decoded
// JSON arrays, into conditions. Unlike Where, which skips malformed input,
// it rejects the first bad pair.
func ParseConditions(raw [][]any) ([]Condition, error) {
	conds := make([]Condition, 0, len(raw))
	for i, pair := range raw {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: pair %d has %d elements, want 2", ErrMalformedCondition, i, len(pair))
		}
		column, ok := pair[0].(string)
		if !ok || column == "" {
			return nil, fmt.Errorf("%w: pair %d column must be a non-empty string", ErrMalformedCondition, i)
		}
		if isNil(pair[1]) {
			return nil, fmt.Errorf("%w: pair %d has no value", ErrMalformedCondition, i)
		}
		conds = append(conds, Eq(column, pair[1]))
	}
	return conds, nil
}
