package dialect

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// renderValue formats v as a SQL literal. It is only used for debug output,
// statements sent to a backend always carry their values as parameters.
func renderValue(v any, escapeBackslash bool, bytesLiteral func([]byte) string) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return quoteString(val, escapeBackslash)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64)
	case time.Time:
		return "'" + val.Format("2006-01-02 15:04:05.000000") + "'"
	case []byte:
		return bytesLiteral(val)
	default:
		return quoteString(fmt.Sprint(val), escapeBackslash)
	}
}

func quoteString(s string, escapeBackslash bool) string {
	if escapeBackslash {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
