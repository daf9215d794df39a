package query

import "regexp"

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

	// Select columns may also be "*", "t.*" or "expr AS alias".
	selectColumnPattern = regexp.MustCompile(`^(\*|[A-Za-z_][A-Za-z0-9_]*(\.([A-Za-z_][A-Za-z0-9_]*|\*))?)(\s+(?i:as)\s+[A-Za-z_][A-Za-z0-9_]*)?$`)
)

func validIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

func validSelectColumn(name string) bool {
	return selectColumnPattern.MatchString(name)
}

// placeholderCount counts "?" outside quoted text.
func placeholderCount(sql string) int {
	n := 0
	scanPlaceholders(sql, func(int) { n++ })
	return n
}

// scanPlaceholders calls fn with the byte offset of every "?" that is not
// inside single quotes, double quotes or backticks.
func scanPlaceholders(sql string, fn func(i int)) {
	var quote byte
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		switch {
		case quote != 0:
			if c == '\\' && quote != '`' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '?':
			fn(i)
		}
	}
}
