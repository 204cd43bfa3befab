package common

import "strings"

// ParseSQLStatements splits a DDL script into single statements for drivers
// that refuse multi-statement Exec. Semicolons inside quoted strings or
// identifiers do not split, a doubled quote stays inside its literal, and
// "--" comments outside quotes are dropped up to the end of the line.
func ParseSQLStatements(script string) []string {
	var (
		statements []string
		current    strings.Builder
		quote      rune
	)

	flush := func() {
		if stmt := strings.TrimSpace(current.String()); stmt != "" {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	runes := []rune(script)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			// '' reopens on the next rune, so doubled quotes need no lookahead.
			if r == quote {
				quote = 0
			}
			current.WriteRune(r)
		case r == '\'' || r == '"' || r == '`':
			quote = r
			current.WriteRune(r)
		case r == '-' && i+1 < len(runes) && runes[i+1] == '-':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			current.WriteRune('\n')
		case r == ';':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return statements
}
