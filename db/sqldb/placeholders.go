package sqldb

import (
	"fmt"
	"strconv"
	"strings"
)

// Syntax describes the lexical rules that matter when looking for placeholders.
type Syntax struct {
	Prefix           byte // '?' (also ?NNN) or '$' ($N)
	BracketIdents    bool // sqlite: [quoted identifier]
	BackslashEscapes bool // mysql: 'it\'s' unless NO_BACKSLASH_ESCAPES
	EscapeStrings    bool // pgsql: E'it\'s'
}

var SyntaxForDBType = map[string]Syntax{
	"mysql":  {Prefix: '?', BackslashEscapes: true},
	"pgsql":  {Prefix: '$', EscapeStrings: true},
	"sqlite": {Prefix: '?', BracketIdents: true}, // NOTE: sqlite also accepts :name, @name, $name
}

// SyntaxFor falls back to plain `?` SQL for unknown types.
func SyntaxFor(dbType string) Syntax {
	if s, ok := SyntaxForDBType[dbType]; ok {
		return s
	}
	return Syntax{Prefix: '?'}
}

func PlaceholderGF(baseChar byte) func(...int) string { // vararg for optional
	if baseChar == '?' || baseChar == 0 {
		return func(_ ...int) string {
			return "?"
		}
	}
	return func(index ...int) string {
		i := 1
		if len(index) > 0 {
			i = index[0]
		}
		return string(baseChar) + strconv.Itoa(i)
	}
}

// CountPlaceholders returns the number of positional parameters in sql,
// i.e. the highest ordinal a caller has to bind.
// String literals, quoted identifiers and comments are skipped.
// For '?' an anonymous `?` takes the next ordinal after the largest seen so far
// and `?NNN` sets it explicitly. For '$' only `$N` counts.
func CountPlaceholders(sql string, syn Syntax) (int, error) {
	highest := 0
	err := walkPlaceholders(sql, syn, func(_, _, ordinal int) {
		if ordinal > highest {
			highest = ordinal
		}
	})
	if err != nil {
		return 0, err
	}
	return highest, nil
}

// ReplaceStaticPlaceholders rewrites the `?` placeholders of standard SQL into
// the prefix-ordinal form of the target dialect, e.g. `$1`.
func ReplaceStaticPlaceholders(sql string, prefix byte) (string, error) {
	if prefix == '?' || prefix == 0 {
		return sql, nil
	}
	placeholder := PlaceholderGF(prefix)
	var builder strings.Builder
	builder.Grow(len(sql) + 8)
	last := 0
	err := walkPlaceholders(sql, Syntax{Prefix: '?'}, func(start, end, ordinal int) {
		builder.WriteString(sql[last:start])
		builder.WriteString(placeholder(ordinal))
		last = end
	})
	if err != nil {
		return "", err
	}
	builder.WriteString(sql[last:])
	return builder.String(), nil
}

// walkPlaceholders calls visit with [start, end) and the resolved ordinal of each placeholder.
func walkPlaceholders(sql string, syn Syntax, visit func(start, end, ordinal int)) error {
	prefix := syn.Prefix
	if prefix == 0 {
		prefix = '?'
	}
	highest := 0
	i := 0
	for i < len(sql) {
		c := sql[i]
		switch {
		case c == '\'' || c == '"':
			end, err := skipQuoted(sql, i, c, syn.BackslashEscapes)
			if err != nil {
				return err
			}
			i = end
		case c == '`':
			end, err := skipQuoted(sql, i, c, false)
			if err != nil {
				return err
			}
			i = end
		case (c == 'E' || c == 'e') && syn.EscapeStrings &&
			i+1 < len(sql) && sql[i+1] == '\'' && (i == 0 || !isIdentChar(sql[i-1])):
			end, err := skipQuoted(sql, i+1, '\'', true)
			if err != nil {
				return err
			}
			i = end
		case c == '[' && syn.BracketIdents:
			end := strings.IndexByte(sql[i+1:], ']')
			if end < 0 {
				return fmt.Errorf("unterminated bracket identifier at offset %d", i)
			}
			i += end + 2
		case c == '-' && strings.HasPrefix(sql[i:], "--"):
			end := strings.IndexByte(sql[i:], '\n')
			if end < 0 {
				return nil
			}
			i += end + 1
		case c == '/' && strings.HasPrefix(sql[i:], "/*"):
			end := strings.Index(sql[i+2:], "*/")
			if end < 0 {
				return fmt.Errorf("unterminated comment at offset %d", i)
			}
			i += end + 4
		case c == '$' && prefix == '$':
			j := i + 1
			for j < len(sql) && isDigit(sql[j]) {
				j++
			}
			if j > i+1 {
				ordinal, err := parseOrdinal(sql[i+1:j], i)
				if err != nil {
					return err
				}
				visit(i, j, ordinal)
				i = j
				continue
			}
			// dollar-quoted string: $tag$ ... $tag$
			k := j
			for k < len(sql) && isIdentChar(sql[k]) {
				k++
			}
			if k < len(sql) && sql[k] == '$' {
				tag := sql[i : k+1]
				end := strings.Index(sql[k+1:], tag)
				if end < 0 {
					return fmt.Errorf("unterminated dollar quote %s at offset %d", tag, i)
				}
				i = k + 1 + end + len(tag)
				continue
			}
			i++
		case c == '?' && prefix == '?':
			j := i + 1
			for j < len(sql) && isDigit(sql[j]) {
				j++
			}
			var ordinal int
			if j > i+1 {
				var err error
				if ordinal, err = parseOrdinal(sql[i+1:j], i); err != nil {
					return err
				}
			} else {
				ordinal = highest + 1
			}
			if ordinal > highest {
				highest = ordinal
			}
			visit(i, j, ordinal)
			i = j
		default:
			i++
		}
	}
	return nil
}

// skipQuoted returns the offset just past the quote that closes the one at start.
// A doubled quote is part of the text; so is any byte after a backslash when backslash is set.
func skipQuoted(sql string, start int, quote byte, backslash bool) (int, error) {
	for j := start + 1; j < len(sql); j++ {
		switch sql[j] {
		case '\\':
			if backslash {
				j++
			}
		case quote:
			if j+1 < len(sql) && sql[j+1] == quote {
				j++
				continue
			}
			return j + 1, nil
		}
	}
	return 0, fmt.Errorf("unterminated quote %c at offset %d", quote, start)
}

func parseOrdinal(digits string, offset int) (int, error) {
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid placeholder ordinal %q at offset %d", digits, offset)
	}
	return n, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentChar(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
