package sqldb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountPlaceholders(t *testing.T) {
	std := Syntax{Prefix: '?'}
	pg := SyntaxFor("pgsql")
	my := SyntaxFor("mysql")
	lite := SyntaxFor("sqlite")
	tests := []struct {
		name string
		sql  string
		syn  Syntax
		want int
	}{
		{"none", "SELECT 1", std, 0},
		{"two anonymous", "INSERT INTO students (name, age) VALUES (?,?)", std, 2},
		{"three anonymous", "INSERT INTO teachers (name, subject, salary) VALUES (?,?,?)", std, 3},
		{"zero prefix means question mark", "VALUES (?, ?)", Syntax{}, 2},
		{"literal skipped", "SELECT '?' , ? FROM t", std, 1},
		{"escaped quote in literal", "SELECT 'it''s ?' , ? FROM t", std, 1},
		{"quoted identifier skipped", `SELECT "a?b" FROM t WHERE x = ?`, std, 1},
		{"backtick skipped", "SELECT `a?` FROM t WHERE x = ?", std, 1},
		{"line comment skipped", "SELECT ? -- and ?\n, ?", std, 2},
		{"trailing line comment", "SELECT ? -- ?", std, 1},
		{"block comment skipped", "SELECT /* ? ? */ ?", std, 1},
		{"numbered question marks", "SELECT ?3, ?1", std, 3},
		{"anonymous after numbered", "SELECT ?2, ?", std, 3},
		{"dollar ordinals", "INSERT INTO t VALUES ($1, $2, $3)", pg, 3},
		{"dollar highest wins", "SELECT $2, $1, $2", pg, 2},
		{"dollar ignores question marks", "SELECT ? , $1", pg, 1},
		{"dollar quoted body skipped", "SELECT $tag$ $9 $tag$, $1", pg, 1},
		{"empty dollar quote skipped", "SELECT $$ $5 $$", pg, 0},
		{"mysql backslash escape", `INSERT INTO t VALUES ('it\'s', ?)`, my, 1},
		{"mysql backslash before closing quote", `SELECT 'a\\', ?`, my, 1},
		{"pgsql escape string", `INSERT INTO t VALUES (E'a\'b', $1)`, pg, 1},
		{"pgsql lowercase escape string", `SELECT e'$9\'', $2`, pg, 2},
		{"pgsql plain string keeps backslash", `SELECT 'a\', $1`, pg, 1},
		{"identifier ending in e is not an escape string", `SELECT name'x', $1`, pg, 1},
		{"sqlite bracket identifier", "INSERT INTO [odd?name] (v) VALUES (?)", lite, 1},
		{"brackets are plain text elsewhere", "SELECT ?[1]", std, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CountPlaceholders(tt.sql, tt.syn)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountPlaceholdersErrors(t *testing.T) {
	for _, sql := range []string{
		"SELECT 'open",
		"SELECT /* open",
		"SELECT ?0",
		`SELECT "open`,
	} {
		_, err := CountPlaceholders(sql, Syntax{Prefix: '?'})
		assert.Error(t, err, sql)
	}
	_, err := CountPlaceholders("SELECT $a$ open", SyntaxFor("pgsql"))
	assert.Error(t, err)
	_, err = CountPlaceholders("INSERT INTO [open (v) VALUES (?)", SyntaxFor("sqlite"))
	assert.Error(t, err)
	// without backslash escapes the quote closes and the tail opens another
	_, err = CountPlaceholders(`VALUES ('it\'s', ?)`, Syntax{Prefix: '?'})
	assert.Error(t, err)
}

func TestReplaceStaticPlaceholders(t *testing.T) {
	got, err := ReplaceStaticPlaceholders("INSERT INTO t (a, b) VALUES (?, ?) -- ?", '$')
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO t (a, b) VALUES ($1, $2) -- ?", got)

	got, err = ReplaceStaticPlaceholders("SELECT std, ?", '$')
	require.NoError(t, err)
	assert.Equal(t, "SELECT std, $1", got)

	same, err := ReplaceStaticPlaceholders("VALUES (?, ?)", '?')
	require.NoError(t, err)
	assert.Equal(t, "VALUES (?, ?)", same)
}

func TestSyntaxFor(t *testing.T) {
	assert.Equal(t, byte('$'), SyntaxFor("pgsql").Prefix)
	assert.True(t, SyntaxFor("mysql").BackslashEscapes)
	assert.True(t, SyntaxFor("sqlite").BracketIdents)
	assert.Equal(t, Syntax{Prefix: '?'}, SyntaxFor("oracle"))
}

func TestPlaceholderGenerator(t *testing.T) {
	assert.Equal(t, "?", PlaceholderGF('?')(4))
	assert.Equal(t, "$1", PlaceholderGF('$')())
	assert.Equal(t, "$4", PlaceholderGF('$')(4))
}
