package pgsql

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeptools/sqlbind/db/sqldb"
)

func TestBuildDSN(t *testing.T) {
	dsn := BuildDSN(&sqldb.Conf{Host: "localhost", Port: 5432, User: "app", PW: "pw", DB: "school"})
	assert.Equal(t, "host=localhost port=5432 user=app password=pw dbname=school sslmode=disable TimeZone=UTC", dsn)
}

func TestStmtNameIsIdentifier(t *testing.T) {
	a, b := stmtName(), stmtName()
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "stmt_"))
	assert.NotContains(t, a, "-")
}

func TestUnopenedClient(t *testing.T) {
	Register()
	c, err := sqldb.New(DBType, &sqldb.Conf{Type: DBType})
	require.NoError(t, err)
	assert.Nil(t, c.GetHandle())
	assert.ErrorIs(t, c.Ping(context.Background()), sqldb.ErrNotOpen)
	assert.NoError(t, c.Close())
}

// TestPreparedStmtLive runs against a real server when PGSQL_TEST_DSN is set.
func TestPreparedStmtLive(t *testing.T) {
	dsn := os.Getenv("PGSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("PGSQL_TEST_DSN not set")
	}
	ctx := context.Background()
	c := &Client{Conf: &sqldb.Conf{Type: DBType, DSN: dsn}}
	require.NoError(t, c.Init())
	defer c.Close()

	h := c.GetHandle()
	_, err := h.Exec(ctx, "CREATE TABLE sqlbind_students_test (name TEXT, age BIGINT)")
	require.NoError(t, err)
	defer h.Exec(ctx, "DROP TABLE sqlbind_students_test")

	stmt, err := h.Prepare(ctx, "INSERT INTO sqlbind_students_test (name, age) VALUES ($1, $2)")
	require.NoError(t, err)
	assert.Equal(t, 2, stmt.NumInput())
	res, err := stmt.Exec(ctx, "Jane", int64(16))
	require.NoError(t, err)
	require.NoError(t, stmt.Close())
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
