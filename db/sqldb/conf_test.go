package sqldb

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sql-databases.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"main": {"type": "sqlite", "db": "example.db"},
		"reports": {"type": "pgsql", "host": "localhost", "port": 5432, "user": "app", "db": "reports", "max_open_conns": 4}
	}`), 0o600))

	confs, err := LoadConfs(path)
	require.NoError(t, err)
	require.Len(t, confs, 2)
	assert.Equal(t, "sqlite", confs["main"].Type)
	assert.Equal(t, "example.db", confs["main"].DB)
	assert.Equal(t, 5432, confs["reports"].Port)
	assert.Equal(t, 4, confs["reports"].MaxOpenConns)
}

func TestLoadConfsRejectsMissingType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"main": {"db": "x"}}`), 0o600))
	_, err := LoadConfs(path)
	assert.ErrorContains(t, err, "missing type")
}

func TestLoadConfsMissingFile(t *testing.T) {
	_, err := LoadConfs(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFactoryRegistry(t *testing.T) {
	_, err := New("oracle-test", &Conf{})
	assert.ErrorContains(t, err, "unsupported database type")

	var got *Conf
	RegisterFactory("fake-test", func(conf *Conf) (Client, error) {
		got = conf
		return nil, nil
	})
	conf := &Conf{Type: "fake-test"}
	_, err = New("fake-test", conf)
	require.NoError(t, err)
	assert.Same(t, conf, got)
	assert.Contains(t, Types(), "fake-test")
}

func TestRawStoreLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/insert_student.sql":    {Data: []byte("INSERT INTO students (name, age) VALUES (?,?)")},
		"sql/create_students.sql":   {Data: []byte("CREATE TABLE students (name TEXT, age INTEGER)")},
		"sql/create_students.pgsql": {Data: []byte("CREATE TABLE students (name TEXT, age BIGINT)")},
		"sql/readme.txt":            {Data: []byte("ignored")},
	}

	pg := NewRawStore()
	require.NoError(t, pg.Load(fsys, "sql", "pgsql"))
	assert.Equal(t, 2, pg.Len())
	assert.Equal(t, "INSERT INTO students (name, age) VALUES ($1,$2)", pg.MustGet("insert_student"))
	assert.Equal(t, "CREATE TABLE students (name TEXT, age BIGINT)", pg.MustGet("create_students"))

	lite := NewRawStore()
	require.NoError(t, lite.Load(fsys, "sql", "sqlite"))
	assert.Equal(t, "INSERT INTO students (name, age) VALUES (?,?)", lite.MustGet("insert_student"))
	assert.Equal(t, "CREATE TABLE students (name TEXT, age INTEGER)", lite.MustGet("create_students"))

	_, ok := lite.Get("readme")
	assert.False(t, ok)
	assert.Panics(t, func() { lite.MustGet("readme") })
}
