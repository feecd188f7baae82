package sqldb

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// RawStore holds named SQL statements, already converted for one dialect.
type RawStore struct {
	stmts map[string]string
}

func NewRawStore() *RawStore {
	return &RawStore{stmts: make(map[string]string)}
}

func (s *RawStore) Set(key string, rawStmt string) {
	s.stmts[key] = rawStmt
}

func (s *RawStore) Get(key string) (string, bool) {
	stmt, exists := s.stmts[key]
	return stmt, exists
}

// MustGet panics on a missing key. Use it for statements shipped with the binary.
func (s *RawStore) MustGet(key string) string {
	stmt, exists := s.stmts[key]
	if !exists {
		panic(fmt.Sprintf("raw sql stmt %q not loaded", key))
	}
	return stmt
}

func (s *RawStore) Len() int {
	return len(s.stmts)
}

// Load reads every file of dir in fsys.
// `<name>.<dbType>` files are used as-is for that dialect.
// `<name>.sql` files are standard SQL with `?` placeholders, converted to
// the placeholders of dbType unless a dialect file of the same name exists.
func (s *RawStore) Load(fsys fs.FS, dir string, dbType string) error {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read `%s` dir: %w", dir, err)
	}
	prefix := SyntaxFor(dbType).Prefix
	generic := map[string]string{}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		filename := f.Name()
		ext := path.Ext(filename)
		name := strings.TrimSuffix(filename, ext)
		ext = strings.TrimPrefix(ext, ".")
		if ext != dbType && ext != "sql" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, filename))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", filename, err)
		}
		if ext == dbType {
			// exact matching file extension -> use it as-is for dialects
			s.Set(name, string(data))
			continue
		}
		generic[name] = string(data)
	}
	for name, raw := range generic {
		if _, exists := s.Get(name); exists {
			continue
		}
		converted, err := ReplaceStaticPlaceholders(raw, prefix)
		if err != nil {
			return fmt.Errorf("%s.sql: %w", name, err)
		}
		s.Set(name, converted)
	}
	return nil
}
