package sqldb

import (
	"encoding/json"
	"fmt"
	"os"
)

type Conf struct {
	Type         string `json:"type"` // mysql, pgsql, sqlite
	Host         string `json:"host"`
	Port         int    `json:"port"`
	User         string `json:"user"`
	PW           string `json:"pw"`
	DB           string `json:"db"`  // database name; file path for sqlite
	TZ           string `json:"tz"`  // Connection Timezone
	DSN          string `json:"dsn"` // To Overwrite Default DSN
	MaxOpenConns int    `json:"max_open_conns"`
}

// LoadConfs reads a JSON object of named database confs, e.g.
//
//	{"main": {"type": "sqlite", "db": "example.db"}}
func LoadConfs(path string) (map[string]*Conf, error) {
	confBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	confs := make(map[string]*Conf)
	if err = json.Unmarshal(confBytes, &confs); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for name, conf := range confs {
		if conf == nil || conf.Type == "" {
			return nil, fmt.Errorf("database %q: missing type", name)
		}
	}
	return confs, nil
}
