package configlibsql

import (
	"database/sql"
	"fmt"
	"os"
	devenv "truevibe-backend/dev/env"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

type Struct struct {
	File string `json:"file"`
}

// OpenDB opens (creating it if necessary) the sqlite database named in
// the config and applies the given schema. sqlite does not tolerate
// concurrent writers well, so the pool is capped at one connection and
// WAL is enabled.
// see https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
func (config Struct) OpenDB(schema string) (*sql.DB, error) {
	if config.File == "" {
		return nil, fmt.Errorf("a database path was not specified")
	}
	dbpath, err := devenv.ResolvePath(config.File)
	if err != nil {
		return nil, err
	}

	_, statErr := os.Stat(dbpath)
	if os.IsNotExist(statErr) {
		f, err := os.Create(dbpath)
		if err != nil {
			return nil, err
		}
		f.Close()
	}

	db, err := sql.Open("sqlite", dbpath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	if schema != "" {
		_, err = db.Exec(schema)
		if err != nil {
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return db, nil
}
