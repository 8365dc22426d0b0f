package testutil

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"
	devenv "truevibe-backend/dev/env"
	"truevibe-backend/lib/telemetry"

	_ "modernc.org/sqlite"
)

type ServiceParams struct {
	Name string
	// if unspecified, it will skip setting up a db
	DbSchema string
	// if unspecified, it will use `:memory:`
	DbPath string
}

type ServiceResult struct {
	DB *sql.DB
}

// SetupService bootstraps telemetry and a sqlite database for one
// service test package. The returned cleanup must run after the test,
// usually via t.Cleanup.
func SetupService(t testing.TB, params ServiceParams) (ServiceResult, func()) {
	teardownTelemetry := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))

	if params.DbSchema == "" {
		return ServiceResult{}, teardownTelemetry
	}

	dbpath := ":memory:"
	if params.DbPath != "" && params.DbPath != ":memory:" {
		var err error
		dbpath, err = devenv.ResolvePath(params.DbPath)
		if err != nil {
			t.Fatal(err)
		}
	}
	sqlite, err := sql.Open("sqlite", dbpath)
	if err != nil {
		t.Fatal(err)
	}
	// a single connection keeps every query on the same in-memory
	// database and serializes writes the way production does
	sqlite.SetMaxOpenConns(1)

	_, err = sqlite.Exec(params.DbSchema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		t.Fatal(err)
	}

	return ServiceResult{DB: sqlite}, func() {
		sqlite.Close()
		teardownTelemetry()
	}
}
