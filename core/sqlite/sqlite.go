// Package sqlite opens SQLite databases through the pure Go driver
// modernc.org/sqlite, so binaries build with CGO_ENABLED=0.
//
// Use Open() instead of sql.Open() so the driver is registered and the
// connection pragmas are applied.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const (
	driverName    = "sqlite"
	driverPackage = "modernc.org/sqlite"
)

// DriverName returns the SQL driver name to use.
func DriverName() string {
	return driverName
}

// Open opens a SQLite database. File databases get a busy timeout and WAL
// journaling so several processes can share a payload store.
func Open(dataSourceName string) (*sql.DB, error) {
	dsn := dataSourceName
	if !strings.Contains(dsn, ":memory:") {
		dsn = withPragmas(dsn, "busy_timeout(5000)", "journal_mode(WAL)")
	}
	return sql.Open(driverName, dsn)
}

// OpenReadOnly opens a SQLite database in read-only mode.
func OpenReadOnly(path string) (*sql.DB, error) {
	return Open("file:" + path + "?mode=ro")
}

// MustOpen opens a SQLite database and panics on error.
// This is intended for use in tests or initialization code where
// database access failure is unrecoverable.
func MustOpen(dataSourceName string) *sql.DB {
	db, err := Open(dataSourceName)
	if err != nil {
		panic(fmt.Sprintf("sqlite: failed to open %s: %v", dataSourceName, err))
	}
	return db
}

func withPragmas(dsn string, pragmas ...string) string {
	var b strings.Builder
	b.WriteString(dsn)
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	for _, p := range pragmas {
		b.WriteString(sep + "_pragma=" + p)
		sep = "&"
	}
	return b.String()
}

// Info contains information about the SQLite driver configuration.
type Info struct {
	DriverName string `json:"driver_name"`
	Package    string `json:"package"`
}

// GetInfo returns information about the current SQLite configuration.
func GetInfo() Info {
	return Info{
		DriverName: driverName,
		Package:    driverPackage,
	}
}
