// Package schemas provides the embedded SQL schema of the key-value table.
package schemas

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
)

// Migrations contains the CREATE TABLE statement of kv_entries for each SQL driver.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const fallbackDriver = "sqlite3"

// KVEntries returns the schema of kv_entries for driverName.
// Drivers without their own file get the sqlite3 schema.
func KVEntries(driverName string) (string, error) {
	data, err := Migrations.ReadFile(migrationPath(driverName))
	if errors.Is(err, fs.ErrNotExist) {
		data, err = Migrations.ReadFile(migrationPath(fallbackDriver))
	}
	if err != nil {
		return "", fmt.Errorf("Migrations.ReadFile(%s) > %w", driverName, err)
	}
	return string(data), nil
}

func migrationPath(driverName string) string {
	return "migrations/kv_entries." + driverName + ".sql"
}
