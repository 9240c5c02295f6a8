package db

import (
	"context"
	"fmt"
)

// schemaVersion is stored in PRAGMA user_version.
const schemaVersion = 1

// migrate brings an existing database up to schemaVersion.
func (db *DB) migrate() error {
	var version int
	if err := db.QueryRowContext(context.Background(), "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if version != schemaVersion {
		if _, err := db.ExecContext(context.Background(), fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			return fmt.Errorf("failed to write schema version: %w", err)
		}
	}

	return nil
}

// SchemaVersion returns the version recorded in the database.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRowContext(context.Background(), "PRAGMA user_version").Scan(&version)
	return version, err
}
