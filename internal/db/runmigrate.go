package db

import (
	"log"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the sqlite3 driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunSQLMigrations executes the versioned migrations in ./migrations
// against the local SQLite file. Gated by MIGRATIONS=1; the guarded
// EnsureSchema path remains the default.
func RunSQLMigrations(databasePath string) error {
	m, err := migrate.New("file://migrations", "sqlite3://"+databasePath)
	if err != nil {
		return err
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Printf("[schema] fechar migrador: src=%v db=%v", srcErr, dbErr)
		}
	}()
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
