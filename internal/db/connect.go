package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/example/ordem-servico/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the single shared connection used for the whole process.
// The default store is the local SQLite file under the user's documents
// directory; setting DATABASE_DSN switches to PostgreSQL.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.App.Debug {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	if dsn := NormalizeDSN(cfg.Database.DSN); dsn != "" {
		var db *gorm.DB
		var err error
		for i := 0; i < 10; i++ {
			db, err = gorm.Open(postgres.Open(dsn), gcfg)
			if err == nil {
				break
			}
			fmt.Println("Retrying DB connection...", err)
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to connect database after retries: %w", err)
		}
		if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
			return nil, fmt.Errorf("db ping failed: %w", pingErr)
		}
		return db, nil
	}

	path := cfg.Database.Path
	if path == "" {
		var err error
		path, err = DefaultDatabasePath()
		if err != nil {
			return nil, fmt.Errorf("resolver caminho do banco: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("criar diretório do banco: %w", err)
	}
	db, err := gorm.Open(sqlite.Open(path), gcfg)
	if err != nil {
		return nil, fmt.Errorf("abrir banco %s: %w", path, err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	return db, nil
}
