package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"badge/internal/configuration"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations
var migrations embed.FS

var gooseDialects = map[string]goose.Dialect{
	configuration.DatabasePostgres: goose.DialectPostgres,
	configuration.DatabaseSQLite:   goose.DialectSQLite3,
}

// Migrate applies the embedded migrations for the given database type.
func Migrate(ctx context.Context, db *gorm.DB, databaseType string) error {
	dialect, ok := gooseDialects[databaseType]
	if !ok {
		return fmt.Errorf("no migrations for database type %s", databaseType)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("getting underlying db: %w", err)
	}

	dir, err := fs.Sub(migrations, "migrations/"+string(dialect))
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(dialect, sqlDB, dir)
	if err != nil {
		return fmt.Errorf("creating migration provider: %w", err)
	}

	if _, err = provider.Up(ctx); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}
