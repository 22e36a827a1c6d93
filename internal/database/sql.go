package database

import (
	"context"
	"fmt"
	"time"

	"badge/internal/configuration"
	"badge/internal/models"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured store and sizes the connection pool for the executor:
// one connection per worker, never more.
func Open(config models.DatabaseConfiguration) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch config.Type {
	case configuration.DatabasePostgres:
		if config.DSN == "" && config.Host == "" {
			return nil, fmt.Errorf("database host or dsn is required for %s", config.Type)
		}
		dialector = postgres.Open(config.PostgresDSN())
	case configuration.DatabaseSQLite:
		dialector = sqlite.Open(SQLiteDSN(config.SQLite.Path))
	default:
		return nil, fmt.Errorf("unsupported database type: %s", config.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Warn),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying db: %w", err)
	}
	sqlDB.SetMaxOpenConns(config.Workers)
	sqlDB.SetMaxIdleConns(config.Workers)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// SQLiteDSN enables WAL and a busy timeout so concurrent workers can share one file.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite", path)
}

// InitDB opens the store and applies pending migrations. Any failure is fatal.
func InitDB(config models.DatabaseConfiguration) *gorm.DB {
	db, err := Open(config)
	if err != nil {
		zap.L().Fatal("Failed to connect to database", zap.String("type", config.Type), zap.Error(err))
	}

	if err = Migrate(context.Background(), db, config.Type); err != nil {
		zap.L().Fatal("Failed to migrate database", zap.Error(err))
	}

	zap.L().Info("Database connected",
		zap.String("type", config.Type),
		zap.Int("max_open_conns", config.Workers))

	return db
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		zap.L().Error("Failed to get database handle", zap.Error(err))
		return
	}
	if err = sqlDB.Close(); err != nil {
		zap.L().Error("Failed to close database", zap.Error(err))
	}
}
