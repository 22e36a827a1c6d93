package database

import (
	"context"
	"path/filepath"
	"testing"

	"badge/internal/configuration"
	"badge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) models.DatabaseConfiguration {
	t.Helper()
	return models.DatabaseConfiguration{
		Type:    configuration.DatabaseSQLite,
		SQLite:  &models.SQLiteConfiguration{Path: filepath.Join(t.TempDir(), "badge.db")},
		Workers: 2,
	}
}

func TestOpen(t *testing.T) {
	t.Run("should size the pool to the number of workers", func(t *testing.T) {
		db, err := Open(sqliteConfig(t))
		require.NoError(t, err)
		defer Close(db)

		sqlDB, err := db.DB()
		require.NoError(t, err)
		assert.Equal(t, 2, sqlDB.Stats().MaxOpenConnections)
	})

	t.Run("should reject an unsupported type", func(t *testing.T) {
		_, err := Open(models.DatabaseConfiguration{Type: "oracle", Workers: 1})
		assert.Error(t, err)
	})

	t.Run("should require a host for postgres without a dsn", func(t *testing.T) {
		_, err := Open(models.DatabaseConfiguration{Type: configuration.DatabasePostgres, Workers: 1})
		assert.Error(t, err)
	})
}

func TestMigrate(t *testing.T) {
	db, err := Open(sqliteConfig(t))
	require.NoError(t, err)
	defer Close(db)

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, configuration.DatabaseSQLite))
	require.NoError(t, Migrate(ctx, db, configuration.DatabaseSQLite), "migrations must be idempotent")

	assert.True(t, db.Migrator().HasTable("run"))
	for _, column := range []string{"id", "run_id", "num", "project_key", "workflow_name", "branch", "status", "updated"} {
		assert.True(t, db.Migrator().HasColumn(&models.Run{}, column), "missing column %s", column)
	}

	assert.Error(t, Migrate(ctx, db, "oracle"))
}

func TestPostgresDSN(t *testing.T) {
	config := models.DatabaseConfiguration{
		Host: "db", Port: 5433, User: "cds", Password: "secret", Name: "badges",
	}
	assert.Equal(t, "host=db port=5433 user=cds password=secret dbname=badges sslmode=disable", config.PostgresDSN())

	config.DSN = "postgres://cds@db/badges"
	assert.Equal(t, "postgres://cds@db/badges", config.PostgresDSN())
}
