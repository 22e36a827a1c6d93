package tests

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"badge/internal/configuration"
	"badge/internal/database"
	"badge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// AssertJSONResponse checks the status code and compares the decoded body with expected.
func AssertJSONResponse[T any](t *testing.T, recorder *httptest.ResponseRecorder, status int, expected T) {
	t.Helper()

	assert.Equal(t, status, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var actual T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &actual))
	assert.Equal(t, expected, actual)
}

// NewSQLiteDB opens a migrated file-backed store sized for the given number of workers.
func NewSQLiteDB(t *testing.T, workers int) *gorm.DB {
	t.Helper()

	db, err := database.Open(models.DatabaseConfiguration{
		Type:    configuration.DatabaseSQLite,
		SQLite:  &models.SQLiteConfiguration{Path: filepath.Join(t.TempDir(), "badge.db")},
		Workers: workers,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db, configuration.DatabaseSQLite))

	t.Cleanup(func() { database.Close(db) })
	return db
}

// InsertRunAt stores a run with an explicit updated timestamp, bypassing the store default.
func InsertRunAt(t *testing.T, db *gorm.DB, run models.Run, updated *time.Time) {
	t.Helper()

	err := db.Exec(
		"INSERT INTO run (run_id, num, project_key, workflow_name, branch, status, updated) VALUES (?, ?, ?, ?, ?, ?, ?)",
		run.RunID, run.Num, run.ProjectKey, run.WorkflowName, models.NullBranch(run.Branch), run.Status, updated,
	).Error
	require.NoError(t, err)
}

func StringPtr(s string) *string {
	return &s
}
