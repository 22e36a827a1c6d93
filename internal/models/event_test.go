package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventDecoding(t *testing.T) {
	t.Run("should read the branch from the first git.branch tag", func(t *testing.T) {
		payload := `{
			"timestamp": "2024-03-01T10:00:00Z",
			"hostname": "cds-worker-1",
			"type_event": "sdk.EventRunWorkflow",
			"project_key": "PRJ",
			"workflow_name": "build",
			"workflow_run_num": 42,
			"workflow_run_id": 1337,
			"status": "Success",
			"tags": [
				{"tag": "triggered_by", "value": "alice"},
				{"tag": "git.branch", "value": "main"},
				{"tag": "git.branch", "value": "other"}
			]
		}`

		var event Event
		require.NoError(t, json.Unmarshal([]byte(payload), &event))

		run := event.ToRun()
		assert.True(t, event.IsRunWorkflow())
		assert.Equal(t, int64(1337), run.RunID)
		assert.Equal(t, int64(42), run.Num)
		assert.Equal(t, "PRJ", run.ProjectKey)
		assert.Equal(t, "build", run.WorkflowName)
		require.NotNil(t, run.Branch)
		assert.Equal(t, "main", *run.Branch)
		assert.Equal(t, StatusSuccess, run.Status)
	})

	t.Run("should accept the singular tag key", func(t *testing.T) {
		payload := `{"type_event": "sdk.EventRunWorkflow", "project_key": "PRJ", "workflow_name": "build",
			"tag": [{"tag": "git.branch", "value": "feature/x"}]}`

		var event Event
		require.NoError(t, json.Unmarshal([]byte(payload), &event))

		branch := event.Branch()
		require.NotNil(t, branch)
		assert.Equal(t, "feature/x", *branch)
	})

	t.Run("should leave branch empty without a git.branch tag", func(t *testing.T) {
		payload := `{"type_event": "sdk.EventRunWorkflow", "project_key": "PRJ", "workflow_name": "build",
			"tags": [{"tag": "environment", "value": "prod"}]}`

		var event Event
		require.NoError(t, json.Unmarshal([]byte(payload), &event))

		run := event.ToRun()
		assert.Nil(t, run.Branch)
		assert.Equal(t, int64(0), run.RunID)
	})

	t.Run("should keep an empty branch distinct from no branch", func(t *testing.T) {
		payload := `{"type_event": "sdk.EventRunWorkflow", "project_key": "PRJ", "workflow_name": "build",
			"tags": [{"tag": "git.branch", "value": ""}]}`

		var event Event
		require.NoError(t, json.Unmarshal([]byte(payload), &event))

		branch := event.Branch()
		require.NotNil(t, branch)
		assert.Empty(t, *branch)
	})

	t.Run("should map unknown and missing statuses to Unknown", func(t *testing.T) {
		var event Event
		require.NoError(t, json.Unmarshal([]byte(`{"status": "Exploded"}`), &event))
		assert.Equal(t, StatusUnknown, event.ToRun().Status)

		var missing Event
		require.NoError(t, json.Unmarshal([]byte(`{}`), &missing))
		assert.Equal(t, StatusUnknown, missing.ToRun().Status)
	})

	t.Run("should reject malformed json", func(t *testing.T) {
		var event Event
		assert.Error(t, json.Unmarshal([]byte(`{"project_key": `), &event))
	})
}

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"Pending":     StatusPending,
		"Waiting":     StatusWaiting,
		"Checking":    StatusChecking,
		"Building":    StatusBuilding,
		"Success":     StatusSuccess,
		"Fail":        StatusFail,
		"Disabled":    StatusDisabled,
		"Never Built": StatusNeverBuilt,
		"NeverBuilt":  StatusNeverBuilt,
		"Unknown":     StatusUnknown,
		"Skipped":     StatusSkipped,
		"Stopped":     StatusStopped,
		"success":     StatusUnknown,
		"":            StatusUnknown,
		"Crashed":     StatusUnknown,
	}

	for token, expected := range cases {
		assert.Equal(t, expected, ParseStatus(token), "token %q", token)
	}
}

func TestStatusScan(t *testing.T) {
	var status Status

	require.NoError(t, status.Scan("Building"))
	assert.Equal(t, StatusBuilding, status)

	require.NoError(t, status.Scan([]byte("Fail")))
	assert.Equal(t, StatusFail, status)

	require.NoError(t, status.Scan(nil))
	assert.Equal(t, StatusUnknown, status)

	assert.Error(t, status.Scan(42))
}
