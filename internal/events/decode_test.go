package events

import (
	"testing"

	apierrors "badge/internal/errors"
	"badge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRun(t *testing.T) {
	t.Run("should build a run from a run workflow event", func(t *testing.T) {
		run, err := DecodeRun([]byte(`{
			"type_event": "sdk.EventRunWorkflow",
			"project_key": "TEST",
			"workflow_name": "wf1",
			"workflow_run_num": 3,
			"workflow_run_id": 41,
			"status": "Success",
			"tag": [{"tag": "triggered_by", "value": "bob"}, {"tag": "git.branch", "value": "main"}]
		}`))
		require.NoError(t, err)

		assert.Equal(t, "TEST", run.ProjectKey)
		assert.Equal(t, "wf1", run.WorkflowName)
		assert.Equal(t, int64(3), run.Num)
		assert.Equal(t, int64(41), run.RunID)
		assert.Equal(t, models.StatusSuccess, run.Status)
		require.NotNil(t, run.Branch)
		assert.Equal(t, "main", *run.Branch)
	})

	t.Run("should keep the branch empty without a git.branch tag", func(t *testing.T) {
		run, err := DecodeRun([]byte(`{"type_event":"sdk.EventRunWorkflow","project_key":"P","workflow_name":"W","status":"Building"}`))
		require.NoError(t, err)
		assert.Nil(t, run.Branch)
		assert.Equal(t, models.StatusBuilding, run.Status)
	})

	t.Run("should ignore other event types", func(t *testing.T) {
		_, err := DecodeRun([]byte(`{"type_event":"sdk.EventRunWorkflowNode","project_key":"P","workflow_name":"W"}`))
		assert.ErrorIs(t, err, errIgnoredEvent)
		assert.NotErrorIs(t, err, apierrors.ErrMalformedMessage)
	})

	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: `not-json`},
		{name: "truncated", payload: `{"type_event":"sdk.EventRunWorkflow"`},
		{name: "missing project", payload: `{"type_event":"sdk.EventRunWorkflow","workflow_name":"W"}`},
		{name: "missing workflow", payload: `{"type_event":"sdk.EventRunWorkflow","project_key":"P"}`},
		{name: "negative run number", payload: `{"type_event":"sdk.EventRunWorkflow","project_key":"P","workflow_name":"W","workflow_run_num":-1}`},
	}
	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			_, err := DecodeRun([]byte(tt.payload))
			assert.ErrorIs(t, err, apierrors.ErrMalformedMessage)
		})
	}
}
