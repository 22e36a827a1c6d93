package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"badge/internal/badge"
	apierrors "badge/internal/errors"
	"badge/internal/events"
	"badge/internal/executor"
	"badge/internal/executor/executortest"
	"badge/internal/messaging"
	"badge/internal/models"
	"badge/internal/tests"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mainBranchEvent = `{
	"type_event": "sdk.EventRunWorkflow",
	"project_key": "TEST",
	"workflow_name": "wf1",
	"workflow_run_num": 3,
	"status": "Success",
	"tag": [{"tag": "git.branch", "value": "main"}]
}`

func get(handler http.Handler, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// TestBadgeEndToEnd drives an event through the consumer into sqlite and reads it back
// through the badge route.
func TestBadgeEndToEnd(t *testing.T) {
	db := tests.NewSQLiteDB(t, 2)
	pool := executor.NewPool(db, executor.Config{Workers: 2, QueueSize: 8, CommandTimeout: 5 * time.Second})
	pool.Start()
	t.Cleanup(pool.Stop)

	ch := messaging.NewMemoryChannel()
	publisher := messaging.NewMemoryPublisher(ch, "cds.events")
	consumer := events.NewRunConsumer(messaging.NewMemorySubscriber(ch, "cds.events"), pool, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = consumer.Run(ctx) }()

	require.NoError(t, publisher.Publish(message.NewMessage(watermill.NewUUID(), []byte(mainBranchEvent))))
	require.Eventually(t, func() bool { return consumer.Stats().Processed == 1 }, 3*time.Second, 10*time.Millisecond)

	router := BadgeService{Executor: pool, Renderer: badge.NewFlatRenderer()}.Routes()

	assertSuccessBadge := func(t *testing.T, rec *httptest.ResponseRecorder) {
		t.Helper()
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Cache-Control"), "no-cache")
		assert.Contains(t, rec.Body.String(), `fill="#21BA45"`)
		assert.Contains(t, rec.Body.String(), ">Success</text>")
		assert.Contains(t, rec.Body.String(), ">CDS</text>")
	}

	t.Run("explicit branch", func(t *testing.T) {
		assertSuccessBadge(t, get(router, "/TEST/wf1/badge.svg?branch=main", nil))
	})

	t.Run("branch from referer", func(t *testing.T) {
		assertSuccessBadge(t, get(router, "/TEST/wf1/badge.svg", map[string]string{
			"Referer": "https://example/TEST/wf1/tree/main",
		}))
	})

	t.Run("no run without a branch", func(t *testing.T) {
		rec := get(router, "/TEST/wf1/badge.svg", nil)
		tests.AssertJSONResponse(t, rec, http.StatusNotFound, models.Error{Status: 404, Error: []string{"NO_RUN_AVAILABLE"}})
	})

	t.Run("never ingested key", func(t *testing.T) {
		rec := get(router, "/X/Y/badge.svg", nil)
		tests.AssertJSONResponse(t, rec, http.StatusNotFound, models.Error{Status: 404, Error: []string{"NO_RUN_AVAILABLE"}})
	})
}

func TestBadgeBranchPrecedence(t *testing.T) {
	var got models.RunKey
	exec := &executortest.Executor{
		QueryLatestRunFn: func(_ context.Context, key models.RunKey) (models.Run, error) {
			got = key
			return models.Run{Status: models.StatusBuilding}, nil
		},
	}
	router := BadgeService{Executor: exec, Renderer: badge.NewFlatRenderer()}.Routes()

	rec := get(router, "/PRJ/deploy/badge.svg?branch=release", map[string]string{
		"Referer": "https://github.com/ovh/cds/tree/main",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PRJ", got.ProjectKey)
	assert.Equal(t, "deploy", got.WorkflowName)
	require.NotNil(t, got.Branch)
	assert.Equal(t, "release", *got.Branch)
	assert.Contains(t, rec.Body.String(), `fill="#4fa3e3"`)

	rec = get(router, "/PRJ/deploy/badge.svg", map[string]string{
		"Referer": "https://bitbucket.org/team/repo/src/develop/",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Branch)
	assert.Equal(t, "develop", *got.Branch)

	rec = get(router, "/PRJ/deploy/badge.svg?branch=", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, got.Branch)
}

func TestBadgeUnknownStatusIsGrey(t *testing.T) {
	exec := &executortest.Executor{
		QueryLatestRunFn: func(context.Context, models.RunKey) (models.Run, error) {
			return models.Run{Status: models.ParseStatus("Exploded")}, nil
		},
	}
	router := BadgeService{Executor: exec, Renderer: badge.NewFlatRenderer()}.Routes()

	rec := get(router, "/PRJ/wf/badge.svg", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `fill="grey"`)
	assert.Contains(t, rec.Body.String(), ">Unknown</text>")
}

func TestBadgeStoreFailure(t *testing.T) {
	exec := &executortest.Executor{
		QueryLatestRunFn: func(context.Context, models.RunKey) (models.Run, error) {
			return models.Run{}, apierrors.ErrCommandTimeout
		},
	}
	router := BadgeService{Executor: exec, Renderer: badge.NewFlatRenderer()}.Routes()

	rec := get(router, "/PRJ/wf/badge.svg?branch=main", nil)

	tests.AssertJSONResponse(t, rec, http.StatusInternalServerError, models.Error{Status: 500, Error: []string{"INTERNAL_SERVER_ERROR"}})
}
