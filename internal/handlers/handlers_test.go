package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "badge/internal/errors"
	"badge/internal/models"
	"badge/internal/tests"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type item struct {
	Name string `json:"name"`
}

func TestHandleError(t *testing.T) {
	tests.AssertJSONResponse(t, record(func(w http.ResponseWriter) {
		HandleError(w, zap.NewNop(), apierrors.ErrNoRunAvailable)
	}), http.StatusNotFound, models.Error{Status: 404, Error: []string{"NO_RUN_AVAILABLE"}})

	tests.AssertJSONResponse(t, record(func(w http.ResponseWriter) {
		HandleError(w, zap.NewNop(), apierrors.WrapDatabase(errors.New(`relation "run" does not exist`)))
	}), http.StatusInternalServerError, models.Error{Status: 500, Error: []string{"INTERNAL_SERVER_ERROR"}})

	tests.AssertJSONResponse(t, record(func(w http.ResponseWriter) {
		HandleError(w, zap.NewNop(), errors.New("boom"))
	}), http.StatusInternalServerError, models.Error{Status: 500, Error: []string{"INTERNAL_SERVER_ERROR"}})
}

func TestCreateHandler(t *testing.T) {
	handler := CreateHandler(func(_ context.Context, _ *zap.Logger, body item) (item, error) {
		if body.Name == "" {
			return item{}, apierrors.ErrInvalidParameter
		}
		return item{Name: body.Name + "!"}, nil
	})

	t.Run("should respond with the created value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), models.BodyKey{}, item{Name: "run"}))
		rec := httptest.NewRecorder()

		handler(rec, req)

		tests.AssertJSONResponse(t, rec, http.StatusOK, item{Name: "run!"})
	})

	t.Run("should reject a request without a validated body", func(t *testing.T) {
		rec := httptest.NewRecorder()

		handler(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		tests.AssertJSONResponse(t, rec, http.StatusBadRequest, models.Error{Status: 400, Error: []string{"INVALID_PARAMETER"}})
	})

	t.Run("should map service errors", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), models.BodyKey{}, item{}))
		rec := httptest.NewRecorder()

		handler(rec, req)

		tests.AssertJSONResponse(t, rec, http.StatusBadRequest, models.Error{Status: 400, Error: []string{"INVALID_PARAMETER"}})
	})
}

func TestImageHandler(t *testing.T) {
	handler := ImageHandler(
		func(r *http.Request) string { return r.URL.Query().Get("name") },
		func(_ context.Context, _ *zap.Logger, name string) ([]byte, error) {
			if name == "" {
				return nil, apierrors.ErrNoRunAvailable
			}
			return []byte("<svg>" + name + "</svg>"), nil
		},
	)

	t.Run("should serve the image uncached", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/?name=ok", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Cache-Control"), "no-cache")
		assert.Equal(t, "<svg>ok</svg>", rec.Body.String())
	})

	t.Run("should answer errors as json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		tests.AssertJSONResponse(t, rec, http.StatusNotFound, models.Error{Status: 404, Error: []string{"NO_RUN_AVAILABLE"}})
	})
}

func TestGetLogger(t *testing.T) {
	logger := zap.NewNop().Named("request")
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Equal(t, zap.L(), GetLogger(req))

	req = req.WithContext(context.WithValue(req.Context(), models.LoggerKey{}, logger))
	assert.Same(t, logger, GetLogger(req))
}

func record(write func(http.ResponseWriter)) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	write(rec)
	return rec
}
