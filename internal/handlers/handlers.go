package handlers

import (
	"context"
	"net/http"

	apierrors "badge/internal/errors"
	"badge/internal/helpers"
	"badge/internal/models"

	"go.uber.org/zap"
)

type CreateTargetFunc[In any, Out any] func(context.Context, *zap.Logger, In) (Out, error)

type GetOneTargetFunc[Out any] func(context.Context, *zap.Logger) (Out, error)

// ImageTargetFunc renders an image for the parameters extracted from the request.
type ImageTargetFunc[P any] func(context.Context, *zap.Logger, P) ([]byte, error)

// GetLogger returns the request scoped logger set by the Logger middleware.
func GetLogger(r *http.Request) *zap.Logger {
	if logger, ok := r.Context().Value(models.LoggerKey{}).(*zap.Logger); ok {
		return logger
	}
	return zap.L()
}

// HandleError writes the public error code and keeps the cause in the logs.
func HandleError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := apierrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))
	} else {
		logger.Debug("Request rejected", zap.Int("status", status), zap.Error(err))
	}
	helpers.RespondWithError(w, status, []string{apierrors.PublicCode(err)})
}

func CreateHandler[In any, Out any](create CreateTargetFunc[In, Out]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r)

		body, ok := r.Context().Value(models.BodyKey{}).(In)
		if !ok {
			helpers.RespondWithError(w, http.StatusBadRequest, []string{apierrors.CodeInvalidParameter})
			return
		}

		resp, err := create(r.Context(), logger, body)
		if err != nil {
			HandleError(w, logger, err)
			return
		}

		helpers.RespondWithJSON(w, http.StatusOK, resp)
	}
}

func GetOneHandler[Out any](get GetOneTargetFunc[Out]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r)

		resp, err := get(r.Context(), logger)
		if err != nil {
			HandleError(w, logger, err)
			return
		}

		helpers.RespondWithJSON(w, http.StatusOK, resp)
	}
}

func ImageHandler[P any](params func(*http.Request) P, render ImageTargetFunc[P]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r)

		image, err := render(r.Context(), logger, params(r))
		if err != nil {
			HandleError(w, logger, err)
			return
		}

		helpers.RespondWithSVG(w, image)
	}
}
