package handlers

import (
	"errors"
	"net/http"

	apierrors "api/internal/errors"
	h "api/internal/helpers"
	"api/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ServiceFunc is the common shape of service methods taking a validated
// body (or query struct) and returning a JSON response.
type ServiceFunc[B any, R any] func(*zap.Logger, models.UserClaims, uuid.UUIDs, B) (R, error)

// GetFunc is the shape of service methods without a request payload.
type GetFunc[R any] func(*zap.Logger, models.UserClaims, uuid.UUIDs) (R, error)

func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		h.RespondWithError(w, apiErr.Status, apiErr.Codes)
		return
	}
	logger.Error("Unhandled service error", zap.Error(err))
	h.RespondWithError(w, 500, []string{"INTERNAL_SERVER_ERROR"})
}

func invoke[B any, R any](
	w http.ResponseWriter,
	r *http.Request,
	status int,
	fn ServiceFunc[B, R],
) {
	logger := zap.L().With(
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	claims, _ := h.GetUserClaims(r.Context())

	ids, ok := h.ParseUUIDs(w, r)
	if !ok {
		return
	}

	body, _ := r.Context().Value(models.ValidatedBodyKey{}).(B)

	response, err := fn(logger, claims, ids, body)
	if err != nil {
		respondError(w, logger, err)
		return
	}

	h.RespondWithJSON(w, status, response)
}

// CreateHandler adapts a body-taking service method; responds 200 with JSON.
func CreateHandler[B any, R any](fn ServiceFunc[B, R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		invoke(w, r, http.StatusOK, fn)
	}
}

// UpdateHandler adapts a body-taking mutation; responds 200 with JSON.
func UpdateHandler[B any, R any](fn ServiceFunc[B, R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		invoke(w, r, http.StatusOK, fn)
	}
}

// GetOneHandler adapts a payload-less fetch; responds 200 with JSON.
func GetOneHandler[R any](fn GetFunc[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zap.L().With(
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)

		claims, _ := h.GetUserClaims(r.Context())

		ids, ok := h.ParseUUIDs(w, r)
		if !ok {
			return
		}

		response, err := fn(logger, claims, ids)
		if err != nil {
			respondError(w, logger, err)
			return
		}

		h.RespondWithJSON(w, http.StatusOK, response)
	}
}

// GetOneWithQueryHandler adapts a fetch taking validated query parameters.
func GetOneWithQueryHandler[Q any, R any](fn ServiceFunc[Q, R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zap.L().With(
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)

		claims, _ := h.GetUserClaims(r.Context())

		ids, ok := h.ParseUUIDs(w, r)
		if !ok {
			return
		}

		query, _ := r.Context().Value(models.ValidatedQueryKey{}).(Q)

		response, err := fn(logger, claims, ids, query)
		if err != nil {
			respondError(w, logger, err)
			return
		}

		h.RespondWithJSON(w, http.StatusOK, response)
	}
}

// GetListHandler adapts a payload-less listing; responds 200 with a JSON array.
func GetListHandler[R any](fn GetFunc[[]R]) http.HandlerFunc {
	return GetOneHandler(fn)
}

// DeleteHandler adapts a payload-less deletion; responds 204 on success.
func DeleteHandler(fn func(*zap.Logger, models.UserClaims, uuid.UUIDs) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zap.L().With(
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)

		claims, _ := h.GetUserClaims(r.Context())

		ids, ok := h.ParseUUIDs(w, r)
		if !ok {
			return
		}

		if err := fn(logger, claims, ids); err != nil {
			respondError(w, logger, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteWithBodyHandler adapts a deletion carrying a validated body;
// responds 204 on success.
func DeleteWithBodyHandler[B any](fn func(*zap.Logger, models.UserClaims, uuid.UUIDs, B) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zap.L().With(
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)

		claims, _ := h.GetUserClaims(r.Context())

		ids, ok := h.ParseUUIDs(w, r)
		if !ok {
			return
		}

		body, _ := r.Context().Value(models.ValidatedBodyKey{}).(B)

		if err := fn(logger, claims, ids, body); err != nil {
			respondError(w, logger, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
