package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/store/memory"
)

// ============================================================
// Shared helper functions
// ============================================================

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func parseID(r *http.Request, param string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil || id <= 0 {
		return 0, &domain.ErrValidation{Field: param, Message: "must be a positive integer"}
	}
	return id, nil
}

type pageSizeKey struct{}

// pageSizeMiddleware carries the configured default page size down to
// the list handlers.
func pageSizeMiddleware(size int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), pageSizeKey{}, size)))
		})
	}
}

func parsePagination(r *http.Request) (page, pageSize int) {
	page = 1
	pageSize = memory.DefaultPageSize
	if v, ok := r.Context().Value(pageSizeKey{}).(int); ok {
		pageSize = v
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if ps, err := strconv.Atoi(v); err == nil && ps > 0 && ps <= 100 {
			pageSize = ps
		}
	}
	return
}

// listResponse filters by the ?q= search term, paginates and wraps the
// result in the standard list envelope. Total reflects the filtered
// count, and the served page is the clamped one.
func listResponse[T any](r *http.Request, items []T, fields func(T) []string) domain.ListResponse[T] {
	page, pageSize := parsePagination(r)
	filtered := memory.Filter(items, r.URL.Query().Get("q"), fields)
	window, page := memory.Paginate(filtered, page, pageSize)
	return domain.ListResponse[T]{
		Items:    window,
		Total:    len(filtered),
		Page:     page,
		PageSize: pageSize,
		HasMore:  page*pageSize < len(filtered),
	}
}

// handleServiceError maps domain errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var notFound *domain.ErrNotFound
	var validation *domain.ErrValidation
	var invalidTransition *domain.ErrInvalidTransition
	var conflict *domain.ErrConflict
	var capacityFull *domain.ErrCapacityFull
	var windowClosed *domain.ErrReturnWindowClosed
	var unauthorized *domain.ErrUnauthorized
	var forbidden *domain.ErrForbidden
	var circuitOpen *domain.ErrCircuitOpen

	switch {
	case errors.As(err, &notFound):
		logger.Debug("not found", zap.String("error", err.Error()))
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &invalidTransition):
		logger.Warn("invalid transition",
			zap.String("entity", invalidTransition.Entity),
			zap.String("from", invalidTransition.From),
			zap.String("to", invalidTransition.To),
		)
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &conflict):
		logger.Debug("conflict", zap.String("error", err.Error()))
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &capacityFull):
		logger.Debug("workshop full", zap.Int("workshop_id", capacityFull.WorkshopID))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &windowClosed):
		logger.Debug("return window closed", zap.String("order", windowClosed.OrderNumber))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &unauthorized):
		logger.Warn("unauthorized", zap.String("error", err.Error()))
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &forbidden):
		logger.Warn("forbidden access", zap.String("error", err.Error()))
		writeError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &circuitOpen):
		logger.Error("circuit breaker open", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
