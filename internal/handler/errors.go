package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// writeError maps a service error to its HTTP status and JSON body.
//   - *domain.ValidationError → 422 with the reason as code
//   - *domain.BudgetExceededError → 409 with attempted and remaining amounts
//   - domain.ErrNotFound (incl. ErrOutOfRange) → 404
//   - domain.ErrStorageUnavailable → 503
//
// Anything else is logged and reported as 500 without details.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *domain.ValidationError
		be *domain.BudgetExceededError
	)
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: errorDetail{
			Code: string(ve.Reason), Message: ve.Message, Field: ve.Field,
		}})
	case errors.As(err, &be):
		writeJSON(w, http.StatusConflict, errorResponse{Error: errorDetail{
			Code:      "budget_exceeded",
			Message:   "the trip costs more than the remaining budget",
			Attempted: &be.Attempted,
			Remaining: &be.Remaining,
		}})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody("no booked trip at that position"))
	case errors.Is(err, domain.ErrStorageUnavailable):
		slog.ErrorContext(r.Context(), "trip storage unavailable", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: errorDetail{
			Code: "storage_unavailable", Message: "booked trips could not be saved or read; try again",
		}})
	default:
		slog.ErrorContext(r.Context(), "unhandled error", "error", err, "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: errorDetail{
			Code: "internal", Message: "internal server error",
		}})
	}
}

// notFoundBody returns an ErrorResponse for a missing resource.
func notFoundBody(message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: "not_found", Message: message}}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. malformed body or query parameter).
func requestBody(message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: "validation_error", Message: message}}
}
