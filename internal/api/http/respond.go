package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"foundly-backend/internal/logger"
	"foundly-backend/internal/security"
	"foundly-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps service error kinds onto HTTP status codes with a message
// safe to show the caller.
func writeError(w http.ResponseWriter, err error) {
	var partial *service.PartialFailureError

	switch {
	case errors.Is(err, service.ErrOrganizationNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrNotFound),
		errors.Is(err, sql.ErrNoRows):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, service.ErrInvalidAttributes),
		errors.Is(err, service.ErrDuplicateJoinCode):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotAMember),
		errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrConcurrentModification):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "the organization was modified concurrently, please retry"})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication failed"})
	case errors.Is(err, service.ErrStoreUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service temporarily unavailable"})
	case errors.As(err, &partial):
		logger.Error("Membership write outcome unknown", "org_id", partial.OrganizationID, "side", partial.Side, "error", partial.Err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "the change may not have been saved, please retry"})
	default:
		logger.Error("Unhandled service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
