package api

import (
	"errors"
	"net/http"

	"github.com/okian/mergington/internal/adapters/repository"
	service "github.com/okian/mergington/internal/app"
	"github.com/okian/mergington/pkg/logger"
)

// Client-facing details. These strings are part of the public contract.
const (
	detailActivityNotFound    = "Activity not found"
	detailParticipantNotFound = "Participant not found in this activity"
	detailAlreadySignedUp     = "Student already signed up for this activity"
	detailActivityFull        = "Activity is full"
	detailMissingEmail        = "Missing email query parameter"
)

// statusFor translates domain errors into an HTTP status and detail.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		return http.StatusNotFound, detailActivityNotFound
	case errors.Is(err, repository.ErrParticipantNotFound):
		return http.StatusNotFound, detailParticipantNotFound
	case errors.Is(err, repository.ErrAlreadySignedUp):
		return http.StatusBadRequest, detailAlreadySignedUp
	case errors.Is(err, repository.ErrActivityFull):
		return http.StatusBadRequest, detailActivityFull
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, ""
	default:
		return http.StatusInternalServerError, ""
	}
}

// writeDomainError logs err against the request and writes the mapped response.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := statusFor(err)
	if status >= http.StatusInternalServerError {
		LoggerFrom(r.Context()).Error(r.Context(), "request failed", logger.Error(err))
	}
	writeError(w, status, detail)
}
