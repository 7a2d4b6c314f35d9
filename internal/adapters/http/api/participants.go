// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
)

// ParticipantsDependencies defines the interface for removing students.
type ParticipantsDependencies interface {
	Unregister(ctx context.Context, activity, email string) error
}

// ParticipantsHandler handles participant removal requests.
type ParticipantsHandler struct {
	deps ParticipantsDependencies
}

// NewParticipantsHandler creates a new participants handler.
func NewParticipantsHandler(deps ParticipantsDependencies) *ParticipantsHandler {
	return &ParticipantsHandler{deps: deps}
}

// HandleRemoveParticipant handles DELETE /activities/{name}/participants/{email} requests.
func (h *ParticipantsHandler) HandleRemoveParticipant(w http.ResponseWriter, r *http.Request) {
	const op = "api.remove_participant"
	name := r.PathValue("name")
	email := r.PathValue("email")

	if err := h.deps.Unregister(r.Context(), name, email); err != nil {
		writeDomainError(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Removed %s from %s", email, name)})
}
