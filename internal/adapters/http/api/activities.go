// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// ActivitiesDependencies defines the interface for listing activities.
type ActivitiesDependencies interface {
	Activities(ctx context.Context) (Catalog, error)
}

// ActivitiesHandler handles activity listing requests.
type ActivitiesHandler struct {
	deps ActivitiesDependencies
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps ActivitiesDependencies) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps}
}

// HandleListActivities handles GET /activities requests.
func (h *ActivitiesHandler) HandleListActivities(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_activities"
	catalog, err := h.deps.Activities(r.Context())
	if err != nil {
		writeDomainError(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}
