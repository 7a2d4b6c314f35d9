// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/mergington/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ActivitiesDependencies
	SignupDependencies
	ParticipantsDependencies
}

// Catalog mirrors the read shape returned by GET /activities.
type Catalog = model.Catalog

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	activitiesHandler   *ActivitiesHandler
	signupHandler       *SignupHandler
	participantsHandler *ParticipantsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(statsProvider),
		activitiesHandler:   NewActivitiesHandler(deps),
		signupHandler:       NewSignupHandler(deps),
		participantsHandler: NewParticipantsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /activities", MetricsMiddleware(s.activitiesHandler.HandleListActivities, "activities"))
	mux.HandleFunc("POST /activities/{name}/signup", MetricsMiddleware(s.signupHandler.HandleSignup, "signup"))
	mux.HandleFunc("DELETE /activities/{name}/participants/{email}", MetricsMiddleware(s.participantsHandler.HandleRemoveParticipant, "remove_participant"))
}

// messageResponse is the success body of mutating endpoints.
type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	if detail == "" {
		detail = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Detail: detail})
}
