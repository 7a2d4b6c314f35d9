// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/okian/mergington/pkg/logger"
)

// SignupDependencies defines the interface for enrolling students.
type SignupDependencies interface {
	Signup(ctx context.Context, activity, email string) error
}

// SignupHandler handles signup requests.
type SignupHandler struct {
	deps SignupDependencies
}

// NewSignupHandler creates a new signup handler.
func NewSignupHandler(deps SignupDependencies) *SignupHandler {
	return &SignupHandler{deps: deps}
}

// HandleSignup handles POST /activities/{name}/signup?email=... requests.
// Both the path segment and the query value arrive URL-decoded.
func (h *SignupHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	const op = "api.signup"
	ctx := r.Context()

	name := r.PathValue("name")
	query := r.URL.Query()
	if !query.Has("email") {
		LoggerFrom(ctx).Debug(ctx, "rejecting signup", logger.Error(WrapKind(op, ErrBadRequest, errMissingEmail)))
		writeError(w, http.StatusUnprocessableEntity, detailMissingEmail)
		return
	}
	email := query.Get("email")

	if err := h.deps.Signup(ctx, name, email); err != nil {
		writeDomainError(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Signed up %s for %s", email, name)})
}
