// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/Kartik-0-8/buildathon/internal/domain/ranking"
)

// TeammateDependencies defines the interface for teammate matching.
type TeammateDependencies interface {
	Teammates(ctx context.Context, studentID string, f ranking.Filters, limit int) ([]Match, error)
}

// TeammatesHandler handles teammate match requests.
type TeammatesHandler struct {
	deps     TeammateDependencies
	maxLimit int
}

// NewTeammatesHandler creates a new teammates handler.
func NewTeammatesHandler(deps TeammateDependencies, maxLimit int) *TeammatesHandler {
	return &TeammatesHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetTeammates handles GET /teammates/{student_id} requests with
// optional limit, skill, interest, min_xp and min_level parameters.
func (h *TeammatesHandler) HandleGetTeammates(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_teammates"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := pathParam(r, "/teammates/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	f, limit, err := parseMatchQuery(r.URL.Query(), h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	matches, err := h.deps.Teammates(r.Context(), id, f, limit)
	if err != nil {
		switch {
		case isNotFound(err):
			writeError(w, http.StatusNotFound, "not_found", err)
		case isRoleMismatch(err):
			writeError(w, http.StatusBadRequest, "role_mismatch", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// isRoleMismatch translates upstream role errors to 400 without
// coupling the handler layer to the service package.
func isRoleMismatch(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "is not a")
}
