// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/Kartik-0-8/buildathon/internal/domain/ranking"
)

// CandidateDependencies defines the interface for candidate matching.
type CandidateDependencies interface {
	Candidates(ctx context.Context, professionalID string, f ranking.Filters, limit int) ([]Match, error)
}

// CandidatesHandler handles candidate match requests.
type CandidatesHandler struct {
	deps     CandidateDependencies
	maxLimit int
}

// NewCandidatesHandler creates a new candidates handler.
func NewCandidatesHandler(deps CandidateDependencies, maxLimit int) *CandidatesHandler {
	return &CandidatesHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetCandidates handles GET /candidates/{professional_id}
// requests with optional limit, skill, interest, min_xp and min_level
// parameters.
func (h *CandidatesHandler) HandleGetCandidates(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_candidates"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := pathParam(r, "/candidates/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	f, limit, err := parseMatchQuery(r.URL.Query(), h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	matches, err := h.deps.Candidates(r.Context(), id, f, limit)
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
