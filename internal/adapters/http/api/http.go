// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Kartik-0-8/buildathon/internal/domain/dedupe"
	"github.com/Kartik-0-8/buildathon/internal/domain/model"
	"github.com/Kartik-0-8/buildathon/internal/domain/ranking"
	"github.com/Kartik-0-8/buildathon/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// EnqueueProfile pushes a profile update for async ingestion.
	// Returns false on backpressure.
	EnqueueProfile(ctx context.Context, u model.ProfileUpdate) bool

	// GetProfile returns the stored profile for id.
	GetProfile(ctx context.Context, id string) (model.Profile, error)

	// Teammates ranks other students against the given student.
	Teammates(ctx context.Context, studentID string, f ranking.Filters, limit int) ([]Match, error)

	// Candidates ranks students against the given professional's
	// hiring requirement.
	Candidates(ctx context.Context, professionalID string, f ranking.Filters, limit int) ([]Match, error)
}

// Match mirrors the read shape returned by match queries.
type Match = types.Match

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	profilesHandler   *ProfilesHandler
	teammatesHandler  *TeammatesHandler
	candidatesHandler *CandidatesHandler
}

// NewServer creates a new API server with all handlers. maxLimit caps
// the limit query parameter on match endpoints.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		profilesHandler:   NewProfilesHandler(deps),
		teammatesHandler:  NewTeammatesHandler(deps, maxLimit),
		candidatesHandler: NewCandidatesHandler(deps, maxLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/profiles", MetricsMiddleware(s.profilesHandler.HandlePostProfile, "profiles"))
	mux.HandleFunc("/profiles/", MetricsMiddleware(s.profilesHandler.HandleGetProfile, "profiles"))
	mux.HandleFunc("/teammates/", MetricsMiddleware(s.teammatesHandler.HandleGetTeammates, "teammates"))
	mux.HandleFunc("/candidates/", MetricsMiddleware(s.candidatesHandler.HandleGetCandidates, "candidates"))
}

// updateRequest mirrors the wire schema for POST /profiles.
type updateRequest struct {
	UpdateID string        `json:"update_id"`
	Profile  model.Profile `json:"profile"`
	TS       string        `json:"ts"`
}

func (u updateRequest) validate() error {
	switch {
	case strings.TrimSpace(u.UpdateID) == "":
		return errors.New("missing update_id")
	case strings.TrimSpace(u.TS) == "":
		return errors.New("missing ts")
	}
	if _, err := time.Parse(time.RFC3339, u.TS); err != nil {
		return errors.New("invalid ts; must be RFC3339")
	}
	return u.Profile.Validate()
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404 without
// coupling the handler layer to a specific store implementation.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
