// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Kartik-0-8/buildathon/internal/domain/ranking"
)

// defaultMatchLimit applies when a match request carries no limit.
const defaultMatchLimit = 10

// pathParam extracts the single path parameter after prefix, or ""
// when the remainder is empty or nested.
func pathParam(r *http.Request, prefix string) string {
	p := strings.TrimPrefix(r.URL.Path, prefix)
	if p == "" || strings.Contains(p, "/") {
		return ""
	}
	return p
}

// parseMatchQuery reads the shared filter and limit parameters of the
// match endpoints: limit, skill, interest, min_xp, min_level.
func parseMatchQuery(q url.Values, maxLimit int) (ranking.Filters, int, error) {
	f := ranking.Filters{
		Skill:    q.Get("skill"),
		Interest: q.Get("interest"),
	}

	limit := defaultMatchLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return f, 0, errors.New("invalid limit")
		}
		if maxLimit > 0 && n > maxLimit {
			return f, 0, errors.New("limit exceeds maximum")
		}
		limit = n
	}

	if raw := q.Get("min_xp"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return f, 0, errors.New("invalid min_xp")
		}
		f.MinXP = n
	}

	if raw := q.Get("min_level"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return f, 0, errors.New("invalid min_level")
		}
		f.MinLevel = n
	}

	return f, limit, nil
}
