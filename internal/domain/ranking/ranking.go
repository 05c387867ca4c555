// Package ranking sorts and filters scored match results.
//
// This is deliberately simple list processing: the scorers in
// domain/matching produce the numbers, this package orders them. The
// sort is stable so equal scores keep the candidate pool's input
// order; no further tie-break field exists upstream.
package ranking

import (
	"sort"
	"strings"

	"github.com/Kartik-0-8/buildathon/internal/domain/matching"
	"github.com/Kartik-0-8/buildathon/internal/domain/types"
)

// Filters narrows a ranked result list. Zero values mean "no filter".
type Filters struct {
	// Skill keeps candidates whose skill list contains this substring.
	Skill string
	// Interest keeps candidates whose interest list contains this substring.
	Interest string
	// MinXP keeps candidates with at least this much XP.
	MinXP int
	// MinLevel keeps candidates at or above this level.
	MinLevel int
}

// Rank sorts matches by score descending (stable), applies the
// filters, truncates to limit and assigns 1-based ranks. A limit below
// one means "no truncation". The input slice is not modified.
func Rank(matches []types.Match, f Filters, limit int) []types.Match {
	out := make([]types.Match, len(matches))
	copy(out, matches)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	out = f.apply(out)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// apply runs every active filter over the list in place.
func (f Filters) apply(matches []types.Match) []types.Match {
	if f.Skill == "" && f.Interest == "" && f.MinXP <= 0 && f.MinLevel <= 0 {
		return matches
	}

	kept := matches[:0]
	for _, m := range matches {
		if f.Skill != "" && !containsSubstring(m.Candidate.Skills, f.Skill) {
			continue
		}
		if f.Interest != "" && !containsSubstring(m.Candidate.Interests, f.Interest) {
			continue
		}
		if f.MinXP > 0 && m.Candidate.XP < f.MinXP {
			continue
		}
		if f.MinLevel > 0 && m.Candidate.Level < f.MinLevel {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

// containsSubstring reports whether any list entry contains term under
// the shared normalized comparison.
func containsSubstring(list []string, term string) bool {
	needle := matching.Normalize(term)
	if needle == "" {
		return true
	}
	for _, s := range list {
		if strings.Contains(matching.Normalize(s), needle) {
			return true
		}
	}
	return false
}
