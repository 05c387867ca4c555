// Package matching computes compatibility scores between profiles.
//
// Both scorers are pure and deterministic: no clock, no randomness, no
// mutation of inputs. Every score is an integer in [0,100] regardless
// of input degeneracy; missing optional fields degrade to documented
// defaults instead of errors.
package matching

import (
	"math"
	"strings"

	"github.com/Kartik-0-8/buildathon/internal/domain/model"
)

// Canonical peer weights. The four-factor split keeps rating in the
// formula; the weights sum to maxScore.
const (
	defaultPeerSkillWeight    = 45.0
	defaultPeerInterestWeight = 25.0
	defaultPeerLevelWeight    = 15.0
	defaultPeerRatingWeight   = 15.0
)

// Canonical hiring weights.
const (
	defaultHiringSkillWeight      = 65.0
	defaultHiringDomainWeight     = 20.0
	defaultHiringExperienceWeight = 15.0
)

// Decay constants: level bonus loses levelPenalty per level apart,
// rating bonus decays linearly to zero at ratingDecaySpan difference,
// experience bonus loses experiencePenalty per level short.
const (
	levelPenalty      = 5.0
	ratingDecaySpan   = 500.0
	experiencePenalty = 3.0
)

const maxScore = 100

// PeerWeights holds the sub-score weights for teammate matching.
type PeerWeights struct {
	Skills    float64
	Interests float64
	Level     float64
	Rating    float64
}

// HiringWeights holds the sub-score weights for candidate matching.
type HiringWeights struct {
	Skills     float64
	Domain     float64
	Experience float64
}

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithPeerWeights overrides the peer weighting. Non-positive fields
// keep their defaults.
func WithPeerWeights(w PeerWeights) Option {
	return func(m *Matcher) {
		if w.Skills > 0 {
			m.peer.Skills = w.Skills
		}
		if w.Interests > 0 {
			m.peer.Interests = w.Interests
		}
		if w.Level > 0 {
			m.peer.Level = w.Level
		}
		if w.Rating > 0 {
			m.peer.Rating = w.Rating
		}
	}
}

// WithHiringWeights overrides the hiring weighting. Non-positive
// fields keep their defaults.
func WithHiringWeights(w HiringWeights) Option {
	return func(m *Matcher) {
		if w.Skills > 0 {
			m.hiring.Skills = w.Skills
		}
		if w.Domain > 0 {
			m.hiring.Domain = w.Domain
		}
		if w.Experience > 0 {
			m.hiring.Experience = w.Experience
		}
	}
}

// Matcher computes match scores under a fixed weighting. The zero-cost
// default weighting is the canonical one; construction exists so the
// weights can come from configuration.
type Matcher struct {
	peer   PeerWeights
	hiring HiringWeights
}

// NewMatcher creates a Matcher with the canonical weights, overridable
// through options.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		peer: PeerWeights{
			Skills:    defaultPeerSkillWeight,
			Interests: defaultPeerInterestWeight,
			Level:     defaultPeerLevelWeight,
			Rating:    defaultPeerRatingWeight,
		},
		hiring: HiringWeights{
			Skills:     defaultHiringSkillWeight,
			Domain:     defaultHiringDomainWeight,
			Experience: defaultHiringExperienceWeight,
		},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// PeerScore estimates how well candidate complements current as a
// hackathon teammate. The overlap fractions are normalized by the
// current profile's own counts, so the score is intentionally
// asymmetric: it answers "what fraction of MY skills does the
// candidate share", not a mutual Jaccard index.
func (m *Matcher) PeerScore(current, candidate model.StudentProfile) int {
	score := overlapFraction(current.Skills, candidate.Skills) * m.peer.Skills
	score += overlapFraction(current.Interests, candidate.Interests) * m.peer.Interests

	levelDiff := math.Abs(float64(levelOrDefault(current.Level)) - float64(levelOrDefault(candidate.Level)))
	score += math.Max(0, m.peer.Level-levelDiff*levelPenalty)

	ratingDiff := math.Abs(float64(ratingOrDefault(current.Rating)) - float64(ratingOrDefault(candidate.Rating)))
	score += math.Max(0, m.peer.Rating-m.peer.Rating*(ratingDiff/ratingDecaySpan))

	return clampRound(score)
}

// HiringScore estimates how well candidate fits a posted hiring
// requirement. A nil requirement scores zero for every candidate.
func (m *Matcher) HiringScore(req *model.HiringRequirement, candidate model.StudentProfile) int {
	if req == nil {
		return 0
	}

	var score float64

	// No partial credit for an empty requirement list: absence of
	// requirements must not rank every candidate as a skills match.
	if len(req.RequiredSkills) > 0 {
		matches := 0
		for _, skill := range candidate.Skills {
			if containsFold(req.RequiredSkills, skill) {
				matches++
			}
		}
		score += float64(matches) / float64(len(req.RequiredSkills)) * m.hiring.Skills
	}

	if domain := Normalize(req.Domain); domain != "" {
		for _, interest := range candidate.Interests {
			in := Normalize(interest)
			if in == "" {
				continue
			}
			if strings.Contains(in, domain) || strings.Contains(domain, in) {
				score += m.hiring.Domain
				break
			}
		}
	}

	target := req.ExperienceNeeded
	if target < 1 {
		target = model.DefaultLevel
	}
	level := levelOrDefault(candidate.Level)
	if level >= target {
		score += m.hiring.Experience
	} else {
		score += math.Max(0, m.hiring.Experience-float64(target-level)*experiencePenalty)
	}

	return clampRound(score)
}

// overlapFraction returns the share of base entries that also appear in
// other, comparing case-insensitively. An empty base yields zero; the
// max(1, n) denominator guards the division without changing that.
func overlapFraction(base, other []string) float64 {
	if len(base) == 0 {
		return 0
	}
	overlap := 0
	for _, s := range base {
		if containsFold(other, s) {
			overlap++
		}
	}
	denom := len(base)
	if denom < 1 {
		denom = 1
	}
	return float64(overlap) / float64(denom)
}

// containsFold reports whether list contains s under normalized
// comparison.
func containsFold(list []string, s string) bool {
	target := Normalize(s)
	for _, candidate := range list {
		if Normalize(candidate) == target {
			return true
		}
	}
	return false
}

// Normalize is the single comparison helper shared by the scorers and
// the ranking filters: lowercase plus trim.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// clampRound clamps to [0,100] and rounds half away from zero, the
// rule the tests pin down (77.5 -> 78).
func clampRound(score float64) int {
	score = math.Max(0, math.Min(maxScore, score))
	return int(math.Round(score))
}

func levelOrDefault(level int) int {
	if level < 1 {
		return model.DefaultLevel
	}
	return level
}

func ratingOrDefault(rating int) int {
	if rating <= 0 {
		return model.DefaultRating
	}
	return rating
}
