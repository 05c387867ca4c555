package seedprofiles

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/Kartik-0-8/buildathon/internal/domain/model"
	"github.com/Kartik-0-8/buildathon/pkg/logger"
)

// Pools the generator draws from. Deliberately overlapping so generated
// profiles produce non-trivial match scores.
var (
	skillPool = []string{
		"go", "rust", "python", "typescript", "react", "node",
		"kubernetes", "terraform", "postgres", "redis", "figma",
		"pytorch", "tensorflow", "sql", "graphql", "swift",
	}
	interestPool = []string{
		"ai", "machine learning", "web3", "fintech", "healthtech",
		"infra", "devtools", "gaming", "design", "security",
		"climate", "education",
	}
	domainPool = []string{
		"ai", "fintech", "infra", "gaming", "security", "healthtech",
	}
	hiringTypes = []string{"internship", "part-time", "full-time"}
	durations   = []string{"3 months", "6 months", "12 months"}
)

// Student attribute ranges.
const (
	maxXP         = 2000
	maxLevel      = 10
	ratingBase    = 600
	ratingSpread  = 1200
	maxSkills     = 5
	maxInterests  = 4
	maxExperience = 8
)

// randomInt returns a uniform random int in [0, n) using crypto/rand.
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// randomSubset picks between 1 and max entries from pool.
func randomSubset(pool []string, max int) []string {
	count := 1 + randomInt(max)
	if count > len(pool) {
		count = len(pool)
	}
	picked := make([]string, 0, count)
	used := make(map[int]bool, count)
	for len(picked) < count {
		idx := randomInt(len(pool))
		if used[idx] {
			continue
		}
		used[idx] = true
		picked = append(picked, pool[idx])
	}
	return picked
}

// generateProfiles creates student and professional profile updates with
// unique ids, fanning the work out over the configured workers.
func generateProfiles(ctx context.Context, config *Config, stats *Stats) ([]UpdateRequest, error) {
	total := config.NumStudents + config.NumProfessionals
	logger.Get().Info(ctx, "generating profiles",
		logger.Int("students", config.NumStudents),
		logger.Int("professionals", config.NumProfessionals))

	updates := make([]UpdateRequest, total)

	type result struct {
		index  int
		update UpdateRequest
		err    error
	}
	resultChan := make(chan result, total)

	workerCount := minInt(config.Workers, total)
	perWorker := total / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * perWorker
		end := start + perWorker
		if worker == workerCount-1 {
			end = total
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- result{index: i, err: ctx.Err()}
					return
				default:
					var u UpdateRequest
					if i < config.NumStudents {
						u = generateStudentUpdate()
					} else {
						u = generateProfessionalUpdate()
					}
					resultChan <- result{index: i, update: u}
				}
			}
		}(start, end)
	}

	for i := 0; i < total; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during profile generation: %w", ctx.Err())
		case r := <-resultChan:
			if r.err != nil {
				return nil, fmt.Errorf("failed to generate profile %d: %w", r.index, r.err)
			}
			updates[r.index] = r.update
		}
	}

	stats.ProfilesGenerated = total
	logger.Get().Info(ctx, "generated profiles successfully", logger.Int("count", total))

	return updates, nil
}

func generateStudentUpdate() UpdateRequest {
	id := uuid.New().String()
	return UpdateRequest{
		UpdateID: uuid.New().String(),
		TS:       time.Now().UTC().Format(time.RFC3339),
		Profile: model.Profile{
			ID:   id,
			Name: "student-" + id[:8],
			Role: model.RoleStudent,
			Student: &model.StudentProfile{
				Skills:    randomSubset(skillPool, maxSkills),
				Interests: randomSubset(interestPool, maxInterests),
				XP:        randomInt(maxXP),
				Level:     1 + randomInt(maxLevel),
				Rating:    ratingBase + randomInt(ratingSpread),
			},
		},
	}
}

func generateProfessionalUpdate() UpdateRequest {
	id := uuid.New().String()
	return UpdateRequest{
		UpdateID: uuid.New().String(),
		TS:       time.Now().UTC().Format(time.RFC3339),
		Profile: model.Profile{
			ID:   id,
			Name: "professional-" + id[:8],
			Role: model.RoleProfessional,
			Professional: &model.ProfessionalProfile{
				Company:  "company-" + id[:8],
				Position: "recruiter",
				Hiring: &model.HiringRequirement{
					RequiredSkills:   randomSubset(skillPool, maxSkills),
					Domain:           domainPool[randomInt(len(domainPool))],
					ExperienceNeeded: 1 + randomInt(maxExperience),
					Duration:         durations[randomInt(len(durations))],
					HiringType:       hiringTypes[randomInt(len(hiringTypes))],
				},
			},
		},
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
