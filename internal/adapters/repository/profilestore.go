package repository

import (
	"context"
	"hash/fnv"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/Kartik-0-8/buildathon/internal/domain/model"
	"github.com/Kartik-0-8/buildathon/pkg/metrics"
)

// Sharded, in-memory Store implementation.
//
// Profiles are partitioned across shards by an FNV-1a hash of the
// profile id so ingestion workers on different profiles rarely contend
// on the same lock. Reads take a per-shard RLock and hand out deep
// copies: callers (the scorers in particular) must never observe
// concurrent mutation.

const defaultShardCount = 8

// shard holds one partition of the profile map.
type shard struct {
	mu       sync.RWMutex
	profiles map[string]model.Profile
}

// ShardedStore implements Store over a fixed set of shards.
type ShardedStore struct {
	shards     []*shard
	shardCount int

	// role counters, kept outside the shards for cheap Count reads
	mu            sync.Mutex
	students      int
	organizers    int
	professionals int
}

// Option applies a configuration option to the ShardedStore.
type Option func(*ShardedStore)

// WithShardCount sets the number of shards in the store.
func WithShardCount(count int) Option {
	return func(s *ShardedStore) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// NewShardedStore creates a sharded profile store.
func NewShardedStore(ctx context.Context, opts ...Option) *ShardedStore {
	s := &ShardedStore{
		shardCount: defaultShardCount,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{profiles: make(map[string]model.Profile)}
	}

	metrics.UpdateRepositoryShardCount(s.shardCount)

	return s
}

// shardFor picks the shard owning id.
func (s *ShardedStore) shardFor(id string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return s.shards[int(h.Sum32())%s.shardCount]
}

// Upsert inserts or replaces the profile keyed by its ID.
func (s *ShardedStore) Upsert(ctx context.Context, p model.Profile) (bool, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	if p.ID == "" {
		return false, ErrEmptyID
	}
	if p.Role == "" {
		return false, ErrRoleUnset
	}

	stored := cloneProfile(p)

	sh := s.shardFor(p.ID)
	sh.mu.Lock()
	prev, existed := sh.profiles[p.ID]
	sh.profiles[p.ID] = stored
	records := len(sh.profiles)
	sh.mu.Unlock()

	s.mu.Lock()
	if existed {
		s.adjustCount(prev.Role, -1)
	}
	s.adjustCount(p.Role, 1)
	total := s.students + s.organizers + s.professionals
	s.mu.Unlock()

	metrics.UpdateRepositoryRecordsTotal(total)
	metrics.UpdateRepositoryRecordsPerShard(shardLabel(s, sh), records)

	return !existed, nil
}

// Get returns the profile for id.
func (s *ShardedStore) Get(ctx context.Context, id string) (model.Profile, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	sh := s.shardFor(id)
	sh.mu.RLock()
	p, ok := sh.profiles[id]
	sh.mu.RUnlock()

	if !ok {
		return model.Profile{}, ErrNotFound
	}
	return cloneProfile(p), nil
}

// Students returns a snapshot of every student profile, ordered by id
// ascending so repeated rankings of an unchanged pool break ties the
// same way.
func (s *ShardedStore) Students(ctx context.Context) ([]model.StudentProfile, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	var out []model.StudentProfile
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, p := range sh.profiles {
			if p.Role != model.RoleStudent || p.Student == nil {
				continue
			}
			clone := cloneProfile(p)
			out = append(out, *clone.Student)
		}
		sh.mu.RUnlock()
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Count returns the number of profiles tracked, by role.
func (s *ShardedStore) Count(ctx context.Context) (students, organizers, professionals int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.students, s.organizers, s.professionals
}

// adjustCount must be called with s.mu held.
func (s *ShardedStore) adjustCount(role model.Role, delta int) {
	switch role {
	case model.RoleStudent:
		s.students += delta
	case model.RoleOrganizer:
		s.organizers += delta
	case model.RoleProfessional:
		s.professionals += delta
	}
}

// shardLabel returns a stable metric label for sh.
func shardLabel(s *ShardedStore, sh *shard) string {
	for i, candidate := range s.shards {
		if candidate == sh {
			return strconv.Itoa(i)
		}
	}
	return "unknown"
}

// cloneProfile deep-copies a profile so store internals never alias
// caller slices.
func cloneProfile(p model.Profile) model.Profile {
	out := p
	if p.Student != nil {
		student := *p.Student
		student.Skills = cloneStrings(p.Student.Skills)
		student.Interests = cloneStrings(p.Student.Interests)
		student.Badges = cloneStrings(p.Student.Badges)
		out.Student = &student
	}
	if p.Organizer != nil {
		organizer := *p.Organizer
		organizer.Themes = cloneStrings(p.Organizer.Themes)
		out.Organizer = &organizer
	}
	if p.Professional != nil {
		professional := *p.Professional
		professional.Skills = cloneStrings(p.Professional.Skills)
		professional.DomainExpertise = cloneStrings(p.Professional.DomainExpertise)
		if p.Professional.Hiring != nil {
			hiring := *p.Professional.Hiring
			hiring.RequiredSkills = cloneStrings(p.Professional.Hiring.RequiredSkills)
			professional.Hiring = &hiring
		}
		out.Professional = &professional
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
