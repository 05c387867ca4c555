// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	updatequeue "github.com/Kartik-0-8/buildathon/internal/adapters/mq/queue"
	workerpool "github.com/Kartik-0-8/buildathon/internal/adapters/mq/worker"
	repository "github.com/Kartik-0-8/buildathon/internal/adapters/repository"
	"github.com/Kartik-0-8/buildathon/internal/domain/dedupe"
	"github.com/Kartik-0-8/buildathon/internal/domain/matching"
	"github.com/Kartik-0-8/buildathon/internal/domain/model"
	"github.com/Kartik-0-8/buildathon/internal/domain/ranking"
	"github.com/Kartik-0-8/buildathon/internal/domain/types"
	"github.com/Kartik-0-8/buildathon/pkg/logger"
	"github.com/Kartik-0-8/buildathon/pkg/metrics"
)

// Service wires the profile store, the ingestion pipeline and the
// matcher into one unit behind the HTTP API.
type Service struct {
	mu sync.RWMutex

	// Core components
	store       repository.Store
	deduper     dedupe.Deduper
	updateQueue updatequeue.Queue
	matcher     *matching.Matcher
	workerPool  *workerpool.Pool

	// Configuration
	workerCount   int
	queueSize     int
	dedupeSize    int
	shardCount    int
	peerWeights   *matching.PeerWeights
	hiringWeights *matching.HiringWeights

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of ingestion workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the profile update queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithShardCount sets the number of profile store shards.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithPeerWeights overrides the teammate scoring weights.
func WithPeerWeights(w matching.PeerWeights) Option {
	return func(s *Service) {
		s.peerWeights = &w
	}
}

// WithHiringWeights overrides the candidate scoring weights.
func WithHiringWeights(w matching.HiringWeights) Option {
	return func(s *Service) {
		s.hiringWeights = &w
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		queueSize:   100000,
		dedupeSize:  50000,
		shardCount:  16,
		stopCh:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting matchmaking service...")

	s.store = repository.NewShardedStore(ctx,
		repository.WithShardCount(s.shardCount),
	)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.updateQueue = updatequeue.NewInMemoryQueue(
		updatequeue.WithCapacity(s.queueSize),
	)

	var matcherOpts []matching.Option
	if s.peerWeights != nil {
		matcherOpts = append(matcherOpts, matching.WithPeerWeights(*s.peerWeights))
	}
	if s.hiringWeights != nil {
		matcherOpts = append(matcherOpts, matching.WithHiringWeights(*s.hiringWeights))
	}
	s.matcher = matching.NewMatcher(matcherOpts...)

	s.workerPool = workerpool.NewPool(s.workerCount, s.updateQueue, s.store)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "matchmaking service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("shards", s.shardCount),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping matchmaking service...")

	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	if q, ok := s.updateQueue.(*updatequeue.InMemoryQueue); ok {
		_ = q.Close()
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "matchmaking service stopped")
}

// SeenAndRecord atomically checks if an update id was seen and records
// it if not. Returns true if the update was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordProfileDuplicate()
	}
	return seen
}

// Unrecord removes an update id from the seen list so a rejected
// submission can be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// EnqueueProfile submits a profile update for asynchronous ingestion.
// Returns false when the queue is full or closed.
func (s *Service) EnqueueProfile(ctx context.Context, u model.ProfileUpdate) bool {
	if u.TS.IsZero() {
		u.TS = time.Now()
	}

	s.logger.Debug(ctx, "enqueueing profile update",
		logger.String("updateID", u.UpdateID),
		logger.String("profileID", u.Profile.ID),
		logger.String("role", string(u.Profile.Role)),
	)

	ok := s.updateQueue.Enqueue(ctx, u)
	if ok {
		metrics.UpdateQueueSize(s.updateQueue.Len(ctx))
	}
	return ok
}

// GetProfile returns the stored profile for id.
func (s *Service) GetProfile(ctx context.Context, id string) (model.Profile, error) {
	return s.store.Get(ctx, id)
}

// Teammates ranks every other student against the student with the
// given id and returns the filtered top matches.
func (s *Service) Teammates(ctx context.Context, studentID string, f ranking.Filters, limit int) ([]types.Match, error) {
	start := time.Now()

	p, err := s.store.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if p.Role != model.RoleStudent || p.Student == nil {
		return nil, ErrNotStudent
	}
	current := *p.Student

	pool, err := s.store.Students(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]types.Match, 0, len(pool))
	for _, candidate := range pool {
		if candidate.ID == current.ID {
			continue
		}
		matches = append(matches, types.Match{
			Candidate: candidate,
			Score:     s.matcher.PeerScore(current, candidate),
		})
	}

	ranked := ranking.Rank(matches, f, limit)

	metrics.RecordMatchRequest(metrics.MatchKindPeer)
	metrics.RecordMatchPoolSize(metrics.MatchKindPeer, len(matches))
	metrics.RecordMatchLatency(metrics.MatchKindPeer, float64(time.Since(start).Microseconds())/1000.0)

	return ranked, nil
}

// Candidates ranks every student against the hiring requirement of the
// professional with the given id. A professional without an active
// requirement gets an empty list.
func (s *Service) Candidates(ctx context.Context, professionalID string, f ranking.Filters, limit int) ([]types.Match, error) {
	start := time.Now()

	p, err := s.store.Get(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if p.Role != model.RoleProfessional || p.Professional == nil {
		return nil, ErrNotProfessional
	}
	req := p.Professional.Hiring
	if req == nil {
		return []types.Match{}, nil
	}

	pool, err := s.store.Students(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]types.Match, 0, len(pool))
	for _, candidate := range pool {
		matches = append(matches, types.Match{
			Candidate: candidate,
			Score:     s.matcher.HiringScore(req, candidate),
		})
	}

	ranked := ranking.Rank(matches, f, limit)

	metrics.RecordMatchRequest(metrics.MatchKindHiring)
	metrics.RecordMatchPoolSize(metrics.MatchKindHiring, len(matches))
	metrics.RecordMatchLatency(metrics.MatchKindHiring, float64(time.Since(start).Microseconds())/1000.0)

	return ranked, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"shardCount":  s.shardCount,
	}

	if s.started {
		queueLen := s.updateQueue.Len(ctx)
		students, organizers, professionals := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["students"] = students
		stats["organizers"] = organizers
		stats["professionals"] = professionals
		stats["totalProfiles"] = students + organizers + professionals

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateWorkerCount(s.workerCount)
		metrics.UpdateProfileCount(string(model.RoleStudent), students)
		metrics.UpdateProfileCount(string(model.RoleOrganizer), organizers)
		metrics.UpdateProfileCount(string(model.RoleProfessional), professionals)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
