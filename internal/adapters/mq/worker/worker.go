// Package worker defines worker contracts for asynchronous profile ingestion.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/Kartik-0-8/buildathon/internal/domain/model"
	"github.com/Kartik-0-8/buildathon/pkg/logger"
	"github.com/Kartik-0-8/buildathon/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Update abstracts what workers read off the queue.
type Update = model.ProfileUpdate

// Upserter applies a validated profile to the store.
type Upserter interface {
	Upsert(ctx context.Context, p model.Profile) (bool, error)
}

// Queue defines how workers receive profile updates.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Update
}

// Worker drains profile updates into the store.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// IngestWorker implements Worker for applying profile updates.
type IngestWorker struct {
	queue    Queue
	upserter Upserter
	name     string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the IngestWorker.
type Option func(*IngestWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *IngestWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *IngestWorker) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewIngestWorker creates a new worker with configuration options.
func NewIngestWorker(q Queue, upserter Upserter, opts ...Option) *IngestWorker {
	w := &IngestWorker{
		queue:    q,
		upserter: upserter,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *IngestWorker) Run(ctx context.Context) {
	defer close(w.done)

	updateChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case u, ok := <-updateChan:
			if !ok {
				return
			}
			if err := w.processUpdate(ctx, u); err != nil {
				w.logger.Error(ctx, "error processing profile update", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *IngestWorker) Shutdown(ctx context.Context) error {
	w.signalShutdown()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// signalShutdown closes the shutdown channel exactly once.
func (w *IngestWorker) signalShutdown() {
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}
}

// processUpdate validates, normalizes and stores a single update.
func (w *IngestWorker) processUpdate(ctx context.Context, u Update) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	p := u.Profile
	if err := p.Validate(); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "validation_error")
		metrics.RecordErrorByType("validation_error", "medium")
		w.logger.Warn(ctx, "rejecting invalid profile update",
			logger.String("updateID", u.UpdateID),
			logger.String("profileID", p.ID),
			logger.Error(err),
		)
		return fmt.Errorf("invalid profile in update %s: %w", u.UpdateID, err)
	}
	p.Normalize()

	created, err := w.upserter.Upsert(ctx, p)
	if err != nil {
		metrics.RecordStoreError()
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "store_error")
		metrics.RecordErrorByType("store_error", "high")
		w.logger.Error(ctx, "profile upsert failed",
			logger.String("updateID", u.UpdateID),
			logger.String("profileID", p.ID),
			logger.Error(err),
		)
		return fmt.Errorf("profile upsert failed: %w", err)
	}

	metrics.RecordProfileApplied()
	if created {
		w.logger.Debug(ctx, "profile created",
			logger.String("profileID", p.ID),
			logger.String("role", string(p.Role)),
		)
	}

	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers  []*IngestWorker
	queue    Queue
	upserter Upserter

	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, q Queue, upserter Upserter) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*IngestWorker, workerCount),
		queue:    q,
		upserter: upserter,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewIngestWorker(
			q,
			upserter,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	select {
	case <-p.shutdown:
	default:
		close(p.shutdown)
	}

	for _, w := range p.workers {
		w.signalShutdown()
	}
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// Close the queue first so no new updates arrive.
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		if err := w.Shutdown(shutdownCtx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
