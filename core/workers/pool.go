// ABOUTME: Worker pool runs jobs on a fixed set of goroutines fed by a bounded queue
// ABOUTME: Used to format batches of documents concurrently

package workers

import (
	"context"
	"sync"
	"time"
)

// Job is a unit of work; ctx is the submitter's context
type Job func(ctx context.Context)

type queuedJob struct {
	ctx context.Context
	run Job
}

// WorkerConfig holds configuration for the pool
type WorkerConfig struct {
	MaxWorkers int
	QueueSize  int
	// SubmitTimeout bounds how long Submit waits for queue space
	SubmitTimeout time.Duration
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers:    10,
		QueueSize:     100,
		SubmitTimeout: 5 * time.Second,
	}
}

// Pool manages a fixed set of worker goroutines
type Pool struct {
	jobQueue      chan queuedJob
	maxWorkers    int
	submitTimeout time.Duration
	wg            sync.WaitGroup
	mu            sync.RWMutex
	running       bool
}

// NewPool creates a stopped pool; non-positive settings use the defaults
func NewPool(config WorkerConfig) *Pool {
	defaults := DefaultWorkerConfig()
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = defaults.MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.SubmitTimeout <= 0 {
		config.SubmitTimeout = defaults.SubmitTimeout
	}

	return &Pool{
		jobQueue:      make(chan queuedJob, config.QueueSize),
		maxWorkers:    config.MaxWorkers,
		submitTimeout: config.SubmitTimeout,
	}
}

// Start starts the workers
func (p *Pool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}
	if p.jobQueue == nil {
		return ErrPoolStopped
	}

	for i := 0; i < p.maxWorkers; i++ {
		p.wg.Add(1)
		go p.work(p.jobQueue)
	}
	p.running = true
	return nil
}

// Stop stops accepting jobs and waits for queued jobs to finish. A stopped
// pool cannot be restarted.
func (p *Pool) Stop() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	close(p.jobQueue)
	p.jobQueue = nil
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}

// Submit queues a job. It fails when the pool is not running, ctx ends, or
// the queue stays full past the submit timeout.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.running {
		return ErrWorkerNotRunning
	}

	timer := time.NewTimer(p.submitTimeout)
	defer timer.Stop()

	select {
	case p.jobQueue <- queuedJob{ctx: ctx, run: job}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrQueueFull
	}
}

// Map runs fn for every index in [0, n) on the pool and waits for all
// submitted calls. It returns the first submit error; indexes after it are
// not run.
func (p *Pool) Map(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	var wg sync.WaitGroup
	var submitErr error

	for i := 0; i < n; i++ {
		wg.Add(1)
		i := i
		err := p.Submit(ctx, func(ctx context.Context) {
			defer wg.Done()
			fn(ctx, i)
		})
		if err != nil {
			wg.Done()
			submitErr = err
			break
		}
	}

	wg.Wait()
	return submitErr
}

// work drains the queue until it is closed
func (p *Pool) work(queue <-chan queuedJob) {
	defer p.wg.Done()
	for job := range queue {
		job.run(job.ctx)
	}
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
	ErrQueueFull        = &WorkerError{Message: "job queue is full"}
	ErrPoolStopped      = &WorkerError{Message: "worker pool was stopped"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
