// Package scheduler runs the single-consumer ingestion queue: submissions are
// acknowledged immediately and processed one at a time with per-job state.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/job"
	"github.com/kailas-cloud/docdex/internal/metrics"
	"github.com/kailas-cloud/docdex/internal/usecase/ingest"
)

// DefaultPoll bounds the consumer's wait when the queue is empty.
const DefaultPoll = time.Second

// Processor runs the ingestion pipeline for one document.
type Processor interface {
	Process(ctx context.Context, ref domain.DocumentRef, report ingest.ProgressFunc) (int, error)
}

// Scheduler owns the FIFO job queue and the job state table. One consumer
// goroutine mutates job state; Submit/Status/List are safe from any
// goroutine.
type Scheduler struct {
	processor Processor
	poll      time.Duration
	logger    *zap.Logger

	mu    sync.Mutex
	queue []string

	jobsMu sync.RWMutex
	jobs   map[string]job.Job

	nudge    chan struct{}
	stopCh   chan struct{}
	stopOnce sync.Once
	done     sync.WaitGroup
}

// New creates a stopped scheduler. poll <= 0 selects DefaultPoll.
func New(processor Processor, poll time.Duration, logger *zap.Logger) *Scheduler {
	if poll <= 0 {
		poll = DefaultPoll
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		processor: processor,
		poll:      poll,
		logger:    logger,
		jobs:      make(map[string]job.Job),
		nudge:     make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the consumer goroutine. Call once; ctx bounds all job
// processing.
func (s *Scheduler) Start(ctx context.Context) {
	s.done.Add(1)
	go func() {
		defer s.done.Done()
		s.run(ctx)
	}()
}

// Stop signals the consumer and waits for the in-flight job to finish.
// Queued jobs that never started stay Queued.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.done.Wait()
}

// Submit validates the ref, queues an ingestion job, and returns its ID
// without waiting for processing. An empty DocumentID defaults to the job ID
// so chunk rows always carry a document identity.
func (s *Scheduler) Submit(ref domain.DocumentRef) (string, error) {
	id := uuid.NewString()
	if ref.DocumentID == "" {
		ref.DocumentID = id
	}

	j, err := job.New(id, ref, time.Now().UTC())
	if err != nil {
		return "", err
	}

	s.jobsMu.Lock()
	s.jobs[id] = j
	s.jobsMu.Unlock()

	s.mu.Lock()
	s.queue = append(s.queue, id)
	s.mu.Unlock()

	select {
	case s.nudge <- struct{}{}:
	default:
	}

	s.logger.Info("job queued",
		zap.String("job_id", id),
		zap.String("document_name", ref.Name),
	)
	return id, nil
}

// Status returns a snapshot of the job.
func (s *Scheduler) Status(jobID string) (job.Job, error) {
	j, ok := s.snapshot(jobID)
	if !ok {
		return job.Job{}, fmt.Errorf("%w: %s", domain.ErrJobNotFound, jobID)
	}
	return j, nil
}

// List returns snapshots of all known jobs, newest first. A non-empty
// documentID restricts the list to jobs ingesting that document.
func (s *Scheduler) List(documentID string) []job.Job {
	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()

	jobs := make([]job.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if documentID != "" && j.Ref().DocumentID != documentID {
			continue
		}
		jobs = append(jobs, j)
	}
	sort.Slice(jobs, func(i, k int) bool {
		return jobs[i].CreatedAt().After(jobs[k].CreatedAt())
	})
	return jobs
}

// run is the consumer loop. A failed job never stops the loop.
func (s *Scheduler) run(ctx context.Context) {
	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		default:
		}

		id, ok := s.dequeue()
		if !ok {
			select {
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			case <-s.nudge:
			case <-time.After(s.poll):
			}
			continue
		}

		s.process(ctx, id)
	}
}

func (s *Scheduler) process(ctx context.Context, id string) {
	j, ok := s.snapshot(id)
	if !ok {
		return
	}

	start := time.Now()
	s.update(id, func(j job.Job) job.Job { return j.Started(start.UTC()) })

	report := func(progress int, message string) {
		s.update(id, func(j job.Job) job.Job { return j.WithProgress(progress, message) })
	}

	chunks, err := s.processor.Process(ctx, j.Ref(), report)
	duration := time.Since(start)
	metrics.IngestJobDuration.Observe(duration.Seconds())

	if err != nil {
		s.update(id, func(j job.Job) job.Job { return j.Failed(err.Error(), time.Now().UTC()) })
		metrics.IngestJobsTotal.WithLabelValues("failed").Inc()
		s.logger.Error("job failed",
			zap.String("job_id", id),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}

	message := fmt.Sprintf("Successfully processed %d chunks", chunks)
	s.update(id, func(j job.Job) job.Job { return j.Completed(message, time.Now().UTC()) })
	metrics.IngestJobsTotal.WithLabelValues("completed").Inc()
	s.logger.Info("job completed",
		zap.String("job_id", id),
		zap.Int("chunks", chunks),
		zap.Duration("duration", duration),
	)
}

func (s *Scheduler) dequeue() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return "", false
	}
	id := s.queue[0]
	s.queue = s.queue[1:]
	return id, true
}

func (s *Scheduler) snapshot(id string) (job.Job, bool) {
	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()
	j, ok := s.jobs[id]
	return j, ok
}

func (s *Scheduler) update(id string, fn func(job.Job) job.Job) {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()
	if j, ok := s.jobs[id]; ok {
		s.jobs[id] = fn(j)
	}
}
