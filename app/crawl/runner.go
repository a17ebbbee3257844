package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

var _ TaskEnqueuer = (*Runner)(nil)

// Stats summarizes a finished crawl
type Stats struct {
	Completed int64
	Dropped   int64
	Records   int
}

// Runner drives a crawl with a bounded task queue and a fixed pool of fetch
// workers. Backpressure is explicit: a full queue rejects the enqueue and the
// task is dropped rather than queued without limit.
type Runner struct {
	fetcher     *Fetcher
	extractor   *Extractor
	sink        RecordSink
	workerCount int

	taskQueue chan TaskInterface
	pending   sync.WaitGroup
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc

	completed atomic.Int64
	dropped   atomic.Int64
}

func NewRunner(fetcher *Fetcher, extractor *Extractor, sink RecordSink, workerCount int, queueSize int) *Runner {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 1 {
		queueSize = 300
	}

	return &Runner{
		fetcher:     fetcher,
		extractor:   extractor,
		sink:        sink,
		workerCount: workerCount,
		taskQueue:   make(chan TaskInterface, queueSize),
	}
}

// Run crawls from the start URL until every reachable task has finished or
// the context is cancelled.
func (r *Runner) Run(ctx context.Context, startURL string) (Stats, error) {
	r.ctx, r.cancel = context.WithCancel(ctx)
	defer r.cancel()

	for i := 0; i < r.workerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}

	seed := NewListPageTask(startURL, r.fetcher, r.extractor, r.sink, r)
	if err := r.EnqueueTask(seed); err != nil {
		r.cancel()
		r.wg.Wait()
		return Stats{}, fmt.Errorf("failed to enqueue start URL: %w", err)
	}

	done := make(chan struct{})
	go func() {
		r.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
	runErr := ctx.Err()

	r.cancel()
	r.wg.Wait()

	return Stats{
		Completed: r.completed.Load(),
		Dropped:   r.dropped.Load(),
		Records:   r.sink.Count(),
	}, runErr
}

func (r *Runner) EnqueueTask(task TaskInterface) error {
	r.pending.Add(1)

	select {
	case r.taskQueue <- task:
		return nil
	case <-r.ctx.Done():
		r.pending.Done()
		return r.ctx.Err()
	default:
		r.pending.Done()
		return fmt.Errorf("task queue is full")
	}
}

func (r *Runner) worker(id int) {
	defer r.wg.Done()

	for {
		select {
		case task := <-r.taskQueue:
			r.executeTask(id, task)
			r.pending.Done()

		case <-r.ctx.Done():
			return
		}
	}
}

func (r *Runner) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(r.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)
	if err == nil {
		r.completed.Add(1)
		return
	}

	slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "url", task.GetURL(), "retry_count", task.GetRetryCount(), "error", err)

	if task.CanRetry() {
		task.IncrementRetryCount()
		if retryErr := r.EnqueueTask(task); retryErr != nil {
			slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "error", retryErr)
			r.dropped.Add(1)
		}
		return
	}

	// No retries configured: the page is skipped and the crawl continues
	r.dropped.Add(1)
}
