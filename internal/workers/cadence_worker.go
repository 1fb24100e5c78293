package workers

import (
	"context"
	"sync"

	"assinazap/internal/services"
	"assinazap/pkg/utils"

	"go.uber.org/zap"
)

const (
	queueSize   = 64
	workerCount = 4
)

// CadenceWorker is the explicit hand-off between the webhook path and the
// cadence runs: a bounded queue plus a fixed pool. Steps for one
// subscriber stay sequential inside a single Dispatch call; runs for
// different subscribers overlap across workers.
type CadenceWorker struct {
	dispatcher services.ICadenceService
	logger     *zap.Logger

	jobs chan services.DispatchJob
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewCadenceWorker(dispatcher services.ICadenceService, logger *zap.Logger) *CadenceWorker {
	return &CadenceWorker{
		dispatcher: dispatcher,
		logger:     logger,
		jobs:       make(chan services.DispatchJob, queueSize),
	}
}

// Enqueue never blocks the webhook path: a full queue or a stopped worker
// is an error for the caller to log, not a reason to delay the response.
func (w *CadenceWorker) Enqueue(job services.DispatchJob) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return utils.ErrQueueFull
	}
	select {
	case w.jobs <- job:
		return nil
	default:
		return utils.ErrQueueFull
	}
}

func (w *CadenceWorker) Start() {
	for i := 0; i < workerCount; i++ {
		w.wg.Add(1)
		go w.run()
	}
	w.logger.Info("cadence worker pool started",
		zap.Int("workers", workerCount),
		zap.Int("queue_size", queueSize))
}

// Stop closes intake and drains jobs already accepted; in-flight cadence
// runs finish before shutdown completes.
func (w *CadenceWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.jobs)
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *CadenceWorker) run() {
	defer w.wg.Done()
	for job := range w.jobs {
		// Detached from any request context on purpose: the webhook that
		// queued this job answered long ago.
		report, err := w.dispatcher.Dispatch(context.Background(), job)
		if err != nil {
			w.logger.Error("cadence run aborted",
				zap.String("subscriber_id", job.SubscriberID.String()),
				zap.Error(err))
			continue
		}
		w.logger.Info("cadence run finished",
			zap.String("subscriber_id", job.SubscriberID.String()),
			zap.Int("attempted", report.Attempted),
			zap.Int("succeeded", report.Succeeded),
			zap.Int("failed", report.Failed))
	}
}
