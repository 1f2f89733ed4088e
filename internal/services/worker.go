package services

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/SCMGuru254/tenderbridge-sub003/internal/models"
	"github.com/SCMGuru254/tenderbridge-sub003/internal/repositories"
)

// PersistWorker retries audit records whose synchronous insert failed.
type PersistWorker interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(record *models.Analysis) bool
}

type persistWorker struct {
	repo        repositories.AnalysisRepository
	metrics     *Metrics
	logger      *zap.Logger
	queue       chan *models.Analysis
	concurrency int
	retry       RetryPolicy
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewPersistWorker(
	repo repositories.AnalysisRepository,
	metrics *Metrics,
	logger *zap.Logger,
	concurrency int,
	queueSize int,
	retry RetryPolicy,
) PersistWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	if retry.MaxAttempts < 1 {
		retry.MaxAttempts = 1
	}
	if metrics == nil {
		metrics = NewMetrics(prometheus.NewRegistry())
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &persistWorker{
		repo:        repo,
		metrics:     metrics,
		logger:      logger,
		queue:       make(chan *models.Analysis, queueSize),
		concurrency: concurrency,
		retry:       retry,
		stopChan:    make(chan struct{}),
	}
}

// Start implements PersistWorker.
func (w *persistWorker) Start(ctx context.Context) {
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.process(ctx, i+1)
	}

	w.logger.Info("persist worker started", zap.Int("concurrency", w.concurrency))
}

// Stop implements PersistWorker. Records still queued are dropped.
func (w *persistWorker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		w.wg.Wait()
		if pending := len(w.queue); pending > 0 {
			w.logger.Warn("persist worker stopped with pending records", zap.Int("pending", pending))
		}
		w.logger.Info("persist worker stopped")
	})
}

// Enqueue implements PersistWorker. It never blocks; a full queue drops the record.
func (w *persistWorker) Enqueue(record *models.Analysis) bool {
	select {
	case <-w.stopChan:
		w.logger.Warn("persist worker stopped, dropping record", zap.String("analysis_id", record.ID.String()))
		return false
	default:
	}

	select {
	case w.queue <- record:
		w.logger.Debug("analysis record queued for retry", zap.String("analysis_id", record.ID.String()))
		return true
	default:
		w.metrics.persistRetries.WithLabelValues("dropped").Inc()
		w.logger.Warn("persist queue full, dropping record", zap.String("analysis_id", record.ID.String()))
		return false
	}
}

func (w *persistWorker) process(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case record := <-w.queue:
			w.retryRecord(ctx, workerID, record)
		}
	}
}

func (w *persistWorker) retryRecord(ctx context.Context, workerID int, record *models.Analysis) {
	delay := w.retry.InitialDelay

	for attempt := 1; attempt <= w.retry.MaxAttempts; attempt++ {
		if !w.sleep(ctx, delay) {
			w.metrics.persistRetries.WithLabelValues("dropped").Inc()
			return
		}

		opCtx, cancel := context.WithTimeout(ctx, persistTimeout)
		err := w.repo.Create(opCtx, record)
		cancel()

		if err == nil {
			w.metrics.persistRetries.WithLabelValues("persisted").Inc()
			w.logger.Info("analysis record persisted on retry",
				zap.Int("worker", workerID),
				zap.String("analysis_id", record.ID.String()),
				zap.Int("attempt", attempt),
			)
			return
		}

		w.logger.Warn("analysis record retry failed",
			zap.Int("worker", workerID),
			zap.String("analysis_id", record.ID.String()),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		delay *= 2
	}

	w.metrics.persistRetries.WithLabelValues("dropped").Inc()
	w.logger.Error("giving up on analysis record",
		zap.String("analysis_id", record.ID.String()),
		zap.String("file_path", record.FilePath),
	)
}

// sleep waits d unless the worker is stopping.
func (w *persistWorker) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-w.stopChan:
		return false
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
