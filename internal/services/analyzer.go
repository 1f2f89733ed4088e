package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/SCMGuru254/tenderbridge-sub003/internal/ats"
	"github.com/SCMGuru254/tenderbridge-sub003/internal/models"
	"github.com/SCMGuru254/tenderbridge-sub003/internal/repositories"
)

var ErrStorageUnavailable = errors.New("document storage unavailable")

const persistTimeout = 5 * time.Second

type AnalyzeInput struct {
	FilePath       string
	JobDescription string
}

// Outcome separates the primary analysis from the best-effort audit write.
// PersistErr never implies the analysis failed.
type Outcome struct {
	Result ats.AnalysisResult
	Format Format

	Record        *models.Analysis
	PersistErr    error
	PersistQueued bool
}

type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

type AnalyzerService interface {
	Analyze(ctx context.Context, in AnalyzeInput) (*Outcome, error)
}

// AnalyzerDeps wires the analyzer. Cache and Worker are optional.
type AnalyzerDeps struct {
	Storage StorageService
	Parser  DocumentParser
	Scorer  *ats.Scorer
	Repo    repositories.AnalysisRepository
	Cache   TextCache
	Worker  PersistWorker
	Metrics *Metrics
	Logger  *zap.Logger
	Retry   RetryPolicy
	Clock   func() time.Time
}

type analyzerService struct {
	AnalyzerDeps
}

func NewAnalyzerService(deps AnalyzerDeps) AnalyzerService {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = NewMetrics(prometheus.NewRegistry())
	}
	if deps.Retry.MaxAttempts < 1 {
		deps.Retry.MaxAttempts = 1
	}
	return &analyzerService{AnalyzerDeps: deps}
}

// Analyze fetches, decodes and scores one document, then records the result.
// Only input and retrieval failures are returned as errors.
func (a *analyzerService) Analyze(ctx context.Context, in AnalyzeInput) (*Outcome, error) {
	text, format, err := a.loadText(ctx, in.FilePath)
	if err != nil {
		return nil, err
	}

	result := a.Scorer.Analyze(text, in.JobDescription)
	a.Metrics.analyses.WithLabelValues(outcomeSuccess).Inc()
	a.Metrics.overallScore.Observe(float64(result.Score.Overall))

	outcome := &Outcome{Result: result, Format: format}
	a.persist(ctx, in, outcome)

	a.Logger.Info("cv analysed",
		zap.String("file_path", in.FilePath),
		zap.String("format", string(format)),
		zap.Int("overall", result.Score.Overall),
		zap.Bool("persisted", outcome.PersistErr == nil),
	)

	return outcome, nil
}

func (a *analyzerService) loadText(ctx context.Context, filePath string) (string, Format, error) {
	data, err := a.download(ctx, filePath)
	if err != nil {
		a.Metrics.analyses.WithLabelValues(outcomeRetrievalError).Inc()
		return "", "", err
	}

	var key string
	if a.Cache != nil {
		key = contentKey(filePath, data)
		cached, err := a.Cache.Get(ctx, key)
		switch {
		case err == nil:
			a.Metrics.cacheLookups.WithLabelValues("hit").Inc()
			return cached.Text, cached.Format, nil
		case errors.Is(err, ErrTextNotCached):
			a.Metrics.cacheLookups.WithLabelValues("miss").Inc()
		default:
			a.Metrics.cacheLookups.WithLabelValues("error").Inc()
			a.Logger.Warn("text cache lookup failed", zap.String("file_path", filePath), zap.Error(err))
		}
	}

	text, format, err := a.Parser.Parse(filePath, data)
	if err != nil {
		a.Metrics.analyses.WithLabelValues(outcomeDecodeError).Inc()
		return "", format, err
	}

	if a.Cache != nil {
		if err := a.Cache.Set(ctx, key, CachedText{Text: text, Format: format}); err != nil {
			a.Logger.Warn("text cache write failed", zap.String("file_path", filePath), zap.Error(err))
		}
	}

	return text, format, nil
}

// contentKey derives the text cache key from the downloaded bytes.
func contentKey(name string, data []byte) string {
	sum := sha256.Sum256(data)
	return string(DetectFormat(name, data)) + ":" + hex.EncodeToString(sum[:])
}

// download retries transient storage failures with exponential backoff.
func (a *analyzerService) download(ctx context.Context, filePath string) ([]byte, error) {
	delay := a.Retry.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= a.Retry.MaxAttempts; attempt++ {
		data, err := a.Storage.Download(ctx, filePath)
		if err == nil {
			return data, nil
		}
		if !retryableStorageError(err) {
			return nil, err
		}
		lastErr = err

		if attempt == a.Retry.MaxAttempts {
			break
		}

		a.Logger.Warn("storage download failed, retrying",
			zap.String("file_path", filePath),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		if err := wait(ctx, delay); err != nil {
			return nil, fmt.Errorf("waiting to retry download: %w", err)
		}
		delay *= 2
	}

	return nil, fmt.Errorf("%w: failed after %d attempts: %w", ErrStorageUnavailable, a.Retry.MaxAttempts, lastErr)
}

func (a *analyzerService) persist(ctx context.Context, in AnalyzeInput, outcome *Outcome) {
	record, err := models.NewAnalysis(
		in.FilePath,
		string(outcome.Format),
		in.JobDescription != "",
		outcome.Result,
		a.Clock().UTC(),
	)
	if err != nil {
		outcome.PersistErr = err
		a.Metrics.persistFailures.Inc()
		a.Logger.Error("failed to build analysis record", zap.String("file_path", in.FilePath), zap.Error(err))
		return
	}

	// the audit write must outlive a client that hangs up after the response
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if err := a.Repo.Create(persistCtx, record); err != nil {
		outcome.PersistErr = err
		a.Metrics.persistFailures.Inc()
		a.Logger.Warn("failed to persist analysis",
			zap.String("file_path", in.FilePath),
			zap.String("analysis_id", record.ID.String()),
			zap.Error(err),
		)
		if a.Worker != nil {
			outcome.PersistQueued = a.Worker.Enqueue(record)
		}
		return
	}

	outcome.Record = record
}

func retryableStorageError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidPath),
		errors.Is(err, ErrDocumentNotFound),
		errors.Is(err, ErrAccessDenied),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
