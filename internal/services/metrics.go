package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess        = "success"
	outcomeRetrievalError = "retrieval_error"
	outcomeDecodeError    = "decode_error"
)

// Metrics groups the analysis pipeline collectors.
type Metrics struct {
	analyses        *prometheus.CounterVec
	overallScore    prometheus.Histogram
	persistFailures prometheus.Counter
	persistRetries  *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		analyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ats_analyses_total",
				Help: "CV analyses by outcome",
			},
			[]string{"outcome"},
		),
		overallScore: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ats_overall_score",
				Help:    "Distribution of overall ATS compatibility scores",
				Buckets: prometheus.LinearBuckets(10, 10, 10),
			},
		),
		persistFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ats_persist_failures_total",
				Help: "Synchronous audit record inserts that failed",
			},
		),
		persistRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ats_persist_retries_total",
				Help: "Background audit record retries by result",
			},
			[]string{"result"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ats_text_cache_lookups_total",
				Help: "Extracted text cache lookups by result",
			},
			[]string{"result"},
		),
	}
}
