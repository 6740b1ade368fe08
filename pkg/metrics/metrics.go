// Package metrics defines the Prometheus collectors recorded during a
// pipeline run. A run is a short-lived batch job, so collectors live on a
// private registry that is pushed to a Pushgateway when one is configured.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors for the pipeline.
type Metrics struct {
	Registry *prometheus.Registry

	StageDuration     *prometheus.HistogramVec
	StageRunsTotal    *prometheus.CounterVec
	DocumentsRead     prometheus.Counter
	TermsKept         prometheus.Gauge
	TermsDiscarded    prometheus.Gauge
	ModelDocuments    prometheus.Gauge
	QueriesProcessed  prometheus.Counter
	QueriesRanked     *prometheus.CounterVec
	SearchResultsSize prometheus.Histogram
}

// New creates all collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vsm_stage_duration_seconds",
				Help:    "Wall-clock duration of each pipeline stage.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"stage"},
		),
		StageRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vsm_stage_runs_total",
				Help: "Stage executions by stage and outcome (ok, config, input_format, io, numeric, internal).",
			},
			[]string{"stage", "outcome"},
		),
		DocumentsRead: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "vsm_corpus_documents_read_total",
				Help: "Corpus records read by the inverted-list generator.",
			},
		),
		TermsKept: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "vsm_model_terms_kept",
				Help: "Terms that passed the vocabulary filter.",
			},
		),
		TermsDiscarded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "vsm_model_terms_discarded",
				Help: "Terms rejected by the vocabulary filter.",
			},
		),
		ModelDocuments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "vsm_model_documents",
				Help: "Size of the document universe of the vector model.",
			},
		),
		QueriesProcessed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "vsm_queries_processed_total",
				Help: "Queries written by the query processor.",
			},
		),
		QueriesRanked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vsm_queries_ranked_total",
				Help: "Queries ranked by result type (hit, zero_result).",
			},
			[]string{"result_type"},
		),
		SearchResultsSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "vsm_search_results_count",
				Help:    "Number of ranked documents emitted per query.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
		),
	}

	m.Registry.MustRegister(
		m.StageDuration,
		m.StageRunsTotal,
		m.DocumentsRead,
		m.TermsKept,
		m.TermsDiscarded,
		m.ModelDocuments,
		m.QueriesProcessed,
		m.QueriesRanked,
		m.SearchResultsSize,
	)

	return m
}

// ObserveQuery records the size of one query's ranked result list.
func (m *Metrics) ObserveQuery(results int) {
	if m == nil {
		return
	}
	resultType := "hit"
	if results == 0 {
		resultType = "zero_result"
	}
	m.QueriesRanked.WithLabelValues(resultType).Inc()
	m.SearchResultsSize.Observe(float64(results))
}

// ObserveStage records one stage execution.
func (m *Metrics) ObserveStage(stage, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(seconds)
	m.StageRunsTotal.WithLabelValues(stage, outcome).Inc()
}
