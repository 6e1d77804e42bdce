// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package metrics holds the Prometheus counters and histograms shared by
// every stage's engine.Run(), folded from the ingestion pipeline's own
// metrics scaffold (sync.Once init, MustRegister on first use) and renamed
// for this pipeline's per-stage throughput and spill concerns.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// stageMetrics holds the Prometheus collectors shared by every stage.
type stageMetrics struct {
	once sync.Once

	recordsRead     *prometheus.CounterVec
	recordsWritten  *prometheus.CounterVec
	recordsRejected *prometheus.CounterVec
	workerErrors    *prometheus.CounterVec
	stashSpills     *prometheus.CounterVec
	stageDuration   *prometheus.HistogramVec
}

var m stageMetrics

func (m *stageMetrics) init() {
	m.once.Do(func() {
		m.recordsRead = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "condenser_stage_records_read_total",
			Help: "Records read from a stage's input.",
		}, []string{"stage"})
		m.recordsWritten = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "condenser_stage_records_written_total",
			Help: "Records written to a stage's output.",
		}, []string{"stage"})
		m.recordsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "condenser_stage_records_rejected_total",
			Help: "Records a stage dropped (failed a predicate or decode).",
		}, []string{"stage"})
		m.workerErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "condenser_stage_worker_errors_total",
			Help: "Worker errors that aborted a stage's run.",
		}, []string{"stage"})
		m.stashSpills = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "condenser_stage_stash_spills_total",
			Help: "Times a stage's stash spilled buffered output to disk.",
		}, []string{"stage"})

		buckets := []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600}
		m.stageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "condenser_stage_duration_seconds",
			Help:    "Wall-clock duration of a full stage run.",
			Buckets: buckets,
		}, []string{"stage"})

		prometheus.MustRegister(
			m.recordsRead, m.recordsWritten, m.recordsRejected,
			m.workerErrors, m.stashSpills, m.stageDuration,
		)
	})
}

// RecordsRead increments the records-read counter for stage.
func RecordsRead(stage string, n int) {
	m.init()
	m.recordsRead.WithLabelValues(stage).Add(float64(n))
}

// RecordsWritten increments the records-written counter for stage.
func RecordsWritten(stage string, n int) {
	m.init()
	m.recordsWritten.WithLabelValues(stage).Add(float64(n))
}

// RecordsRejected increments the records-rejected counter for stage.
func RecordsRejected(stage string, n int) {
	m.init()
	m.recordsRejected.WithLabelValues(stage).Add(float64(n))
}

// WorkerError increments the worker-error counter for stage.
func WorkerError(stage string) {
	m.init()
	m.workerErrors.WithLabelValues(stage).Inc()
}

// StashSpill increments the stash-spill counter for stage.
func StashSpill(stage string) {
	m.init()
	m.stashSpills.WithLabelValues(stage).Inc()
}

// ObserveStageDuration records how long a full stage run took, in seconds.
func ObserveStageDuration(stage string, seconds float64) {
	m.init()
	m.stageDuration.WithLabelValues(stage).Observe(seconds)
}
