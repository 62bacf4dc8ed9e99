// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides Prometheus metrics for the analyzer.
//
// Metrics cover analysis request outcomes and latency, dataset sizes, and
// theme-classification fallbacks (a rising fallback counter means the
// embedding backend is degraded). Exposed on /metrics; all operations are
// thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace  = "trustscope"
	analyzerSubsystem = "analyzer"
)

// AnalyzerMetrics holds all Prometheus metrics for analysis requests.
// Initialize once at startup via InitMetrics.
type AnalyzerMetrics struct {
	// RequestsTotal counts analysis requests by status.
	// Labels: status (success, client_error, error)
	RequestsTotal *prometheus.CounterVec

	// RequestDurationSeconds measures end-to-end analysis duration.
	RequestDurationSeconds prometheus.Histogram

	// DatasetRows observes the number of rows per analyzed dataset.
	DatasetRows prometheus.Histogram

	// ThemeFallbacksTotal counts classifications that used the fallback
	// theme because the retriever was degraded.
	ThemeFallbacksTotal prometheus.Counter
}

// DefaultMetrics is the singleton instance, set by InitMetrics.
var DefaultMetrics *AnalyzerMetrics

// InitMetrics creates and registers all analyzer metrics. Call once at
// startup; a second call panics on duplicate registration.
func InitMetrics() *AnalyzerMetrics {
	DefaultMetrics = &AnalyzerMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: analyzerSubsystem,
				Name:      "requests_total",
				Help:      "Total analysis requests by status",
			},
			[]string{"status"},
		),

		RequestDurationSeconds: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: analyzerSubsystem,
				Name:      "request_duration_seconds",
				Help:      "End-to-end analysis duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 15.0},
			},
		),

		DatasetRows: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: analyzerSubsystem,
				Name:      "dataset_rows",
				Help:      "Rows per analyzed dataset",
				Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000},
			},
		),

		ThemeFallbacksTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: analyzerSubsystem,
				Name:      "theme_fallbacks_total",
				Help:      "Theme classifications served by the fallback category",
			},
		),
	}
	return DefaultMetrics
}

// RecordRequest records one completed analysis request. Safe on a nil
// receiver so handlers can run without metrics in tests.
func (m *AnalyzerMetrics) RecordRequest(status string, seconds float64, rows int) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(status).Inc()
	if status == "success" {
		m.RequestDurationSeconds.Observe(seconds)
		m.DatasetRows.Observe(float64(rows))
	}
}

// ThemeFallback counts one fallback-theme classification on the singleton.
// A no-op before InitMetrics.
func ThemeFallback() {
	if DefaultMetrics != nil {
		DefaultMetrics.ThemeFallbacksTotal.Inc()
	}
}
