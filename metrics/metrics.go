// Package metrics records conversion run counters in a private Prometheus
// registry and writes them as a node-exporter textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ben-tinc/trm-preview/enrich"
)

const namespace = "trm_preview"

// Metric names, without the namespace.
const (
	MetricRows        = "rows_total"
	MetricIdentifiers = "identifiers_total"
	MetricLinks       = "broader_links_total"
	MetricRoots       = "root_concepts_total"
	MetricAnomalies   = "anomalies_total"
	MetricTriples     = "triples_total"
	MetricDuration    = "run_duration_seconds"
	MetricLastSuccess = "last_success_timestamp_seconds"
)

// Identifier source label values.
const (
	SourceOverride = "override"
	SourceCategory = "category"
	SourceCounter  = "counter"
)

// Run holds the metrics of one conversion run.
type Run struct {
	registry *prometheus.Registry

	rows        prometheus.Counter
	identifiers *prometheus.CounterVec
	links       prometheus.Counter
	roots       prometheus.Counter
	anomalies   *prometheus.CounterVec
	triples     prometheus.Counter
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// NewRun creates the run metrics on a fresh registry.
func NewRun() *Run {
	r := &Run{
		registry: prometheus.NewRegistry(),
		rows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      MetricRows,
			Help:      "Data rows read from the input table.",
		}),
		identifiers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      MetricIdentifiers,
			Help:      "Identifiers assigned, by source.",
		}, []string{"source"}),
		links: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      MetricLinks,
			Help:      "Concepts linked to a broader concept.",
		}),
		roots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      MetricRoots,
			Help:      "Concepts at the top of the hierarchy.",
		}),
		anomalies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      MetricAnomalies,
			Help:      "Data anomalies recovered from, by kind.",
		}, []string{"kind"}),
		triples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      MetricTriples,
			Help:      "Triples in the emitted graph.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      MetricDuration,
			Help:      "Wall time of the last run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      MetricLastSuccess,
			Help:      "Unix time of the last successful run.",
		}),
	}

	r.registry.MustRegister(
		r.rows,
		r.identifiers,
		r.links,
		r.roots,
		r.anomalies,
		r.triples,
		r.duration,
		r.lastSuccess,
	)
	return r
}

// Registry exposes the underlying registry.
func (r *Run) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveEnrichment adds the enrichment counts.
func (r *Run) ObserveEnrichment(s enrich.Stats) {
	r.rows.Add(float64(s.Rows))
	r.identifiers.WithLabelValues(SourceOverride).Add(float64(s.Overridden))
	r.identifiers.WithLabelValues(SourceCategory).Add(float64(s.Kept))
	r.identifiers.WithLabelValues(SourceCounter).Add(float64(s.Synthesized))
	r.links.Add(float64(s.Linked))
	r.roots.Add(float64(s.Roots))
	r.anomalies.WithLabelValues(string(enrich.AnomalyMissingAncestor)).Add(float64(s.MissingAncestors))
	r.anomalies.WithLabelValues(string(enrich.AnomalySignatureCollision)).Add(float64(s.Collisions))
}

// ObserveTriples adds the size of the emitted graph.
func (r *Run) ObserveTriples(n int) {
	r.triples.Add(float64(n))
}

// Finish records the run duration and marks it successful.
func (r *Run) Finish(start, end time.Time) {
	r.duration.Set(end.Sub(start).Seconds())
	r.lastSuccess.Set(float64(end.Unix()))
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The file is written to a temporary name and renamed.
func (r *Run) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
