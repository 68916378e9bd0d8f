package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tempo_aqi"

// Metrics holds the Prometheus counters, histograms, and gauges for the AQI pipeline.
type Metrics struct {
	RunsTotal       *prometheus.CounterVec // labels: outcome={success,schema,empty_result,missing_column,error}
	RunDuration     prometheus.Histogram
	PipelineRunning prometheus.Gauge
	LastSuccess     prometheus.Gauge

	// Point flow metrics.
	SamplesRead     prometheus.Counter
	OutsideCoverage prometheus.Counter
	PointsEnriched  prometheus.Counter

	ZoneRiskScore       *prometheus.GaugeVec // labels: zone
	AdvisoriesPublished prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete extract-aggregate-load run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline loop is active, 0 when shut down.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
		SamplesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_read_total",
			Help:      "Total NO2 samples read from the input.",
		}),
		OutsideCoverage: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_outside_coverage_total",
			Help:      "Total samples dropped for falling outside every zone.",
		}),
		PointsEnriched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_enriched_total",
			Help:      "Total points written with a zone risk score.",
		}),
		ZoneRiskScore: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "zone_risk_score",
			Help:      "Latest risk score per zone.",
		}, []string{"zone"}),
		AdvisoriesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advisories_published_total",
			Help:      "Total zone advisories published to Kafka.",
		}),
	}
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.PipelineRunning,
		m.LastSuccess,
		m.SamplesRead,
		m.OutsideCoverage,
		m.PointsEnriched,
		m.ZoneRiskScore,
		m.AdvisoriesPublished,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
