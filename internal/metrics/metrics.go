package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"CrossSentinel/internal/model"
)

// Metrics holds the Prometheus metrics for scan runs. Each instance owns its
// registry so tests can build several without duplicate registration.
type Metrics struct {
	Registry *prometheus.Registry

	ScansTotal      prometheus.Counter
	ScanDuration    prometheus.Histogram
	TickersScanned  prometheus.Counter
	TickersSkipped  prometheus.Counter
	FetchDuration   *prometheus.HistogramVec // labels: provider
	CrossoversFound prometheus.Counter
	LastMatches     prometheus.Gauge
	LastScanTime    prometheus.Gauge
	Deliveries      *prometheus.CounterVec // labels: outcome
}

// NewMetrics registers and returns all metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ScansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crosssentinel_scans_total",
			Help: "Total completed scans",
		}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "crosssentinel_scan_duration_seconds",
			Help:    "Wall time of one scan over the ticker set",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		TickersScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crosssentinel_tickers_scanned_total",
			Help: "Tickers evaluated for a crossover",
		}),
		TickersSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crosssentinel_tickers_skipped_total",
			Help: "Tickers skipped for fetch errors or short history",
		}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crosssentinel_fetch_duration_seconds",
			Help:    "Latency of one ticker's history fetch",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		CrossoversFound: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crosssentinel_crossovers_total",
			Help: "Upward crossovers found across all scans",
		}),
		LastMatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crosssentinel_last_scan_matches",
			Help: "Matches in the most recent scan",
		}),
		LastScanTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crosssentinel_last_scan_timestamp_seconds",
			Help: "Unix time the most recent scan finished",
		}),
		Deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crosssentinel_deliveries_total",
			Help: "Notification outcomes",
		}, []string{"outcome"}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ScansTotal,
		m.ScanDuration,
		m.TickersScanned,
		m.TickersSkipped,
		m.FetchDuration,
		m.CrossoversFound,
		m.LastMatches,
		m.LastScanTime,
		m.Deliveries,
	)
	return m
}

// ObserveScan records the totals of a finished scan. Nil receivers are ignored.
func (m *Metrics) ObserveScan(r *model.ScanResult) {
	if m == nil || r == nil {
		return
	}
	m.ScansTotal.Inc()
	m.ScanDuration.Observe(r.FinishedAt.Sub(r.StartedAt).Seconds())
	m.TickersScanned.Add(float64(r.Scanned))
	m.TickersSkipped.Add(float64(r.Skipped))
	m.CrossoversFound.Add(float64(len(r.Matches)))
	m.LastMatches.Set(float64(len(r.Matches)))
	m.LastScanTime.Set(float64(r.FinishedAt.Unix()))
}

// ObserveFetch records one fetch latency in seconds.
func (m *Metrics) ObserveFetch(provider string, seconds float64) {
	if m == nil {
		return
	}
	m.FetchDuration.WithLabelValues(provider).Observe(seconds)
}

// ObserveDelivery counts a notification outcome.
func (m *Metrics) ObserveDelivery(outcome model.DeliveryOutcome) {
	if m == nil {
		return
	}
	m.Deliveries.WithLabelValues(string(outcome)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
