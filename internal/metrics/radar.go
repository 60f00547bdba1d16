package metrics

import "github.com/prometheus/client_golang/prometheus"

// Engine Prometheus metrics.
var (
	FixesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "radar",
			Name:      "fixes_total",
			Help:      "Total number of location fixes processed",
		},
		[]string{"result"}, // ok, discovery, not_ready, invalid
	)

	DiscoveriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "radar",
			Name:      "discoveries_total",
			Help:      "Total number of targets discovered",
		},
	)

	ScattersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "radar",
			Name:      "scatters_total",
			Help:      "Total number of scatter attempts",
		},
		[]string{"result"}, // ok, coalesced, discarded
	)

	PulseRearmsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "radar",
			Name:      "pulse_rearms_total",
			Help:      "Total number of haptic ticker restarts",
		},
	)

	NearestDistanceMeters = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "radar",
			Name:      "nearest_distance_meters",
			Help:      "Distance from a fix to the nearest target",
			Buckets:   []float64{1, 2.5, 5, 10, 15, 20, 30, 50, 100, 250},
		},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "radar",
			Name:      "active_sessions",
			Help:      "Number of live exploration sessions",
		},
	)

	EventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "radar",
			Name:      "events_published_total",
			Help:      "Discovery events handed to the event bus",
		},
		[]string{"status"}, // ok, error
	)

	StreamClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "radar",
			Name:      "stream_clients",
			Help:      "Connected feedback stream clients",
		},
	)
)

var radarMetricsRegistered bool

// RegisterRadarMetrics registers engine metrics. Must be called once from main.
func RegisterRadarMetrics() {
	if radarMetricsRegistered {
		return
	}
	prometheus.MustRegister(FixesTotal)
	prometheus.MustRegister(DiscoveriesTotal)
	prometheus.MustRegister(ScattersTotal)
	prometheus.MustRegister(PulseRearmsTotal)
	prometheus.MustRegister(NearestDistanceMeters)
	prometheus.MustRegister(ActiveSessions)
	prometheus.MustRegister(EventsPublishedTotal)
	prometheus.MustRegister(StreamClients)
	radarMetricsRegistered = true
}

// Observer feeds session activity into the engine metrics.
type Observer struct{}

// FixProcessed counts a fix by result.
func (Observer) FixProcessed(result string) { FixesTotal.WithLabelValues(result).Inc() }

// Scattered counts a scatter attempt by result.
func (Observer) Scattered(result string) { ScattersTotal.WithLabelValues(result).Inc() }

// Discovered counts a discovery.
func (Observer) Discovered() { DiscoveriesTotal.Inc() }

// NearestDistance observes the distance to the nearest target.
func (Observer) NearestDistance(meters float64) { NearestDistanceMeters.Observe(meters) }

// PulseRearmed counts a haptic ticker restart.
func (Observer) PulseRearmed() { PulseRearmsTotal.Inc() }

// SessionsActive sets the live session gauge.
func (Observer) SessionsActive(n int) { ActiveSessions.Set(float64(n)) }
