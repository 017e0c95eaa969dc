package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "supplement_stack"

var (
	resolutionsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "resolver",
		Name:      "resolutions_total",
		Help:      "Number of completed resolutions by the source of the returned stack.",
	}, []string{"source"})

	resolutionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "resolver",
		Name:      "resolution_duration_seconds",
		Help:      "Latency of a full resolution.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	})

	matchScoreHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "matcher",
		Name:      "best_match_score",
		Help:      "Score of the best archetype match per resolution.",
		Buckets:   prometheus.LinearBuckets(0, 10, 11),
	})

	narrativeFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "narrative",
		Name:      "failures_total",
		Help:      "Narrative enrichment calls that failed or timed out.",
	}, []string{"reason"})

	breakerStateGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "narrative",
		Name:      "circuit_breaker_state",
		Help:      "Narrative circuit breaker state (0 closed, 1 half-open, 2 open).",
	}, []string{"name"})

	catalogLoadedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "catalog",
		Name:      "last_snapshot_load_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful catalog snapshot load.",
	})

	catalogLoadFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "catalog",
		Name:      "snapshot_load_failures_total",
		Help:      "Catalog snapshot loads that returned an error.",
	})

	eventsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Domain events handed to the broker by outcome.",
	}, []string{"event_type", "outcome"})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route and status code.",
	}, []string{"route", "code"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

func init() {
	prometheus.MustRegister(
		resolutionsCounter,
		resolutionDuration,
		matchScoreHistogram,
		narrativeFailures,
		breakerStateGauge,
		catalogLoadedGauge,
		catalogLoadFailures,
		eventsPublished,
		httpRequests,
		httpDuration,
	)
}

// RecordResolution counts a finished resolution.
func RecordResolution(source string, elapsed time.Duration) {
	resolutionsCounter.WithLabelValues(source).Inc()
	resolutionDuration.Observe(elapsed.Seconds())
}

// RecordMatchScore observes the best archetype score.
func RecordMatchScore(score int) {
	matchScoreHistogram.Observe(float64(score))
}

// RecordNarrativeFailure counts a failed enrichment.
func RecordNarrativeFailure(reason string) {
	narrativeFailures.WithLabelValues(reason).Inc()
}

// SetBreakerState publishes the breaker state for name.
func SetBreakerState(name string, state float64) {
	breakerStateGauge.WithLabelValues(name).Set(state)
}

// RecordCatalogLoad updates the snapshot watermark or failure count.
func RecordCatalogLoad(ts time.Time, err error) {
	if err != nil {
		catalogLoadFailures.Inc()
		return
	}
	if !ts.IsZero() {
		catalogLoadedGauge.Set(float64(ts.Unix()))
	}
}

// RecordEventPublished counts one publication attempt.
func RecordEventPublished(eventType string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	eventsPublished.WithLabelValues(eventType, outcome).Inc()
}

// RecordHTTPRequest counts one served request.
func RecordHTTPRequest(route string, code int, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
