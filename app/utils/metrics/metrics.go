package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder publishes prometheus counters for the caching and rate-limiting
// core. A dedicated registry is used so tests can construct recorders without
// clashing with the default registerer.
type Recorder struct {
	gatherer prometheus.Gatherer
	handler  http.Handler

	cacheRequests    *prometheus.CounterVec
	limiterDecisions *prometheus.CounterVec
}

// Cache lookup outcomes.
const (
	CacheHit    = "hit"
	CacheMiss   = "miss"
	CacheBypass = "bypass"
)

// Limiter verdicts.
const (
	LimiterAllowed    = "allowed"
	LimiterLimited    = "limited"
	LimiterFailedOpen = "failed_open"
)

func NewRecorder(reg *prometheus.Registry) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	reg.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	cacheRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "animehi",
		Subsystem: "cache",
		Name:      "requests_total",
		Help:      "Cache lookups by outcome (hit, miss, bypass).",
	}, []string{"outcome"})

	limiterDecisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "animehi",
		Subsystem: "ratelimit",
		Name:      "decisions_total",
		Help:      "Rate limiter verdicts by bucket.",
	}, []string{"bucket", "verdict"})

	reg.MustRegister(cacheRequests, limiterDecisions)

	return &Recorder{
		gatherer:         reg,
		handler:          promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		cacheRequests:    cacheRequests,
		limiterDecisions: limiterDecisions,
	}
}

// NewDefaultRecorder backs the recorder with its own private registry.
func NewDefaultRecorder() *Recorder {
	return NewRecorder(prometheus.NewRegistry())
}

func (r *Recorder) ObserveCache(outcome string) {
	if r == nil {
		return
	}
	r.cacheRequests.WithLabelValues(outcome).Inc()
}

func (r *Recorder) ObserveLimiter(bucket, verdict string) {
	if r == nil {
		return
	}
	r.limiterDecisions.WithLabelValues(bucket, verdict).Inc()
}

// Handler serves the text exposition format for this recorder's registry.
func (r *Recorder) Handler() http.Handler {
	return r.handler
}
