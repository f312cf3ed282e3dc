package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "leetlens"

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheStale = "stale"
)

// Recorder owns the Prometheus collectors of the service. A nil *Recorder is
// valid and records nothing, which keeps tests free of registry setup.
type Recorder struct {
	registry *prometheus.Registry

	cacheLookups   *prometheus.CounterVec
	upstreamFetch  *prometheus.CounterVec
	llmAttempts    *prometheus.CounterVec
	analyses       *prometheus.CounterVec
	llmTokens      *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
	upstreamTiming prometheus.Histogram
}

// NewRecorder registers every collector on a dedicated registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto := promauto.With(registry)

	return &Recorder{
		registry: registry,
		cacheLookups: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "profile",
			Name:      "cache_lookups_total",
			Help:      "Profile cache lookups by result.",
		}, []string{"result"}),
		upstreamFetch: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "profile",
			Name:      "upstream_fetches_total",
			Help:      "GraphQL profile fetches by outcome.",
		}, []string{"outcome"}),
		upstreamTiming: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "profile",
			Name:      "upstream_fetch_seconds",
			Help:      "Latency of GraphQL profile fetches.",
			Buckets:   prometheus.DefBuckets,
		}),
		llmAttempts: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "llm_attempts_total",
			Help:      "Chat completion attempts by credential slot and outcome.",
		}, []string{"credential", "outcome"}),
		analyses: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "results_total",
			Help:      "Analysis results by outcome.",
		}, []string{"outcome"}),
		llmTokens: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "llm_tokens_total",
			Help:      "LLM tokens consumed by kind.",
		}, []string{"kind"}),
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"route", "status"}),
		httpLatency: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) CacheLookup(result string) {
	if r == nil {
		return
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

func (r *Recorder) UpstreamFetch(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.upstreamFetch.WithLabelValues(outcome).Inc()
	r.upstreamTiming.Observe(elapsed.Seconds())
}

func (r *Recorder) LLMAttempt(credential int, outcome string) {
	if r == nil {
		return
	}
	r.llmAttempts.WithLabelValues(strconv.Itoa(credential), outcome).Inc()
}

func (r *Recorder) Analysis(outcome string) {
	if r == nil {
		return
	}
	r.analyses.WithLabelValues(outcome).Inc()
}

func (r *Recorder) Tokens(usage TokenUsage) {
	if r == nil || usage.IsZero() {
		return
	}
	r.llmTokens.WithLabelValues("prompt").Add(float64(usage.PromptTokens))
	r.llmTokens.WithLabelValues("completion").Add(float64(usage.CompletionTokens))
}

func (r *Recorder) HTTPRequest(route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	r.httpLatency.WithLabelValues(route).Observe(elapsed.Seconds())
}
