// Package metrics collects Prometheus metrics for the joke service and
// serves them for scraping.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements service.Recorder and the HTTP request metrics.
type Collector struct {
	jokesServed      prometheus.Counter
	categoryFallback prometheus.Counter
	jokesSubmitted   prometheus.Counter
	submitRejected   *prometheus.CounterVec
	storeSize        prometheus.Gauge
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg.
// Tests pass a fresh prometheus.NewRegistry() so runs never collide.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		jokesServed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jokebox_jokes_served_total",
			Help: "Total number of jokes returned by fetch requests.",
		}),
		categoryFallback: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jokebox_category_fallback_total",
			Help: "Fetches whose category matched nothing and drew from the whole store.",
		}),
		jokesSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jokebox_jokes_submitted_total",
			Help: "Total number of jokes accepted by submit requests.",
		}),
		submitRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jokebox_submit_rejected_total",
			Help: "Submissions rejected by validation, by reason.",
		}, []string{"reason"}),
		storeSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jokebox_store_jokes",
			Help: "Number of jokes in the store at the last read.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jokebox_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jokebox_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.jokesServed,
		c.categoryFallback,
		c.jokesSubmitted,
		c.submitRejected,
		c.storeSize,
		c.httpRequests,
		c.httpDuration,
	)

	return c
}

func (c *Collector) JokesServed(n int) {
	c.jokesServed.Add(float64(n))
}

func (c *Collector) CategoryFallback() {
	c.categoryFallback.Inc()
}

func (c *Collector) JokeSubmitted() {
	c.jokesSubmitted.Inc()
}

func (c *Collector) SubmitRejected(reason string) {
	c.submitRejected.WithLabelValues(reason).Inc()
}

func (c *Collector) StoreSize(n int) {
	c.storeSize.Set(float64(n))
}

// Middleware records a request counter and a latency histogram for every request.
//
// The route label is chi's route pattern ("/api/jokes"), not the raw path, so
// static file names and query strings cannot blow up label cardinality.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		c.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		c.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
