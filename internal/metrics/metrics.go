// internal/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers the request-level and lifecycle counters exposed on
// /metrics.
type Collector struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     prometheus.Histogram
	applicationsCreated prometheus.Counter
	opportunitiesFilled prometheus.Counter
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shadowmatch_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "shadowmatch_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		applicationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shadowmatch_applications_created_total",
			Help: "Applications successfully created.",
		}),
		opportunitiesFilled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shadowmatch_opportunities_filled_total",
			Help: "Opportunities moved to Filled by an acceptance.",
		}),
	}

	reg.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.applicationsCreated,
		c.opportunitiesFilled,
	)

	return c
}

func (c *Collector) RecordApplicationCreated() { c.applicationsCreated.Inc() }
func (c *Collector) RecordOpportunityFilled()  { c.opportunitiesFilled.Inc() }

// Middleware records request counts and latency.
func (c *Collector) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				c.requestsTotal.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
				c.requestDuration.Observe(time.Since(start).Seconds())
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// Handler serves the prometheus scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
