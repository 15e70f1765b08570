package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "budgetxp",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "budgetxp",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	xpGrants = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "budgetxp",
			Subsystem: "progression",
			Name:      "xp_grants_total",
			Help:      "XP grant attempts by outcome.",
		},
		[]string{"outcome"},
	)

	xpGranted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "budgetxp",
			Subsystem: "progression",
			Name:      "xp_granted_total",
			Help:      "Total XP credited to users.",
		},
	)

	levelUps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "budgetxp",
			Subsystem: "progression",
			Name:      "level_ups_total",
			Help:      "Total level-ups applied.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		xpGrants,
		xpGranted,
		levelUps,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordGrant counts a committed grant.
func RecordGrant(amount int64, levelsGained int) {
	xpGrants.WithLabelValues("ok").Inc()
	xpGranted.Add(float64(amount))
	if levelsGained > 0 {
		levelUps.Add(float64(levelsGained))
	}
}

// RecordGrantFailure counts a grant that did not commit. outcome is a short label such as "not_found".
func RecordGrantFailure(outcome string) {
	xpGrants.WithLabelValues(outcome).Inc()
}

// Middleware records request counts and latency per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
