package router

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/hearth-budget/backend/internal/rates"
	"github.com/hearth-budget/backend/internal/wizard"
	"github.com/prometheus/client_golang/prometheus"
)

// URLMiddleware sets the API base URL on the context so that handlers
// can build links to other resources.
func URLMiddleware(url *url.URL) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(models.DBContextURL), url.String())
		c.Next()
	}
}

var requestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "requests_total",
		Help: "How many HTTP requests processed, partitioned by status code, HTTP method and route.",
	},
	[]string{"code", "method", "url"},
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "request_duration_seconds",
		Help: "The HTTP request latencies in seconds.",
	},
	[]string{"code", "method", "url"},
)

// collectors returns all Prometheus collectors exposed on /metrics.
func collectors() []prometheus.Collector {
	c := []prometheus.Collector{requestCount, requestDuration}
	c = append(c, rates.Collectors...)
	return append(c, wizard.Collectors...)
}

// registerPrometheusMetrics registers all Prometheus metrics
// with the default registry.
//
// Collectors that are already registered are skipped.
func registerPrometheusMetrics() error {
	for _, c := range collectors() {
		err := prometheus.Register(c)
		if err == nil {
			continue
		}

		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			continue
		}

		return fmt.Errorf("could not register %T with Prometheus: %w", c, err)
	}

	return nil
}

// unregisterPrometheusMetrics unregisters all Prometheus metrics.
//
// This is needed to cleanly exit and to configure multiple routers in tests.
func unregisterPrometheusMetrics() {
	for _, c := range collectors() {
		prometheus.Unregister(c)
	}
}

// MetricsMiddleware updates Prometheus metrics.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		elapsed := time.Since(start).Seconds()

		// Replace all URL parameters with their name to reduce cardinality
		// https://prometheus.io/docs/practices/naming/#labels
		url := c.Request.URL.Path
		for _, p := range c.Params {
			url = strings.Replace(url, p.Value, fmt.Sprintf(":%s", p.Key), 1)
		}

		requestDuration.WithLabelValues(status, c.Request.Method, url).Observe(elapsed)
		requestCount.WithLabelValues(status, c.Request.Method, url).Inc()
	}
}
