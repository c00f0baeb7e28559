// Package metrics exposes prometheus collectors for HTTP traffic, auth outcomes and task mutations.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskmate_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskmate_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	authEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskmate_auth_events_total",
			Help: "Login and signup attempts by outcome",
		},
		[]string{"event", "outcome"},
	)

	taskMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskmate_task_mutations_total",
			Help: "Successful task mutations by operation",
		},
		[]string{"op"},
	)
)

// Auth events.
const (
	EventLogin  = "login"
	EventSignup = "signup"
	EventLogout = "logout"
)

// Auth outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeInvalid     = "invalid_input"
	OutcomeRejected    = "rejected"
	OutcomeServerError = "error"
)

// Middleware records request count and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry in the prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func ObserveAuth(event, outcome string) {
	authEventsTotal.WithLabelValues(event, outcome).Inc()
}

func ObserveTaskMutation(op string) {
	taskMutationsTotal.WithLabelValues(op).Inc()
}
