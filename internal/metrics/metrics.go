package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "productivity_http_requests_total",
		Help: "HTTP requests handled, by method, route and status.",
	}, []string{"method", "route", "status"})

	// TypingTestsSubmitted counts successfully persisted typing samples
	TypingTestsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "productivity_typing_tests_submitted_total",
		Help: "Typing test samples successfully submitted.",
	})

	// LoginsTotal counts successful identity resolutions
	LoginsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "productivity_logins_total",
		Help: "Successful logins via the identity provider.",
	})
)

// Middleware counts every handled request
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}

// Handler exposes the prometheus scrape endpoint
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
