package metrics

import (
	"net/http"

	"github.com/ErlanBelekov/bookstore-catalog/internal/health"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Catalog metrics

	TokensIssuedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catalog",
		Name:      "tokens_issued_total",
		Help:      "Token requests, by outcome (issued or rejected).",
	}, []string{"outcome"})

	Sellers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "catalog",
		Name:      "sellers",
		Help:      "Number of registered sellers at the last stats refresh.",
	})

	Books = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "catalog",
		Name:      "books",
		Help:      "Number of listed books at the last stats refresh.",
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "catalog",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catalog",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		TokensIssuedTotal,
		Sellers,
		Books,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// NewServer serves /metrics plus liveness and readiness probes on a port
// separate from the public API.
func NewServer(addr string, checker *health.Checker) *http.Server {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, checker.Liveness(c.Request.Context()))
	})
	r.GET("/readyz", func(c *gin.Context) {
		result := checker.Readiness(c.Request.Context())
		status := http.StatusOK
		if result.Status != health.StatusUp {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, result)
	})
	return &http.Server{Addr: addr, Handler: r}
}
