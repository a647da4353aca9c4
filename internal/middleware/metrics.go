package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/kit/metrics"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the HTTP request instruments.
type Metrics struct {
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

// NewMetrics creates the request counter and latency summary and registers
// them with reg.
func NewMetrics(reg stdprometheus.Registerer) (*Metrics, error) {
	fieldKeys := []string{"method", "route", "status"}

	count := stdprometheus.NewCounterVec(stdprometheus.CounterOpts{
		Namespace: "task_tracker",
		Subsystem: "http",
		Name:      "request_count",
		Help:      "Number of requests received.",
	}, fieldKeys)
	latency := stdprometheus.NewSummaryVec(stdprometheus.SummaryOpts{
		Namespace: "task_tracker",
		Subsystem: "http",
		Name:      "request_latency_seconds",
		Help:      "Total duration of requests in seconds.",
	}, fieldKeys)

	for _, c := range []stdprometheus.Collector{count, latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return &Metrics{
		requestCount:   kitprometheus.NewCounter(count),
		requestLatency: kitprometheus.NewSummary(latency),
	}, nil
}

// Instrument records count and latency for every request.
func (m *Metrics) Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()

		lvs := []string{
			"method", c.Request.Method,
			"route", routeOf(c),
			"status", strconv.Itoa(c.Writer.Status()),
		}
		m.requestCount.With(lvs...).Add(1)
		m.requestLatency.With(lvs...).Observe(time.Since(begin).Seconds())
	}
}
