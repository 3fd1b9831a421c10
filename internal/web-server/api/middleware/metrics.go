package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	totalRequests   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		totalRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "webapp",
				Name:      "http_total_requests",
				Help:      "Total number of requests",
			},
			[]string{"code", "method", "route"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "webapp",
				Name:      "http_request_duration_seconds",
				Help:      "Duration taken to complete http request",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"code", "method", "route"},
		),
	}
	for _, c := range []prometheus.Collector{m.totalRequests, m.requestDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		labels := prometheus.Labels{
			"code":   strconv.Itoa(c.Writer.Status()),
			"method": c.Request.Method,
			"route":  route,
		}
		m.totalRequests.With(labels).Inc()
		m.requestDuration.With(labels).Observe(time.Since(start).Seconds())
	}
}
