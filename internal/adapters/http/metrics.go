package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	resolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tramita_resolutions_total",
			Help: "Total number of resolutions served, by kind",
		},
		[]string{"kind"},
	)
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "tramita_http_request_duration_seconds",
			Help: "Duration of HTTP requests",
		},
		[]string{"path", "method"},
	)
)

func init() {
	prometheus.MustRegister(resolutions, requestDuration)
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		requestDuration.WithLabelValues(r.URL.Path, r.Method).Observe(time.Since(start).Seconds())
	})
}
