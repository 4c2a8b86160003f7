package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dealership_http_requests_total",
		Help: "Requisições HTTP por rota e status",
	}, []string{"method", "path", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dealership_http_request_duration_seconds",
		Help:    "Duração das requisições HTTP por rota",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// RouteMetrics instrumenta uma rota. path é o padrão registrado no router,
// não a URL recebida, para manter a cardinalidade dos labels fixa
func RouteMetrics(method, path string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.statusCode)).Inc()
			httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		})
	}
}
