package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	cacheSize prometheus.GaugeFunc
}

func newMetrics(reg prometheus.Registerer, cacheSize func() float64) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "apilens",
			Name:      "http_requests_total",
			Help:      "Requests handled, by route and status code.",
		}, []string{"route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "apilens",
			Name:      "http_request_duration_seconds",
			Help:      "Request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		cacheSize: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "apilens",
			Name:      "detection_cache_entries",
			Help:      "Entries currently held by the detection cache.",
		}, cacheSize),
	}
	reg.MustRegister(m.requests, m.duration, m.cacheSize)
	return m
}
