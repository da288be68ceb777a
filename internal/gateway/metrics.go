package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	exchangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sealgate_exchanges_total",
		Help: "Exchange requests by outcome.",
	}, []string{"outcome"})

	exchangeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sealgate_exchange_duration_seconds",
		Help:    "Wall time of the unwrap-decrypt-encrypt cycle.",
		Buckets: prometheus.DefBuckets,
	})
)
