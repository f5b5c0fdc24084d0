package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// rangeComputations counts range computations by result ("ok", "rejected").
	rangeComputations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vinom_range_computations_total",
		Help: "Total movement range computations by result",
	}, []string{"result"})

	rangeComputationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vinom_range_computation_duration_seconds",
		Help:    "Movement range computation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14), // 10µs to ~80ms
	})

	reachableCells = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vinom_range_reachable_cells",
		Help:    "Number of reachable cells per computed range",
		Buckets: prometheus.LinearBuckets(0, 10, 10),
	})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vinom_range_active_sessions",
		Help: "Players currently holding a range session",
	})
)

const (
	resultOK       = "ok"
	resultRejected = "rejected"
)
