package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "joeadvisor_recommendations_total",
		Help: "Recommendation requests by outcome.",
	}, []string{"status"})

	IncompleteFieldsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "joeadvisor_incomplete_fields_total",
		Help: "Missing fields seen on rejected recommendation requests.",
	}, []string{"field"})

	InferenceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "joeadvisor_inference_duration_seconds",
		Help:    "Time spent waiting on the inference service.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
	}, []string{"model"})
)
