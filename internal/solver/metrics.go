package solver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	buildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bowyer_descriptor_builds_total",
		Help: "Total number of descriptor builds, by operation",
	}, []string{"op"})

	buildFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bowyer_descriptor_build_failures_total",
		Help: "Total number of failed descriptor builds, by operation",
	}, []string{"op"})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bowyer_descriptor_cache_hits_total",
		Help: "Total number of descriptor builds served from the cache",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bowyer_descriptor_cache_misses_total",
		Help: "Total number of descriptor builds that missed the cache",
	})
)
