package accel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	poolBorrows = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bowyer_handle_pool_borrows_total",
		Help: "Total number of solver handles borrowed from the pool",
	})

	poolBorrowFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bowyer_handle_pool_borrow_failures_total",
		Help: "Total number of failed handle borrow attempts",
	})

	poolHandlesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bowyer_handle_pool_handles_created_total",
		Help: "Total number of solver handles created on demand",
	})

	poolHandlesInUse = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bowyer_handle_pool_handles_in_use",
		Help: "Current number of solver handles checked out of the pool",
	})
)
