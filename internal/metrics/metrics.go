package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Profiling metrics
	ProfileDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kernex_profile_duration_us",
		Help:    "Duration of timed kernel executions in microseconds",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12), // 1us to ~4s
	}, []string{"variant", "dtype"})

	ProfileThroughput = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "kernex_profile_throughput_gbps",
		Help: "Effective memory bandwidth of the last profile run in GB/s",
	}, []string{"variant", "dtype"})

	ProfileRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kernex_profile_runs_total",
		Help: "Total number of kernel profile invocations",
	}, []string{"variant", "dtype"})

	// Correctness metrics
	VerifyChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kernex_verify_checks_total",
		Help: "Total number of correctness checks performed",
	}, []string{"variant", "dtype"})

	VerifyFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kernex_verify_failures_total",
		Help: "Total number of correctness checks that exceeded tolerance",
	}, []string{"variant", "dtype"})
)
