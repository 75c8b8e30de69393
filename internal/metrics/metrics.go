package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const AnalysisServiceSubsystem = "akiya_analysis"

const (
	HTTPRequestDurationKey = "http_request_duration_seconds"
	AnalysisRunsTotalKey   = "analysis_runs_total"
)

var (
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: AnalysisServiceSubsystem,
		Name:      HTTPRequestDurationKey,
		Help:      "How long a single HTTP request takes in seconds.",
	}, []string{"method", "path", "status"})

	AnalysisRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: AnalysisServiceSubsystem,
		Name:      AnalysisRunsTotalKey,
		Help:      "How many market analyses have been executed per area.",
	}, []string{"area"})
)

func init() {
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(AnalysisRunsTotal)
}
