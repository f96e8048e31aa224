package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	pipelinePassCnt = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_pass_total",
			Help: "How many pipeline passes ran, partitioned by task.",
		},
		[]string{"task"},
	)

	pipelineOrdersProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_orders_processed_total",
			Help: "How many orders pipeline passes completed, partitioned by task.",
		},
		[]string{"task"},
	)

	pipelineOrdersFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_orders_failed_total",
			Help: "How many orders pipeline passes failed, partitioned by task.",
		},
		[]string{"task"},
	)
)

func init() {
	prometheus.MustRegister(pipelinePassCnt, pipelineOrdersProcessed, pipelineOrdersFailed)
}

// ObservePipelinePass records one finished pass for a task, wherever it was
// driven from (scheduler tick or admin endpoint).
func ObservePipelinePass(task string, processed, failed int) {
	pipelinePassCnt.WithLabelValues(task).Inc()
	pipelineOrdersProcessed.WithLabelValues(task).Add(float64(processed))
	pipelineOrdersFailed.WithLabelValues(task).Add(float64(failed))
}
