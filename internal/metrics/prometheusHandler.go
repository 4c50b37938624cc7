package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var documentsIndexed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "documents_indexed_total",
	Help: "Number of content indexes built from scratch",
})

var summariesGenerated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "summaries_generated_total",
	Help: "Number of per-segment summaries produced",
})

var summaryFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "summary_failures_total",
	Help: "Per-segment summarization failures that were skipped",
})

var activeSummaryPasses = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_summary_passes",
	Help: "Summarization passes currently running",
})

var activeWorkerCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_worker_count",
	Help: "Number of active workers",
})

var jobsInQueue = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "count_jobs_in_queue",
	Help: "Summarization jobs waiting for a worker",
})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30, 60, 120},
}, []string{"service"})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func IncrementDocumentsIndexed() { documentsIndexed.Inc() }

func IncrementSummariesGenerated() { summariesGenerated.Inc() }

func IncrementSummaryFailures() { summaryFailures.Inc() }

func IncrementActiveSummaryPasses() { activeSummaryPasses.Inc() }
func DecrementActiveSummaryPasses() { activeSummaryPasses.Dec() }

func IncrementActiveWorkerCount() { activeWorkerCount.Inc() }
func DecrementActiveWorkerCount() { activeWorkerCount.Dec() }

func IncrementJobsInQueue() { jobsInQueue.Inc() }
func DecrementJobsInQueue() { jobsInQueue.Dec() }
