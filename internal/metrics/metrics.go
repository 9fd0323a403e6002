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

var tasksInQueue = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "tasks_in_queue",
	Help: "Number of deferred tasks waiting for a worker",
})

var dispatcherSignalCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "dispatcher_signal_count",
	Help: "How often the dispatcher has been signalled to add a worker",
})

var activeWorkerCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_worker_count",
	Help: "Number of active workers",
})

var taskDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "task_duration_seconds",
	Help:    "Total time spent executing one deferred task.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30},
}, []string{"kind", "outcome"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"service"})

// HttpStatusRecorder lets the middleware label request counts with the
// final status code.
type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementTasksInQueue()      { tasksInQueue.Inc() }
func DecrementTasksInQueue()      { tasksInQueue.Dec() }
func IncrementDispatcherSignal()  { dispatcherSignalCount.Inc() }
func IncrementActiveWorkerCount() { activeWorkerCount.Inc() }
func DecrementActiveWorkerCount() { activeWorkerCount.Dec() }

func CaptureTaskMetrics(kind string, outcome string, elapsed time.Duration) {
	taskDuration.WithLabelValues(kind, outcome).Observe(elapsed.Seconds())
}

func CaptureDependencyLatency(service string, elapsed time.Duration) {
	dependencyLatency.WithLabelValues(service).Observe(elapsed.Seconds())
}
