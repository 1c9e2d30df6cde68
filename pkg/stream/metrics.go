package stream

import "github.com/prometheus/client_golang/prometheus"

const (
	metricsNamespace = "gostream"
	metricsSubsystem = "pipeline"
)

var (
	chunksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "chunks_total",
		Help:      "Number of chunks handed between pipeline workers and their owners",
	}, []string{"direction"})

	bytesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "bytes_total",
		Help:      "Number of uncompressed bytes handed between pipeline workers and their owners",
	}, []string{"direction"})

	faultsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "faults_total",
		Help:      "Number of pipeline workers that terminated with a fault",
	}, []string{"direction"})

	workerDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "worker_duration_seconds",
		Help:      "Lifetime of pipeline worker goroutines",
		Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
	}, []string{"direction"})
)

func init() {
	prometheus.MustRegister(
		chunksTotal,
		bytesTotal,
		faultsTotal,
		workerDuration,
	)
}
