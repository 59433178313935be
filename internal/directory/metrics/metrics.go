package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the directory module: mutation counts
// and projection latency.
type Metrics struct {
	Mutations          *prometheus.CounterVec
	ProjectionDuration prometheus.Histogram
	BulkGroupAddSize   prometheus.Histogram
}

// New creates a Metrics instance with all directory metrics registered.
func New() *Metrics {
	return &Metrics{
		Mutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "druid_directory_mutations_total",
			Help: "Total number of entity store mutations, by operation",
		}, []string{"operation"}),
		ProjectionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "druid_directory_projection_duration_seconds",
			Help:    "Duration of derived view projections",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		BulkGroupAddSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "druid_directory_bulk_group_add_size",
			Help:    "Number of persons touched by a bulk group add",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		}),
	}
}

// IncrementMutation records one store mutation for the named operation.
func (m *Metrics) IncrementMutation(operation string) {
	m.Mutations.WithLabelValues(operation).Inc()
}

// ObserveProjection records the duration of a projection.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveProjection(start time.Time) {
	m.ProjectionDuration.Observe(time.Since(start).Seconds())
}

// ObserveBulkGroupAdd records how many persons a bulk add touched.
func (m *Metrics) ObserveBulkGroupAdd(size int) {
	m.BulkGroupAddSize.Observe(float64(size))
}
