package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapty",
		Subsystem: "workouts",
		Name:      "created_total",
		Help:      "Workouts created from form submissions, by type.",
	}, []string{"type"})
	submissionsRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mapty",
		Subsystem: "workouts",
		Name:      "rejected_total",
		Help:      "Form submissions rejected by input validation.",
	})
	storageFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapty",
		Subsystem: "storage",
		Name:      "failures_total",
		Help:      "Storage slot operations that failed, by operation.",
	}, []string{"op"})
)

func init() {
	prometheus.MustRegister(workoutsCreated, submissionsRejected, storageFailures)
}

func RecordWorkoutCreated(kind string) {
	workoutsCreated.WithLabelValues(kind).Inc()
}

func RecordSubmissionRejected() {
	submissionsRejected.Inc()
}

// RecordStorageFailure counts a failed save, load or clear.
func RecordStorageFailure(op string) {
	storageFailures.WithLabelValues(op).Inc()
}
