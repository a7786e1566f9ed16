// Package observability exposes Prometheus metrics for the workouts service.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workouts",
		Subsystem: "session",
		Name:      "created_total",
		Help:      "Workouts created from form submissions, by type.",
	}, []string{"type"})
	validationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workouts",
		Subsystem: "session",
		Name:      "validation_failures_total",
		Help:      "Form submissions rejected by input validation, by type.",
	}, []string{"type"})
	sessionResets = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workouts",
		Subsystem: "session",
		Name:      "resets_total",
		Help:      "Explicit session resets.",
	})
	storeFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workouts",
		Subsystem: "store",
		Name:      "failures_total",
		Help:      "Store operations that failed or were discarded, by reason.",
	}, []string{"reason"})
	storedWorkouts = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "workouts",
		Subsystem: "store",
		Name:      "stored_workouts",
		Help:      "Number of workouts in the most recent save.",
	})
	payloadBytes = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "workouts",
		Subsystem: "store",
		Name:      "payload_bytes",
		Help:      "Size of the most recently saved payload.",
	})
	lastSaved = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "workouts",
		Subsystem: "store",
		Name:      "last_saved_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful save.",
	})
)

func init() {
	prometheus.MustRegister(
		workoutsCreated,
		validationFailures,
		sessionResets,
		storeFailures,
		storedWorkouts,
		payloadBytes,
		lastSaved,
	)
}

// RecordWorkoutCreated counts one created workout of the given type
func RecordWorkoutCreated(workoutType string) {
	workoutsCreated.WithLabelValues(workoutType).Inc()
}

// RecordValidationFailure counts one rejected submission
func RecordValidationFailure(workoutType string) {
	validationFailures.WithLabelValues(workoutType).Inc()
}

// RecordReset counts one session reset
func RecordReset() {
	sessionResets.Inc()
}

// RecordStoreFailure counts one failed or discarded store operation
func RecordStoreFailure(reason string) {
	storeFailures.WithLabelValues(reason).Inc()
}

// RecordStoreSaved updates the save watermark gauges
func RecordStoreSaved(count, bytes int) {
	storedWorkouts.Set(float64(count))
	payloadBytes.Set(float64(bytes))
	lastSaved.Set(float64(time.Now().Unix()))
}
