package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordWorkoutCreated(t *testing.T) {
	before := testutil.ToFloat64(workoutsCreated.WithLabelValues("running"))
	RecordWorkoutCreated("running")
	RecordWorkoutCreated("running")
	assert.Equal(t, before+2, testutil.ToFloat64(workoutsCreated.WithLabelValues("running")))
}

func TestRecordStoreSaved(t *testing.T) {
	RecordStoreSaved(3, 512)
	assert.Equal(t, 3.0, testutil.ToFloat64(storedWorkouts))
	assert.Equal(t, 512.0, testutil.ToFloat64(payloadBytes))
	assert.Positive(t, testutil.ToFloat64(lastSaved))
}
