package export

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/jengzang/workouts-backend-go/internal/models"
	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2025, time.April, 14, 9, 30, 0, 0, time.UTC)

func decodeSession(t *testing.T, data []byte) *mesgdef.Session {
	t.Helper()

	dec := decoder.New(bytes.NewReader(data))
	var session *mesgdef.Session
	for dec.Next() {
		fit, err := dec.Decode()
		require.NoError(t, err)
		for _, msg := range fit.Messages {
			if msg.Num == typedef.MesgNumSession {
				session = mesgdef.NewSession(&msg)
			}
		}
	}
	require.NotNil(t, session, "no session message")
	return session
}

func TestFITRunning(t *testing.T) {
	run := models.NewRunningAt("run-1", created, models.Coordinates{51.5, -0.1}, 5, 25, 178)

	data, err := FIT(run)
	require.NoError(t, err)

	session := decodeSession(t, data)
	assert.Equal(t, typedef.SportRunning, session.Sport)
	assert.Equal(t, uint32(500_000), session.TotalDistance)
	assert.Equal(t, uint32(25*60*1000), session.TotalElapsedTime)
	assert.Equal(t, uint8(89), session.AvgCadence)
	assert.True(t, created.Equal(session.StartTime))
	assert.InDelta(t, 51.5, float64(session.StartPositionLat)/semicirclesPerDegree, 1e-6)
}

func TestFITCycling(t *testing.T) {
	cyc := models.NewCyclingAt("cyc-1", created, models.Coordinates{48.85, 2.35}, 20, 60, 240)

	data, err := FIT(cyc)
	require.NoError(t, err)

	session := decodeSession(t, data)
	assert.Equal(t, typedef.SportCycling, session.Sport)
	assert.Equal(t, uint32(2_000_000), session.TotalDistance)
	assert.Equal(t, uint16(240), session.TotalAscent)
}

func TestFITClampsOversizedValues(t *testing.T) {
	run := models.NewRunningAt("run-far", created, models.Coordinates{51.5, -0.1}, 50_000, 80_000, 170)

	data, err := FIT(run)
	require.NoError(t, err)

	session := decodeSession(t, data)
	assert.Equal(t, uint32(math.MaxUint32-1), session.TotalDistance)
	assert.Equal(t, uint32(math.MaxUint32-1), session.TotalElapsedTime)
	assert.Equal(t, uint32(math.MaxUint32-1), session.TotalTimerTime)
}

func TestClampUint32(t *testing.T) {
	assert.Equal(t, uint32(12), clampUint32(12.4))
	assert.Equal(t, uint32(math.MaxUint32-1), clampUint32(math.MaxUint32))
	assert.Equal(t, uint32(math.MaxUint32-1), clampUint32(1e12))
}

func TestFITNil(t *testing.T) {
	_, err := FIT(nil)
	assert.Error(t, err)
}
