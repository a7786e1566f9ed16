// Package export renders workouts into activity file formats understood by
// watches and training platforms.
package export

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/jengzang/workouts-backend-go/internal/models"
	"github.com/muktihari/fit/encoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	"github.com/muktihari/fit/proto"
)

// semicirclesPerDegree converts degrees to FIT semicircles (2^31 / 180)
const semicirclesPerDegree = 11930464.7111

// FIT encodes w as a single-session FIT activity file.
// The session starts at the workout's creation time and carries its distance,
// duration, start position and the variant metric (cadence or ascent).
func FIT(w models.Workout) ([]byte, error) {
	if w == nil {
		return nil, fmt.Errorf("workout cannot be nil")
	}

	start := w.CreatedAt()
	elapsedMs := clampUint32(w.DurationMin() * 60 * 1000)
	end := start.Add(time.Duration(elapsedMs) * time.Millisecond)

	fit := &proto.FIT{
		Messages: []proto.Message{},
	}

	fileID := mesgdef.NewFileId(nil).
		SetType(typedef.FileActivity).
		SetManufacturer(typedef.ManufacturerDevelopment).
		SetProduct(1).
		SetTimeCreated(start)
	fit.Messages = append(fit.Messages, fileID.ToMesg(nil))

	activity := mesgdef.NewActivity(nil).
		SetTimestamp(end).
		SetType(typedef.ActivityManual).
		SetNumSessions(1)
	fit.Messages = append(fit.Messages, activity.ToMesg(nil))

	session := mesgdef.NewSession(nil).
		SetTimestamp(end).
		SetStartTime(start).
		SetSport(sport(w.Type())).
		SetTotalElapsedTime(elapsedMs).
		SetTotalTimerTime(elapsedMs)

	// distance is stored in centimetres
	session.TotalDistance = clampUint32(w.DistanceKm() * 100_000)
	session.StartPositionLat = int32(math.Round(w.Coordinates().Lat() * semicirclesPerDegree))
	session.StartPositionLong = int32(math.Round(w.Coordinates().Lng() * semicirclesPerDegree))

	switch v := w.(type) {
	case *models.Running:
		// FIT cadence for running counts strides per minute, i.e. half the steps
		session.AvgCadence = clampUint8(v.CadenceSpm() / 2)
	case *models.Cycling:
		if v.ElevationGainM() > 0 {
			session.TotalAscent = clampUint16(v.ElevationGainM())
		}
	}
	fit.Messages = append(fit.Messages, session.ToMesg(nil))

	var buf bytes.Buffer
	if err := encoder.New(&buf).Encode(fit); err != nil {
		return nil, fmt.Errorf("failed to encode FIT file: %w", err)
	}
	return buf.Bytes(), nil
}

func sport(t models.WorkoutType) typedef.Sport {
	if t == models.TypeRunning {
		return typedef.SportRunning
	}
	return typedef.SportCycling
}

func clampUint8(v float64) uint8 {
	if v >= math.MaxUint8-1 {
		return math.MaxUint8 - 1
	}
	return uint8(math.Round(v))
}

func clampUint16(v float64) uint16 {
	if v >= math.MaxUint16-1 {
		return math.MaxUint16 - 1
	}
	return uint16(math.Round(v))
}

// clampUint32 caps v below the FIT invalid value 0xFFFFFFFF
func clampUint32(v float64) uint32 {
	if v >= math.MaxUint32-1 {
		return math.MaxUint32 - 1
	}
	return uint32(math.Round(v))
}
