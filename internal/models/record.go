package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/jengzang/workouts-backend-go/internal/validate"
)

// ErrMalformedRecord is returned when a stored record cannot be turned back into a workout
var ErrMalformedRecord = errors.New("malformed workout record")

// WorkoutRecord is the plain stored form of a workout.
// Variant fields are pointers so that a zero elevation survives omitempty.
type WorkoutRecord struct {
	ID               string      `json:"id"`
	CreatedAt        time.Time   `json:"createdAt"`
	Coordinates      Coordinates `json:"coordinates"`
	DistanceKm       float64     `json:"distanceKm"`
	DurationMin      float64     `json:"durationMin"`
	Type             WorkoutType `json:"type"`
	CadenceSpm       *float64    `json:"cadenceSpm,omitempty"`
	ElevationGainM   *float64    `json:"elevationGainM,omitempty"`
	PaceMinPerKm     *float64    `json:"paceMinPerKm,omitempty"`
	SpeedKmPerHour   *float64    `json:"speedKmPerHour,omitempty"`
	Description      string      `json:"description"`
	InteractionCount int         `json:"interactionCount"`
}

// ToRecord flattens a workout into its stored form
func ToRecord(w Workout) WorkoutRecord {
	rec := WorkoutRecord{
		ID:               w.ID(),
		CreatedAt:        w.CreatedAt(),
		Coordinates:      w.Coordinates(),
		DistanceKm:       w.DistanceKm(),
		DurationMin:      w.DurationMin(),
		Type:             w.Type(),
		Description:      w.Description(),
		InteractionCount: w.InteractionCount(),
	}

	switch v := w.(type) {
	case *Running:
		cadence, pace := v.cadenceSpm, v.paceMinPerKm
		rec.CadenceSpm = &cadence
		rec.PaceMinPerKm = &pace
	case *Cycling:
		elevation, speed := v.elevationGainM, v.speedKmPerHour
		rec.ElevationGainM = &elevation
		rec.SpeedKmPerHour = &speed
	}

	return rec
}

// Workout rebuilds the variant named by the record's type tag.
// Stored derived values are restored as-is; they are only derived again
// when the record does not carry them. Stored inputs must pass the same
// gates as a form submission.
func (r WorkoutRecord) Workout() (Workout, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrMalformedRecord)
	}

	b := base{
		id:               r.ID,
		createdAt:        r.CreatedAt,
		coordinates:      r.Coordinates,
		distanceKm:       r.DistanceKm,
		durationMin:      r.DurationMin,
		description:      r.Description,
		interactionCount: r.InteractionCount,
	}
	if b.description == "" {
		b.description = describe(r.Type, r.CreatedAt)
	}

	switch r.Type {
	case TypeRunning:
		if r.CadenceSpm == nil {
			return nil, fmt.Errorf("%w: running workout %s has no cadence", ErrMalformedRecord, r.ID)
		}
		if err := validate.Running(r.DistanceKm, r.DurationMin, *r.CadenceSpm); err != nil {
			return nil, fmt.Errorf("%w: running workout %s: %v", ErrMalformedRecord, r.ID, err)
		}
		run := &Running{base: b, cadenceSpm: *r.CadenceSpm}
		if r.PaceMinPerKm != nil {
			run.paceMinPerKm = *r.PaceMinPerKm
		} else {
			run.paceMinPerKm = r.DurationMin / r.DistanceKm
		}
		if !validate.AllFinite(run.paceMinPerKm) {
			return nil, fmt.Errorf("%w: running workout %s has pace %v", ErrMalformedRecord, r.ID, run.paceMinPerKm)
		}
		return run, nil
	case TypeCycling:
		if r.ElevationGainM == nil {
			return nil, fmt.Errorf("%w: cycling workout %s has no elevation gain", ErrMalformedRecord, r.ID)
		}
		if err := validate.Cycling(r.DistanceKm, r.DurationMin, *r.ElevationGainM); err != nil {
			return nil, fmt.Errorf("%w: cycling workout %s: %v", ErrMalformedRecord, r.ID, err)
		}
		cyc := &Cycling{base: b, elevationGainM: *r.ElevationGainM}
		if r.SpeedKmPerHour != nil {
			cyc.speedKmPerHour = *r.SpeedKmPerHour
		} else {
			cyc.speedKmPerHour = r.DistanceKm / (r.DurationMin / 60)
		}
		if !validate.AllFinite(cyc.speedKmPerHour) {
			return nil, fmt.Errorf("%w: cycling workout %s has speed %v", ErrMalformedRecord, r.ID, cyc.speedKmPerHour)
		}
		return cyc, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrMalformedRecord, r.Type)
	}
}
