package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WorkoutType is the tag that distinguishes workout variants
type WorkoutType string

const (
	TypeRunning WorkoutType = "running"
	TypeCycling WorkoutType = "cycling"
)

// Valid reports whether t names a known variant
func (t WorkoutType) Valid() bool {
	return t == TypeRunning || t == TypeCycling
}

// Label returns the display label of the type, e.g. "Running"
func (t WorkoutType) Label() string {
	return cases.Title(language.English).String(string(t))
}

// Coordinates is a [latitude, longitude] pair in degrees
type Coordinates [2]float64

// Lat returns the latitude in degrees
func (c Coordinates) Lat() float64 { return c[0] }

// Lng returns the longitude in degrees
func (c Coordinates) Lng() float64 { return c[1] }

// Workout is one recorded exercise session.
// Implemented by *Running and *Cycling; callers branch on Type().
type Workout interface {
	ID() string
	Type() WorkoutType
	CreatedAt() time.Time
	Coordinates() Coordinates
	DistanceKm() float64
	DurationMin() float64
	Description() string
	InteractionCount() int
	RecordInteraction()
}

// base holds the fields shared by every variant. Everything except
// interactionCount is fixed once the workout is constructed.
type base struct {
	id               string
	createdAt        time.Time
	coordinates      Coordinates
	distanceKm       float64
	durationMin      float64
	description      string
	interactionCount int
}

func newBase(t WorkoutType, id string, createdAt time.Time, coords Coordinates, distanceKm, durationMin float64) base {
	return base{
		id:          id,
		createdAt:   createdAt.Round(0).UTC(),
		coordinates: coords,
		distanceKm:  distanceKm,
		durationMin: durationMin,
		description: describe(t, createdAt),
	}
}

// describe renders "<Label> on <Month> <day>" using the creation time's own location
func describe(t WorkoutType, createdAt time.Time) string {
	return fmt.Sprintf("%s on %s %d", t.Label(), createdAt.Month(), createdAt.Day())
}

func (b *base) ID() string { return b.id }
func (b *base) CreatedAt() time.Time { return b.createdAt }
func (b *base) Coordinates() Coordinates { return b.coordinates }
func (b *base) DistanceKm() float64 { return b.distanceKm }
func (b *base) DurationMin() float64 { return b.durationMin }
func (b *base) Description() string { return b.description }
func (b *base) InteractionCount() int { return b.interactionCount }

// RecordInteraction counts one selection of the workout in the list
func (b *base) RecordInteraction() { b.interactionCount++ }

// Running is a running workout with cadence and pace
type Running struct {
	base
	cadenceSpm   float64
	paceMinPerKm float64
}

// NewRunning creates a running workout recorded now.
// Inputs are not validated here; see package validate.
func NewRunning(coords Coordinates, distanceKm, durationMin, cadenceSpm float64) *Running {
	return NewRunningAt(uuid.NewString(), time.Now(), coords, distanceKm, durationMin, cadenceSpm)
}

// NewRunningAt creates a running workout with an explicit id and creation time
func NewRunningAt(id string, createdAt time.Time, coords Coordinates, distanceKm, durationMin, cadenceSpm float64) *Running {
	return &Running{
		base:         newBase(TypeRunning, id, createdAt, coords, distanceKm, durationMin),
		cadenceSpm:   cadenceSpm,
		paceMinPerKm: durationMin / distanceKm,
	}
}

func (r *Running) Type() WorkoutType { return TypeRunning }
func (r *Running) CadenceSpm() float64 { return r.cadenceSpm }
func (r *Running) PaceMinPerKm() float64 { return r.paceMinPerKm }

// Cycling is a cycling workout with elevation gain and speed
type Cycling struct {
	base
	elevationGainM float64
	speedKmPerHour float64
}

// NewCycling creates a cycling workout recorded now.
// elevationGainM may be zero or negative.
func NewCycling(coords Coordinates, distanceKm, durationMin, elevationGainM float64) *Cycling {
	return NewCyclingAt(uuid.NewString(), time.Now(), coords, distanceKm, durationMin, elevationGainM)
}

// NewCyclingAt creates a cycling workout with an explicit id and creation time
func NewCyclingAt(id string, createdAt time.Time, coords Coordinates, distanceKm, durationMin, elevationGainM float64) *Cycling {
	return &Cycling{
		base:           newBase(TypeCycling, id, createdAt, coords, distanceKm, durationMin),
		elevationGainM: elevationGainM,
		speedKmPerHour: distanceKm / (durationMin / 60),
	}
}

func (c *Cycling) Type() WorkoutType { return TypeCycling }
func (c *Cycling) ElevationGainM() float64 { return c.elevationGainM }
func (c *Cycling) SpeedKmPerHour() float64 { return c.speedKmPerHour }
