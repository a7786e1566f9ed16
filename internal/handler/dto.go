package handler

import (
	"math"

	"github.com/jengzang/workouts-backend-go/internal/models"
	"github.com/jengzang/workouts-backend-go/internal/service"
)

// WorkoutRequest is the body of POST /api/v1/workouts.
// A null or missing number reaches validation as NaN.
type WorkoutRequest struct {
	Type      models.WorkoutType `json:"type" binding:"required"`
	Distance  *float64           `json:"distance"`
	Duration  *float64           `json:"duration"`
	Cadence   *float64           `json:"cadence"`
	Elevation *float64           `json:"elevation"`
}

// FormInput converts the request for the session
func (r WorkoutRequest) FormInput() service.FormInput {
	return service.FormInput{
		Type:           r.Type,
		DistanceKm:     orNaN(r.Distance),
		DurationMin:    orNaN(r.Duration),
		CadenceSpm:     orNaN(r.Cadence),
		ElevationGainM: orNaN(r.Elevation),
	}
}

// PositionRequest is a map click or a position report from the browser
type PositionRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
	// Error is set instead of coordinates when the browser could not locate the user
	Error string `json:"error"`
}

// Coordinates returns the reported pair, or false when either half is missing
func (r PositionRequest) Coordinates() (models.Coordinates, bool) {
	if r.Lat == nil || r.Lng == nil {
		return models.Coordinates{}, false
	}
	return models.Coordinates{*r.Lat, *r.Lng}, true
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
