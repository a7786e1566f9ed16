// Package validate holds the input checks applied before a workout is created.
package validate

import (
	"errors"
	"math"
)

// ErrInvalidInput is returned when a form value is not a usable number
var ErrInvalidInput = errors.New("inputs have to be positive numbers")

// AllFinite reports whether every value is a finite number (not NaN, not ±Inf)
func AllFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// AllPositive reports whether every value is strictly greater than zero
func AllPositive(values ...float64) bool {
	for _, v := range values {
		if !(v > 0) {
			return false
		}
	}
	return true
}

// Running gates a running workout: every input finite and positive
func Running(distanceKm, durationMin, cadenceSpm float64) error {
	if !AllFinite(distanceKm, durationMin, cadenceSpm) || !AllPositive(distanceKm, durationMin, cadenceSpm) {
		return ErrInvalidInput
	}
	return nil
}

// Cycling gates a cycling workout. Elevation gain only has to be finite;
// zero and negative gains are accepted.
func Cycling(distanceKm, durationMin, elevationGainM float64) error {
	if !AllFinite(distanceKm, durationMin, elevationGainM) || !AllPositive(distanceKm, durationMin) {
		return ErrInvalidInput
	}
	return nil
}
