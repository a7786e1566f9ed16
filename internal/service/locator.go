package service

import (
	"context"
	"errors"

	"github.com/jengzang/workouts-backend-go/internal/models"
)

// Locator resolves the current position once.
// The single (coordinates, error) result replaces a success/failure callback pair.
type Locator interface {
	Locate(ctx context.Context) (models.Coordinates, error)
}

// LocatorFunc adapts a function to Locator
type LocatorFunc func(ctx context.Context) (models.Coordinates, error)

// Locate calls f
func (f LocatorFunc) Locate(ctx context.Context) (models.Coordinates, error) { return f(ctx) }

// FixedPosition is a locator that always reports the same coordinates
func FixedPosition(coords models.Coordinates) Locator {
	return LocatorFunc(func(ctx context.Context) (models.Coordinates, error) {
		if err := ctx.Err(); err != nil {
			return models.Coordinates{}, err
		}
		return coords, nil
	})
}

// NoPosition is a locator that always fails with reason
func NoPosition(reason string) Locator {
	err := errors.New(reason)
	return LocatorFunc(func(context.Context) (models.Coordinates, error) {
		return models.Coordinates{}, err
	})
}

// HomeLocator returns FixedPosition(*home), or a failing locator when home is nil
func HomeLocator(home *models.Coordinates) Locator {
	if home == nil {
		return NoPosition("no home position configured")
	}
	return FixedPosition(*home)
}
