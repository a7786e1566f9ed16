package service

import (
	"github.com/jengzang/workouts-backend-go/internal/models"
	"github.com/jengzang/workouts-backend-go/internal/spatial"
	"github.com/jengzang/workouts-backend-go/internal/stats"
)

// Summary aggregates the session's workouts per type. Mean pace is weighted
// by distance and mean speed by duration, so both equal the totals' ratio.
func (s *Session) Summary() models.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := summarize(s.workouts)
	if s.located && len(s.workouts) > 0 {
		distances := make([]float64, len(s.workouts))
		for i, w := range s.workouts {
			distances[i] = spatial.DistanceKm(s.center, w.Coordinates())
		}
		idx := stats.ArgMax(distances)
		summary.FurthestID = s.workouts[idx].ID()
		summary.FurthestDistanceKm = distances[idx]
	}
	return summary
}

func summarize(workouts []models.Workout) models.Summary {
	type acc struct {
		distances, durations, rates []float64
	}
	byType := map[models.WorkoutType]*acc{
		models.TypeRunning: {},
		models.TypeCycling: {},
	}

	for _, w := range workouts {
		a := byType[w.Type()]
		a.distances = append(a.distances, w.DistanceKm())
		a.durations = append(a.durations, w.DurationMin())
		switch v := w.(type) {
		case *models.Running:
			a.rates = append(a.rates, v.PaceMinPerKm())
		case *models.Cycling:
			a.rates = append(a.rates, v.SpeedKmPerHour())
		}
	}

	summary := models.Summary{ByType: []models.TypeSummary{}}
	for _, t := range []models.WorkoutType{models.TypeRunning, models.TypeCycling} {
		a := byType[t]
		ts := models.TypeSummary{
			Type:             t,
			Count:            len(a.distances),
			TotalDistanceKm:  stats.Sum(a.distances),
			TotalDurationMin: stats.Sum(a.durations),
		}
		if t == models.TypeRunning {
			ts.MeanRate = stats.WeightedMean(a.rates, a.distances)
			ts.MeanRateUnit = "min/km"
		} else {
			ts.MeanRate = stats.WeightedMean(a.rates, a.durations)
			ts.MeanRateUnit = "km/h"
		}

		summary.Count += ts.Count
		summary.TotalDistanceKm += ts.TotalDistanceKm
		summary.TotalDurationMin += ts.TotalDurationMin
		summary.ByType = append(summary.ByType, ts)
	}
	return summary
}
