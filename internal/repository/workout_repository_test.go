package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jengzang/workouts-backend-go/internal/database"
	"github.com/jengzang/workouts-backend-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteSlot(t *testing.T) Slot {
	t.Helper()
	db, err := database.Open(context.Background(), database.Config{Path: filepath.Join(t.TempDir(), "workouts.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteSlot(db)
}

func newBadgerSlot(t *testing.T) Slot {
	t.Helper()
	db, err := database.OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBadgerSlot(db)
}

func slotBackends() map[string]func(*testing.T) Slot {
	return map[string]func(*testing.T) Slot{
		"sqlite": newSQLiteSlot,
		"badger": newBadgerSlot,
	}
}

func sampleWorkouts() []models.Workout {
	created := time.Date(2025, time.April, 14, 9, 30, 0, 0, time.UTC)
	run := models.NewRunningAt("run-1", created, models.Coordinates{51.5, -0.1}, 5, 25, 178)
	run.RecordInteraction()
	return []models.Workout{
		run,
		models.NewCyclingAt("cyc-1", created.Add(time.Hour), models.Coordinates{51.51, -0.12}, 20, 60, 200),
		models.NewCyclingAt("cyc-2", created.Add(2*time.Hour), models.Coordinates{51.49, -0.08}, 12.5, 41, -35),
	}
}

func TestWorkoutRepositoryRoundTrip(t *testing.T) {
	for name, newSlot := range slotBackends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := NewWorkoutRepository(newSlot(t), 0)
			workouts := sampleWorkouts()

			require.NoError(t, repo.Save(ctx, workouts))
			loaded := repo.Load(ctx)
			require.Equal(t, workouts, loaded)

			run, ok := loaded[0].(*models.Running)
			require.True(t, ok)
			assert.Equal(t, 5.0, run.PaceMinPerKm())
			assert.Equal(t, 178.0, run.CadenceSpm())

			cyc, ok := loaded[1].(*models.Cycling)
			require.True(t, ok)
			assert.Equal(t, 20.0, cyc.SpeedKmPerHour())
			assert.Equal(t, 200.0, cyc.ElevationGainM())
		})
	}
}

func TestWorkoutRepositorySaveOverwrites(t *testing.T) {
	for name, newSlot := range slotBackends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := NewWorkoutRepository(newSlot(t), 0)
			workouts := sampleWorkouts()

			require.NoError(t, repo.Save(ctx, workouts))
			require.NoError(t, repo.Save(ctx, workouts[:1]))

			assert.Equal(t, workouts[:1], repo.Load(ctx))
		})
	}
}

func TestWorkoutRepositoryLoadEmpty(t *testing.T) {
	for name, newSlot := range slotBackends() {
		t.Run(name, func(t *testing.T) {
			loaded := NewWorkoutRepository(newSlot(t), 0).Load(context.Background())
			assert.NotNil(t, loaded)
			assert.Empty(t, loaded)
		})
	}
}

func TestWorkoutRepositoryLoadCorrupt(t *testing.T) {
	payloads := map[string]string{
		"not json":         `{{{`,
		"wrong shape":      `{"workouts": 1}`,
		"unknown type":     `[{"id":"a","type":"swimming","distanceKm":1,"durationMin":1}]`,
		"missing field":    `[{"id":"a","type":"running","distanceKm":1,"durationMin":1}]`,
		"zero distance":    `[{"id":"a","type":"running","distanceKm":0,"durationMin":10,"cadenceSpm":170}]`,
		"zero cadence":     `[{"id":"a","type":"running","distanceKm":5,"durationMin":10,"cadenceSpm":0}]`,
		"negative minutes": `[{"id":"a","type":"cycling","distanceKm":5,"durationMin":-10,"elevationGainM":0}]`,
		"duplicate id":     `[{"id":"a","type":"cycling","distanceKm":1,"durationMin":1,"elevationGainM":0},{"id":"a","type":"cycling","distanceKm":1,"durationMin":1,"elevationGainM":0}]`,
	}
	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			slot := newSQLiteSlot(t)
			require.NoError(t, slot.Put(ctx, WorkoutsKey, []byte(payload)))

			loaded := NewWorkoutRepository(slot, 0).Load(ctx)
			assert.NotNil(t, loaded)
			assert.Empty(t, loaded)
		})
	}
}

func TestWorkoutRepositoryLoadNull(t *testing.T) {
	ctx := context.Background()
	slot := newBadgerSlot(t)
	require.NoError(t, slot.Put(ctx, WorkoutsKey, []byte("null")))

	assert.Empty(t, NewWorkoutRepository(slot, 0).Load(ctx))
}

func TestWorkoutRepositoryClear(t *testing.T) {
	for name, newSlot := range slotBackends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := NewWorkoutRepository(newSlot(t), 0)

			require.NoError(t, repo.Clear(ctx), "clearing an empty slot")
			require.NoError(t, repo.Save(ctx, sampleWorkouts()))
			require.NoError(t, repo.Clear(ctx))

			assert.Empty(t, repo.Load(ctx))
		})
	}
}

func TestWorkoutRepositoryQuota(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkoutRepository(newSQLiteSlot(t), 64)
	workouts := sampleWorkouts()

	require.NoError(t, repo.Save(ctx, nil))

	err := repo.Save(ctx, workouts)
	require.ErrorIs(t, err, ErrQuotaExceeded)

	// the previous value is left untouched
	assert.Empty(t, repo.Load(ctx))
}

func TestSlotGetMissing(t *testing.T) {
	for name, newSlot := range slotBackends() {
		t.Run(name, func(t *testing.T) {
			_, err := newSlot(t).Get(context.Background(), "nope")
			require.ErrorIs(t, err, ErrSlotNotFound)
		})
	}
}
