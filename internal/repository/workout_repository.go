package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jengzang/workouts-backend-go/internal/models"
	"github.com/jengzang/workouts-backend-go/internal/observability"
)

// WorkoutsKey is the slot holding the whole workout collection
const WorkoutsKey = "workouts"

// ErrQuotaExceeded is returned by Save when the serialised collection is larger than the quota
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// WorkoutRepository persists the ordered workout collection as one JSON array
type WorkoutRepository struct {
	slot       Slot
	quotaBytes int
}

// NewWorkoutRepository creates a workout repository.
// A quota of zero or less disables the size check.
func NewWorkoutRepository(slot Slot, quotaBytes int) *WorkoutRepository {
	return &WorkoutRepository{
		slot:       slot,
		quotaBytes: quotaBytes,
	}
}

// Save replaces the stored collection with workouts
func (r *WorkoutRepository) Save(ctx context.Context, workouts []models.Workout) error {
	records := make([]models.WorkoutRecord, 0, len(workouts))
	for _, w := range workouts {
		records = append(records, models.ToRecord(w))
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode workouts: %w", err)
	}

	if r.quotaBytes > 0 && len(payload) > r.quotaBytes {
		observability.RecordStoreFailure("quota")
		return fmt.Errorf("%w: %d bytes, quota %d", ErrQuotaExceeded, len(payload), r.quotaBytes)
	}

	if err := r.slot.Put(ctx, WorkoutsKey, payload); err != nil {
		observability.RecordStoreFailure("write")
		return fmt.Errorf("failed to save workouts: %w", err)
	}

	observability.RecordStoreSaved(len(workouts), len(payload))
	return nil
}

// Load returns the stored collection in insertion order.
// Absent, corrupt or foreign data yields an empty collection.
func (r *WorkoutRepository) Load(ctx context.Context) []models.Workout {
	payload, err := r.slot.Get(ctx, WorkoutsKey)
	if errors.Is(err, ErrSlotNotFound) {
		return []models.Workout{}
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to read stored workouts", "error", err)
		observability.RecordStoreFailure("read")
		return []models.Workout{}
	}

	workouts, err := decodeWorkouts(payload)
	if err != nil {
		slog.WarnContext(ctx, "discarding unreadable stored workouts", "error", err, "bytes", len(payload))
		observability.RecordStoreFailure("decode")
		return []models.Workout{}
	}

	return workouts
}

// Clear deletes the stored collection
func (r *WorkoutRepository) Clear(ctx context.Context) error {
	if err := r.slot.Delete(ctx, WorkoutsKey); err != nil {
		return fmt.Errorf("failed to clear workouts: %w", err)
	}
	return nil
}

func decodeWorkouts(payload []byte) ([]models.Workout, error) {
	var records []models.WorkoutRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, err
	}

	workouts := make([]models.Workout, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", models.ErrMalformedRecord, rec.ID)
		}
		seen[rec.ID] = struct{}{}

		w, err := rec.Workout()
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}

	return workouts, nil
}
