package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/jengzang/workouts-backend-go/internal/models"
	"github.com/jengzang/workouts-backend-go/internal/observability"
	"github.com/jengzang/workouts-backend-go/internal/spatial"
	"github.com/jengzang/workouts-backend-go/internal/validate"
)

// NotificationNoPosition is shown when the position could not be determined
const NotificationNoPosition = "Could not get your position"

var (
	ErrMapNotReady         = errors.New("map is not loaded")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
	ErrNoLocation          = errors.New("no location selected on the map")
	ErrUnknownWorkoutType  = errors.New("unknown workout type")
	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrPositionUnavailable = errors.New("position unavailable")
)

// Store persists the ordered workout collection
type Store interface {
	Save(ctx context.Context, workouts []models.Workout) error
	Load(ctx context.Context) []models.Workout
	Clear(ctx context.Context) error
}

// MapWidget receives display commands for the map
type MapWidget interface {
	Center(coords models.Coordinates, zoom int)
	AddMarker(marker models.Marker)
	Reset()
}

// FormInput is one submission of the workout form
type FormInput struct {
	Type           models.WorkoutType `json:"type"`
	DistanceKm     float64            `json:"distance"`
	DurationMin    float64            `json:"duration"`
	CadenceSpm     float64            `json:"cadence"`
	ElevationGainM float64            `json:"elevation"`
}

// Session owns the state of one tracking session: the map view, the pending
// map click and the workout collection. Every operation holds the session
// lock for its whole duration, so handlers observe the operations one at a time.
type Session struct {
	mu      sync.Mutex
	store   Store
	locator Locator
	widget  MapWidget
	zoom    int

	located      bool
	center       models.Coordinates
	notification string
	formVisible  bool
	pending      *models.Coordinates
	workouts     []models.Workout
}

// NewSession creates a session; call Start before use
func NewSession(store Store, locator Locator, widget MapWidget, zoom int) *Session {
	return &Session{
		store:    store,
		locator:  locator,
		widget:   widget,
		zoom:     zoom,
		workouts: []models.Workout{},
	}
}

// Start loads the stored workouts and asks the locator for the current position once.
// A failed lookup leaves the session usable and sets the notification.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.startLocked(ctx)
}

func (s *Session) startLocked(ctx context.Context) error {
	s.located = false
	s.center = models.Coordinates{}
	s.notification = ""
	s.formVisible = false
	s.pending = nil
	s.workouts = s.store.Load(ctx)

	slog.InfoContext(ctx, "session started", "workouts", len(s.workouts))
	return s.locateLocked(ctx, s.locator)
}

// Locate asks loc for the current position and centres the map on success.
// The first successful lookup also renders the markers of every stored workout.
func (s *Session) Locate(ctx context.Context, loc Locator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.locateLocked(ctx, loc)
}

func (s *Session) locateLocked(ctx context.Context, loc Locator) error {
	coords, err := loc.Locate(ctx)
	if err == nil && !spatial.Valid(coords) {
		err = fmt.Errorf("%w: %v", ErrInvalidCoordinates, coords)
	}
	if err != nil {
		s.notification = NotificationNoPosition
		slog.WarnContext(ctx, "could not determine position", "error", err)
		return fmt.Errorf("%w: %v", ErrPositionUnavailable, err)
	}

	firstLoad := !s.located
	s.located = true
	s.center = coords
	s.notification = ""
	s.widget.Center(coords, s.zoom)

	if firstLoad {
		for _, w := range s.workouts {
			s.widget.AddMarker(models.NewMarker(w))
		}
	}
	return nil
}

// SelectLocation records a map click and shows the form
func (s *Session) SelectLocation(coords models.Coordinates) (models.Coordinates, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.located {
		return models.Coordinates{}, ErrMapNotReady
	}
	// longitudes past ±180 are wrapped, latitudes are not
	if !validate.AllFinite(coords.Lat(), coords.Lng()) || math.Abs(coords.Lat()) > 90 {
		return models.Coordinates{}, fmt.Errorf("%w: %v", ErrInvalidCoordinates, coords)
	}
	coords = spatial.Normalize(coords)

	s.pending = &coords
	s.formVisible = true
	return coords, nil
}

// SubmitWorkout validates the form, creates the workout at the pending map
// click, saves the whole collection and adds the marker. On any error the
// collection, the form and the pending click are left as they were.
func (s *Session) SubmitWorkout(ctx context.Context, in FormInput) (models.ListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return models.ListItem{}, ErrNoLocation
	}

	var w models.Workout
	switch in.Type {
	case models.TypeRunning:
		if err := validate.Running(in.DistanceKm, in.DurationMin, in.CadenceSpm); err != nil {
			observability.RecordValidationFailure(string(in.Type))
			return models.ListItem{}, err
		}
		w = models.NewRunning(*s.pending, in.DistanceKm, in.DurationMin, in.CadenceSpm)
	case models.TypeCycling:
		if err := validate.Cycling(in.DistanceKm, in.DurationMin, in.ElevationGainM); err != nil {
			observability.RecordValidationFailure(string(in.Type))
			return models.ListItem{}, err
		}
		w = models.NewCycling(*s.pending, in.DistanceKm, in.DurationMin, in.ElevationGainM)
	default:
		return models.ListItem{}, fmt.Errorf("%w: %q", ErrUnknownWorkoutType, in.Type)
	}

	next := append(s.snapshotLocked(), w)
	if err := s.store.Save(ctx, next); err != nil {
		return models.ListItem{}, err
	}

	s.workouts = next
	s.widget.AddMarker(models.NewMarker(w))
	s.formVisible = false
	s.pending = nil

	observability.RecordWorkoutCreated(string(w.Type()))
	slog.InfoContext(ctx, "workout created", "id", w.ID(), "type", w.Type(), "total", len(s.workouts))
	return models.NewListItem(w), nil
}

// SelectWorkout handles a click on a list item: it counts the interaction,
// saves the collection and pans the map to the workout
func (s *Session) SelectWorkout(ctx context.Context, id string) (models.ListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.findLocked(id)
	if w == nil {
		return models.ListItem{}, fmt.Errorf("%w: %s", ErrWorkoutNotFound, id)
	}

	w.RecordInteraction()
	if err := s.store.Save(ctx, s.workouts); err != nil {
		return models.ListItem{}, err
	}

	if s.located {
		s.widget.Center(w.Coordinates(), s.zoom)
	}
	return models.NewListItem(w), nil
}

// Reset deletes the stored workouts and starts the session afresh
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return err
	}

	observability.RecordReset()
	s.widget.Reset()

	if err := s.startLocked(ctx); err != nil && !errors.Is(err, ErrPositionUnavailable) {
		return err
	}
	return nil
}

// Workouts returns the collection in creation order.
// The workouts are shared with the session and must only be read.
func (s *Session) Workouts() []models.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// Items renders the collection as list items, in creation order
func (s *Session) Items() []models.ListItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.ListItem, 0, len(s.workouts))
	for _, w := range s.workouts {
		items = append(items, models.NewListItem(w))
	}
	return items
}

// Item renders the workout with the given id
func (s *Session) Item(id string) (models.ListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.findLocked(id)
	if w == nil {
		return models.ListItem{}, fmt.Errorf("%w: %s", ErrWorkoutNotFound, id)
	}
	return models.NewListItem(w), nil
}

// Find returns the workout with the given id. The workout is shared with the
// session and must only be read.
func (s *Session) Find(id string) (models.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.findLocked(id)
	if w == nil {
		return nil, fmt.Errorf("%w: %s", ErrWorkoutNotFound, id)
	}
	return w, nil
}

// View returns a snapshot of the map and form state
func (s *Session) View() models.MapView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := models.MapView{
		Located:      s.located,
		Zoom:         s.zoom,
		Notification: s.notification,
		FormVisible:  s.formVisible,
		Markers:      []models.Marker{},
	}
	if s.located {
		center := s.center
		view.Center = &center
		for _, w := range s.workouts {
			view.Markers = append(view.Markers, models.NewMarker(w))
		}
	}
	if s.pending != nil {
		pending := *s.pending
		view.Pending = &pending
	}
	return view
}

func (s *Session) findLocked(id string) models.Workout {
	for _, w := range s.workouts {
		if w.ID() == id {
			return w
		}
	}
	return nil
}

func (s *Session) snapshotLocked() []models.Workout {
	out := make([]models.Workout, len(s.workouts), len(s.workouts)+1)
	copy(out, s.workouts)
	return out
}
