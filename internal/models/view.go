package models

import (
	"strconv"
	"time"
)

// Icon returns the emoji shown next to a workout of type t
func Icon(t WorkoutType) string {
	if t == TypeRunning {
		return "🏃‍♂️"
	}
	return "🚴‍♀️"
}

// PopupOptions mirrors the popup settings of the map widget
type PopupOptions struct {
	MaxWidth     int  `json:"maxWidth"`
	MinHeight    int  `json:"minHeight"`
	AutoClose    bool `json:"autoClose"`
	CloseOnClick bool `json:"closeOnClick"`
}

// Marker is a marker-add request for the map widget
type Marker struct {
	WorkoutID   string       `json:"workoutId"`
	Coordinates Coordinates  `json:"coordinates"`
	PopupText   string       `json:"popupText"`
	StyleTag    string       `json:"styleTag"`
	Popup       PopupOptions `json:"popup"`
}

// NewMarker builds the marker for w
func NewMarker(w Workout) Marker {
	return Marker{
		WorkoutID:   w.ID(),
		Coordinates: w.Coordinates(),
		PopupText:   Icon(w.Type()) + " " + w.Description(),
		StyleTag:    string(w.Type()) + "-popup",
		Popup: PopupOptions{
			MaxWidth:     250,
			MinHeight:    100,
			AutoClose:    false,
			CloseOnClick: false,
		},
	}
}

// Metric is one labelled value of a list item
type Metric struct {
	Icon    string  `json:"icon"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
	Unit    string  `json:"unit"`
}

// ListItem is the rendered form of a workout in the sidebar list
type ListItem struct {
	ID               string      `json:"id"`
	Type             WorkoutType `json:"type"`
	Description      string      `json:"description"`
	CreatedAt        time.Time   `json:"createdAt"`
	Coordinates      Coordinates `json:"coordinates"`
	InteractionCount int         `json:"interactionCount"`
	Distance         Metric      `json:"distance"`
	Duration         Metric      `json:"duration"`
	Rate             Metric      `json:"rate"`
	Extra            Metric      `json:"extra"`
}

// NewListItem renders w, choosing the metric and unit labels by its type tag
func NewListItem(w Workout) ListItem {
	item := ListItem{
		ID:               w.ID(),
		Type:             w.Type(),
		Description:      w.Description(),
		CreatedAt:        w.CreatedAt(),
		Coordinates:      w.Coordinates(),
		InteractionCount: w.InteractionCount(),
		Distance:         Metric{Icon: Icon(w.Type()), Value: w.DistanceKm(), Display: plain(w.DistanceKm()), Unit: "km"},
		Duration:         Metric{Icon: "⏱", Value: w.DurationMin(), Display: plain(w.DurationMin()), Unit: "min"},
	}

	switch v := w.(type) {
	case *Running:
		item.Rate = Metric{Icon: "⚡️", Value: v.PaceMinPerKm(), Display: fixed1(v.PaceMinPerKm()), Unit: "min/km"}
		item.Extra = Metric{Icon: "🦶🏼", Value: v.CadenceSpm(), Display: plain(v.CadenceSpm()), Unit: "spm"}
	case *Cycling:
		item.Rate = Metric{Icon: "⚡️", Value: v.SpeedKmPerHour(), Display: fixed1(v.SpeedKmPerHour()), Unit: "km/h"}
		item.Extra = Metric{Icon: "⛰", Value: v.ElevationGainM(), Display: plain(v.ElevationGainM()), Unit: "m"}
	}

	return item
}

func plain(v float64) string  { return strconv.FormatFloat(v, 'f', -1, 64) }
func fixed1(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }
