package models

// TypeSummary aggregates the workouts of one type
type TypeSummary struct {
	Type             WorkoutType `json:"type"`
	Count            int         `json:"count"`
	TotalDistanceKm  float64     `json:"totalDistanceKm"`
	TotalDurationMin float64     `json:"totalDurationMin"`
	// MeanRate is the mean pace (min/km) for running and mean speed (km/h) for cycling
	MeanRate     float64 `json:"meanRate"`
	MeanRateUnit string  `json:"meanRateUnit"`
}

// Summary aggregates the whole session's workouts
type Summary struct {
	Count            int           `json:"count"`
	TotalDistanceKm  float64       `json:"totalDistanceKm"`
	TotalDurationMin float64       `json:"totalDurationMin"`
	ByType           []TypeSummary `json:"byType"`
	// FurthestID and FurthestDistanceKm name the workout recorded furthest from
	// the map centre and its distance; both are empty until the map is located
	FurthestID         string  `json:"furthestId,omitempty"`
	FurthestDistanceKm float64 `json:"furthestDistanceKm,omitempty"`
}

// MapView is a snapshot of the map and form state
type MapView struct {
	Located      bool         `json:"located"`
	Center       *Coordinates `json:"center,omitempty"`
	Zoom         int          `json:"zoom"`
	Notification string       `json:"notification,omitempty"`
	FormVisible  bool         `json:"formVisible"`
	Pending      *Coordinates `json:"pending,omitempty"`
	Markers      []Marker     `json:"markers"`
}
