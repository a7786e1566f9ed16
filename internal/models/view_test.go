package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListItemRunning(t *testing.T) {
	run := NewRunningAt("run-1", time.Date(2025, time.April, 14, 9, 0, 0, 0, time.UTC), london, 5.2, 24, 178)
	item := NewListItem(run)

	assert.Equal(t, TypeRunning, item.Type)
	assert.Equal(t, "5.2", item.Distance.Display)
	assert.Equal(t, "km", item.Distance.Unit)
	assert.Equal(t, "24", item.Duration.Display)
	assert.Equal(t, "4.6", item.Rate.Display)
	assert.Equal(t, "min/km", item.Rate.Unit)
	assert.Equal(t, "178", item.Extra.Display)
	assert.Equal(t, "spm", item.Extra.Unit)
}

func TestNewListItemCycling(t *testing.T) {
	cyc := NewCyclingAt("cyc-1", time.Date(2025, time.April, 14, 9, 0, 0, 0, time.UTC), london, 27, 95, -40)
	item := NewListItem(cyc)

	assert.Equal(t, "17.1", item.Rate.Display)
	assert.Equal(t, "km/h", item.Rate.Unit)
	assert.Equal(t, "-40", item.Extra.Display)
	assert.Equal(t, "m", item.Extra.Unit)
}

func TestNewMarker(t *testing.T) {
	cyc := NewCyclingAt("cyc-1", time.Date(2025, time.April, 14, 9, 0, 0, 0, time.UTC), london, 20, 60, 0)
	m := NewMarker(cyc)

	assert.Equal(t, "cyc-1", m.WorkoutID)
	assert.Equal(t, london, m.Coordinates)
	assert.Equal(t, "🚴‍♀️ Cycling on April 14", m.PopupText)
	assert.Equal(t, "cycling-popup", m.StyleTag)
	assert.Equal(t, PopupOptions{MaxWidth: 250, MinHeight: 100}, m.Popup)

	raw, err := json.Marshal(m.Popup)
	require.NoError(t, err)
	assert.JSONEq(t, `{"maxWidth":250,"minHeight":100,"autoClose":false,"closeOnClick":false}`, string(raw))
}
