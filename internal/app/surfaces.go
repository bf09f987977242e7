package app

import (
	"context"

	"github.com/burakkosova/mapty/internal/geo"
	"github.com/burakkosova/mapty/internal/render"
	"github.com/burakkosova/mapty/internal/workout"
)

// Map is the map widget the controller draws on.
type Map interface {
	AddTileLayer(urlTemplate, attribution string)
	AddMarker(coords geo.Coords, popup render.PopupOptions, content string)
	OnClick(fn func(geo.Coords))
	SetView(center geo.Coords, zoom int)
	Remove()
}

// MapFactory initializes a map view centered on center.
type MapFactory func(center geo.Coords, zoom int) Map

type Form interface {
	Show()
	FocusDistance()
	ClearInputs()
	Hide()
	RestoreLayout()
	ToggleElevationField()
	Reset()
}

type List interface {
	InsertAfterForm(html string)
	Clear()
}

type Notifier interface {
	Alert(msg string)
}

type Persister interface {
	Save(ctx context.Context, workouts []workout.Workout) error
	Load(ctx context.Context) []workout.Workout
	Clear(ctx context.Context) error
}
