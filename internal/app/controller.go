package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/burakkosova/mapty/internal/geo"
	"github.com/burakkosova/mapty/internal/observability"
	"github.com/burakkosova/mapty/internal/render"
	"github.com/burakkosova/mapty/internal/workout"
)

// FormLayoutRestoreDelay is how long the form stays out of the layout after
// being hidden, so the hide transition doesn't snap.
const FormLayoutRestoreDelay = time.Second

const (
	DefaultZoom = 13

	MsgPositionUnavailable = "Couldn't get your position"
	MsgInvalidInput        = "Inputs have to be positive numbers"
)

var (
	ErrInvalidInput = errors.New("inputs have to be positive numbers")
	ErrFormHidden   = errors.New("form is not visible")
	ErrMapNotReady  = errors.New("map not ready")
)

type State string

const (
	StateAwaitingGeolocation State = "awaiting_geolocation"
	StateMapReady            State = "map_ready"
	StateFormHidden          State = "form_hidden"
	StateFormVisible         State = "form_visible"
)

type Options struct {
	Zoom             int
	TileURL          string
	TileAttribution  string
	FormRestoreDelay time.Duration
}

type Deps struct {
	Store    Persister
	Locator  geo.Locator
	NewMap   MapFactory
	Form     Form
	List     List
	Notifier Notifier

	// Now and AfterFunc default to time.Now and time.AfterFunc.
	Now       func() time.Time
	AfterFunc func(d time.Duration, fn func())
}

// FormInput carries raw field values as typed into the form.
type FormInput struct {
	Type      string `json:"type" form:"type"`
	Distance  string `json:"distance" form:"distance"`
	Duration  string `json:"duration" form:"duration"`
	Cadence   string `json:"cadence" form:"cadence"`
	Elevation string `json:"elevation" form:"elevation"`
}

type Snapshot struct {
	State    State             `json:"state"`
	Pending  *geo.Coords       `json:"pending,omitempty"`
	Workouts []workout.Workout `json:"workouts"`
}

// Controller owns the workout list and drives the map, form and list. All
// events are serialized behind one lock.
type Controller struct {
	mu   sync.Mutex
	deps Deps
	opts Options

	state      State
	workouts   []workout.Workout
	mapView    Map
	pending    *geo.Coords
	generation int
}

func New(deps Deps, opts Options) *Controller {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.AfterFunc == nil {
		deps.AfterFunc = func(d time.Duration, fn func()) { time.AfterFunc(d, fn) }
	}
	if opts.Zoom == 0 {
		opts.Zoom = DefaultZoom
	}
	if opts.FormRestoreDelay == 0 {
		opts.FormRestoreDelay = FormLayoutRestoreDelay
	}
	return &Controller{deps: deps, opts: opts, state: StateAwaitingGeolocation}
}

// Start renders the stored workouts into the list and asks for the current
// position. The map is built once the position arrives.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.state = StateAwaitingGeolocation
	c.workouts = c.deps.Store.Load(ctx)
	for _, w := range c.workouts {
		c.renderListEntry(w)
	}
	gen := c.generation
	c.mu.Unlock()

	c.deps.Locator.Locate(
		func(pos geo.Coords) { c.loadMap(gen, pos) },
		func(err error) { c.positionFailed(gen, err) },
	)
}

func (c *Controller) loadMap(gen int, pos geo.Coords) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.state != StateAwaitingGeolocation {
		return
	}

	m := c.deps.NewMap(pos, c.opts.Zoom)
	m.AddTileLayer(c.opts.TileURL, c.opts.TileAttribution)
	c.mapView = m
	c.state = StateMapReady

	for _, w := range c.workouts {
		c.renderMarker(w)
	}

	m.OnClick(c.showForm)
	c.state = StateFormHidden
}

func (c *Controller) positionFailed(gen int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.state != StateAwaitingGeolocation {
		return
	}
	log.Printf("geolocation failed: %v", err)
	c.deps.Notifier.Alert(MsgPositionUnavailable)
}

func (c *Controller) showForm(at geo.Coords) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateFormHidden && c.state != StateFormVisible {
		return
	}
	c.pending = &at
	c.deps.Form.Show()
	c.deps.Form.FocusDistance()
	c.state = StateFormVisible
}

// HideForm clears and hides the form.
func (c *Controller) HideForm() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mapView == nil {
		return ErrMapNotReady
	}
	c.hideForm()
	return nil
}

func (c *Controller) hideForm() {
	c.deps.Form.ClearInputs()
	c.deps.Form.Hide()
	form := c.deps.Form
	c.deps.AfterFunc(c.opts.FormRestoreDelay, form.RestoreLayout)
	c.pending = nil
	c.state = StateFormHidden
}

// ToggleElevationField swaps the cadence and elevation rows.
func (c *Controller) ToggleElevationField() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deps.Form.ToggleElevationField()
}

// Submit validates the form and records a new workout at the clicked spot.
// Elevation only has to be finite; the other inputs must also be positive.
func (c *Controller) Submit(ctx context.Context, in FormInput) (workout.Workout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateFormVisible || c.pending == nil {
		return workout.Workout{}, ErrFormHidden
	}

	kind := workout.Kind(in.Type)
	distance := parseInput(in.Distance)
	duration := parseInput(in.Duration)

	var extra float64
	switch kind {
	case workout.KindRunning:
		extra = parseInput(in.Cadence)
		if !allFinite(distance, duration, extra) || !allPositive(distance, duration, extra) {
			return workout.Workout{}, c.reject()
		}
	case workout.KindCycling:
		extra = parseInput(in.Elevation)
		if !allFinite(distance, duration, extra) || !allPositive(distance, duration) {
			return workout.Workout{}, c.reject()
		}
	default:
		return workout.Workout{}, fmt.Errorf("%w: %q", workout.ErrUnknownKind, in.Type)
	}

	w, err := workout.New(kind, *c.pending, distance, duration, extra, c.deps.Now())
	if err != nil {
		return workout.Workout{}, err
	}

	c.workouts = append(c.workouts, w)
	c.renderMarker(w)
	c.renderListEntry(w)
	c.hideForm()

	if err := c.deps.Store.Save(ctx, c.workouts); err != nil {
		log.Printf("persist workouts: %v", err)
	}
	observability.RecordWorkoutCreated(string(w.Type))
	return w, nil
}

func (c *Controller) reject() error {
	observability.RecordSubmissionRejected()
	c.deps.Notifier.Alert(MsgInvalidInput)
	return ErrInvalidInput
}

// MoveToPopup centers the map on the workout with id. It reports whether a
// workout was found.
func (c *Controller) MoveToPopup(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mapView == nil {
		return false
	}
	for _, w := range c.workouts {
		if w.ID == id {
			c.mapView.SetView(w.Coords, c.opts.Zoom)
			return true
		}
	}
	return false
}

// Reset clears storage and starts over from an empty page.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	if err := c.deps.Store.Clear(ctx); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.mapView != nil {
		c.mapView.Remove()
	}
	c.mapView = nil
	c.workouts = nil
	c.pending = nil
	c.generation++
	c.deps.List.Clear()
	c.deps.Form.Reset()
	c.mu.Unlock()

	c.Start(ctx)
	return nil
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		State:    c.state,
		Workouts: append([]workout.Workout{}, c.workouts...),
	}
	if c.pending != nil {
		p := *c.pending
		snap.Pending = &p
	}
	return snap
}

func (c *Controller) renderMarker(w workout.Workout) {
	c.mapView.AddMarker(w.Coords, render.Popup(w), render.PopupContent(w))
}

func (c *Controller) renderListEntry(w workout.Workout) {
	html, err := render.ListItem(w)
	if err != nil {
		log.Printf("render workout %s: %v", w.ID, err)
		return
	}
	c.deps.List.InsertAfterForm(html)
}

// parseInput coerces a field value the way the form does: surrounding space
// is ignored, an empty field is 0 and anything unparsable is NaN.
func parseInput(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func allFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func allPositive(values ...float64) bool {
	for _, v := range values {
		if !(v > 0) {
			return false
		}
	}
	return true
}
