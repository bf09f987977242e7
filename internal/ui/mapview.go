// Package ui holds server-side models of the map widget and the page. Each
// change is recorded for snapshots and published to the event stream.
package ui

import (
	"errors"
	"sync"

	"github.com/burakkosova/mapty/internal/geo"
	"github.com/burakkosova/mapty/internal/render"
	"github.com/burakkosova/mapty/internal/stream"
)

var (
	ErrNoMap      = errors.New("map not initialized")
	ErrMapRemoved = errors.New("map removed")
)

type Publisher interface {
	Publish(topic string, ev stream.Event)
}

type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

type Marker struct {
	Coords  geo.Coords          `json:"coords"`
	Popup   render.PopupOptions `json:"popup"`
	Content string              `json:"content"`
	Open    bool                `json:"open"`
}

type MapSnapshot struct {
	Center  geo.Coords `json:"center"`
	Zoom    int        `json:"zoom"`
	Tiles   *TileLayer `json:"tiles,omitempty"`
	Markers []Marker   `json:"markers"`
}

// Map is one map view. Markers stay open once added; popups don't auto-close.
type Map struct {
	mu      sync.Mutex
	pub     Publisher
	topic   string
	center  geo.Coords
	zoom    int
	tiles   *TileLayer
	markers []Marker
	onClick func(geo.Coords)
	removed bool
}

func (m *Map) AddTileLayer(urlTemplate, attribution string) {
	m.mu.Lock()
	m.tiles = &TileLayer{URL: urlTemplate, Attribution: attribution}
	tiles := *m.tiles
	m.mu.Unlock()
	m.publish("map.tiles", tiles)
}

func (m *Map) AddMarker(coords geo.Coords, popup render.PopupOptions, content string) {
	marker := Marker{Coords: coords, Popup: popup, Content: content, Open: true}
	m.mu.Lock()
	m.markers = append(m.markers, marker)
	m.mu.Unlock()
	m.publish("map.marker", marker)
}

func (m *Map) OnClick(fn func(geo.Coords)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onClick = fn
}

func (m *Map) SetView(center geo.Coords, zoom int) {
	m.mu.Lock()
	m.center, m.zoom = center, zoom
	m.mu.Unlock()
	m.publish("map.view", view{Center: center, Zoom: zoom})
}

// Remove detaches the map; later clicks are rejected.
func (m *Map) Remove() {
	m.mu.Lock()
	m.removed = true
	m.onClick = nil
	m.mu.Unlock()
	m.publish("map.remove", nil)
}

// Click delivers a click at coords to the registered listener.
func (m *Map) Click(coords geo.Coords) error {
	m.mu.Lock()
	removed, fn := m.removed, m.onClick
	m.mu.Unlock()

	if removed {
		return ErrMapRemoved
	}
	if fn != nil {
		fn(coords)
	}
	return nil
}

func (m *Map) Snapshot() MapSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := MapSnapshot{
		Center:  m.center,
		Zoom:    m.zoom,
		Markers: append([]Marker{}, m.markers...),
	}
	if m.tiles != nil {
		tiles := *m.tiles
		snap.Tiles = &tiles
	}
	return snap
}

func (m *Map) publish(kind string, data any) {
	if m.pub != nil {
		m.pub.Publish(m.topic, stream.NewEvent(kind, data))
	}
}

type view struct {
	Center geo.Coords `json:"center"`
	Zoom   int        `json:"zoom"`
}

// Maps creates map views and keeps the most recent one.
type Maps struct {
	mu      sync.Mutex
	pub     Publisher
	topic   string
	current *Map
}

func NewMaps(pub Publisher, topic string) *Maps {
	return &Maps{pub: pub, topic: topic}
}

func (p *Maps) NewMap(center geo.Coords, zoom int) *Map {
	m := &Map{pub: p.pub, topic: p.topic, center: center, zoom: zoom}
	p.mu.Lock()
	p.current = m
	p.mu.Unlock()
	m.publish("map.init", view{Center: center, Zoom: zoom})
	return m
}

func (p *Maps) Current() *Map {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Click forwards to the current map.
func (p *Maps) Click(coords geo.Coords) error {
	m := p.Current()
	if m == nil {
		return ErrNoMap
	}
	return m.Click(coords)
}
