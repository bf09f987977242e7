package workout

import (
	"time"

	"github.com/burakkosova/mapty/internal/geo"
)

type Kind string

const (
	KindRunning Kind = "running"
	KindCycling Kind = "cycling"
)

func (k Kind) Valid() bool {
	return k == KindRunning || k == KindCycling
}

// Workout is one logged activity. Exactly one of Running or Cycling is set,
// matching Type.
type Workout struct {
	ID          string
	Coords      geo.Coords
	Distance    float64 // km
	Duration    float64 // min
	Date        time.Time
	Description string
	Type        Kind

	Running *RunningStats
	Cycling *CyclingStats
}

type RunningStats struct {
	Cadence float64 // spm
	Pace    float64 // min/km
}

type CyclingStats struct {
	ElevationGain float64 // m
	Speed         float64 // km/h
}

// Measure is a value with its display unit.
type Measure struct {
	Value float64
	Unit  string
}
