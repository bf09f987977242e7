package workout

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/burakkosova/mapty/internal/geo"
)

var ErrUnknownKind = errors.New("unknown workout type")

const idDigits = 10

// New builds a workout of the given kind. extra is the cadence for running
// and the elevation gain for cycling. Inputs are trusted; callers validate.
func New(kind Kind, coords geo.Coords, distance, duration, extra float64, now time.Time) (Workout, error) {
	switch kind {
	case KindRunning:
		return NewRunning(coords, distance, duration, extra, now), nil
	case KindCycling:
		return NewCycling(coords, distance, duration, extra, now), nil
	default:
		return Workout{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func NewRunning(coords geo.Coords, distance, duration, cadence float64, now time.Time) Workout {
	w := base(coords, distance, duration, now)
	w.Type = KindRunning
	w.Running = &RunningStats{
		Cadence: cadence,
		Pace:    round1(duration / distance),
	}
	w.Description = describe(w.DisplayName(), now)
	return w
}

func NewCycling(coords geo.Coords, distance, duration, elevationGain float64, now time.Time) Workout {
	w := base(coords, distance, duration, now)
	w.Type = KindCycling
	w.Cycling = &CyclingStats{
		ElevationGain: elevationGain,
		Speed:         round1(distance / duration),
	}
	w.Description = describe(w.DisplayName(), now)
	return w
}

func base(coords geo.Coords, distance, duration float64, now time.Time) Workout {
	return Workout{
		ID:       IDFromTime(now),
		Coords:   coords,
		Distance: distance,
		Duration: duration,
		Date:     now,
	}
}

// IDFromTime returns the last ten digits of the millisecond timestamp.
func IDFromTime(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	if len(ms) > idDigits {
		ms = ms[len(ms)-idDigits:]
	}
	return ms
}

// Month names come from time.Month, so descriptions are always English.
func describe(name string, date time.Time) string {
	return fmt.Sprintf("%s on %s %d", name, date.Month(), date.Day())
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (w Workout) DisplayName() string {
	switch w.Type {
	case KindRunning:
		return "Running"
	case KindCycling:
		return "Cycling"
	}
	return string(w.Type)
}

func (w Workout) Icon() string {
	if w.Type == KindRunning {
		return "🏃‍♂️"
	}
	return "🚴‍♀️"
}

// Metric is the derived performance figure: pace for running, speed for cycling.
func (w Workout) Metric() Measure {
	switch {
	case w.Running != nil:
		return Measure{Value: w.Running.Pace, Unit: "min/km"}
	case w.Cycling != nil:
		return Measure{Value: w.Cycling.Speed, Unit: "km/h"}
	}
	return Measure{}
}

// Extra is the variant-specific input: cadence or elevation gain.
func (w Workout) Extra() Measure {
	switch {
	case w.Running != nil:
		return Measure{Value: w.Running.Cadence, Unit: "spm"}
	case w.Cycling != nil:
		return Measure{Value: w.Cycling.ElevationGain, Unit: "m"}
	}
	return Measure{}
}
