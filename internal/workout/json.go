package workout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/burakkosova/mapty/internal/geo"
)

// record is the persisted shape of a workout. Variant fields are flattened
// next to the common ones.
type record struct {
	Coords        geo.Coords `json:"coords"`
	Distance      float64    `json:"distance"`
	Duration      float64    `json:"duration"`
	Date          time.Time  `json:"date"`
	ID            string     `json:"id"`
	Description   string     `json:"description"`
	Type          Kind       `json:"type"`
	Cadence       *number    `json:"cadence,omitempty"`
	Pace          *number    `json:"pace,omitempty"`
	ElevationGain *number    `json:"elevationGain,omitempty"`
	Speed         *number    `json:"speed,omitempty"`
}

func (w Workout) MarshalJSON() ([]byte, error) {
	r := record{
		Coords:      w.Coords,
		Distance:    w.Distance,
		Duration:    w.Duration,
		Date:        w.Date,
		ID:          w.ID,
		Description: w.Description,
		Type:        w.Type,
	}
	if w.Running != nil {
		r.Cadence = numberPtr(w.Running.Cadence)
		r.Pace = numberPtr(w.Running.Pace)
	}
	if w.Cycling != nil {
		r.ElevationGain = numberPtr(w.Cycling.ElevationGain)
		r.Speed = numberPtr(w.Cycling.Speed)
	}
	return json.Marshal(r)
}

// UnmarshalJSON rebuilds a workout from its stored fields. Derived values
// are taken as stored and never recomputed.
func (w *Workout) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}

	out := Workout{
		ID:          r.ID,
		Coords:      r.Coords,
		Distance:    r.Distance,
		Duration:    r.Duration,
		Date:        r.Date,
		Description: r.Description,
		Type:        r.Type,
	}
	switch r.Type {
	case KindRunning:
		out.Running = &RunningStats{Cadence: r.Cadence.value(), Pace: r.Pace.value()}
	case KindCycling:
		out.Cycling = &CyclingStats{ElevationGain: r.ElevationGain.value(), Speed: r.Speed.value()}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, r.Type)
	}

	*w = out
	return nil
}

// number accepts a JSON number or a numeric string such as "5.0", the form
// older browser-saved lists use for pace and speed.
type number float64

func numberPtr(v float64) *number {
	n := number(v)
	return &n
}

func (n *number) value() float64 {
	if n == nil {
		return 0
	}
	return float64(*n)
}

func (n *number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("number: %w", err)
		}
		*n = number(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = number(v)
	return nil
}
