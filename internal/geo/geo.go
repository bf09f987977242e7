package geo

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Coords is a latitude/longitude pair. It serializes as [lat, lng].
type Coords struct {
	Lat float64
	Lng float64
}

func (c Coords) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lat, c.Lng})
}

func (c *Coords) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("coords: expected [lat, lng], got %d values", len(pair))
	}
	c.Lat, c.Lng = pair[0], pair[1]
	return nil
}

func (c Coords) String() string {
	return fmt.Sprintf("[%g, %g]", c.Lat, c.Lng)
}

var ErrPositionUnavailable = errors.New("position unavailable")

// Locator acquires the current position and reports it through exactly one
// of the callbacks. Implementations may call back synchronously or later.
type Locator interface {
	Locate(onSuccess func(Coords), onFailure func(error))
}

// Fixed always reports the same position.
type Fixed struct {
	Position Coords
}

func (f Fixed) Locate(onSuccess func(Coords), _ func(error)) {
	onSuccess(f.Position)
}
