// Package render builds the popup text and sidebar markup for a workout.
// Only stored fields are read, so reloaded workouts render the same as new ones.
package render

import (
	"bytes"
	"html/template"
	"strconv"

	"github.com/burakkosova/mapty/internal/workout"
)

const (
	PopupMaxWidth = 250
	PopupMinWidth = 100
)

// PopupOptions mirrors the marker popup settings of the map widget.
type PopupOptions struct {
	MaxWidth     int    `json:"maxWidth"`
	MinWidth     int    `json:"minWidth"`
	AutoClose    bool   `json:"autoClose"`
	CloseOnClick bool   `json:"closeOnClick"`
	ClassName    string `json:"className"`
}

func Popup(w workout.Workout) PopupOptions {
	return PopupOptions{
		MaxWidth:     PopupMaxWidth,
		MinWidth:     PopupMinWidth,
		AutoClose:    false,
		CloseOnClick: false,
		ClassName:    string(w.Type) + "-popup",
	}
}

func PopupContent(w workout.Workout) string {
	return w.Icon() + " " + w.Description
}

var listItem = template.Must(template.New("workout").Parse(`
<li class="workout workout--{{.Type}}" data-id="{{.ID}}">
  <h2 class="workout__title">{{.Description}}</h2>
  <div class="workout__details">
    <span class="workout__icon">{{.Icon}}</span>
    <span class="workout__value">{{.Distance}}</span>
    <span class="workout__unit">km</span>
  </div>
  <div class="workout__details">
    <span class="workout__icon">⏱</span>
    <span class="workout__value">{{.Duration}}</span>
    <span class="workout__unit">min</span>
  </div>
  <div class="workout__details">
    <span class="workout__icon">⚡️</span>
    <span class="workout__value">{{.Metric}}</span>
    <span class="workout__unit">{{.MetricUnit}}</span>
  </div>
  <div class="workout__details">
    <span class="workout__icon">{{.ExtraIcon}}</span>
    <span class="workout__value">{{.Extra}}</span>
    <span class="workout__unit">{{.ExtraUnit}}</span>
  </div>
</li>
`))

type listItemView struct {
	Type        string
	ID          string
	Description string
	Icon        string
	Distance    string
	Duration    string
	Metric      string
	MetricUnit  string
	Extra       string
	ExtraUnit   string
	ExtraIcon   string
}

// ListItem renders the sidebar entry for a workout.
func ListItem(w workout.Workout) (string, error) {
	metric, extra := w.Metric(), w.Extra()
	view := listItemView{
		Type:        string(w.Type),
		ID:          w.ID,
		Description: w.Description,
		Icon:        w.Icon(),
		Distance:    number(w.Distance),
		Duration:    number(w.Duration),
		Metric:      strconv.FormatFloat(metric.Value, 'f', 1, 64),
		MetricUnit:  metric.Unit,
		Extra:       number(extra.Value),
		ExtraUnit:   extra.Unit,
		ExtraIcon:   "🦶🏼",
	}
	if w.Type == workout.KindCycling {
		view.ExtraIcon = "⛰"
	}

	var buf bytes.Buffer
	if err := listItem.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// number prints the shortest decimal form: 5, 5.5, 0.25.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
