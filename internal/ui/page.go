package ui

import (
	"sync"

	"github.com/burakkosova/mapty/internal/stream"
)

const (
	layoutGrid = "grid"
	layoutNone = "none"

	maxAlerts = 20
)

type FormSnapshot struct {
	Hidden             bool   `json:"hidden"`
	Display            string `json:"display"`
	Focused            string `json:"focused,omitempty"`
	CadenceRowHidden   bool   `json:"cadenceRowHidden"`
	ElevationRowHidden bool   `json:"elevationRowHidden"`
}

type PageSnapshot struct {
	Form   FormSnapshot `json:"form"`
	List   []string     `json:"list"`
	Alerts []string     `json:"alerts"`
}

// Page is the form, the workout list below it and the alert box.
type Page struct {
	mu     sync.Mutex
	pub    Publisher
	topic  string
	form   FormSnapshot
	list   []string
	alerts []string
}

func NewPage(pub Publisher, topic string) *Page {
	return &Page{pub: pub, topic: topic, form: initialForm()}
}

// The form starts hidden with the running rows showing.
func initialForm() FormSnapshot {
	return FormSnapshot{Hidden: true, Display: layoutGrid, ElevationRowHidden: true}
}

func (p *Page) Show() {
	p.update("form.show", func(f *FormSnapshot) { f.Hidden = false })
}

func (p *Page) FocusDistance() {
	p.update("form.focus", func(f *FormSnapshot) { f.Focused = "distance" })
}

func (p *Page) ClearInputs() {
	p.update("form.clear", func(*FormSnapshot) {})
}

func (p *Page) Hide() {
	p.update("form.hide", func(f *FormSnapshot) {
		f.Display = layoutNone
		f.Hidden = true
		f.Focused = ""
	})
}

func (p *Page) RestoreLayout() {
	p.update("form.layout", func(f *FormSnapshot) { f.Display = layoutGrid })
}

func (p *Page) ToggleElevationField() {
	p.update("form.toggle", func(f *FormSnapshot) {
		f.ElevationRowHidden = !f.ElevationRowHidden
		f.CadenceRowHidden = !f.CadenceRowHidden
	})
}

// Reset puts the form back to its initial state.
func (p *Page) Reset() {
	p.update("form.reset", func(f *FormSnapshot) { *f = initialForm() })
}

// InsertAfterForm places html directly below the form, above older entries.
func (p *Page) InsertAfterForm(html string) {
	p.mu.Lock()
	p.list = append([]string{html}, p.list...)
	p.mu.Unlock()
	p.publish("list.insert", html)
}

func (p *Page) Clear() {
	p.mu.Lock()
	p.list = nil
	p.mu.Unlock()
	p.publish("list.clear", nil)
}

func (p *Page) Alert(msg string) {
	p.mu.Lock()
	p.alerts = append(p.alerts, msg)
	if len(p.alerts) > maxAlerts {
		p.alerts = p.alerts[len(p.alerts)-maxAlerts:]
	}
	p.mu.Unlock()
	p.publish("alert", msg)
}

func (p *Page) Snapshot() PageSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PageSnapshot{
		Form:   p.form,
		List:   append([]string{}, p.list...),
		Alerts: append([]string{}, p.alerts...),
	}
}

func (p *Page) update(kind string, fn func(*FormSnapshot)) {
	p.mu.Lock()
	fn(&p.form)
	form := p.form
	p.mu.Unlock()
	p.publish(kind, form)
}

func (p *Page) publish(kind string, data any) {
	if p.pub != nil {
		p.pub.Publish(p.topic, stream.NewEvent(kind, data))
	}
}
