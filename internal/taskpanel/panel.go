package taskpanel

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// Annotation is the note typed for a slot. Zero page numbers are unset.
type Annotation struct {
	Text     string `json:"text"`
	PageFrom int    `json:"page_from"`
	PageTo   int    `json:"page_to"`
}

// View is the rendered state of one slot.
type View struct {
	Slot       int            `json:"slot"`
	Label      string         `json:"label"`
	Kind       AnnotationKind `json:"annotation_kind"`
	Visible    bool           `json:"visible"`
	Number     int            `json:"number,omitempty"`
	Asset      string         `json:"asset,omitempty"`
	ImageURL   string         `json:"image_url,omitempty"`
	Alt        string         `json:"alt,omitempty"`
	Annotation Annotation     `json:"annotation"`
	// Notes is the escaped annotation line, empty when nothing is noted.
	Notes     string `json:"notes,omitempty"`
	PageRange string `json:"page_range,omitempty"`
	HTML      string `json:"html,omitempty"`
}

type slotState struct {
	asset string
	note  Annotation
}

// Panel holds the selection of every slot. Slots are numbered from 1.
type Panel struct {
	mu    sync.Mutex
	slots []SlotConfig
	state []slotState
	base  *url.URL
}

// New builds a panel; more than four slots is an error.
func New(slots []SlotConfig, base *url.URL) (*Panel, error) {
	if err := validate(slots); err != nil {
		return nil, err
	}
	return &Panel{slots: slots, state: make([]slotState, len(slots)), base: base}, nil
}

// Reconfigure swaps the catalogue, keeping selections that still exist.
func (p *Panel) Reconfigure(slots []SlotConfig) error {
	if err := validate(slots); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	state := make([]slotState, len(slots))
	for i := range state {
		if i < len(p.state) {
			state[i] = p.state[i]
			if !slots[i].has(state[i].asset) {
				state[i].asset = ""
			}
		}
	}
	p.slots, p.state = slots, state
	return nil
}

func (p *Panel) SetBase(base *url.URL) {
	p.mu.Lock()
	p.base = base
	p.mu.Unlock()
}

func (p *Panel) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.slots)
}

// Slot returns the catalogue of slot id.
func (p *Panel) Slot(id int) (SlotConfig, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkLocked(id); err != nil {
		return SlotConfig{}, err
	}
	return p.slots[id-1], nil
}

// Options lists the dropdown entries of slot id.
func (p *Panel) Options(id int) ([]Option, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkLocked(id); err != nil {
		return nil, err
	}
	return p.slots[id-1].options(), nil
}

// Selection returns the asset picked in slot id, "" when none.
func (p *Panel) Selection(id int) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkLocked(id); err != nil {
		return "", err
	}
	return p.state[id-1].asset, nil
}

// SelectionChanged records the picked asset; "" hides the slot.
func (p *Panel) SelectionChanged(id int, asset string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkLocked(id); err != nil {
		return err
	}
	if asset != "" && !p.slots[id-1].has(asset) {
		return fmt.Errorf("%w: %q in slot %d", ErrUnknownAsset, asset, id)
	}
	p.state[id-1].asset = asset
	return nil
}

// AnnotationChanged records the notes or page range of slot id.
func (p *Panel) AnnotationChanged(id int, a Annotation) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkLocked(id); err != nil {
		return err
	}
	if a.PageFrom < 0 {
		a.PageFrom = 0
	}
	if a.PageTo < 0 {
		a.PageTo = 0
	}
	p.state[id-1].note = a
	return nil
}

// Clear empties every slot.
func (p *Panel) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.state {
		p.state[i] = slotState{}
	}
}

func (p *Panel) checkLocked(id int) error {
	if id < 1 || id > len(p.slots) {
		return fmt.Errorf("%w: %d", ErrUnknownSlot, id)
	}
	return nil
}

// Views renders every slot. Visible slots are numbered 1.. in order,
// hidden ones keep Number 0.
func (p *Panel) Views() []View {
	p.mu.Lock()
	defer p.mu.Unlock()
	views := make([]View, 0, len(p.slots))
	number := 0
	for i, cfg := range p.slots {
		st := p.state[i]
		v := View{Slot: i + 1, Label: cfg.Label, Kind: cfg.Annotation, Annotation: st.note}
		if st.asset != "" {
			number++
			v.Visible = true
			v.Number = number
			v.Asset = st.asset
			v.ImageURL = Resolve(p.base, st.asset)
			v.Alt = fmt.Sprintf("Taak %d", v.Slot)
			switch cfg.Annotation {
			case AnnotationText:
				v.Notes = EscapeHTML(strings.TrimSpace(st.note.Text))
			case AnnotationPages:
				v.PageRange = PageRange(st.note.PageFrom, st.note.PageTo)
				v.Notes = EscapeHTML(v.PageRange)
			}
			v.HTML = fragment(v)
		}
		views = append(views, v)
	}
	return views
}

// Visible returns only the shown slots.
func (p *Panel) Visible() []View {
	var out []View
	for _, v := range p.Views() {
		if v.Visible {
			out = append(out, v)
		}
	}
	return out
}

// PageRange formats a page span; zero means the bound is open.
func PageRange(from, to int) string {
	switch {
	case from > 0 && to > 0:
		return fmt.Sprintf("Pagina's %d - %d", from, to)
	case from > 0:
		return fmt.Sprintf("Vanaf pagina %d", from)
	case to > 0:
		return fmt.Sprintf("Tot pagina %d", to)
	default:
		return ""
	}
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes the five HTML special characters.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

func fragment(v View) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="task-display-wrapper"><img src="%s" alt="%s">`, EscapeHTML(v.ImageURL), v.Alt)
	if v.Notes != "" {
		fmt.Fprintf(&b, `<div class="task-notes">%s</div>`, v.Notes)
	}
	b.WriteString(`</div>`)
	return b.String()
}
