package tui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type KeyHandler func(m MainModel, key string) (MainModel, tea.Cmd, bool)

type KeyBinding struct {
	Key         string
	Handler     KeyHandler
	Description string
	// Focus limits the binding to these focus kinds; empty means everywhere.
	Focus    []focusKind
	Priority int
}

func (b KeyBinding) AppliesTo(kind focusKind) bool {
	if len(b.Focus) == 0 {
		return true
	}
	for _, f := range b.Focus {
		if f == kind {
			return true
		}
	}
	return false
}

type HandlerRegistry struct {
	bindings []KeyBinding
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

func (r *HandlerRegistry) Register(b KeyBinding) {
	r.bindings = append(r.bindings, b)
	sort.SliceStable(r.bindings, func(i, j int) bool {
		return r.bindings[i].Priority > r.bindings[j].Priority
	})
}

func (r *HandlerRegistry) Handle(m MainModel, key string) (MainModel, tea.Cmd, bool) {
	kind := m.currentFocus().kind
	for _, b := range r.bindings {
		if b.Key == key && b.AppliesTo(kind) {
			next, cmd, handled := b.Handler(m, key)
			if handled {
				return next, cmd, true
			}
		}
	}
	return m, nil, false
}

func (r *HandlerRegistry) BindingsFor(kind focusKind) []KeyBinding {
	var out []KeyBinding
	for _, b := range r.bindings {
		if b.AppliesTo(kind) {
			out = append(out, b)
		}
	}
	return out
}

func (r *HandlerRegistry) HelpFor(kind focusKind) string {
	seen := make(map[string]bool)
	var parts []string
	for _, b := range r.BindingsFor(kind) {
		if b.Description == "" || seen[b.Description] {
			continue
		}
		seen[b.Description] = true
		parts = append(parts, "["+b.Key+"]"+b.Description)
	}
	return strings.Join(parts, "|")
}
