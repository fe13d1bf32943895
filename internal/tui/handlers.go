package tui

import tea "github.com/charmbracelet/bubbletea"

func (m *MainModel) registerKeys() {
	r := m.registry
	r.Register(KeyBinding{Key: "ctrl+c", Description: "stop programma", Priority: 100, Handler: func(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
		m.quitting = true
		return m, tea.Quit, true
	}})
	r.Register(KeyBinding{Key: "enter", Description: "start", Focus: []focusKind{focusMinutes, focusStart}, Priority: 50, Handler: func(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
		next, cmd := m.startTimer()
		return next, cmd, true
	}})
	r.Register(KeyBinding{Key: "enter", Description: "stop", Focus: []focusKind{focusStop}, Priority: 50, Handler: func(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
		next, cmd := m.stopTimer()
		return next, cmd, true
	}})
	r.Register(KeyBinding{Key: "ctrl+s", Description: "start", Priority: 40, Handler: func(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
		next, cmd := m.startTimer()
		return next, cmd, true
	}})
	stop := func(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
		next, cmd := m.stopTimer()
		return next, cmd, true
	}
	r.Register(KeyBinding{Key: "ctrl+x", Description: "stop", Priority: 40, Handler: stop})
	r.Register(KeyBinding{Key: "esc", Priority: 40, Handler: stop})
	r.Register(KeyBinding{Key: "tab", Description: "volgende", Priority: 30, Handler: func(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
		return m.moveFocus(1), nil, true
	}})
	r.Register(KeyBinding{Key: "shift+tab", Priority: 30, Handler: func(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
		return m.moveFocus(-1), nil, true
	}})
	r.Register(KeyBinding{Key: "up", Description: "minuut erbij", Focus: []focusKind{focusMinutes}, Priority: 20, Handler: func(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
		return m.adjustMinutes(1), nil, true
	}})
	r.Register(KeyBinding{Key: "down", Description: "minuut eraf", Focus: []focusKind{focusMinutes}, Priority: 20, Handler: func(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
		return m.adjustMinutes(-1), nil, true
	}})
	r.Register(KeyBinding{Key: "right", Description: "volgende taak", Focus: []focusKind{focusSlot}, Priority: 20, Handler: func(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
		return m.cycleSelection(m.currentFocus().slot, 1), nil, true
	}})
	r.Register(KeyBinding{Key: "left", Description: "vorige taak", Focus: []focusKind{focusSlot}, Priority: 20, Handler: func(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
		return m.cycleSelection(m.currentFocus().slot, -1), nil, true
	}})
	r.Register(KeyBinding{Key: "ctrl+r", Description: "taken wissen", Priority: 10, Handler: func(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
		return m.clearTasks(), nil, true
	}})
	r.Register(KeyBinding{Key: "ctrl+p", Description: "pdf", Priority: 10, Handler: func(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
		next, cmd := m.exportTasks()
		return next, cmd, true
	}})
	// Plain letters go to text fields; outside them q quits.
	r.Register(KeyBinding{Key: "q", Description: "stop programma", Focus: []focusKind{focusStart, focusStop, focusSlot}, Handler: func(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
		m.quitting = true
		return m, tea.Quit, true
	}})
}
