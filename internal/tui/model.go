// Package tui is the terminal front end: a traffic light, an hourglass bar,
// the minutes field and the task slots, driven by the timer controller.
package tui

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/akyairhashvil/stoplicht/internal/chime"
	"github.com/akyairhashvil/stoplicht/internal/config"
	"github.com/akyairhashvil/stoplicht/internal/display"
	"github.com/akyairhashvil/stoplicht/internal/logger"
	"github.com/akyairhashvil/stoplicht/internal/models"
	"github.com/akyairhashvil/stoplicht/internal/taskpanel"
	"github.com/akyairhashvil/stoplicht/internal/timer"
	"github.com/akyairhashvil/stoplicht/internal/util"
)

// maxMinutesField is the largest value the minutes field can hold.
const maxMinutesField = 999

type focusKind int

const (
	focusMinutes focusKind = iota
	focusStart
	focusStop
	focusSlot
	focusNotes
	focusPageFrom
	focusPageTo
)

type focus struct {
	kind focusKind
	slot int
}

// ExportFunc writes the visible task slots somewhere and returns where.
type ExportFunc func(ctx context.Context, views []taskpanel.View) (string, error)

type Options struct {
	Settings config.Settings
	Player   chime.Player
	Listener timer.Listener
	Log      *logger.Logger
	Export   ExportFunc
	Now      func() time.Time
}

// SettingsMsg carries a reloaded configuration into the running program.
type SettingsMsg struct {
	Settings config.Settings
	Err      error
}

type exportDoneMsg struct {
	path string
	err  error
}

// lastEvent remembers what the footer reports about the countdown.
type lastEvent struct {
	kind        models.EventKind
	chimeFailed bool
}

func (l *lastEvent) OnTimerEvent(ev models.TimerEvent) {
	switch ev.Kind {
	case models.EventChimeFailed:
		l.chimeFailed = true
	case models.EventStarted:
		l.chimeFailed = false
	}
	l.kind = ev.Kind
}

type MainModel struct {
	settings config.Settings
	theme    Theme
	log      *logger.Logger

	ctrl     *timer.Controller
	clock    *teaClock
	display  *display.Panel
	tasks    *taskpanel.Panel
	registry *HandlerRegistry
	export   ExportFunc
	last     *lastEvent
	// jump is set by the controller's start hook.
	jump *bool

	minutes   textinput.Model
	notes     []textinput.Model
	pageFrom  []textinput.Model
	pageTo    []textinput.Model
	hourglass progress.Model

	focusIdx int
	alert    string
	message  string
	width    int
	height   int
	quitting bool
}

// New builds the model and paints the idle display.
func New(opts Options) (MainModel, error) {
	s := opts.Settings
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	base, err := taskpanel.BaseFromScript(s.Assets.BaseURL)
	if err != nil {
		return MainModel{}, err
	}
	tasks, err := taskpanel.New(taskpanel.SlotsFromSettings(s.Tasks), base)
	if err != nil {
		return MainModel{}, err
	}

	clk := newTeaClock(opts.Now)
	panel := display.NewPanel(opts.Player, clk.Now)
	last := &lastEvent{}
	jump := new(bool)
	ctrl := timer.New(clk, panel,
		timer.WithMaxMinutes(s.Timer.MaxMinutes),
		timer.WithMessages(s.Timer.IdleMessage, s.Timer.WorkingMessage),
		timer.WithInvalidMessage(s.Timer.InvalidMessage),
		timer.WithGracePeriod(s.Timer.GracePeriod),
		timer.WithLogger(log),
		timer.WithListener(timer.Listeners{last, opts.Listener}),
		timer.WithStartHook(func() { *jump = true }),
	)
	ctrl.Init()

	minutes := textinput.New()
	minutes.Placeholder = "min"
	minutes.CharLimit = config.MinutesCharLimit
	minutes.Width = config.MinutesCharLimit + 1
	if s.Timer.DefaultMinutes > 0 {
		minutes.SetValue(strconv.Itoa(s.Timer.DefaultMinutes))
	}
	minutes.Focus()

	m := MainModel{
		settings:  s,
		theme:     ThemeByName(s.UI.Theme),
		log:       log,
		ctrl:      ctrl,
		clock:     clk,
		display:   panel,
		tasks:     tasks,
		registry:  NewHandlerRegistry(),
		export:    opts.Export,
		last:      last,
		jump:      jump,
		minutes:   minutes,
		hourglass: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.resetAnnotationInputs()
	m.registerKeys()
	return m, nil
}

func newAnnotationInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	return ti
}

func (m *MainModel) resetAnnotationInputs() {
	n := m.tasks.Len()
	m.notes = make([]textinput.Model, n)
	m.pageFrom = make([]textinput.Model, n)
	m.pageTo = make([]textinput.Model, n)
	for i := 0; i < n; i++ {
		m.notes[i] = newAnnotationInput("notities", config.MaxNotesLength)
		m.notes[i].Width = config.TaskColumnWidth - 4
		m.pageFrom[i] = newAnnotationInput("van", config.PageCharLimit)
		m.pageFrom[i].Width = config.PageCharLimit + 1
		m.pageTo[i] = newAnnotationInput("tot", config.PageCharLimit)
		m.pageTo[i].Width = config.PageCharLimit + 1
	}
}

func (m MainModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	return next, tea.Batch(cmd, next.clock.cmds())
}

func (m MainModel) update(msg tea.Msg) (MainModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil
	case clockMsg:
		m.clock.fire(msg)
		return m, nil
	case SettingsMsg:
		return m.applySettings(msg), nil
	case exportDoneMsg:
		if msg.err != nil {
			m.log.Errorw("export_failed", "err", msg.err)
			m.message = "Exporteren mislukt: " + msg.err.Error()
		} else {
			m.message = "Opgeslagen: " + msg.path
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.updateFocusedInput(msg)
}

func (m MainModel) handleWindowSize(msg tea.WindowSizeMsg) MainModel {
	m.width = msg.Width
	m.height = msg.Height
	m.hourglass.Width = util.Clamp(msg.Width-config.LampWidth-12, config.MinHourglassWidth, config.TargetHourglassWidth)
	return m
}

func (m MainModel) applySettings(msg SettingsMsg) MainModel {
	if msg.Err != nil {
		m.log.Warnw("config_reload_failed", "err", msg.Err)
		m.message = "Instellingen niet geladen: " + msg.Err.Error()
		return m
	}
	s := msg.Settings
	if err := m.tasks.Reconfigure(taskpanel.SlotsFromSettings(s.Tasks)); err != nil {
		m.log.Warnw("config_reload_failed", "err", err)
		m.message = "Instellingen niet geladen: " + err.Error()
		return m
	}
	if base, err := taskpanel.BaseFromScript(s.Assets.BaseURL); err == nil {
		m.tasks.SetBase(base)
	}
	m.ctrl.SetMessages(s.Timer.IdleMessage, s.Timer.WorkingMessage)
	m.settings = s
	m.theme = ThemeByName(s.UI.Theme)
	if len(m.notes) != m.tasks.Len() {
		m.resetAnnotationInputs()
		m.focusIdx = 0
		m = m.applyFocus()
	}
	m.log.Infow("config_reloaded")
	m.message = "Instellingen bijgewerkt"
	return m
}

func (m MainModel) handleKey(msg tea.KeyMsg) (MainModel, tea.Cmd) {
	key := msg.String()
	if m.alert != "" {
		// The alert blocks everything until dismissed.
		if key == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		m.alert = ""
		return m, nil
	}
	if next, cmd, handled := m.registry.Handle(m, key); handled {
		return next, cmd
	}
	return m.updateFocusedInput(msg)
}

// focusOrder lists the focusable widgets top to bottom.
func (m MainModel) focusOrder() []focus {
	order := []focus{{kind: focusMinutes}, {kind: focusStart}, {kind: focusStop}}
	for i := 1; i <= m.tasks.Len(); i++ {
		order = append(order, focus{kind: focusSlot, slot: i})
		cfg, err := m.tasks.Slot(i)
		if err != nil {
			continue
		}
		switch cfg.Annotation {
		case taskpanel.AnnotationText:
			order = append(order, focus{kind: focusNotes, slot: i})
		case taskpanel.AnnotationPages:
			order = append(order, focus{kind: focusPageFrom, slot: i}, focus{kind: focusPageTo, slot: i})
		}
	}
	return order
}

func (m MainModel) currentFocus() focus {
	order := m.focusOrder()
	if m.focusIdx < 0 || m.focusIdx >= len(order) {
		return order[0]
	}
	return order[m.focusIdx]
}

func (m MainModel) moveFocus(delta int) MainModel {
	m.focusIdx = util.Wrap(m.focusIdx+delta, len(m.focusOrder()))
	return m.applyFocus()
}

func (m MainModel) focusOn(f focus) MainModel {
	for i, o := range m.focusOrder() {
		if o == f {
			m.focusIdx = i
			break
		}
	}
	return m.applyFocus()
}

// applyFocus blurs every text input except the focused one.
func (m MainModel) applyFocus() MainModel {
	f := m.currentFocus()
	m.minutes.Blur()
	if f.kind == focusMinutes {
		m.minutes.Focus()
	}
	for i := range m.notes {
		slot := i + 1
		m.notes[i].Blur()
		m.pageFrom[i].Blur()
		m.pageTo[i].Blur()
		if f.slot != slot {
			continue
		}
		switch f.kind {
		case focusNotes:
			m.notes[i].Focus()
		case focusPageFrom:
			m.pageFrom[i].Focus()
		case focusPageTo:
			m.pageTo[i].Focus()
		}
	}
	return m
}

func (m MainModel) updateFocusedInput(msg tea.Msg) (MainModel, tea.Cmd) {
	var cmd tea.Cmd
	f := m.currentFocus()
	i := f.slot - 1
	switch f.kind {
	case focusMinutes:
		m.minutes, cmd = m.minutes.Update(msg)
	case focusNotes:
		m.notes[i], cmd = m.notes[i].Update(msg)
		m.syncAnnotation(f.slot)
	case focusPageFrom:
		m.pageFrom[i], cmd = m.pageFrom[i].Update(msg)
		m.syncAnnotation(f.slot)
	case focusPageTo:
		m.pageTo[i], cmd = m.pageTo[i].Update(msg)
		m.syncAnnotation(f.slot)
	}
	return m, cmd
}

// pageNumber reads a page field; anything but a positive number is unset.
func pageNumber(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (m MainModel) syncAnnotation(slot int) {
	i := slot - 1
	a := taskpanel.Annotation{
		Text:     m.notes[i].Value(),
		PageFrom: pageNumber(m.pageFrom[i].Value()),
		PageTo:   pageNumber(m.pageTo[i].Value()),
	}
	if err := m.tasks.AnnotationChanged(slot, a); err != nil {
		m.log.Warnw("annotation_failed", "slot", slot, "err", err)
	}
}

func (m MainModel) startTimer() (MainModel, tea.Cmd) {
	err := m.ctrl.Start(m.minutes.Value())
	var invalid *timer.InvalidInputError
	if errors.As(err, &invalid) {
		m.alert = invalid.Notice()
		return m, nil
	}
	if *m.jump {
		*m.jump = false
		m = m.focusOn(focus{kind: focusStop})
	}
	m.message = ""
	return m, nil
}

func (m MainModel) stopTimer() (MainModel, tea.Cmd) {
	wasRunning := m.ctrl.State().Phase == models.PhaseRunning
	m.ctrl.Stop()
	if wasRunning {
		m = m.focusOn(focus{kind: focusMinutes})
	}
	return m, nil
}

// cycleSelection steps through "" and the slot's options.
func (m MainModel) cycleSelection(slot, delta int) MainModel {
	opts, err := m.tasks.Options(slot)
	if err != nil {
		return m
	}
	current, _ := m.tasks.Selection(slot)
	values := make([]string, 0, len(opts)+1)
	values = append(values, "")
	idx := 0
	for i, o := range opts {
		values = append(values, o.Value)
		if o.Value == current {
			idx = i + 1
		}
	}
	idx = util.Wrap(idx+delta, len(values))
	if err := m.tasks.SelectionChanged(slot, values[idx]); err != nil {
		m.log.Warnw("selection_failed", "slot", slot, "err", err)
	}
	return m
}

// adjustMinutes nudges the minutes field within the accepted range.
func (m MainModel) adjustMinutes(delta int) MainModel {
	n, ok := timer.ParseMinutes(m.minutes.Value())
	if !ok {
		n = config.MinMinutes - delta
	}
	limit := m.ctrl.MaxMinutes()
	if limit <= 0 {
		limit = maxMinutesField
	}
	n = util.Clamp(n+delta, config.MinMinutes, limit)
	m.minutes.SetValue(strconv.Itoa(n))
	m.minutes.CursorEnd()
	return m
}

func (m MainModel) clearTasks() MainModel {
	m.tasks.Clear()
	m.resetAnnotationInputs()
	return m.applyFocus()
}

func (m MainModel) exportTasks() (MainModel, tea.Cmd) {
	if m.export == nil {
		return m, nil
	}
	views := m.tasks.Visible()
	if len(views) == 0 {
		m.message = "Geen taken gekozen"
		return m, nil
	}
	export := m.export
	m.message = "Bezig met exporteren..."
	return m, func() tea.Msg {
		path, err := export(context.Background(), views)
		return exportDoneMsg{path: path, err: err}
	}
}
