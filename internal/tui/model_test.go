package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/akyairhashvil/stoplicht/internal/chime"
	"github.com/akyairhashvil/stoplicht/internal/clock"
	"github.com/akyairhashvil/stoplicht/internal/config"
	"github.com/akyairhashvil/stoplicht/internal/models"
	"github.com/akyairhashvil/stoplicht/internal/taskpanel"
)

var testEpoch = time.Date(2024, 9, 2, 8, 30, 0, 0, time.UTC)

func testSettings() config.Settings {
	return config.Settings{
		Timer: config.TimerSettings{
			MaxMinutes:     config.DefaultMaxMinutes,
			DefaultMinutes: config.DefaultMinutes,
			IdleMessage:    config.DefaultIdleMessage,
			WorkingMessage: config.DefaultWorkingMessage,
			InvalidMessage: config.InvalidMinutesMessage,
			GracePeriod:    config.GracePeriod,
		},
		Tasks: config.DefaultTasks(),
		UI:    config.UISettings{Theme: "default"},
	}
}

func newTestModel(t *testing.T, opts Options) MainModel {
	t.Helper()
	if opts.Settings.Timer.GracePeriod == 0 {
		opts.Settings = testSettings()
	}
	if opts.Player == nil {
		opts.Player = chime.Nop{}
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return testEpoch }
	}
	m, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func send(t *testing.T, m MainModel, msg tea.Msg) (MainModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(MainModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm, cmd
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// tickHandle returns the live periodic schedule, if any.
func tickHandle(m MainModel) (clock.Handle, bool) {
	for h, tt := range m.clock.live {
		if tt.period > 0 {
			return h, true
		}
	}
	return clock.NoHandle, false
}

func tick(t *testing.T, m MainModel, n int) MainModel {
	t.Helper()
	for i := 0; i < n; i++ {
		h, ok := tickHandle(m)
		if !ok {
			t.Fatalf("no tick scheduled after %d ticks", i)
		}
		m, _ = send(t, m, clockMsg{handle: h})
	}
	return m
}

func TestNewPaintsIdleDisplay(t *testing.T) {
	m := newTestModel(t, Options{})
	snap := m.display.Snapshot()
	if snap.Light != models.LightGreen {
		t.Fatalf("expected green light, got %v", snap.Light)
	}
	if snap.Status != config.DefaultIdleMessage {
		t.Fatalf("expected idle message, got %q", snap.Status)
	}
	if !snap.StartEnabled || snap.StopEnabled {
		t.Fatalf("expected start enabled and stop disabled, got %v/%v", snap.StartEnabled, snap.StopEnabled)
	}
	if m.minutes.Value() != "10" {
		t.Fatalf("expected default minutes 10, got %q", m.minutes.Value())
	}
	if m.currentFocus().kind != focusMinutes {
		t.Fatalf("expected minutes field focused")
	}
}

func TestEnterStartsCountdownAndFocusesStop(t *testing.T) {
	m := newTestModel(t, Options{})
	m, cmd := send(t, m, key(tea.KeyEnter))
	if cmd == nil {
		t.Fatalf("expected tick command after start")
	}
	state := m.ctrl.State()
	if state.Phase != models.PhaseRunning || state.TotalSeconds != 600 {
		t.Fatalf("unexpected state %+v", state)
	}
	snap := m.display.Snapshot()
	if snap.Light != models.LightRed || snap.Status != config.DefaultWorkingMessage {
		t.Fatalf("unexpected display %+v", snap)
	}
	if !snap.Hourglass.Running || snap.Hourglass.Duration != 10*time.Minute {
		t.Fatalf("unexpected hourglass %+v", snap.Hourglass)
	}
	if m.currentFocus().kind != focusStop {
		t.Fatalf("expected focus on stop after start, got %v", m.currentFocus().kind)
	}
	if !strings.Contains(m.View(), "10:00") {
		t.Fatalf("expected remaining time in view")
	}
}

func TestInvalidMinutesShowsBlockingAlert(t *testing.T) {
	m := newTestModel(t, Options{})
	m.minutes.SetValue("0")
	m, _ = send(t, m, key(tea.KeyEnter))
	if m.alert != config.InvalidMinutesMessage {
		t.Fatalf("expected alert, got %q", m.alert)
	}
	if m.ctrl.State().Phase != models.PhaseIdle {
		t.Fatalf("expected idle after rejected input")
	}
	if !strings.Contains(m.View(), config.InvalidMinutesMessage) {
		t.Fatalf("expected alert in view")
	}

	// The next key only dismisses the alert.
	m.minutes.SetValue("5")
	m, _ = send(t, m, key(tea.KeyCtrlS))
	if m.alert != "" {
		t.Fatalf("expected alert dismissed")
	}
	if m.ctrl.State().Phase != models.PhaseIdle {
		t.Fatalf("expected key swallowed by the alert")
	}
	m, _ = send(t, m, key(tea.KeyCtrlS))
	if m.ctrl.State().Phase != models.PhaseRunning {
		t.Fatalf("expected start after dismissing alert")
	}
}

func TestMinutesAboveCapRejected(t *testing.T) {
	m := newTestModel(t, Options{})
	m.minutes.SetValue("60")
	m, _ = send(t, m, key(tea.KeyEnter))
	if m.alert == "" {
		t.Fatalf("expected alert for 60 minutes")
	}
}

func TestStopReturnsToIdle(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(t, m, key(tea.KeyEnter))
	m = tick(t, m, 3)
	if got := m.ctrl.State().RemainingSeconds; got != 597 {
		t.Fatalf("expected 597 seconds left, got %d", got)
	}
	m, _ = send(t, m, key(tea.KeyCtrlX))
	if m.ctrl.State().Phase != models.PhaseIdle {
		t.Fatalf("expected idle after stop")
	}
	if _, ok := tickHandle(m); ok {
		t.Fatalf("expected tick cancelled")
	}
	snap := m.display.Snapshot()
	if snap.Light != models.LightGreen || snap.Hourglass.Running {
		t.Fatalf("unexpected display after stop %+v", snap)
	}
	if m.currentFocus().kind != focusMinutes {
		t.Fatalf("expected focus back on minutes")
	}
}

func TestEnterOnStopButtonStops(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(t, m, key(tea.KeyEnter))
	if m.currentFocus().kind != focusStop {
		t.Fatalf("expected stop focused")
	}
	m, _ = send(t, m, key(tea.KeyEnter))
	if m.ctrl.State().Phase != models.PhaseIdle {
		t.Fatalf("expected enter on stop to stop")
	}
}

func TestCountdownFinishesWithChime(t *testing.T) {
	m := newTestModel(t, Options{})
	m.minutes.SetValue("1")
	m, _ = send(t, m, key(tea.KeyEnter))
	m = tick(t, m, 60)

	if m.ctrl.State().Phase != models.PhaseIdle {
		t.Fatalf("expected idle after finish, got %v", m.ctrl.State().Phase)
	}
	snap := m.display.Snapshot()
	if snap.Chimes != 1 {
		t.Fatalf("expected one chime, got %d", snap.Chimes)
	}
	if snap.Light != models.LightGreen || !snap.StartEnabled {
		t.Fatalf("unexpected display after finish %+v", snap)
	}
	if len(m.clock.live) != 1 {
		t.Fatalf("expected only the grace re-assert pending, got %d", len(m.clock.live))
	}
	for h := range m.clock.live {
		m, _ = send(t, m, clockMsg{handle: h})
	}
	if len(m.clock.live) != 0 {
		t.Fatalf("expected nothing pending after grace")
	}
}

func TestChimeFailureNotedInFooter(t *testing.T) {
	m := newTestModel(t, Options{Player: chime.Disabled{}})
	m.minutes.SetValue("1")
	m, _ = send(t, m, key(tea.KeyEnter))
	m = tick(t, m, 60)
	if m.ctrl.State().Phase != models.PhaseIdle {
		t.Fatalf("expected finish despite chime failure")
	}
	if !strings.Contains(m.View(), "geen geluid") {
		t.Fatalf("expected chime failure note in view")
	}
}

func TestListenerReceivesEvents(t *testing.T) {
	var kinds []models.EventKind
	m := newTestModel(t, Options{Listener: listenerFunc(func(ev models.TimerEvent) { kinds = append(kinds, ev.Kind) })})
	m, _ = send(t, m, key(tea.KeyEnter))
	_, _ = send(t, m, key(tea.KeyCtrlX))
	if len(kinds) != 2 || kinds[0] != models.EventStarted || kinds[1] != models.EventStopped {
		t.Fatalf("unexpected events %v", kinds)
	}
}

type listenerFunc func(models.TimerEvent)

func (f listenerFunc) OnTimerEvent(ev models.TimerEvent) { f(ev) }

func TestAdjustMinutesClamps(t *testing.T) {
	m := newTestModel(t, Options{})
	m.minutes.SetValue("1")
	m, _ = send(t, m, key(tea.KeyDown))
	if m.minutes.Value() != "1" {
		t.Fatalf("expected clamp at 1, got %q", m.minutes.Value())
	}
	m, _ = send(t, m, key(tea.KeyUp))
	if m.minutes.Value() != "2" {
		t.Fatalf("expected 2, got %q", m.minutes.Value())
	}
	m.minutes.SetValue("59")
	m, _ = send(t, m, key(tea.KeyUp))
	if m.minutes.Value() != "59" {
		t.Fatalf("expected clamp at 59, got %q", m.minutes.Value())
	}
	m.minutes.SetValue("abc")
	m, _ = send(t, m, key(tea.KeyUp))
	if m.minutes.Value() != "1" {
		t.Fatalf("expected reset to 1 for garbage, got %q", m.minutes.Value())
	}
}

func TestTypingIntoMinutes(t *testing.T) {
	m := newTestModel(t, Options{})
	m.minutes.SetValue("")
	m, _ = send(t, m, runes("7"))
	if m.minutes.Value() != "7" {
		t.Fatalf("expected typed minutes, got %q", m.minutes.Value())
	}
	if m.quitting {
		t.Fatalf("runes in a text field must not quit")
	}
}

func TestFocusCycle(t *testing.T) {
	m := newTestModel(t, Options{})
	order := m.focusOrder()
	// minutes, start, stop, then slot + notes, slot + two page fields, slot + notes twice.
	if len(order) != 3+2+3+2+2 {
		t.Fatalf("unexpected focus order length %d", len(order))
	}
	for range order {
		m, _ = send(t, m, key(tea.KeyTab))
	}
	if m.currentFocus().kind != focusMinutes {
		t.Fatalf("expected focus to wrap around")
	}
	m, _ = send(t, m, key(tea.KeyShiftTab))
	if f := m.currentFocus(); f.kind != focusNotes || f.slot != 4 {
		t.Fatalf("expected last notes field, got %+v", f)
	}
}

func TestSlotSelectionCycles(t *testing.T) {
	m := newTestModel(t, Options{})
	m = m.focusOn(focus{kind: focusSlot, slot: 1})
	m, _ = send(t, m, key(tea.KeyRight))
	sel, _ := m.tasks.Selection(1)
	if sel != "werkboeken/Werkboekje 1.jpg" {
		t.Fatalf("unexpected selection %q", sel)
	}
	m, _ = send(t, m, key(tea.KeyLeft))
	sel, _ = m.tasks.Selection(1)
	if sel != "" {
		t.Fatalf("expected empty selection, got %q", sel)
	}
	m, _ = send(t, m, key(tea.KeyLeft))
	sel, _ = m.tasks.Selection(1)
	if sel != "werkboeken/Werkboekje 9.jpg" {
		t.Fatalf("expected wrap to last option, got %q", sel)
	}
	if !strings.Contains(m.View(), "Werkboekje 9") {
		t.Fatalf("expected selection label in view")
	}
}

func TestNotesAndPagesReachTaskPanel(t *testing.T) {
	m := newTestModel(t, Options{})
	m = m.focusOn(focus{kind: focusSlot, slot: 1})
	m, _ = send(t, m, key(tea.KeyRight))
	m, _ = send(t, m, key(tea.KeyTab))
	if f := m.currentFocus(); f.kind != focusNotes || f.slot != 1 {
		t.Fatalf("expected notes of slot 1, got %+v", f)
	}
	m, _ = send(t, m, runes("blz 4"))

	m = m.focusOn(focus{kind: focusSlot, slot: 2})
	m, _ = send(t, m, key(tea.KeyRight))
	m = m.focusOn(focus{kind: focusPageFrom, slot: 2})
	m, _ = send(t, m, runes("3"))
	m = m.focusOn(focus{kind: focusPageTo, slot: 2})
	m, _ = send(t, m, runes("7"))

	views := m.tasks.Visible()
	if len(views) != 2 {
		t.Fatalf("expected two visible slots, got %d", len(views))
	}
	if views[0].Notes != "blz 4" {
		t.Fatalf("unexpected notes %q", views[0].Notes)
	}
	if views[1].PageRange != "Pagina's 3 - 7" {
		t.Fatalf("unexpected page range %q", views[1].PageRange)
	}
	if views[1].Annotation.PageFrom != 3 || views[1].Annotation.PageTo != 7 {
		t.Fatalf("unexpected pages %+v", views[1].Annotation)
	}
}

func TestClearTasks(t *testing.T) {
	m := newTestModel(t, Options{})
	m = m.focusOn(focus{kind: focusSlot, slot: 3})
	m, _ = send(t, m, key(tea.KeyRight))
	m, _ = send(t, m, key(tea.KeyCtrlR))
	if len(m.tasks.Visible()) != 0 {
		t.Fatalf("expected no visible tasks after clear")
	}
}

func TestExportTasks(t *testing.T) {
	var got []taskpanel.View
	m := newTestModel(t, Options{Export: func(_ context.Context, views []taskpanel.View) (string, error) {
		got = views
		return "/tmp/taken.pdf", nil
	}})

	m, _ = send(t, m, key(tea.KeyCtrlP))
	if m.message != "Geen taken gekozen" {
		t.Fatalf("expected empty-selection message, got %q", m.message)
	}

	m = m.focusOn(focus{kind: focusSlot, slot: 4})
	m, _ = send(t, m, key(tea.KeyRight))
	next, cmd := m.update(key(tea.KeyCtrlP))
	if cmd == nil {
		t.Fatalf("expected export command")
	}
	msg := cmd()
	m, _ = send(t, next, msg)
	if len(got) != 1 || got[0].Slot != 4 {
		t.Fatalf("unexpected exported views %+v", got)
	}
	if m.message != "Opgeslagen: /tmp/taken.pdf" {
		t.Fatalf("unexpected message %q", m.message)
	}
}

func TestExportFailureReported(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(t, m, exportDoneMsg{err: errors.New("disk full")})
	if !strings.Contains(m.message, "disk full") {
		t.Fatalf("expected failure message, got %q", m.message)
	}
}

func TestSettingsMsgUpdatesMessages(t *testing.T) {
	m := newTestModel(t, Options{})
	s := testSettings()
	s.Timer.IdleMessage = "Vinger op!"
	s.Tasks = s.Tasks[:2]
	m, _ = send(t, m, SettingsMsg{Settings: s})
	if m.tasks.Len() != 2 || len(m.notes) != 2 {
		t.Fatalf("expected two slots after reload, got %d", m.tasks.Len())
	}
	m, _ = send(t, m, key(tea.KeyEnter))
	m, _ = send(t, m, key(tea.KeyCtrlX))
	if got := m.display.Snapshot().Status; got != "Vinger op!" {
		t.Fatalf("expected reloaded idle message, got %q", got)
	}
}

func TestSettingsMsgErrorKeepsConfig(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(t, m, SettingsMsg{Err: errors.New("bad yaml")})
	if m.tasks.Len() != 4 {
		t.Fatalf("expected slots unchanged")
	}
	if !strings.Contains(m.message, "bad yaml") {
		t.Fatalf("expected error message, got %q", m.message)
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, Options{})
	m, cmd := send(t, m, key(tea.KeyCtrlC))
	if !m.quitting || cmd == nil {
		t.Fatalf("expected quit on ctrl+c")
	}
	if m.View() != "" {
		t.Fatalf("expected empty view when quitting")
	}

	m = newTestModel(t, Options{})
	m = m.focusOn(focus{kind: focusStart})
	m, _ = send(t, m, runes("q"))
	if !m.quitting {
		t.Fatalf("expected q to quit outside text fields")
	}
}

func TestWindowSizeBoundsHourglass(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	if m.hourglass.Width != config.MinHourglassWidth {
		t.Fatalf("expected min width, got %d", m.hourglass.Width)
	}
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 200, Height: 50})
	if m.hourglass.Width != config.TargetHourglassWidth {
		t.Fatalf("expected target width, got %d", m.hourglass.Width)
	}
}
