package tui

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/akyairhashvil/stoplicht/internal/config"
	"github.com/akyairhashvil/stoplicht/internal/models"
	"github.com/akyairhashvil/stoplicht/internal/taskpanel"
)

func (m MainModel) View() string {
	if m.quitting {
		return ""
	}
	if m.alert != "" {
		return m.renderAlert()
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, m.renderLight(), "  ", m.renderControls())
	tasks := m.renderTasks()
	body := lipgloss.JoinVertical(lipgloss.Left, top, "", tasks, "", m.renderFooter())
	return m.theme.Base.Render(body)
}

func (m MainModel) lamp(color, lit models.LightColor) string {
	fill := m.theme.LampOff
	if color == lit {
		switch color {
		case models.LightRed:
			fill = m.theme.LampRed
		case models.LightYellow:
			fill = m.theme.LampYellow
		case models.LightGreen:
			fill = m.theme.LampGreen
		}
	}
	return lipgloss.NewStyle().
		Width(config.LampWidth).
		Height(2).
		Background(fill).
		Render("")
}

// renderLight draws the housing with the lamps top to bottom.
func (m MainModel) renderLight() string {
	lit := m.display.Snapshot().Light
	lamps := make([]string, 0, len(models.Lights))
	for _, c := range models.Lights {
		lamps = append(lamps, m.lamp(c, lit))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Center, strings.Join(lamps, "\n\n")))
}

func (m MainModel) button(label string, enabled, focused bool) string {
	style := m.theme.ButtonOff
	if enabled {
		style = m.theme.ButtonOn
	}
	if focused {
		style = style.Underline(true)
	}
	return style.Render(label)
}

func (m MainModel) renderControls() string {
	snap := m.display.Snapshot()
	f := m.currentFocus()
	width := m.hourglass.Width + 2

	status := m.theme.Status.Width(width).Render(snap.Status)

	// The bar shows the sand still left in the top half.
	sand := 1 - m.display.HourglassProgress()
	if !snap.Hourglass.Running {
		sand = 0
	}
	remaining := m.theme.Remaining.Render(FormatTimeRemaining(m.ctrl.State().Remaining()))
	hourglass := lipgloss.JoinHorizontal(lipgloss.Center, m.hourglass.ViewAs(sand), "  ", remaining)

	label := "Minuten"
	if limit := m.ctrl.MaxMinutes(); limit > 0 {
		label = fmt.Sprintf("Minuten (%d-%d)", config.MinMinutes, limit)
	}
	if f.kind == focusMinutes {
		label = m.theme.Focused.Render(label)
	} else {
		label = m.theme.Dim.Render(label)
	}
	input := m.theme.Input.Render(m.minutes.View())

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		m.button("Start", snap.StartEnabled, f.kind == focusStart),
		" ",
		m.button("Stop", snap.StopEnabled, f.kind == focusStop),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Header.Render(strings.ToUpper(config.AppName)),
		"",
		status,
		"",
		hourglass,
		"",
		label,
		input,
		buttons,
	)
}

func optionLabel(asset string) string {
	if asset == "" {
		return "(geen)"
	}
	name := path.Base(asset)
	return strings.TrimSuffix(name, path.Ext(name))
}

func (m MainModel) renderTask(v taskpanel.View) string {
	f := m.currentFocus()
	i := v.Slot - 1

	title := v.Label
	if title == "" {
		title = fmt.Sprintf("Taak %d", v.Slot)
	}
	selector := fmt.Sprintf("< %s >", optionLabel(v.Asset))
	if f.kind == focusSlot && f.slot == v.Slot {
		selector = m.theme.Focused.Render(selector)
	} else {
		selector = m.theme.Highlight.Render(selector)
	}
	lines := []string{m.theme.Header.Render(title), selector}

	if v.Visible {
		lines = append(lines, m.theme.Dim.Render(truncate(fmt.Sprintf("%d. %s", v.Number, v.ImageURL), config.TaskColumnWidth-4)))
	}
	switch v.Kind {
	case taskpanel.AnnotationText:
		if i < len(m.notes) {
			lines = append(lines, m.notes[i].View())
		}
	case taskpanel.AnnotationPages:
		if i < len(m.pageFrom) {
			lines = append(lines, "blz. "+m.pageFrom[i].View()+" - "+m.pageTo[i].View())
			if v.PageRange != "" {
				lines = append(lines, m.theme.Dim.Render(v.PageRange))
			}
		}
	}

	border := m.theme.Border
	if f.slot == v.Slot {
		border = m.theme.LampGreen
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(config.TaskColumnWidth).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m MainModel) renderTasks() string {
	views := m.tasks.Views()
	if len(views) == 0 {
		return ""
	}
	cards := make([]string, 0, len(views))
	for _, v := range views {
		cards = append(cards, m.renderTask(v))
	}
	if m.width > 0 && m.width < config.CompactModeThreshold {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m MainModel) renderFooter() string {
	var lines []string
	if m.message != "" {
		lines = append(lines, m.theme.Focused.Render(m.message))
	}
	if m.last.chimeFailed {
		lines = append(lines, m.theme.Dim.Render("(geen geluid beschikbaar)"))
	}
	help := m.registry.HelpFor(m.currentFocus().kind)
	if m.width > 4 {
		help = truncate(help, m.width-4)
	}
	lines = append(lines, m.theme.Dim.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m MainModel) renderAlert() string {
	box := m.theme.Alert.Render(m.alert + "\n\n" + m.theme.Dim.Render("[een toets] OK"))
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
