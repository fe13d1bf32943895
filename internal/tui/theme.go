package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name       string
	Base       lipgloss.Style
	Border     lipgloss.Color
	Header     lipgloss.Style
	LampRed    lipgloss.Color
	LampYellow lipgloss.Color
	LampGreen  lipgloss.Color
	LampOff    lipgloss.Color
	Status     lipgloss.Style
	Remaining  lipgloss.Style
	ButtonOn   lipgloss.Style
	ButtonOff  lipgloss.Style
	Input      lipgloss.Style
	Alert      lipgloss.Style
	Focused    lipgloss.Style
	Dim        lipgloss.Style
	Highlight  lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:       "Default",
		Base:       lipgloss.NewStyle().Margin(1, 2),
		Border:     lipgloss.Color("63"),
		Header:     lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		LampRed:    lipgloss.Color("196"),
		LampYellow: lipgloss.Color("220"),
		LampGreen:  lipgloss.Color("40"),
		LampOff:    lipgloss.Color("238"),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
		Remaining:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		ButtonOn:   lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("63")).Padding(0, 2),
		ButtonOff:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("236")).Padding(0, 2),
		Input:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1),
		Alert:      lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("196")).Padding(1, 3).Bold(true),
		Focused:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Highlight:  lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	},
	"dracula": {
		Name:       "Dracula",
		Base:       lipgloss.NewStyle().Margin(1, 2),
		Border:     lipgloss.Color("62"),                                            // Purple
		Header:     lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true), // Cyan
		LampRed:    lipgloss.Color("203"),
		LampYellow: lipgloss.Color("228"),
		LampGreen:  lipgloss.Color("120"),
		LampOff:    lipgloss.Color("60"),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		Remaining:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true), // Pink
		ButtonOn:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("62")).Padding(0, 2),
		ButtonOff:  lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Background(lipgloss.Color("236")).Padding(0, 2),
		Input:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1),
		Alert:      lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("203")).Padding(1, 3).Bold(true),
		Focused:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Highlight:  lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
	},
}

// ThemeByName falls back to the default theme for unknown names.
func ThemeByName(name string) Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return Themes["default"]
}
