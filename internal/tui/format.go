package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/akyairhashvil/stoplicht/internal/config"
)

// FormatTimeRemaining formats remaining time as mm:ss.
func FormatTimeRemaining(remaining time.Duration) string {
	if remaining <= 0 {
		return "00:00"
	}
	mins := int(remaining.Minutes())
	secs := int(remaining.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", mins, secs)
}

// truncate shortens s to width cells, ANSI aware.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, config.TruncationSuffix)
}
