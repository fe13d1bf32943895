package config

// Layout constants.
const (
	// MinHourglassWidth is the narrowest hourglass bar.
	MinHourglassWidth = 10

	// TargetHourglassWidth is the preferred hourglass bar width.
	TargetHourglassWidth = 40

	// CompactModeThreshold triggers compact rendering below this width.
	CompactModeThreshold = 60

	// LampWidth is the width of one traffic light lamp.
	LampWidth = 9

	// TaskColumnWidth is the width of one task slot card.
	TaskColumnWidth = 28
)

// Input constraints.
const (
	// MinutesCharLimit bounds the minutes field.
	MinutesCharLimit = 3

	// MaxNotesLength is the maximum free-text annotation length.
	MaxNotesLength = 200

	// PageCharLimit bounds the page-range fields.
	PageCharLimit = 4
)

// Display limits.
const (
	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "..."
)
