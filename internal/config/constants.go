package config

import "time"

// Timer durations.
const (
	TickPeriod  = time.Second
	GracePeriod = 3 * time.Second
)

// Minute input bounds.
const (
	MinMinutes        = 1
	DefaultMaxMinutes = 59
	DefaultMinutes    = 10
)

// Status texts shown next to the light.
const (
	DefaultIdleMessage    = "Ik steek mijn vinger op als ik de juf nodig heb."
	DefaultWorkingMessage = "Ik stoor de juf niet!"
	InvalidMinutesMessage = "Voer een tijd in van minimaal 1 minuut!"
)

// Task panel limits.
const (
	MaxTaskSlots = 4
)

// Application settings.
const (
	AppName          = "stoplicht"
	ConfigName       = "stoplicht"
	EnvPrefix        = "STOPLICHT"
	DBFileName       = "sessions.db"
	LogFileName      = "stoplicht.log"
	DefaultBoardAddr = ":8080"
)
