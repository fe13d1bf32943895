package models

import (
	"fmt"
	"time"
)

// Phase describes the countdown's current mode.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseFinishing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseFinishing:
		return "finishing"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// TimerState is owned by the timer controller. Everything else gets copies.
type TimerState struct {
	Phase            Phase
	TotalSeconds     int
	RemainingSeconds int
}

func (s TimerState) Remaining() time.Duration {
	return time.Duration(s.RemainingSeconds) * time.Second
}

func (s TimerState) Elapsed() time.Duration {
	if s.TotalSeconds <= 0 {
		return 0
	}
	return time.Duration(s.TotalSeconds-s.RemainingSeconds) * time.Second
}

// Progress returns the fraction of the countdown already spent (0..1).
func (s TimerState) Progress() float64 {
	if s.TotalSeconds <= 0 || s.Phase != PhaseRunning {
		return 0
	}
	return float64(s.TotalSeconds-s.RemainingSeconds) / float64(s.TotalSeconds)
}

// LightColor is one lamp of the traffic light.
type LightColor int

const (
	LightGreen LightColor = iota
	// LightYellow exists on the light but no transition selects it.
	LightYellow
	LightRed
)

func (c LightColor) String() string {
	switch c {
	case LightGreen:
		return "green"
	case LightYellow:
		return "yellow"
	case LightRed:
		return "red"
	default:
		return fmt.Sprintf("light(%d)", int(c))
	}
}

// Lights lists the lamps top to bottom.
var Lights = []LightColor{LightRed, LightYellow, LightGreen}

// CommandKind enumerates display commands.
type CommandKind int

const (
	CmdSetLight CommandKind = iota
	CmdSetStatusText
	CmdSetButtonsEnabled
	CmdStartHourglass
	CmdResetHourglass
	CmdPlayChime
)

// DisplayCommand is one side-effect instruction for a display adapter.
type DisplayCommand struct {
	Kind         CommandKind
	Light        LightColor
	Text         string
	StartEnabled bool
	StopEnabled  bool
	Duration     time.Duration
}

func (c DisplayCommand) String() string {
	switch c.Kind {
	case CmdSetLight:
		return fmt.Sprintf("SetLight(%s)", c.Light)
	case CmdSetStatusText:
		return fmt.Sprintf("SetStatusText(%q)", c.Text)
	case CmdSetButtonsEnabled:
		return fmt.Sprintf("SetButtonsEnabled(%t, %t)", c.StartEnabled, c.StopEnabled)
	case CmdStartHourglass:
		return fmt.Sprintf("StartHourglass(%d)", int(c.Duration.Seconds()))
	case CmdResetHourglass:
		return "ResetHourglass()"
	case CmdPlayChime:
		return "PlayChime()"
	default:
		return fmt.Sprintf("command(%d)", int(c.Kind))
	}
}

// HourglassState tracks the sand animation.
type HourglassState struct {
	Running   bool          `json:"running"`
	Duration  time.Duration `json:"duration"`
	StartedAt time.Time     `json:"started_at"`
}

// Progress reports how much sand has run through at now (0..1).
func (h HourglassState) Progress(now time.Time) float64 {
	if !h.Running || h.Duration <= 0 {
		return 0
	}
	p := float64(now.Sub(h.StartedAt)) / float64(h.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// DisplaySnapshot is what a display currently shows.
type DisplaySnapshot struct {
	Light        LightColor     `json:"-"`
	LightName    string         `json:"light"`
	Status       string         `json:"status"`
	StartEnabled bool           `json:"start_enabled"`
	StopEnabled  bool           `json:"stop_enabled"`
	Hourglass    HourglassState `json:"hourglass"`
	// Chimes counts chimes the host played; Finishes counts every request,
	// so a page without a host speaker can sound its own.
	Chimes   int `json:"chimes"`
	Finishes int `json:"finishes"`
}

// EventKind classifies timer events delivered to listeners.
type EventKind string

const (
	EventStarted     EventKind = "started"
	EventTick        EventKind = "tick"
	EventStopped     EventKind = "stopped"
	EventFinished    EventKind = "finished"
	EventRejected    EventKind = "rejected"
	EventChimeFailed EventKind = "chime_failed"
)

// TimerEvent is emitted by the controller after a transition.
type TimerEvent struct {
	Kind             EventKind
	State            TimerState
	RequestedMinutes int
	// Abandoned is the number of seconds left when a countdown was stopped.
	Abandoned int
	At        time.Time
	Err       error
}

// SessionOutcome records how a countdown ended.
type SessionOutcome string

const (
	OutcomeRunning  SessionOutcome = "running"
	OutcomeStopped  SessionOutcome = "stopped"
	OutcomeFinished SessionOutcome = "finished"
)

// Session is one countdown as written to the journal.
type Session struct {
	ID               string
	RequestedMinutes int
	StartedAt        time.Time
	EndedAt          *time.Time
	Outcome          SessionOutcome
	RemainingSeconds int
}

// Duration is the time the session actually ran.
func (s Session) Duration() time.Duration {
	if s.EndedAt == nil {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}
