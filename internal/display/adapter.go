// Package display applies timer commands to whatever shows the traffic light.
package display

import (
	"time"

	"github.com/akyairhashvil/stoplicht/internal/logger"
	"github.com/akyairhashvil/stoplicht/internal/models"
)

// Adapter is the command sink driven by the timer controller.
//
//go:generate mockgen -source=adapter.go -destination=../timer/mock_adapter_test.go -package=timer
type Adapter interface {
	SetLight(color models.LightColor)
	SetStatusText(text string)
	SetButtonsEnabled(start, stop bool)
	StartHourglass(d time.Duration)
	ResetHourglass()
	PlayChime() error
}

// Apply replays a recorded command on an adapter.
func Apply(a Adapter, cmd models.DisplayCommand) error {
	switch cmd.Kind {
	case models.CmdSetLight:
		a.SetLight(cmd.Light)
	case models.CmdSetStatusText:
		a.SetStatusText(cmd.Text)
	case models.CmdSetButtonsEnabled:
		a.SetButtonsEnabled(cmd.StartEnabled, cmd.StopEnabled)
	case models.CmdStartHourglass:
		a.StartHourglass(cmd.Duration)
	case models.CmdResetHourglass:
		a.ResetHourglass()
	case models.CmdPlayChime:
		return a.PlayChime()
	}
	return nil
}

// Multi fans commands out to several adapters. Nil members are skipped.
type Multi []Adapter

func (m Multi) SetLight(color models.LightColor) {
	for _, a := range m {
		if a != nil {
			a.SetLight(color)
		}
	}
}

func (m Multi) SetStatusText(text string) {
	for _, a := range m {
		if a != nil {
			a.SetStatusText(text)
		}
	}
}

func (m Multi) SetButtonsEnabled(start, stop bool) {
	for _, a := range m {
		if a != nil {
			a.SetButtonsEnabled(start, stop)
		}
	}
}

func (m Multi) StartHourglass(d time.Duration) {
	for _, a := range m {
		if a != nil {
			a.StartHourglass(d)
		}
	}
}

func (m Multi) ResetHourglass() {
	for _, a := range m {
		if a != nil {
			a.ResetHourglass()
		}
	}
}

// PlayChime asks every member and returns the first failure.
func (m Multi) PlayChime() error {
	var first error
	for _, a := range m {
		if a == nil {
			continue
		}
		if err := a.PlayChime(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Recorder keeps every command it receives.
type Recorder struct {
	Commands []models.DisplayCommand
	ChimeErr error
}

func (r *Recorder) SetLight(color models.LightColor) {
	r.Commands = append(r.Commands, models.DisplayCommand{Kind: models.CmdSetLight, Light: color})
}

func (r *Recorder) SetStatusText(text string) {
	r.Commands = append(r.Commands, models.DisplayCommand{Kind: models.CmdSetStatusText, Text: text})
}

func (r *Recorder) SetButtonsEnabled(start, stop bool) {
	r.Commands = append(r.Commands, models.DisplayCommand{Kind: models.CmdSetButtonsEnabled, StartEnabled: start, StopEnabled: stop})
}

func (r *Recorder) StartHourglass(d time.Duration) {
	r.Commands = append(r.Commands, models.DisplayCommand{Kind: models.CmdStartHourglass, Duration: d})
}

func (r *Recorder) ResetHourglass() {
	r.Commands = append(r.Commands, models.DisplayCommand{Kind: models.CmdResetHourglass})
}

func (r *Recorder) PlayChime() error {
	r.Commands = append(r.Commands, models.DisplayCommand{Kind: models.CmdPlayChime})
	return r.ChimeErr
}

// Reset forgets recorded commands.
func (r *Recorder) Reset() { r.Commands = nil }

// Count returns how often a command kind was received.
func (r *Recorder) Count(kind models.CommandKind) int {
	n := 0
	for _, c := range r.Commands {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Strings renders the trace, one command per entry.
func (r *Recorder) Strings() []string {
	out := make([]string, 0, len(r.Commands))
	for _, c := range r.Commands {
		out = append(out, c.String())
	}
	return out
}

// Logging writes each command to the logger at debug level.
type Logging struct {
	Log *logger.Logger
}

func (l Logging) SetLight(color models.LightColor) {
	l.Log.Debugw("display_set_light", "light", color.String())
}

func (l Logging) SetStatusText(text string) {
	l.Log.Debugw("display_set_status", "text", text)
}

func (l Logging) SetButtonsEnabled(start, stop bool) {
	l.Log.Debugw("display_set_buttons", "start", start, "stop", stop)
}

func (l Logging) StartHourglass(d time.Duration) {
	l.Log.Debugw("display_start_hourglass", "seconds", int(d.Seconds()))
}

func (l Logging) ResetHourglass() {
	l.Log.Debugw("display_reset_hourglass")
}

func (l Logging) PlayChime() error {
	l.Log.Debugw("display_play_chime")
	return nil
}
