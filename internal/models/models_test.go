package models

import (
	"testing"
	"time"
)

func TestPhaseStrings(t *testing.T) {
	if PhaseIdle.String() != "idle" {
		t.Fatalf("PhaseIdle = %q", PhaseIdle.String())
	}
	if PhaseRunning.String() != "running" {
		t.Fatalf("PhaseRunning = %q", PhaseRunning.String())
	}
	if PhaseFinishing.String() != "finishing" {
		t.Fatalf("PhaseFinishing = %q", PhaseFinishing.String())
	}
}

func TestTimerStateZeroValueIsIdle(t *testing.T) {
	var s TimerState
	if s.Phase != PhaseIdle || s.RemainingSeconds != 0 {
		t.Fatalf("expected idle zero value, got %+v", s)
	}
	if s.Progress() != 0 {
		t.Fatalf("expected zero progress")
	}
}

func TestTimerStateProgress(t *testing.T) {
	s := TimerState{Phase: PhaseRunning, TotalSeconds: 120, RemainingSeconds: 30}
	if got := s.Progress(); got != 0.75 {
		t.Fatalf("Progress = %v, want 0.75", got)
	}
	if got := s.Elapsed(); got != 90*time.Second {
		t.Fatalf("Elapsed = %v", got)
	}
	if got := s.Remaining(); got != 30*time.Second {
		t.Fatalf("Remaining = %v", got)
	}
}

func TestDisplayCommandString(t *testing.T) {
	cases := []struct {
		cmd  DisplayCommand
		want string
	}{
		{DisplayCommand{Kind: CmdSetLight, Light: LightRed}, "SetLight(red)"},
		{DisplayCommand{Kind: CmdSetButtonsEnabled, StartEnabled: true}, "SetButtonsEnabled(true, false)"},
		{DisplayCommand{Kind: CmdStartHourglass, Duration: 5 * time.Minute}, "StartHourglass(300)"},
		{DisplayCommand{Kind: CmdPlayChime}, "PlayChime()"},
	}
	for _, tc := range cases {
		if got := tc.cmd.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestHourglassProgressClamped(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	h := HourglassState{Running: true, Duration: time.Minute, StartedAt: start}
	if got := h.Progress(start.Add(30 * time.Second)); got != 0.5 {
		t.Fatalf("Progress = %v, want 0.5", got)
	}
	if got := h.Progress(start.Add(2 * time.Minute)); got != 1 {
		t.Fatalf("Progress = %v, want 1", got)
	}
	h.Running = false
	if got := h.Progress(start.Add(30 * time.Second)); got != 0 {
		t.Fatalf("stopped hourglass Progress = %v, want 0", got)
	}
}

func TestSessionDuration(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	s := Session{StartedAt: start}
	if s.Duration() != 0 {
		t.Fatalf("open session should have zero duration")
	}
	end := start.Add(5 * time.Minute)
	s.EndedAt = &end
	if s.Duration() != 5*time.Minute {
		t.Fatalf("Duration = %v", s.Duration())
	}
}
