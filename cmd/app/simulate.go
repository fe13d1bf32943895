package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/akyairhashvil/stoplicht/internal/clock"
	"github.com/akyairhashvil/stoplicht/internal/config"
	"github.com/akyairhashvil/stoplicht/internal/display"
	"github.com/akyairhashvil/stoplicht/internal/timer"
)

// SimulateCmd runs a countdown on a virtual clock and prints what the
// display is told to do.
type SimulateCmd struct {
	Minutes   string        `arg:"" optional:"" help:"Minutes to count down" default:"1"`
	StopAfter time.Duration `name:"stop-after" help:"Press stop after this long (0: let it finish)"`
	Chime     bool          `help:"Let the chime succeed" default:"true" negatable:""`
}

func (s *SimulateCmd) Run(root *CLI) error {
	settings, _, err := root.load()
	if err != nil {
		return err
	}
	out := root.stdout()
	epoch := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	clk := clock.NewManual(epoch)
	rec := &display.Recorder{}
	if !s.Chime {
		rec.ChimeErr = errors.New("simulated: no audio device")
	}
	ctrl := timer.New(clk, rec,
		timer.WithMaxMinutes(settings.Timer.MaxMinutes),
		timer.WithMessages(settings.Timer.IdleMessage, settings.Timer.WorkingMessage),
		timer.WithInvalidMessage(settings.Timer.InvalidMessage),
		timer.WithGracePeriod(settings.Timer.GracePeriod),
	)

	printed := 0
	flush := func() {
		elapsed := clk.Now().Sub(epoch)
		for _, c := range rec.Commands[printed:] {
			fmt.Fprintf(out, "[%s] %s\n", formatElapsed(elapsed), c)
		}
		printed = len(rec.Commands)
	}

	ctrl.Init()
	flush()
	if err := ctrl.Start(s.Minutes); err != nil {
		var invalid *timer.InvalidInputError
		if errors.As(err, &invalid) {
			fmt.Fprintf(out, "[%s] alert: %s\n", formatElapsed(0), invalid.Notice())
			return nil
		}
		return err
	}
	flush()

	total := ctrl.State().Remaining()
	for step := time.Duration(0); step < total+settings.Timer.GracePeriod; step += config.TickPeriod {
		if s.StopAfter > 0 && step >= s.StopAfter {
			ctrl.Stop()
			flush()
			break
		}
		clk.Advance(config.TickPeriod)
		flush()
	}
	return nil
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
