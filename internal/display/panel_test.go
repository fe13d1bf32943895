package display

import (
	"errors"
	"testing"
	"time"

	"github.com/akyairhashvil/stoplicht/internal/chime"
	"github.com/akyairhashvil/stoplicht/internal/models"
)

type fakePlayer struct {
	plays int
	err   error
}

func (f *fakePlayer) Play() error {
	f.plays++
	return f.err
}

type fakeNow struct{ t time.Time }

func (f *fakeNow) now() time.Time { return f.t }

func TestPanelStartsGreenAndIdle(t *testing.T) {
	p := NewPanel(nil, nil)
	s := p.Snapshot()
	if s.Light != models.LightGreen || s.LightName != "green" {
		t.Fatalf("expected green light, got %v", s.Light)
	}
	if !s.StartEnabled || s.StopEnabled {
		t.Fatalf("expected start enabled and stop disabled")
	}
	if s.Hourglass.Running {
		t.Fatalf("hourglass should be idle")
	}
}

func TestPanelSetLightKeepsOneLampLit(t *testing.T) {
	p := NewPanel(nil, nil)
	for _, c := range []models.LightColor{models.LightRed, models.LightYellow, models.LightGreen, models.LightRed} {
		p.SetLight(c)
		if got := p.Snapshot().Light; got != c {
			t.Fatalf("light = %v, want %v", got, c)
		}
	}
}

func TestPanelHourglassRestartAndReset(t *testing.T) {
	clk := &fakeNow{t: time.Date(2024, 9, 2, 9, 0, 0, 0, time.UTC)}
	p := NewPanel(nil, clk.now)

	p.StartHourglass(time.Minute)
	clk.t = clk.t.Add(30 * time.Second)
	if got := p.HourglassProgress(); got != 0.5 {
		t.Fatalf("progress = %v, want 0.5", got)
	}

	p.StartHourglass(2 * time.Minute)
	if got := p.HourglassProgress(); got != 0 {
		t.Fatalf("restart should begin from the top, got %v", got)
	}
	if p.Snapshot().Hourglass.Duration != 2*time.Minute {
		t.Fatalf("duration not updated")
	}

	p.ResetHourglass()
	if p.Snapshot().Hourglass.Running || p.HourglassProgress() != 0 {
		t.Fatalf("reset should halt the hourglass")
	}
}

func TestPanelPlayChime(t *testing.T) {
	if err := NewPanel(nil, nil).PlayChime(); !errors.Is(err, chime.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable without player, got %v", err)
	}

	player := &fakePlayer{}
	p := NewPanel(player, nil)
	if err := p.PlayChime(); err != nil {
		t.Fatalf("PlayChime failed: %v", err)
	}
	if player.plays != 1 || p.Snapshot().Chimes != 1 {
		t.Fatalf("expected one chime, plays=%d chimes=%d", player.plays, p.Snapshot().Chimes)
	}

	player.err = &chime.AudioUnavailableError{Err: errors.New("busy")}
	if err := p.PlayChime(); err == nil {
		t.Fatalf("expected player error")
	}
	if p.Snapshot().Chimes != 1 {
		t.Fatalf("failed chime must not be counted")
	}
	if got := p.Snapshot().Finishes; got != 2 {
		t.Fatalf("expected every chime request counted, got %d", got)
	}

	silent := NewPanel(nil, nil)
	_ = silent.PlayChime()
	if snap := silent.Snapshot(); snap.Finishes != 1 || snap.Chimes != 0 {
		t.Fatalf("headless panel: finishes=%d chimes=%d", snap.Finishes, snap.Chimes)
	}
}

func TestPanelSubscribeReceivesLatest(t *testing.T) {
	p := NewPanel(nil, nil)
	ch, cancel := p.Subscribe()
	defer cancel()

	first := <-ch
	if first.Light != models.LightGreen {
		t.Fatalf("expected initial snapshot")
	}

	p.SetLight(models.LightRed)
	p.SetStatusText("Ik stoor de juf niet!")
	got := <-ch
	if got.Light != models.LightRed || got.Status != "Ik stoor de juf niet!" {
		t.Fatalf("expected latest snapshot, got %+v", got)
	}
	select {
	case extra := <-ch:
		t.Fatalf("expected a single coalesced snapshot, got extra %+v", extra)
	default:
	}

	cancel()
	p.SetLight(models.LightGreen)
	select {
	case <-ch:
		t.Fatalf("unsubscribed channel received a snapshot")
	default:
	}
}
