package display

import (
	"sync"
	"time"

	"github.com/akyairhashvil/stoplicht/internal/chime"
	"github.com/akyairhashvil/stoplicht/internal/models"
)

// Panel holds what the widget currently shows. A single Light field means
// exactly one lamp is lit at any instant. Snapshot and Subscribe may be
// used from other goroutines.
type Panel struct {
	mu     sync.RWMutex
	snap   models.DisplaySnapshot
	now    func() time.Time
	player chime.Player
	subs   map[int]chan models.DisplaySnapshot
	nextID int
}

// NewPanel starts with the green light lit and no player. now may be nil.
func NewPanel(player chime.Player, now func() time.Time) *Panel {
	if now == nil {
		now = time.Now
	}
	p := &Panel{now: now, player: player, subs: make(map[int]chan models.DisplaySnapshot)}
	p.snap.Light = models.LightGreen
	p.snap.LightName = models.LightGreen.String()
	p.snap.StartEnabled = true
	return p
}

func (p *Panel) update(fn func(s *models.DisplaySnapshot)) {
	p.mu.Lock()
	fn(&p.snap)
	snap := p.snap
	subs := make([]chan models.DisplaySnapshot, 0, len(p.subs))
	for _, ch := range p.subs {
		subs = append(subs, ch)
	}
	p.mu.Unlock()
	for _, ch := range subs {
		publish(ch, snap)
	}
}

// publish keeps only the latest snapshot in a one-slot channel.
func publish(ch chan models.DisplaySnapshot, snap models.DisplaySnapshot) {
	for {
		select {
		case ch <- snap:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func (p *Panel) SetLight(color models.LightColor) {
	p.update(func(s *models.DisplaySnapshot) {
		s.Light = color
		s.LightName = color.String()
	})
}

func (p *Panel) SetStatusText(text string) {
	p.update(func(s *models.DisplaySnapshot) { s.Status = text })
}

func (p *Panel) SetButtonsEnabled(start, stop bool) {
	p.update(func(s *models.DisplaySnapshot) {
		s.StartEnabled = start
		s.StopEnabled = stop
	})
}

// StartHourglass restarts the sand from the top for d.
func (p *Panel) StartHourglass(d time.Duration) {
	now := p.now()
	p.update(func(s *models.DisplaySnapshot) {
		s.Hourglass = models.HourglassState{Running: true, Duration: d, StartedAt: now}
	})
}

func (p *Panel) ResetHourglass() {
	p.update(func(s *models.DisplaySnapshot) {
		s.Hourglass = models.HourglassState{}
	})
}

// PlayChime plays through the configured player. Without one it reports
// chime.ErrUnavailable.
func (p *Panel) PlayChime() error {
	p.update(func(s *models.DisplaySnapshot) { s.Finishes++ })
	if p.player == nil {
		return &chime.AudioUnavailableError{}
	}
	if err := p.player.Play(); err != nil {
		return err
	}
	p.update(func(s *models.DisplaySnapshot) { s.Chimes++ })
	return nil
}

func (p *Panel) Snapshot() models.DisplaySnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

// HourglassProgress reports the sand fraction at the panel's current time.
func (p *Panel) HourglassProgress() float64 {
	return p.Snapshot().Hourglass.Progress(p.now())
}

// Subscribe returns a channel carrying the latest snapshot after every
// change, starting with the current one, and a function to unsubscribe.
func (p *Panel) Subscribe() (<-chan models.DisplaySnapshot, func()) {
	ch := make(chan models.DisplaySnapshot, 1)
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = ch
	ch <- p.snap
	p.mu.Unlock()
	return ch, func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}
