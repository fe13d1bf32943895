// Package chime synthesizes and plays the short ascending beep heard when a countdown ends.
package chime

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Tone shape: three steps at 0, 0.1 and 0.2 seconds, 0.5 seconds in total.
const (
	SampleRate = beep.SampleRate(44100)
	Length     = 500 * time.Millisecond
	StartGain  = 0.3
	EndGain    = 0.01
	stepLength = 100 * time.Millisecond
	bufferSize = 100 * time.Millisecond
)

// Frequencies lists the tone steps in Hz.
var Frequencies = []float64{800, 1000, 1200}

// ErrUnavailable reports that no audio output can be used.
var ErrUnavailable = errors.New("audio unavailable")

// AudioUnavailableError wraps the reason playback failed.
type AudioUnavailableError struct {
	Err error
}

func (e *AudioUnavailableError) Error() string {
	if e == nil || e.Err == nil {
		return ErrUnavailable.Error()
	}
	return fmt.Sprintf("%s: %v", ErrUnavailable, e.Err)
}

func (e *AudioUnavailableError) Is(target error) bool { return target == ErrUnavailable }

func (e *AudioUnavailableError) Unwrap() error { return e.Err }

// Player plays the chime once.
type Player interface {
	Play() error
}

// frequencyAt returns the oscillator frequency t into the tone.
func frequencyAt(t time.Duration) float64 {
	step := int(t / stepLength)
	if step >= len(Frequencies) {
		step = len(Frequencies) - 1
	}
	return Frequencies[step]
}

// gainAt follows an exponential ramp from StartGain to EndGain over Length.
func gainAt(t time.Duration) float64 {
	if t <= 0 {
		return StartGain
	}
	if t >= Length {
		return EndGain
	}
	frac := float64(t) / float64(Length)
	return StartGain * math.Pow(EndGain/StartGain, frac)
}

// Tone returns a streamer producing the chime at sample rate sr.
func Tone(sr beep.SampleRate) beep.Streamer {
	total := sr.N(Length)
	pos := 0
	phase := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			t := sr.D(pos)
			phase += 2 * math.Pi * frequencyAt(t) / float64(sr)
			v := gainAt(t) * math.Sin(phase)
			samples[i][0] = v
			samples[i][1] = v
			pos++
			n++
		}
		return n, true
	})
}

// SpeakerPlayer plays through the default audio device. The device is
// opened on first use; if that fails every Play reports the same error.
type SpeakerPlayer struct {
	once    sync.Once
	initErr error
	init    func(beep.SampleRate, int) error
	play    func(...beep.Streamer)
}

func NewSpeakerPlayer() *SpeakerPlayer {
	return &SpeakerPlayer{init: speaker.Init, play: speaker.Play}
}

func (p *SpeakerPlayer) Play() (err error) {
	defer func() {
		// oto panics on some headless systems.
		if r := recover(); r != nil {
			err = &AudioUnavailableError{Err: fmt.Errorf("speaker panic: %v", r)}
		}
	}()
	p.once.Do(func() {
		p.initErr = p.init(SampleRate, SampleRate.N(bufferSize))
	})
	if p.initErr != nil {
		return &AudioUnavailableError{Err: p.initErr}
	}
	p.play(Tone(SampleRate))
	return nil
}

// Nop never makes a sound.
type Nop struct{}

func (Nop) Play() error { return nil }

// Disabled always reports ErrUnavailable.
type Disabled struct{}

func (Disabled) Play() error { return &AudioUnavailableError{} }
