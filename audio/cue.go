// Package audio turns scheduler ticks into short audible cues
package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/gridbots/engine"
)

const (
	SampleRate  beep.SampleRate = 44100
	CueDuration                 = 40 * time.Millisecond

	// Cue pitch spans from all-idle to all-moving
	BaseFrequency = 220.0
	PeakFrequency = 880.0
)

// CueFrequency maps the moving share of a tick to a pitch
func CueFrequency(stats engine.TickStats) float64 {
	total := stats.Idle + stats.Moving
	if total == 0 {
		return BaseFrequency
	}
	frac := float64(stats.Moving) / float64(total)
	return BaseFrequency + (PeakFrequency-BaseFrequency)*frac
}

// Cue builds a finite sine blip for one tick, scaled linearly by volume in [0,1]
func Cue(stats engine.TickStats, volume float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(SampleRate, CueFrequency(stats))
	if err != nil {
		return nil, fmt.Errorf("sine tone: %w", err)
	}
	return &effects.Gain{
		Streamer: beep.Take(SampleRate.N(CueDuration), sine),
		Gain:     volume - 1,
	}, nil
}
