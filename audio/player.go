package audio

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/gridbots/engine"
)

// Player plays one cue per scheduler tick through the system speaker
// Implements engine.TickObserver
type Player struct {
	volume float64
	muted  atomic.Bool
	log    *slog.Logger
}

// NewPlayer opens the speaker; callers treat an error as "run silent"
func NewPlayer(volume float64, log *slog.Logger) (*Player, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Player{volume: volume, log: log}, nil
}

func (p *Player) ObserveTick(stats engine.TickStats, _ time.Duration) {
	if p.muted.Load() || p.volume == 0 {
		return
	}
	cue, err := Cue(stats, p.volume)
	if err != nil {
		p.log.Warn("audio cue failed", "err", err)
		return
	}
	speaker.Play(cue)
}

// SetMuted toggles playback without closing the device
func (p *Player) SetMuted(m bool) {
	p.muted.Store(m)
}

func (p *Player) Close() {
	speaker.Clear()
	speaker.Close()
}
