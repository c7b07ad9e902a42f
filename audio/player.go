package audio

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/elgoog577215-beep/skyfall/event"
)

// CuePlayer turns bus events into cues
// HandleEvent runs on the simulation goroutine; streamers are synthesized lazily by the mixer
type CuePlayer struct {
	out    Output
	cfg    *Config
	logger zerolog.Logger

	muted  atomic.Bool
	played [cueCount]atomic.Uint64

	// Per-cue minimum spacing so a burst of same-tick events plays once
	lastAt  [cueCount]time.Time
	spacing time.Duration
	now     func() time.Time
}

// NewCuePlayer creates a player writing to out, nil cfg uses DefaultConfig
func NewCuePlayer(out Output, cfg *Config, logger zerolog.Logger) *CuePlayer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &CuePlayer{
		out:     out,
		cfg:     cfg,
		logger:  logger.With().Str("component", "audio").Logger(),
		spacing: 20 * time.Millisecond,
		now:     time.Now,
	}
}

// Name returns the handler name used in logs
func (p *CuePlayer) Name() string {
	return "audio"
}

// EventTypes implements event.Handler
func (p *CuePlayer) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventProjectileFired,
		event.EventObstacleHit,
		event.EventObstacleDestroyed,
		event.EventPlayerDamaged,
		event.EventPlayerDestroyed,
		event.EventRunRestarted,
	}
}

// HandleEvent implements event.Handler
func (p *CuePlayer) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventProjectileFired:
		p.Play(CueShot)
	case event.EventObstacleHit:
		p.Play(CueHit)
	case event.EventObstacleDestroyed:
		p.Play(CueDestroy)
	case event.EventPlayerDamaged:
		p.Play(CueDamage)
	case event.EventPlayerDestroyed:
		p.Play(CueGameOver)
	case event.EventRunRestarted:
		p.Play(CueRestart)
	}
}

// Play synthesizes and outputs cue unless muted or played within the spacing window
func (p *CuePlayer) Play(cue Cue) bool {
	if p.muted.Load() || cue < 0 || cue >= cueCount {
		return false
	}

	now := p.now()
	if now.Sub(p.lastAt[cue]) < p.spacing {
		return false
	}
	p.lastAt[cue] = now

	s := Build(cue, p.cfg)
	if s == nil {
		return false
	}
	p.out.Play(s)
	p.played[cue].Add(1)
	return true
}

// SetMuted toggles output, safe from any goroutine
func (p *CuePlayer) SetMuted(muted bool) {
	p.muted.Store(muted)
	p.logger.Debug().Bool("muted", muted).Msg("mute toggled")
}

// Muted reports the mute state
func (p *CuePlayer) Muted() bool { return p.muted.Load() }

// Played returns how many times cue was sent to the output
func (p *CuePlayer) Played(cue Cue) uint64 {
	if cue < 0 || cue >= cueCount {
		return 0
	}
	return p.played[cue].Load()
}
