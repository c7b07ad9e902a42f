package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Cue is a short synthesized sound tied to a gameplay event
type Cue int

const (
	CueShot     Cue = iota // Projectile fired
	CueHit                 // Obstacle hit, not destroyed
	CueDestroy             // Obstacle destroyed
	CueDamage              // Player struck
	CueGameOver            // Run ended
	CueRestart             // New run
	cueCount
)

var cueNames = [cueCount]string{"shot", "hit", "destroy", "damage", "game_over", "restart"}

func (c Cue) String() string {
	if c >= 0 && c < cueCount {
		return cueNames[c]
	}
	return "unknown"
}

// Config holds audio configuration
type Config struct {
	SampleRate   int
	MasterVolume float64
	CueVolumes   [cueCount]float64
}

// DefaultConfig returns default volumes; shots sit low since they repeat at fire rate
func DefaultConfig() *Config {
	return &Config{
		SampleRate:   44100,
		MasterVolume: 0.5,
		CueVolumes: [cueCount]float64{
			CueShot:     0.25,
			CueHit:      0.4,
			CueDestroy:  0.8,
			CueDamage:   0.7,
			CueGameOver: 0.8,
			CueRestart:  0.5,
		},
	}
}

// Cue shapes
const (
	shotDuration     = 60 * time.Millisecond
	hitDuration      = 40 * time.Millisecond
	destroyDuration  = 350 * time.Millisecond
	damageDuration   = 180 * time.Millisecond
	gameOverDuration = 900 * time.Millisecond
	restartNote      = 90 * time.Millisecond
	attackShort      = 2 * time.Millisecond
)

// Build synthesizes the streamer for cue, nil for an unknown cue
func Build(cue Cue, cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	var s beep.Streamer
	switch cue {
	case CueShot:
		// Falling square blip
		osc := NewSweep(1400, 700, shotDuration, WaveSquare, rate)
		s = NewEnvelope(osc, shotDuration, attackShort, 40*time.Millisecond, rate)

	case CueHit:
		osc := NewOscillator(2200, hitDuration, WaveSine, rate)
		s = NewEnvelope(osc, hitDuration, attackShort, 30*time.Millisecond, rate)

	case CueDestroy:
		// Noise burst over a low rumble
		noise := NewEnvelope(NewOscillator(0, destroyDuration, WaveNoise, rate), destroyDuration, attackShort, 300*time.Millisecond, rate)
		rumble := NewEnvelope(NewSweep(120, 40, destroyDuration, WaveSine, rate), destroyDuration, 5*time.Millisecond, 250*time.Millisecond, rate)
		s = beep.Mix(newVolume(noise, 0.6), newVolume(rumble, 0.5))

	case CueDamage:
		// Harsh low buzz
		osc := NewOscillator(110, damageDuration, WaveSaw, rate)
		s = NewEnvelope(osc, damageDuration, 5*time.Millisecond, 80*time.Millisecond, rate)

	case CueGameOver:
		osc := NewSweep(440, 110, gameOverDuration, WaveSquare, rate)
		s = NewEnvelope(osc, gameOverDuration, 10*time.Millisecond, 500*time.Millisecond, rate)

	case CueRestart:
		// Rising two-note chime
		n1 := NewEnvelope(NewOscillator(659.25, restartNote, WaveSine, rate), restartNote, attackShort, 40*time.Millisecond, rate)
		n2 := NewEnvelope(NewOscillator(987.77, restartNote, WaveSine, rate), restartNote, attackShort, 60*time.Millisecond, rate)
		s = beep.Seq(n1, n2)

	default:
		return nil
	}

	return newVolume(s, cfg.CueVolumes[cue]*cfg.MasterVolume)
}
