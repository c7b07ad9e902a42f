package engine

import (
	"fmt"

	"github.com/elgoog577215-beep/skyfall/parameter"
)

// HUD holds the plain values a heads-up display shows
type HUD struct {
	Score      int64   `json:"score"`
	ScoreText  string  `json:"scoreText"`
	Health     float64 `json:"health"`
	Boost      float64 `json:"boost"`
	Boosting   bool    `json:"boosting"`
	SpeedKmh   int     `json:"speedKmh"`
	GameOver   bool    `json:"gameOver"`
	FinalScore int64   `json:"finalScore"`
	BestScore  int64   `json:"bestScore"`
	Controls   string  `json:"controls"`
}

// FormatScore zero-pads score to the display width
func FormatScore(score int64) string {
	return fmt.Sprintf("%0*d", parameter.ScoreDigits, score)
}

// HUD returns the current display values
func (s *Simulation) HUD() HUD {
	p := s.player.Player()
	h := HUD{
		Score:     s.score,
		ScoreText: FormatScore(s.score),
		Health:    p.Health,
		Boost:     p.Boost,
		Boosting:  p.Boosting,
		SpeedKmh:  int(p.Speed * parameter.SpeedDisplayFactor),
		GameOver:  !p.Alive,
		BestScore: s.best,
		Controls:  s.controls,
	}
	if h.GameOver && s.last != nil {
		h.FinalScore = s.last.Score
	}
	return h
}
