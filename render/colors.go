package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/elgoog577215-beep/skyfall/component"
)

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(10, 12, 28)    // Night sky
	RgbHorizon    = tcell.NewRGBColor(40, 44, 80)    // Vanishing point marker
	RgbPlayer     = tcell.NewRGBColor(230, 230, 255) // Aircraft body
	RgbPlayerHot  = tcell.NewRGBColor(120, 200, 255) // Aircraft while boosting
	RgbProjectile = tcell.NewRGBColor(255, 255, 120) // Tracer yellow
	RgbBurstHot   = tcell.NewRGBColor(255, 220, 120) // Fresh debris
	RgbBurstCold  = tcell.NewRGBColor(120, 60, 40)   // Fading debris
	RgbCrosshair  = tcell.NewRGBColor(255, 80, 80)   // Aim marker

	// Obstacles by archetype
	RgbLight  = tcell.NewRGBColor(140, 200, 140)
	RgbMedium = tcell.NewRGBColor(200, 170, 110)
	RgbHeavy  = tcell.NewRGBColor(170, 140, 200)
	RgbHazard = tcell.NewRGBColor(255, 70, 70)

	// HUD
	RgbHudText    = tcell.NewRGBColor(255, 255, 255)
	RgbHudLabel   = tcell.NewRGBColor(150, 150, 170)
	RgbHudBg      = tcell.NewRGBColor(0, 0, 0)
	RgbBarEmpty   = tcell.NewRGBColor(50, 50, 60)
	RgbBoostBar   = tcell.NewRGBColor(100, 180, 255)
	RgbBoostOn    = tcell.NewRGBColor(180, 230, 255)
	RgbAudioMuted = tcell.NewRGBColor(255, 0, 0)
	RgbAudioOn    = tcell.NewRGBColor(0, 255, 0)
	RgbHintText   = tcell.NewRGBColor(110, 110, 130)

	// Game over overlay
	RgbOverlayBg     = tcell.NewRGBColor(40, 0, 0)
	RgbOverlayBorder = tcell.NewRGBColor(255, 80, 80)
	RgbOverlayText   = tcell.NewRGBColor(255, 255, 255)
)

var kindGlyphs = [component.KindCount]rune{'o', 'O', '@', '*'}

var kindColors = [component.KindCount]tcell.Color{RgbLight, RgbMedium, RgbHeavy, RgbHazard}

// GlyphForKind returns the rune drawn at an obstacle's center
func GlyphForKind(k component.Kind) rune {
	if k < component.KindCount {
		return kindGlyphs[k]
	}
	return '?'
}

// StyleForKind returns the foreground style of an obstacle archetype
func StyleForKind(k component.Kind) tcell.Style {
	base := tcell.StyleDefault.Background(RgbBackground)
	if k < component.KindCount {
		return base.Foreground(kindColors[k])
	}
	return base.Foreground(RgbHudText)
}

// GetShieldColor returns the gauge color for a fill fraction
// progress 0 is red, 0.5 yellow, 1 green; values outside [0, 1] clamp
func GetShieldColor(progress float64) tcell.Color {
	progress = min(max(progress, 0), 1)
	if progress < 0.5 { // Red to Yellow
		t := progress / 0.5
		return tcell.NewRGBColor(220, int32(40+(200-40)*t), 40)
	}
	t := (progress - 0.5) / 0.5 // Yellow to Green
	return tcell.NewRGBColor(int32(220-(220-60)*t), int32(200+(220-200)*t), int32(40+(80-40)*t))
}

// BlendColor linearly mixes a toward b by t in [0, 1]
func BlendColor(a, b tcell.Color, t float64) tcell.Color {
	t = min(max(t, 0), 1)
	ar, ag, ab := a.RGB()
	br, bg, bb := b.RGB()
	mix := func(x, y int32) int32 { return x + int32(float64(y-x)*t) }
	return tcell.NewRGBColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}
