package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/elgoog577215-beep/skyfall/engine"
	"github.com/elgoog577215-beep/skyfall/parameter"
)

// Mute indicator text
const (
	audioOnStr    = " ♪ "
	audioMutedStr = " × "
)

// drawText writes text from x and returns the column after it
func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		r.set(x, y, ch, style)
		x++
	}
	return x
}

// drawBar draws a width-cell gauge filled to fraction
func (r *TerminalRenderer) drawBar(x, y, width int, fraction float64, fill tcell.Color) int {
	filled := int(fraction*float64(width) + 0.5)
	filled = min(max(filled, 0), width)

	base := tcell.StyleDefault.Background(RgbHudBg)
	for i := range width {
		if i < filled {
			r.set(x+i, y, '█', base.Foreground(fill))
		} else {
			r.set(x+i, y, '░', base.Foreground(RgbBarEmpty))
		}
	}
	return x + width
}

// drawHUD renders the status line on row 0
func (r *TerminalRenderer) drawHUD(h *engine.HUD) {
	base := tcell.StyleDefault.Background(RgbHudBg)
	for x := range r.width {
		r.set(x, 0, ' ', base)
	}
	label := base.Foreground(RgbHudLabel)
	value := base.Foreground(RgbHudText).Bold(true)

	// Bars shrink on narrow screens so the whole line fits
	barWidth := min(parameter.BarWidth, max(5, (r.width-44)/2))

	x := 0
	audioStyle := base.Foreground(tcell.ColorBlack).Background(RgbAudioOn)
	audioText := audioOnStr
	if r.muted {
		audioStyle = audioStyle.Background(RgbAudioMuted)
		audioText = audioMutedStr
	}
	x = r.drawText(x, 0, audioText, audioStyle)

	x = r.drawText(x+1, 0, "SCORE ", label)
	x = r.drawText(x, 0, h.ScoreText, value)

	x = r.drawText(x+2, 0, fmt.Sprintf("%4d", h.SpeedKmh), value)
	x = r.drawText(x, 0, " km/h", label)

	boostColor := RgbBoostBar
	if h.Boosting {
		boostColor = RgbBoostOn
	}
	x = r.drawText(x+2, 0, "BOOST ", label)
	x = r.drawBar(x, 0, barWidth, h.Boost/parameter.BoostMax, boostColor)

	shield := h.Health / parameter.HealthMax
	x = r.drawText(x+2, 0, "SHIELD ", label)
	x = r.drawBar(x, 0, barWidth, shield, GetShieldColor(shield))

	if h.BestScore > 0 {
		x = r.drawText(x+2, 0, "BEST ", label)
		r.drawText(x, 0, engine.FormatScore(h.BestScore), value)
	}
}

// drawControls centers the bindings hint on the bottom row
func (r *TerminalRenderer) drawControls(h *engine.HUD) {
	if h.Controls == "" || r.height <= hudRows+1 {
		return
	}
	n := len([]rune(h.Controls))
	x := max(0, (r.width-n)/2)
	style := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbHintText)
	r.drawText(x, r.height-1, h.Controls, style)
}

// drawGameOver renders the centered final-score overlay
func (r *TerminalRenderer) drawGameOver(h *engine.HUD) {
	lines := []string{
		"GAME OVER",
		"",
		"FINAL SCORE " + engine.FormatScore(h.FinalScore),
		"BEST        " + engine.FormatScore(max(h.BestScore, h.FinalScore)),
		"",
		"[R] restart   [Q] quit",
	}
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2

	left := (r.width - boxW) / 2
	top := hudRows + (r.height-hudRows-boxH)/2

	border := tcell.StyleDefault.Background(RgbOverlayBg).Foreground(RgbOverlayBorder)
	text := tcell.StyleDefault.Background(RgbOverlayBg).Foreground(RgbOverlayText)

	for y := range boxH {
		for x := range boxW {
			ch := ' '
			switch {
			case (y == 0 || y == boxH-1) && (x == 0 || x == boxW-1):
				ch = '+'
			case y == 0 || y == boxH-1:
				ch = '-'
			case x == 0 || x == boxW-1:
				ch = '|'
			}
			r.set(left+x, top+y, ch, border)
		}
	}
	for i, l := range lines {
		pad := (boxW - len([]rune(l))) / 2
		style := text
		if i == 0 {
			style = style.Bold(true)
		}
		r.drawText(left+pad, top+1+i, l, style)
	}
}
