package render

import (
	"math"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/elgoog577215-beep/skyfall/engine"
	"github.com/elgoog577215-beep/skyfall/parameter"
	"github.com/elgoog577215-beep/skyfall/vmath"
)

// obstacleSize is the world radius of an obstacle mesh at scale 1
const obstacleSize = 1.5

// hudRows are reserved at the top of the screen
const hudRows = 1

// TerminalRenderer perspective-projects snapshots onto a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int

	camera  vmath.Camera
	tanHalf float64

	muted     bool
	crossX    int
	crossY    int
	crossShow bool

	// Scratch reused across frames
	order []int
}

// NewTerminalRenderer creates a renderer sized to screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	r := &TerminalRenderer{
		screen:  screen,
		tanHalf: math.Tan(mgl64.DegToRad(parameter.CameraFOV) / 2),
	}
	w, h := screen.Size()
	r.Resize(w, h)
	return r
}

// Resize rebuilds the camera for a new screen size
func (r *TerminalRenderer) Resize(width, height int) {
	r.width, r.height = width, height
	r.camera = vmath.NewCamera(parameter.CameraZ, parameter.CameraFOV, r.Aspect())
}

// Aspect returns the viewport width/height in world units, accounting for tall cells
func (r *TerminalRenderer) Aspect() float64 {
	rows := r.height - hudRows
	if r.width <= 0 || rows <= 0 {
		return 1
	}
	return float64(r.width) / (float64(rows) * parameter.CellAspect)
}

// SetMuted controls the HUD audio indicator
func (r *TerminalRenderer) SetMuted(muted bool) { r.muted = muted }

// SetCrosshair marks the pointer cell, show false hides it
func (r *TerminalRenderer) SetCrosshair(x, y int, show bool) {
	r.crossX, r.crossY, r.crossShow = x, y, show
}

// ViewportNDC converts a screen cell to normalized device coordinates of the 3D viewport
func (r *TerminalRenderer) ViewportNDC(x, y int) (float64, float64) {
	rows := r.height - hudRows
	if r.width <= 1 || rows <= 1 {
		return 0, 0
	}
	nx := float64(x)/float64(r.width-1)*2 - 1
	ny := 1 - float64(y-hudRows)/float64(rows-1)*2
	return vmath.Clamp(nx, -1, 1), vmath.Clamp(ny, -1, 1)
}

// Project maps a world point to a viewport cell
// ok is false behind the camera or outside the viewport
func (r *TerminalRenderer) Project(p vmath.Vec3) (x, y int, depth float64, ok bool) {
	nx, ny, depth, ok := r.camera.Project(p)
	if !ok {
		return 0, 0, 0, false
	}
	rows := r.height - hudRows
	x = int(math.Floor((nx + 1) / 2 * float64(r.width)))
	y = hudRows + int(math.Floor((1-ny)/2*float64(rows)))
	if x < 0 || x >= r.width || y < hudRows || y >= r.height {
		return x, y, depth, false
	}
	return x, y, depth, true
}

// cellRadius returns the projected radius in rows of a sphere at depth
func (r *TerminalRenderer) cellRadius(radius, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	rows := float64(r.height - hudRows)
	return radius / (depth * r.tanHalf) * rows / 2
}

// RenderFrame draws one snapshot and shows the screen
func (r *TerminalRenderer) RenderFrame(s *engine.Snapshot) {
	bg := tcell.StyleDefault.Background(RgbBackground)
	r.screen.Fill(' ', bg)

	r.drawHorizon(bg)
	r.drawObstacles(s, bg)
	r.drawBursts(s, bg)
	r.drawProjectiles(s, bg)
	r.drawPlayer(s, bg)
	r.drawCrosshair(bg)
	r.drawHUD(&s.HUD)
	r.drawControls(&s.HUD)
	if s.HUD.GameOver {
		r.drawGameOver(&s.HUD)
	}

	r.screen.Show()
}

func (r *TerminalRenderer) set(x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func (r *TerminalRenderer) drawHorizon(bg tcell.Style) {
	x, y, _, ok := r.Project(vmath.Vec3{0, 0, parameter.SpawnFarZ})
	if !ok {
		return
	}
	r.set(x, y, '+', bg.Foreground(RgbHorizon))
}

// drawObstacles paints far to near so closer obstacles overdraw
func (r *TerminalRenderer) drawObstacles(s *engine.Snapshot, bg tcell.Style) {
	r.order = r.order[:0]
	for i := range s.Obstacles {
		r.order = append(r.order, i)
	}
	slices.SortFunc(r.order, func(a, b int) int {
		za, zb := s.Obstacles[a].Position[2], s.Obstacles[b].Position[2]
		switch {
		case za < zb:
			return -1
		case za > zb:
			return 1
		}
		return a - b
	})

	for _, i := range r.order {
		o := &s.Obstacles[i]
		x, y, depth, ok := r.Project(o.Position)
		if !ok {
			continue
		}
		style := StyleForKind(o.Kind)
		glyph := GlyphForKind(o.Kind)

		rr := r.cellRadius(o.Scale*obstacleSize, depth)
		if rr >= 1 {
			r.fillDisc(x, y, rr, '#', style)
		}
		r.set(x, y, glyph, style.Bold(o.HP <= 1))
	}
}

// fillDisc fills an ellipse that reads as a circle on tall cells
func (r *TerminalRenderer) fillDisc(cx, cy int, rows float64, ch rune, style tcell.Style) {
	rr := int(rows)
	rc := int(rows * parameter.CellAspect)
	for dy := -rr; dy <= rr; dy++ {
		for dx := -rc; dx <= rc; dx++ {
			fx := float64(dx) / parameter.CellAspect
			fy := float64(dy)
			if fx*fx+fy*fy <= rows*rows {
				r.set(cx+dx, cy+dy, ch, style)
			}
		}
	}
}

func (r *TerminalRenderer) drawBursts(s *engine.Snapshot, bg tcell.Style) {
	for i := range s.Bursts {
		b := &s.Bursts[i]
		x, y, _, ok := r.Project(b.Position)
		if !ok {
			continue
		}
		var ch rune
		switch {
		case b.Scale > 0.66:
			ch = '*'
		case b.Scale > 0.33:
			ch = '+'
		default:
			ch = '.'
		}
		r.set(x, y, ch, bg.Foreground(BlendColor(RgbBurstCold, RgbBurstHot, b.Scale)))
	}
}

func (r *TerminalRenderer) drawProjectiles(s *engine.Snapshot, bg tcell.Style) {
	style := bg.Foreground(RgbProjectile)
	for i := range s.Projectiles {
		p := &s.Projectiles[i]
		x, y, _, ok := r.Project(p.Position)
		if !ok {
			continue
		}
		ch := '|'
		if h := p.Heading; math.Abs(h[0]) > math.Abs(h[2])*0.5 {
			ch = '-'
		}
		r.set(x, y, ch, style)
	}
}

// shipBody is the player sprite for level, left and right bank
var shipBody = [3]string{"<=^=>", "/=^=<", ">=^=\\"}

func (r *TerminalRenderer) drawPlayer(s *engine.Snapshot, bg tcell.Style) {
	if s.HUD.GameOver {
		return
	}
	x, y, _, ok := r.Project(s.Player.Position)
	if !ok {
		return
	}
	sprite := shipBody[0]
	switch {
	case s.Player.Bank > 0.1:
		sprite = shipBody[1]
	case s.Player.Bank < -0.1:
		sprite = shipBody[2]
	}
	color := RgbPlayer
	if s.Player.Boosting {
		color = RgbPlayerHot
	}
	style := bg.Foreground(color).Bold(true)
	start := x - len(sprite)/2
	for i, ch := range sprite {
		r.set(start+i, y, ch, style)
	}
}

func (r *TerminalRenderer) drawCrosshair(bg tcell.Style) {
	if !r.crossShow {
		return
	}
	r.set(r.crossX, r.crossY, '╋', bg.Foreground(RgbCrosshair))
}
