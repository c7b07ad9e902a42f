package input

import (
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Terminals report key presses and auto-repeats but never releases, so a held key is
// inferred from its repeat stream: the first press holds for the initial window (covering
// the OS repeat delay), each repeat extends the hold by the shorter repeat window
const (
	HoldInitialWindow = 550 * time.Millisecond
	HoldRepeatWindow  = 120 * time.Millisecond
)

type hold struct {
	deadline time.Time
	repeated bool
}

// HoldTracker synthesizes release events for sources without key-up reports
type HoldTracker struct {
	initial time.Duration
	repeat  time.Duration
	holds   map[Code]*hold
}

// NewHoldTracker creates a tracker with the given windows
func NewHoldTracker(initial, repeat time.Duration) *HoldTracker {
	return &HoldTracker{
		initial: initial,
		repeat:  repeat,
		holds:   make(map[Code]*hold),
	}
}

// Touch records a press or repeat of code at now
// Returns true when the code was not already held
func (h *HoldTracker) Touch(code Code, now time.Time) bool {
	if st, ok := h.holds[code]; ok {
		st.repeated = true
		st.deadline = now.Add(h.repeat)
		return false
	}
	h.holds[code] = &hold{deadline: now.Add(h.initial)}
	return true
}

// Expire returns, in sorted order, every code whose hold lapsed before now and forgets it
func (h *HoldTracker) Expire(now time.Time) []Code {
	var out []Code
	for code, st := range h.holds {
		if now.After(st.deadline) {
			out = append(out, code)
			delete(h.holds, code)
		}
	}
	slices.Sort(out)
	return out
}

// Held returns the number of codes currently held
func (h *HoldTracker) Held() int { return len(h.holds) }

// Clear forgets every hold without reporting releases
func (h *HoldTracker) Clear() { clear(h.holds) }

// TerminalBridge translates tcell events into raw codes
type TerminalBridge struct {
	holds   *HoldTracker
	buttons tcell.ButtonMask
}

// NewTerminalBridge creates a bridge with the default hold windows
func NewTerminalBridge() *TerminalBridge {
	return &TerminalBridge{holds: NewHoldTracker(HoldInitialWindow, HoldRepeatWindow)}
}

// KeyCodes maps a key event to its codes without tracking state
// Upper-case letters and shifted keys also yield ShiftLeft so shift+direction boosts
func KeyCodes(ev *tcell.EventKey) []Code {
	var codes []Code
	shift := ev.Modifiers()&tcell.ModShift != 0

	switch ev.Key() {
	case tcell.KeyUp:
		codes = append(codes, CodeArrowUp)
	case tcell.KeyDown:
		codes = append(codes, CodeArrowDown)
	case tcell.KeyLeft:
		codes = append(codes, CodeArrowLeft)
	case tcell.KeyRight:
		codes = append(codes, CodeArrowRight)
	case tcell.KeyEnter:
		codes = append(codes, CodeEnter)
	case tcell.KeyTab:
		codes = append(codes, CodeTab)
	case tcell.KeyRune:
		r := ev.Rune()
		if c := KeyCode(r); c != "" {
			codes = append(codes, c)
		}
		if r >= 'A' && r <= 'Z' {
			shift = true
		}
	}

	if shift && len(codes) > 0 {
		codes = append(codes, CodeShiftLeft)
	}
	return codes
}

// Key returns the codes that became held because of ev
// Repeats of an already held code extend the hold and are not reported again
func (b *TerminalBridge) Key(ev *tcell.EventKey, now time.Time) []Code {
	var pressed []Code
	for _, c := range KeyCodes(ev) {
		if b.holds.Touch(c, now) {
			pressed = append(pressed, c)
		}
	}
	return pressed
}

// Expire returns key codes whose hold lapsed
func (b *TerminalBridge) Expire(now time.Time) []Code {
	return b.holds.Expire(now)
}

// Reset drops inferred key holds and the last mouse button state
// Used when the simulation releases everything, so the next press is reported again
func (b *TerminalBridge) Reset() {
	b.holds.Clear()
	b.buttons = 0
}

var mouseButtons = []struct {
	mask tcell.ButtonMask
	code Code
}{
	{tcell.ButtonPrimary, CodeMouse0},
	{tcell.ButtonMiddle, CodeMouse1},
	{tcell.ButtonSecondary, CodeMouse2},
}

// Mouse diffs the button state against the previous event
// Mouse reporting includes releases, so no hold inference is needed
func (b *TerminalBridge) Mouse(ev *tcell.EventMouse) (pressed, released []Code) {
	now := ev.Buttons()
	for _, mb := range mouseButtons {
		was := b.buttons&mb.mask != 0
		is := now&mb.mask != 0
		switch {
		case is && !was:
			pressed = append(pressed, mb.code)
		case was && !is:
			released = append(released, mb.code)
		}
	}
	b.buttons = now
	return pressed, released
}

// PointerNDC converts a cell position to normalized device coordinates in [-1, 1], +Y up
func PointerNDC(x, y, width, height int) (float64, float64) {
	if width <= 1 || height <= 1 {
		return 0, 0
	}
	nx := float64(x)/float64(width-1)*2 - 1
	ny := 1 - float64(y)/float64(height-1)*2
	return nx, ny
}
