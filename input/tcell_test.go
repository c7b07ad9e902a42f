package input

import (
	"slices"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestKeyCodes(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want []Code
	}{
		{"lower letter", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), []Code{CodeKeyW}},
		{"upper letter adds shift", tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModNone), []Code{CodeKeyW, CodeShiftLeft}},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), []Code{CodeSpace}},
		{"digit", tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone), []Code{"Digit3"}},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), []Code{CodeArrowLeft}},
		{"shift arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), []Code{CodeArrowUp, CodeShiftLeft}},
		{"punctuation", tcell.NewEventKey(tcell.KeyRune, '%', tcell.ModNone), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeyCodes(tt.ev)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHoldTrackerInitialAndRepeatWindows(t *testing.T) {
	h := NewHoldTracker(500*time.Millisecond, 100*time.Millisecond)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	if !h.Touch(CodeKeyW, start) {
		t.Fatal("First touch should report a new press")
	}
	if got := h.Expire(start.Add(400 * time.Millisecond)); len(got) != 0 {
		t.Errorf("Released inside initial window: %v", got)
	}

	// OS repeat arrives, hold now extends by the repeat window only
	if h.Touch(CodeKeyW, start.Add(450*time.Millisecond)) {
		t.Error("Repeat should not report a new press")
	}
	if got := h.Expire(start.Add(520 * time.Millisecond)); len(got) != 0 {
		t.Errorf("Released before repeat window lapsed: %v", got)
	}
	got := h.Expire(start.Add(600 * time.Millisecond))
	if len(got) != 1 || got[0] != CodeKeyW {
		t.Errorf("Expected KeyW release, got %v", got)
	}
	if h.Held() != 0 {
		t.Errorf("Expected no holds, got %d", h.Held())
	}
}

func TestTerminalBridgeKeyReportsOnlyNewPresses(t *testing.T) {
	b := NewTerminalBridge()
	now := time.Now()

	first := b.Key(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), now)
	again := b.Key(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), now.Add(30*time.Millisecond))

	if len(first) != 1 || first[0] != CodeKeyD {
		t.Errorf("Expected [KeyD], got %v", first)
	}
	if len(again) != 0 {
		t.Errorf("Repeat reported as press: %v", again)
	}
	if rel := b.Expire(now.Add(time.Second)); len(rel) != 1 {
		t.Errorf("Expected KeyD release, got %v", rel)
	}
}

func TestTerminalBridgeMouseDiff(t *testing.T) {
	b := NewTerminalBridge()

	pressed, released := b.Mouse(tcell.NewEventMouse(5, 5, tcell.ButtonPrimary, tcell.ModNone))
	if !slices.Equal(pressed, []Code{CodeMouse0}) || len(released) != 0 {
		t.Errorf("Press: got %v / %v", pressed, released)
	}

	pressed, released = b.Mouse(tcell.NewEventMouse(6, 5, tcell.ButtonPrimary, tcell.ModNone))
	if len(pressed) != 0 || len(released) != 0 {
		t.Errorf("Drag should not change buttons: %v / %v", pressed, released)
	}

	pressed, released = b.Mouse(tcell.NewEventMouse(6, 5, tcell.ButtonNone, tcell.ModNone))
	if len(pressed) != 0 || !slices.Equal(released, []Code{CodeMouse0}) {
		t.Errorf("Release: got %v / %v", pressed, released)
	}
}

func TestTerminalBridgeResetReportsNextPress(t *testing.T) {
	b := NewTerminalBridge()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	space := tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)

	if got := b.Key(space, now); !slices.Equal(got, []Code{CodeSpace}) {
		t.Fatalf("First press: got %v", got)
	}
	b.Mouse(tcell.NewEventMouse(1, 1, tcell.ButtonPrimary, tcell.ModNone))

	// Focus lost: the simulation released everything
	b.Reset()
	if b.holds.Held() != 0 {
		t.Errorf("Reset should clear holds, %d left", b.holds.Held())
	}

	// Pressed again inside the old hold window
	if got := b.Key(space, now.Add(100*time.Millisecond)); !slices.Equal(got, []Code{CodeSpace}) {
		t.Errorf("Press after reset should be reported, got %v", got)
	}
	pressed, released := b.Mouse(tcell.NewEventMouse(1, 1, tcell.ButtonPrimary, tcell.ModNone))
	if !slices.Equal(pressed, []Code{CodeMouse0}) || len(released) != 0 {
		t.Errorf("Click after reset should be reported, got %v / %v", pressed, released)
	}
}

func TestPointerNDC(t *testing.T) {
	x, y := PointerNDC(0, 0, 81, 25)
	if x != -1 || y != 1 {
		t.Errorf("Top-left expected (-1,1), got (%v,%v)", x, y)
	}
	x, y = PointerNDC(40, 12, 81, 25)
	if x != 0 || y != 0 {
		t.Errorf("Center expected (0,0), got (%v,%v)", x, y)
	}
	x, y = PointerNDC(3, 3, 1, 1)
	if x != 0 || y != 0 {
		t.Error("Degenerate screen should map to center")
	}
}
