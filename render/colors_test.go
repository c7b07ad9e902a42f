package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/elgoog577215-beep/skyfall/component"
)

func TestGetShieldColor(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		want     tcell.Color
	}{
		{"empty is red", 0, tcell.NewRGBColor(220, 40, 40)},
		{"full is green", 1, tcell.NewRGBColor(60, 220, 80)},
		{"below clamps", -1, tcell.NewRGBColor(220, 40, 40)},
		{"above clamps", 2, tcell.NewRGBColor(60, 220, 80)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetShieldColor(tt.progress); got != tt.want {
				t.Errorf("GetShieldColor(%v) = %v, want %v", tt.progress, got, tt.want)
			}
		})
	}
}

func TestBlendColor(t *testing.T) {
	a := tcell.NewRGBColor(0, 0, 0)
	b := tcell.NewRGBColor(200, 100, 50)
	if got := BlendColor(a, b, 0); got != a {
		t.Errorf("t=0 gave %v", got)
	}
	if got := BlendColor(a, b, 1); got != b {
		t.Errorf("t=1 gave %v", got)
	}
	if got := BlendColor(a, b, 0.5); got != tcell.NewRGBColor(100, 50, 25) {
		t.Errorf("t=0.5 gave %v", got)
	}
}

func TestGlyphForKind(t *testing.T) {
	want := map[component.Kind]rune{
		component.KindLight:  'o',
		component.KindMedium: 'O',
		component.KindHeavy:  '@',
		component.KindHazard: '*',
		component.KindCount:  '?',
	}
	for k, r := range want {
		if got := GlyphForKind(k); got != r {
			t.Errorf("GlyphForKind(%d) = %q, want %q", k, got, r)
		}
	}
}
