package presentation

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		hex     string
		alpha   float64
		wantErr bool
	}{
		{"#00000080", "#00000080", 128.0 / 255, false},
		{"#EAEBEE", "#eaebee", 1, false},
		{"34373d", "#34373d", 1, false},
		{"#fff", "", 0, true},
		{"#zzzzzz", "", 0, true},
		{"#000000zz", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if c.Hex() != tt.hex {
				t.Errorf("Hex() = %q, want %q", c.Hex(), tt.hex)
			}
			if math.Abs(c.A-tt.alpha) > 1e-9 {
				t.Errorf("alpha = %v, want %v", c.A, tt.alpha)
			}
		})
	}
}

func TestColorOver(t *testing.T) {
	white := colorful.Color{R: 1, G: 1, B: 1}
	dim := MustParseColor("#000000").WithAlpha(0.5)

	got := dim.Over(white, 1)
	if math.Abs(got.R-0.5) > 1e-9 {
		t.Errorf("half black over white R = %v, want 0.5", got.R)
	}
	if got := dim.Over(white, 0); got != white {
		t.Errorf("zero opacity = %v, want background", got)
	}
}

func TestAdaptiveColorResolve(t *testing.T) {
	if got := DefaultHandleColor.Resolve(false).Hex(); got != "#eaebee" {
		t.Errorf("light = %s", got)
	}
	if got := DefaultHandleColor.Resolve(true).Hex(); got != "#34373d" {
		t.Errorf("dark = %s", got)
	}
}

func TestMustParseColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseColor should panic on bad input")
		}
	}()
	MustParseColor("nope")
}
