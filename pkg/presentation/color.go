package presentation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB color with straight (non-premultiplied) alpha.
type Color struct {
	colorful.Color
	A float64
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA". The leading '#' is optional.
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 6:
		c, err := colorful.Hex("#" + h)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		return Color{Color: c, A: 1}, nil
	case 8:
		c, err := colorful.Hex("#" + h[:6])
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		a, err := strconv.ParseUint(h[6:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: alpha: %w", s, err)
		}
		return Color{Color: c, A: float64(a) / 255}, nil
	default:
		return Color{}, fmt.Errorf("parse color %q: want #RRGGBB or #RRGGBBAA", s)
	}
}

// MustParseColor is like ParseColor but panics on error. Use it for
// constants.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as "#rrggbbaa", or "#rrggbb" when opaque.
func (c Color) Hex() string {
	if c.A >= 1 {
		return c.Color.Clamped().Hex()
	}
	a := uint8(math.Round(clamp01(c.A) * 255))
	return fmt.Sprintf("%s%02x", c.Color.Clamped().Hex(), a)
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// Over composites c, scaled by opacity, over an opaque background.
func (c Color) Over(bg colorful.Color, opacity float64) colorful.Color {
	return bg.BlendRgb(c.Color, clamp01(c.A*opacity)).Clamped()
}

// AdaptiveColor holds variants for light and dark appearances.
type AdaptiveColor struct {
	Light, Dark Color
}

// Resolve picks the variant for the appearance.
func (a AdaptiveColor) Resolve(dark bool) Color {
	if dark {
		return a.Dark
	}
	return a.Light
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
