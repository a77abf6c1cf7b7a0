package layout

import "math"

// Layout is the derived resting position of the panel.
type Layout struct {
	// TopY is the anchor: the Y of the panel's top edge when fully open.
	TopY float64
	// Frame spans from the anchor to the bottom inset.
	Frame Rect
}

// Zero is returned when no container is available.
var Zero = Layout{}

// Renderable reports whether the frame has positive height.
func (l Layout) Renderable() bool { return l.Frame.Height > 0 }

// Config is everything Calculate needs besides the container.
type Config struct {
	Insets Insets
	Height HeightStrategy
	Handle Handle
}

// ConstraintsFor returns the space content is measured against: the
// container minus the horizontal insets, and minus the vertical insets.
func ConstraintsFor(insets Insets, c Container) Constraints {
	return Constraints{
		Width:  c.Width - insets.Horizontal(),
		Height: c.Height - insets.Vertical(),
	}
}

// TotalHeight returns content height plus the handle area.
func TotalHeight(cfg Config, c Container) float64 {
	var content float64
	if cfg.Height != nil {
		content = clampHeight(cfg.Height.ContentHeight(ConstraintsFor(cfg.Insets, c)))
	}
	return content + cfg.Handle.AreaHeight()
}

// Calculate computes the anchor and frame of the panel.
//
// The panel sits on the bottom inset and grows upward by its total height,
// but never above the top inset. Degenerate containers produce a frame with
// non-positive height instead of failing.
func Calculate(cfg Config, c Container) Layout {
	in := cfg.Insets
	total := TotalHeight(cfg, c)

	available := c.Height - in.Top - in.Bottom
	top := math.Max(available-total+in.Top, in.Top)

	return Layout{
		TopY: top,
		Frame: Rect{
			X:      in.Leading,
			Y:      top,
			Width:  c.Width - in.Leading - in.Trailing,
			Height: c.Height - in.Bottom - top,
		},
	}
}
