package presentation

import (
	"github.com/matzehuels/floatsheet/pkg/core/drag"
	"github.com/matzehuels/floatsheet/pkg/core/fusion"
	"github.com/matzehuels/floatsheet/pkg/core/layout"
)

// Snapshot is everything a renderer needs to draw the sheet for one frame.
// Frames are in container coordinates unless noted.
type Snapshot struct {
	ID    string
	Phase Phase

	Layout layout.Layout
	// Frame is the live panel frame: the resting frame moved to the current
	// origin and stretched by any overscroll.
	Frame layout.Rect

	DimAlpha float64
	DimColor Color

	CornerRadius float64
	// ContentInsetTop keeps content clear of the handle.
	ContentInsetTop float64
	// ContentFrame is the area below the handle, in panel coordinates.
	ContentFrame layout.Rect

	Handle      layout.Handle
	HandleFrame layout.Rect // panel coordinates
	HandleColor Color

	Anchored   bool
	Animating  bool
	DragState  drag.State
	ScrollMode fusion.Mode
}

// Visible reports whether anything should be drawn.
func (s Snapshot) Visible() bool {
	return s.Phase != PhaseDetached && s.Phase != PhaseDismissed && !s.Frame.IsEmpty()
}

// Snapshot captures the sheet's current render state.
func (c *Coordinator) Snapshot() Snapshot {
	h := c.cfg.layout.Handle
	frame := layout.Rect{
		X:      c.layout.Frame.X,
		Y:      c.originY,
		Width:  c.layout.Frame.Width,
		Height: c.height + c.extra,
	}
	return Snapshot{
		ID:              c.ID(),
		Phase:           c.phase,
		Layout:          c.layout,
		Frame:           frame,
		DimAlpha:        c.alpha,
		DimColor:        c.cfg.dimColor,
		CornerRadius:    c.cfg.cornerRadius,
		ContentInsetTop: h.AreaHeight(),
		ContentFrame:    c.contentFrame(),
		Handle:          h,
		HandleFrame: layout.Rect{
			X:      (frame.Width - h.Size.Width) / 2,
			Y:      h.VerticalMargin,
			Width:  h.Size.Width,
			Height: h.Size.Height,
		},
		HandleColor: c.cfg.handleColor.Resolve(c.dark),
		Anchored:    c.IsAnchored(),
		Animating:   c.animating,
		DragState:   c.drag.State(),
		ScrollMode:  c.fusion.Mode(),
	}
}
