package presentation

import (
	"github.com/matzehuels/floatsheet/pkg/core/drag"
	"github.com/matzehuels/floatsheet/pkg/core/layout"
)

// dragSurface exposes the coordinator to the drag controller. It holds a
// non-owning reference and turns into a no-op after teardown.
type dragSurface struct{ c *Coordinator }

func (s *dragSurface) Layout() layout.Layout    { return s.c.layout }
func (s *dragSurface) ContainerHeight() float64 { return s.c.container.Height }
func (s *dragSurface) OriginY() float64         { return s.c.originY }
func (s *dragSurface) IsAnchored() bool         { return s.c.IsAnchored() }
func (s *dragSurface) Scroll() drag.ScrollState { return s.c.scrollState() }

func (s *dragSurface) SetPosition(y, alpha float64) {
	if s.c.torn {
		return
	}
	s.c.originY, s.c.alpha = y, alpha
}

func (s *dragSurface) InterruptScroll() {
	if i, ok := s.c.cfg.scroll.(interrupter); ok && !s.c.torn {
		i.Interrupt()
	}
}

func (s *dragSurface) AllowsDragToDismiss() bool { return s.c.cfg.dragDismiss }

func (s *dragSurface) ShouldRespond(g drag.Gesture) bool    { return s.c.cfg.shouldRespond(g) }
func (s *dragSurface) WillRespond(g drag.Gesture)           { s.c.cfg.willRespond(g) }
func (s *dragSurface) ShouldPrioritize(g drag.Gesture) bool { return s.c.cfg.shouldPrioritize(g) }

func (s *dragSurface) StopAnimation() {
	if !s.c.torn {
		s.c.anim.Stop()
	}
}

func (s *dragSurface) SnapToAnchor(done func(bool)) {
	if s.c.torn {
		return
	}
	s.c.snap(done)
}

func (s *dragSurface) Dismiss() {
	if !s.c.torn {
		s.c.dismiss("drag")
	}
}

// fusionSurface exposes the coordinator to scroll arbitration.
type fusionSurface struct{ c *Coordinator }

func (s *fusionSurface) IsAnchored() bool { return s.c.IsAnchored() }
func (s *fusionSurface) FullBleed() bool  { return s.c.cfg.fullBleed }
func (s *fusionSurface) Anchor() float64  { return s.c.layout.TopY }

// IsAnimating also covers a panel under the pointer: coasting content
// halts instead of bouncing it.
func (s *fusionSurface) IsAnimating() bool {
	return s.c.animating || s.c.drag.State() == drag.StateDragging
}

func (s *fusionSurface) IsTransitioning() bool {
	return s.c.phase == PhasePresenting || s.c.phase == PhaseDismissing
}

func (s *fusionSurface) SetOriginY(y float64) {
	if !s.c.torn {
		s.c.originY = y
	}
}

func (s *fusionSurface) ExtendBounds(extra float64) {
	if !s.c.torn {
		s.c.extra = extra
	}
}

func (s *fusionSurface) SnapToAnchor(done func(bool)) {
	if !s.c.torn {
		s.c.snap(done)
	}
}
