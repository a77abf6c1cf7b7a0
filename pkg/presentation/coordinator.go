package presentation

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/floatsheet/pkg/core/drag"
	"github.com/matzehuels/floatsheet/pkg/core/fusion"
	"github.com/matzehuels/floatsheet/pkg/core/layout"
	"github.com/matzehuels/floatsheet/pkg/core/motion"
	"github.com/matzehuels/floatsheet/pkg/observability"
)

// Phase is the presentation lifecycle stage.
type Phase int

const (
	PhaseDetached Phase = iota
	PhasePresenting
	PhasePresented
	PhaseDismissing
	PhaseDismissed
)

func (p Phase) String() string {
	switch p {
	case PhaseDetached:
		return "detached"
	case PhasePresenting:
		return "presenting"
	case PhasePresented:
		return "presented"
	case PhaseDismissing:
		return "dismissing"
	case PhaseDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// maxStep bounds the time a single Tick may advance scroll deceleration.
const maxStep = 100 * time.Millisecond

type stepper interface {
	Step(dt time.Duration) bool
}

type framer interface {
	SetFrame(layout.Rect)
}

type interrupter interface {
	Interrupt()
}

// Coordinator owns one presented sheet: its cached layout, live position,
// dimming, drag controller, and scroll arbitration. All methods must be
// called from the host's UI loop.
type Coordinator struct {
	id     uuid.UUID
	src    Presentable
	ctx    context.Context
	logger *log.Logger
	clock  func() time.Time
	dark   bool

	cfg          settings
	container    layout.Container
	hasContainer bool
	layout       layout.Layout

	phase     Phase
	originY   float64
	height    float64
	extra     float64
	alpha     float64
	animating bool

	anim     *motion.Animator
	drag     *drag.Controller
	fusion   *fusion.Coordinator
	lastTick time.Time

	completion   func()
	presentedAt  time.Time
	dismissCause string
	torn         bool
}

// ID returns the presentation's unique identifier.
func (c *Coordinator) ID() string { return c.id.String() }

// ShortID returns the first eight characters of ID, for logs.
func (c *Coordinator) ShortID() string { return c.ID()[:8] }

// Phase returns the lifecycle stage.
func (c *Coordinator) Phase() Phase { return c.phase }

// Layout returns the cached layout.
func (c *Coordinator) Layout() layout.Layout { return c.layout }

// IsAnchored reports whether the panel rests at its anchor.
func (c *Coordinator) IsAnchored() bool {
	return drag.IsAnchored(c.originY, c.layout.TopY, c.animating)
}

// IsAnimating reports whether a snap or animated layout is in flight.
func (c *Coordinator) IsAnimating() bool { return c.animating }

// DragState returns the drag controller state.
func (c *Coordinator) DragState() drag.State { return c.drag.State() }

// ScrollMode returns the last scroll arbitration outcome.
func (c *Coordinator) ScrollMode() fusion.Mode { return c.fusion.Mode() }

// SetContainer runs a container layout pass: the cached layout is
// recomputed for the new geometry. A panel at rest moves to the new anchor
// immediately; running animations retarget.
func (c *Coordinator) SetContainer(container layout.Container) {
	if c.torn {
		return
	}
	c.container = container
	c.hasContainer = container.Width > 0 && container.Height > 0
	c.layoutPass(false)

	if c.phase == PhasePresented && !c.animating && c.drag.Settled() {
		c.settle()
	} else if c.drag.State() == drag.StateDragging {
		c.originY = drag.ClampOrigin(c.originY, c.layout.TopY)
	}
}

// PerformLayout re-reads the sheet's config and recomputes its layout,
// for example after its content height changed. When animated, the panel
// springs to the new anchor and is marked mid-animation until it lands.
func (c *Coordinator) PerformLayout(animated bool) {
	if c.torn {
		return
	}
	c.layoutPass(animated)
	if c.phase != PhasePresented {
		return
	}
	if !animated {
		c.settle()
		return
	}

	fromY, fromH, fromExtra := c.originY, c.height, c.extra
	c.animating = true
	c.anim.Animate(c.clock(), func(p float64) {
		c.originY = motion.Lerp(fromY, c.layout.TopY, p)
		c.height = motion.Lerp(fromH, c.layout.Frame.Height, p)
		c.extra = math.Max(motion.Lerp(fromExtra, 0, p), 0)
	}, func(bool) {
		c.animating = false
	})
}

func (c *Coordinator) layoutPass(animated bool) {
	c.cfg = resolve(c.src.SheetConfig(), c.container)
	if c.hasContainer {
		c.layout = layout.Calculate(c.cfg.layout, c.container)
	} else {
		c.layout = layout.Zero
	}

	s := c.cfg.scroll
	c.fusion.Observe(s)
	if s != nil {
		if f, ok := s.(framer); ok && c.cfg.fullBleed {
			f.SetFrame(c.contentFrame())
		}
		if !fusion.IsScrolling(s) {
			s.SetIndicatorVisible(false)
		}
	}

	c.logger.Debug("layout", "anchor", c.layout.TopY, "frame", c.layout.Frame, "animated", animated)
	observability.Sheet().OnLayout(c.ctx, c.ID(), c.layout.TopY, c.layout.Frame.Height, animated)
}

// settle puts the panel at rest on its anchor.
func (c *Coordinator) settle() {
	c.originY = c.layout.TopY
	c.height = c.layout.Frame.Height
	c.extra = 0
	c.alpha = 1
}

func (c *Coordinator) present() {
	c.phase = PhasePresenting
	c.originY = c.container.Height
	c.height = c.layout.Frame.Height
	c.alpha = 0
	c.logger.Debug("presenting")
	observability.Sheet().OnPresent(c.ctx, c.ID())

	from := c.originY
	c.anim.Animate(c.clock(), func(p float64) {
		c.originY = motion.Lerp(from, c.layout.TopY, p)
		c.height = c.layout.Frame.Height
		c.alpha = clamp01(p)
	}, func(finished bool) {
		if !finished || c.phase != PhasePresenting {
			return
		}
		c.phase = PhasePresented
		c.presentedAt = c.clock()
		c.settle()
		c.logger.Debug("presented")
		if c.completion != nil {
			c.completion()
		}
	})
}

// HandleGesture feeds a pointer session to the drag controller. Gestures
// are ignored unless the panel is fully presented.
func (c *Coordinator) HandleGesture(s *drag.Session) {
	if c.torn || c.phase != PhasePresented {
		return
	}
	c.drag.Handle(s)
}

// TapDimming handles a tap on the dimming overlay and reports whether it
// started a dismissal.
func (c *Coordinator) TapDimming() bool {
	if c.torn || c.phase != PhasePresented || !c.cfg.tapDismiss {
		return false
	}
	return c.dismiss("tap")
}

// Dismiss starts the dismissal transition on behalf of the host.
func (c *Coordinator) Dismiss() bool {
	if c.torn {
		return false
	}
	return c.dismiss("host")
}

func (c *Coordinator) dismiss(cause string) bool {
	if c.phase != PhasePresenting && c.phase != PhasePresented {
		return false
	}
	c.phase = PhaseDismissing
	c.dismissCause = cause
	c.drag.Abort()
	c.logger.Debug("dismissing", "cause", cause)
	c.cfg.willDismiss()

	fromY, fromAlpha := c.originY, c.alpha
	c.anim.Animate(c.clock(), func(p float64) {
		c.originY = motion.Lerp(fromY, c.container.Height, p)
		c.alpha = clamp01(motion.Lerp(fromAlpha, 0, p))
	}, func(finished bool) {
		if !finished {
			return
		}
		c.phase = PhaseDismissed
		c.animating = false
		c.fusion.Stop()
		var shown time.Duration
		if !c.presentedAt.IsZero() {
			shown = c.clock().Sub(c.presentedAt)
		}
		c.logger.Debug("dismissed", "cause", cause, "shown", shown)
		observability.Sheet().OnDismiss(c.ctx, c.ID(), cause, shown)
		c.cfg.didDismiss()
	})
	return true
}

// snap springs the panel back to its anchor. The mid-animation flag is
// cleared however the animation ends.
func (c *Coordinator) snap(done func(bool)) {
	fromY, fromH, fromAlpha, fromExtra := c.originY, c.height, c.alpha, c.extra
	c.animating = true
	c.anim.Animate(c.clock(), func(p float64) {
		c.originY = motion.Lerp(fromY, c.layout.TopY, p)
		c.height = motion.Lerp(fromH, c.layout.Frame.Height, p)
		c.alpha = clamp01(motion.Lerp(fromAlpha, 1, p))
		c.extra = math.Max(motion.Lerp(fromExtra, 0, p), 0)
	}, func(finished bool) {
		c.animating = false
		if done != nil {
			done(finished)
		}
	})
}

// Tick advances animations and scroll deceleration to now and reports
// whether another frame is needed.
func (c *Coordinator) Tick(now time.Time) bool {
	if c.torn {
		return false
	}
	if s, ok := c.cfg.scroll.(stepper); ok && !c.lastTick.IsZero() {
		dt := now.Sub(c.lastTick)
		if dt > maxStep {
			dt = maxStep
		}
		s.Step(dt)
	}
	c.lastTick = now
	c.anim.Step(now)
	return c.NeedsFrame()
}

// NeedsFrame reports whether the host should keep ticking.
func (c *Coordinator) NeedsFrame() bool {
	if c.torn {
		return false
	}
	if c.anim.Active() {
		return true
	}
	s := c.cfg.scroll
	return s != nil && s.IsDecelerating()
}

// Teardown detaches the sheet. Running animations are dropped without
// completing and no callbacks fire afterwards.
func (c *Coordinator) Teardown() {
	if c.torn {
		return
	}
	c.torn = true
	c.fusion.Stop()
	c.anim.Stop()
	c.animating = false
	c.logger.Debug("torn down")
}

func (c *Coordinator) released(v float64, d drag.Decision) {
	observability.Sheet().OnRelease(c.ctx, c.ID(), v, d.String())
}

func (c *Coordinator) arbitrated(m fusion.Mode, ch fusion.Change) {
	observability.Sheet().OnScrollMode(c.ctx, c.ID(), m.String(), ch.New)
}

// contentFrame is the content area in panel coordinates, below the handle.
func (c *Coordinator) contentFrame() layout.Rect {
	inset := c.cfg.layout.Handle.AreaHeight()
	return layout.Rect{
		Y:      inset,
		Width:  c.layout.Frame.Width,
		Height: math.Max(c.layout.Frame.Height-inset, 0),
	}
}

// scrollState reports the embedded scrollable in container coordinates.
func (c *Coordinator) scrollState() drag.ScrollState {
	s := c.cfg.scroll
	if s == nil {
		return drag.ScrollState{}
	}
	f := s.Frame()
	f.X += c.layout.Frame.X
	f.Y += c.originY
	return drag.ScrollState{
		Present:   true,
		Offset:    s.ContentOffset(),
		Frame:     f,
		Scrolling: fusion.IsScrolling(s),
	}
}
