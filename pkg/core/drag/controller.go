package drag

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/floatsheet/pkg/core/layout"
)

// State is the controller's position in its state machine.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateSettling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateSettling:
		return "settling"
	default:
		return "unknown"
	}
}

// ScrollState describes the embedded scrollable at the moment of a
// decision. Frame is in container coordinates.
type ScrollState struct {
	Present   bool
	Offset    float64
	Frame     layout.Rect
	Scrolling bool
}

// Sheet is the panel the controller drives. The presentation layer
// implements it; every method runs on the UI loop.
type Sheet interface {
	Layout() layout.Layout
	ContainerHeight() float64
	OriginY() float64
	SetPosition(originY, dimAlpha float64)
	IsAnchored() bool
	Scroll() ScrollState
	// InterruptScroll cancels any native scroll gesture on the embedded
	// scrollable.
	InterruptScroll()

	AllowsDragToDismiss() bool
	ShouldRespond(g Gesture) bool
	WillRespond(g Gesture)
	ShouldPrioritize(g Gesture) bool

	// StopAnimation interrupts any in-flight panel animation. It is a
	// no-op when nothing is animating.
	StopAnimation()
	SnapToAnchor(done func(finished bool))
	Dismiss()
}

// Option configures a Controller.
type Option func(*Controller)

// WithSensitivity sets the snap movement sensitivity.
func WithSensitivity(s float64) Option {
	return func(c *Controller) { c.threshold = Threshold(s) }
}

// WithLogger sets the logger used for state transitions.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller is the drag state machine for one panel.
type Controller struct {
	sheet     Sheet
	threshold float64
	state     State
	logger    *log.Logger
	onRelease func(v float64, d Decision)
}

// NewController returns an idle controller driving sheet.
func NewController(sheet Sheet, opts ...Option) *Controller {
	c := &Controller{
		sheet:     sheet,
		threshold: Threshold(DefaultSensitivity),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnRelease registers a callback invoked with every release decision.
func (c *Controller) OnRelease(fn func(velocity float64, d Decision)) {
	c.onRelease = fn
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Settled reports whether no drag or settle is in progress.
func (c *Controller) Settled() bool { return c.state == StateIdle }

// Threshold returns the flick threshold in points per second.
func (c *Controller) Threshold() float64 { return c.threshold }

// Handle processes the session's current phase.
func (c *Controller) Handle(s *Session) {
	if s == nil || s.WasReset() {
		return
	}
	if !c.shouldRespond(s) {
		s.SetTranslation(0)
		if c.state == StateDragging && !s.Active() {
			c.setState(StateIdle)
		}
		return
	}

	switch s.Phase() {
	case PhaseBegan, PhaseChanged:
		c.respond(s)
	default:
		c.release(s)
	}
}

// Abort drops any in-progress drag without a release decision.
func (c *Controller) Abort() {
	if c.state == StateDragging {
		c.setState(StateIdle)
	}
}

func (c *Controller) shouldRespond(s *Session) bool {
	g := s.Gesture()
	edge := g.Phase == PhaseBegan || g.Phase == PhaseCancelled
	if edge && !c.sheet.ShouldRespond(g) {
		s.Reset()
		c.setState(StateIdle)
		return false
	}
	return !c.shouldFail(s)
}

// shouldFail reports whether the embedded scrollable owns the pointer.
func (c *Controller) shouldFail(s *Session) bool {
	g := s.Gesture()
	if g.Phase == PhaseBegan && c.sheet.ShouldPrioritize(g) {
		c.sheet.InterruptScroll()
		return false
	}
	if !c.sheet.IsAnchored() {
		return false
	}
	scroll := c.sheet.Scroll()
	if !scroll.Present || scroll.Offset <= 0 {
		return false
	}
	return scroll.Frame.Contains(g.Location) || scroll.Scrolling
}

func (c *Controller) respond(s *Session) {
	c.sheet.WillRespond(s.Gesture())

	// Any running panel animation yields to the pointer, not only our
	// own settle.
	if c.state != StateDragging {
		c.sheet.StopAnimation()
	}
	c.setState(StateDragging)

	origin := c.sheet.OriginY()
	anchor := c.sheet.Layout().TopY
	dy := Displacement(s.Translation(), origin, anchor)
	c.adjust(origin + dy)

	s.lastOrigin = c.sheet.OriginY()
	s.SetTranslation(0)
}

func (c *Controller) adjust(y float64) {
	l := c.sheet.Layout()
	y = ClampOrigin(y, l.TopY)
	c.sheet.SetPosition(y, DimAlpha(y, l.TopY, l.Frame.Height))
}

func (c *Controller) release(s *Session) {
	origin := c.sheet.OriginY()
	r := Release{
		Velocity:      s.Velocity(),
		OriginY:       origin,
		Anchor:        c.sheet.Layout().TopY,
		Bottom:        c.sheet.ContainerHeight(),
		AllowsDismiss: c.sheet.AllowsDragToDismiss(),
		Threshold:     c.threshold,
	}
	d := Decide(r)
	c.logger.Debug("drag released",
		"velocity", r.Velocity, "origin", origin, "anchor", r.Anchor,
		"flick", IsFlick(r.Velocity, r.Threshold), "decision", d)
	if c.onRelease != nil {
		c.onRelease(r.Velocity, d)
	}

	c.setState(StateSettling)
	settled := func(bool) {
		if c.state == StateSettling {
			c.setState(StateIdle)
		}
	}
	switch d {
	case DecisionDismiss:
		c.sheet.Dismiss()
		settled(true)
	default:
		c.sheet.SnapToAnchor(settled)
	}
}

func (c *Controller) setState(s State) {
	if c.state == s {
		return
	}
	c.logger.Debug("drag state", "from", c.state, "to", s)
	c.state = s
}
