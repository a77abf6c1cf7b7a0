package fusion

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
)

// Mode is the arbitration outcome of the most recent offset change.
type Mode int

const (
	ModeTracking Mode = iota
	ModeHalted
	ModeBouncing
)

func (m Mode) String() string {
	switch m {
	case ModeTracking:
		return "tracking"
	case ModeHalted:
		return "halted"
	case ModeBouncing:
		return "bouncing"
	default:
		return "unknown"
	}
}

// Sheet is the panel side of the arbitration.
type Sheet interface {
	IsAnchored() bool
	IsAnimating() bool
	// IsTransitioning reports a presentation or dismissal in flight.
	IsTransitioning() bool
	// FullBleed reports whether the scrollable is the panel's whole content.
	FullBleed() bool
	Anchor() float64
	SetOriginY(y float64)
	// ExtendBounds grows the panel's visual height by extra points.
	ExtendBounds(extra float64)
	SnapToAnchor(done func(finished bool))
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for mode changes.
func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithModeHook registers fn to be called after every arbitration.
func WithModeHook(fn func(Mode, Change)) Option {
	return func(c *Coordinator) { c.onMode = fn }
}

// Coordinator observes one Scrollable at a time on behalf of a panel.
type Coordinator struct {
	sheet       Sheet
	scroll      Scrollable
	unsubscribe func()
	cached      float64
	mode        Mode
	handling    bool
	logger      *log.Logger
	onMode      func(Mode, Change)
}

// NewCoordinator returns a coordinator for sheet. Call Observe to attach a
// scrollable.
func NewCoordinator(sheet Sheet, opts ...Option) *Coordinator {
	c := &Coordinator{sheet: sheet, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Observe subscribes to s, dropping any previous subscription. The cached
// offset is reset when s differs from the scrollable already observed.
// Passing nil detaches.
func (c *Coordinator) Observe(s Scrollable) {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	if s != c.scroll {
		c.cached = 0
		c.mode = ModeTracking
	}
	c.scroll = s
	if s != nil {
		c.unsubscribe = s.Subscribe(c.handle)
	}
}

// Stop releases the subscription. No notifications are processed
// afterwards.
func (c *Coordinator) Stop() { c.Observe(nil) }

// Scrollable returns the observed scrollable, or nil.
func (c *Coordinator) Scrollable() Scrollable { return c.scroll }

// Mode returns the outcome of the last arbitration.
func (c *Coordinator) Mode() Mode { return c.mode }

// CachedOffset returns the last accepted content offset.
func (c *Coordinator) CachedOffset() float64 { return c.cached }

func (c *Coordinator) handle(ch Change) {
	s := c.scroll
	if c.handling || s == nil {
		return
	}
	c.handling = true
	defer func() { c.handling = false }()

	if c.sheet.IsTransitioning() {
		return
	}

	y := s.ContentOffset()
	anchored := c.sheet.IsAnchored()
	animating := c.sheet.IsAnimating()

	switch {
	case !anchored && y > 0:
		c.halt(s)
	case IsScrolling(s) || animating:
		if anchored {
			c.track(s, y)
		} else {
			c.halt(s)
		}
	case c.sheet.FullBleed() && !animating && y <= 0:
		if !s.IsDecelerating() {
			return
		}
		c.bounce(s, ch.Old, y)
	default:
		c.track(s, y)
	}

	if c.onMode != nil {
		c.onMode(c.mode, ch)
	}
}

func (c *Coordinator) halt(s Scrollable) {
	s.SetContentOffset(c.cached)
	s.SetIndicatorVisible(false)
	c.setMode(ModeHalted)
}

func (c *Coordinator) track(s Scrollable, y float64) {
	c.cached = math.Max(y, 0)
	s.SetIndicatorVisible(true)
	c.setMode(ModeTracking)
}

func (c *Coordinator) bounce(s Scrollable, old, y float64) {
	c.sheet.ExtendBounds(-y)
	if old > y {
		c.sheet.SetOriginY(c.sheet.Anchor() - y)
	} else {
		c.cached = 0
		c.sheet.SnapToAnchor(nil)
	}
	s.SetIndicatorVisible(false)
	c.setMode(ModeBouncing)
}

func (c *Coordinator) setMode(m Mode) {
	if c.mode != m {
		c.logger.Debug("scroll mode", "from", c.mode, "to", m, "cached", c.cached)
	}
	c.mode = m
}
