package fusion

import (
	"math"
	"time"

	"github.com/matzehuels/floatsheet/pkg/core/layout"
)

// Scrollable is an embedded scroll region the coordinator can observe and
// correct. Implementations must be comparable (typically a pointer) and
// must notify subscribers synchronously from SetContentOffset and from any
// other offset mutation.
type Scrollable interface {
	ContentOffset() float64
	SetContentOffset(y float64)
	SetIndicatorVisible(visible bool)
	// Frame is the region's frame in panel coordinates.
	Frame() layout.Rect

	IsTracking() bool
	IsDragging() bool
	IsDecelerating() bool

	Subscribe(fn func(Change)) (unsubscribe func())
}

// IsScrolling reports whether s is mid-interaction: dragged and not yet
// coasting, or with a finger down.
func IsScrolling(s Scrollable) bool {
	return s.IsDragging() && !s.IsDecelerating() || s.IsTracking()
}

const (
	// decelerationRate is the exponential decay of coasting velocity, 1/s.
	decelerationRate = 4.0
	// overscrollDamping decays velocity that carries content past an edge.
	overscrollDamping = 30.0
	// springBack pulls overscrolled content back to its edge, 1/s.
	springBack = 12.0
	minVelocity = 5.0
	settleDistance = 0.5
)

// Region is an in-memory Scrollable: content of a given height viewed
// through a frame, with pointer drag, wheel scrolling, and deceleration
// stepped by the host clock.
type Region struct {
	feed OffsetFeed

	offset        float64
	contentHeight float64
	frame         layout.Rect
	indicator     bool

	tracking     bool
	dragging     bool
	decelerating bool
	velocity     float64 // offset units per second
}

// NewRegion returns a region showing contentHeight points of content
// through frame.
func NewRegion(frame layout.Rect, contentHeight float64) *Region {
	return &Region{frame: frame, contentHeight: contentHeight, indicator: true}
}

func (r *Region) ContentOffset() float64 { return r.offset }

// SetContentOffset moves the content and notifies subscribers if the
// offset changed.
func (r *Region) SetContentOffset(y float64) {
	if y == r.offset {
		return
	}
	old := r.offset
	r.offset = y
	r.feed.Publish(Change{Old: old, New: y})
}

func (r *Region) SetIndicatorVisible(v bool) { r.indicator = v }

// IndicatorVisible reports whether the scroll indicator is shown.
func (r *Region) IndicatorVisible() bool { return r.indicator }

func (r *Region) Frame() layout.Rect { return r.frame }

// SetFrame resizes the viewport, clamping the offset if it no longer fits.
func (r *Region) SetFrame(f layout.Rect) {
	r.frame = f
	r.clamp()
}

// ContentHeight returns the full height of the scrolled content.
func (r *Region) ContentHeight() float64 { return r.contentHeight }

// SetContentHeight changes the content height, clamping the offset.
func (r *Region) SetContentHeight(h float64) {
	r.contentHeight = math.Max(h, 0)
	r.clamp()
}

// MaxOffset is the largest in-bounds offset.
func (r *Region) MaxOffset() float64 {
	return math.Max(r.contentHeight-r.frame.Height, 0)
}

func (r *Region) IsTracking() bool     { return r.tracking }
func (r *Region) IsDragging() bool     { return r.dragging }
func (r *Region) IsDecelerating() bool { return r.decelerating }

func (r *Region) Subscribe(fn func(Change)) func() { return r.feed.Subscribe(fn) }

// Subscribers returns the number of active offset subscribers.
func (r *Region) Subscribers() int { return r.feed.Count() }

// BeginDrag puts a finger on the content, stopping any deceleration.
func (r *Region) BeginDrag() {
	r.tracking, r.dragging = true, true
	r.decelerating = false
	r.velocity = 0
}

// DragBy moves the content with the pointer: dragging down by dy points
// reveals content above. Motion past an edge meets half resistance.
func (r *Region) DragBy(dy float64) {
	if !r.dragging {
		return
	}
	next := r.offset - dy
	if next < 0 || next > r.MaxOffset() {
		next = r.offset - dy/2
	}
	r.SetContentOffset(next)
}

// EndDrag lifts the finger. velocity is the pointer's release velocity in
// points per second, positive downward.
func (r *Region) EndDrag(velocity float64) {
	if !r.dragging {
		return
	}
	r.tracking = false
	r.velocity = -velocity
	r.decelerating = math.Abs(r.velocity) > minVelocity || r.outOfBounds()
	if !r.decelerating {
		r.dragging = false
	}
}

// Interrupt cancels the native scroll gesture without coasting.
func (r *Region) Interrupt() {
	r.tracking, r.dragging = false, false
	r.velocity = 0
	if !r.outOfBounds() {
		r.decelerating = false
	}
}

// ScrollBy scrolls by dy points, as a wheel would, staying in bounds.
func (r *Region) ScrollBy(dy float64) {
	r.tracking = true
	r.SetContentOffset(math.Min(math.Max(r.offset+dy, 0), r.MaxOffset()))
	r.tracking = false
}

// Step advances deceleration by dt and reports whether the region is
// still moving.
func (r *Region) Step(dt time.Duration) bool {
	if !r.decelerating || dt <= 0 {
		return r.decelerating
	}
	sec := dt.Seconds()

	if bound, out := r.edge(); out {
		outward := (r.offset < bound) == (r.velocity < 0)
		if outward && r.velocity != 0 {
			r.velocity *= math.Exp(-overscrollDamping * sec)
			if math.Abs(r.velocity) < minVelocity {
				r.velocity = 0
			}
			r.SetContentOffset(r.offset + r.velocity*sec)
			return true
		}
		r.velocity = 0
		next := bound + (r.offset-bound)*math.Exp(-springBack*sec)
		if math.Abs(next-bound) < settleDistance {
			next = bound
			r.stop()
		}
		r.SetContentOffset(next)
		return r.decelerating
	}

	r.SetContentOffset(r.offset + r.velocity*sec)
	r.velocity *= math.Exp(-decelerationRate * sec)
	if _, out := r.edge(); !out && math.Abs(r.velocity) < minVelocity {
		r.stop()
	}
	return r.decelerating
}

func (r *Region) stop() {
	r.decelerating, r.dragging = false, false
	r.velocity = 0
}

func (r *Region) edge() (bound float64, out bool) {
	switch {
	case r.offset < 0:
		return 0, true
	case r.offset > r.MaxOffset():
		return r.MaxOffset(), true
	default:
		return 0, false
	}
}

func (r *Region) outOfBounds() bool {
	_, out := r.edge()
	return out
}

func (r *Region) clamp() {
	if r.dragging || r.decelerating {
		return
	}
	r.SetContentOffset(math.Min(math.Max(r.offset, 0), r.MaxOffset()))
}
