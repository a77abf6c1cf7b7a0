package drag

import "math"

// DefaultSensitivity is the snap movement sensitivity. Higher values lower
// the flick threshold.
const DefaultSensitivity = 0.5

// Threshold returns the release speed (points per second) above which a
// release counts as a flick.
func Threshold(sensitivity float64) float64 {
	return 1000 * (1 - sensitivity)
}

// IsFlick reports whether |velocity| exceeds threshold. The comparison is
// direction-agnostic: fast upward and downward releases both count.
func IsFlick(velocity, threshold float64) bool {
	return math.Abs(velocity)-threshold > 0
}

// Displacement applies rubber-band resistance: while the panel is above
// its anchor, raw motion is halved.
func Displacement(raw, originY, anchor float64) float64 {
	if originY < anchor {
		return raw / 2
	}
	return raw
}

// ClampOrigin keeps the panel from being dragged above its anchor.
func ClampOrigin(y, anchor float64) float64 {
	return math.Max(y, anchor)
}

// DimAlpha returns the dimming overlay opacity for a panel at originY: 1
// at or above the anchor, then falling linearly by the fraction of the
// panel height dragged away. A non-positive panel height yields 0 below
// the anchor.
func DimAlpha(originY, anchor, panelHeight float64) float64 {
	if originY <= anchor {
		return 1
	}
	if panelHeight <= 0 {
		return 0
	}
	return 1 - (originY-anchor)/panelHeight
}

// IsAnchored reports whether the panel is resting at its anchor. Positions
// are rounded to absorb sub-pixel settling; an animating panel is never
// anchored.
func IsAnchored(originY, anchor float64, animating bool) bool {
	return !animating && math.Round(originY) <= math.Round(anchor)
}

// Nearest returns the candidate closest to v. Ties keep the earlier
// candidate. With no candidates v itself is returned.
func Nearest(v float64, candidates ...float64) float64 {
	if len(candidates) == 0 {
		return v
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if math.Abs(v-c) < math.Abs(v-best) {
			best = c
		}
	}
	return best
}

// Decision is the outcome of a release.
type Decision int

const (
	DecisionSnap Decision = iota
	DecisionDismiss
)

func (d Decision) String() string {
	if d == DecisionDismiss {
		return "dismiss"
	}
	return "snap"
}

// Release holds the inputs to Decide.
type Release struct {
	Velocity      float64
	OriginY       float64
	Anchor        float64
	Bottom        float64 // container height
	AllowsDismiss bool
	Threshold     float64
}

// Decide resolves a release into snapping back to the anchor or
// dismissing.
func Decide(r Release) Decision {
	if !r.AllowsDismiss {
		return DecisionSnap
	}
	if IsFlick(r.Velocity, r.Threshold) {
		if r.OriginY < r.Anchor {
			return DecisionSnap
		}
		return DecisionDismiss
	}
	if Nearest(r.OriginY, r.Bottom, r.Anchor) == r.Anchor {
		return DecisionSnap
	}
	return DecisionDismiss
}
