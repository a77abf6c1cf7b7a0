package layout

import "math"

// Unbounded is passed as a constraint dimension when content should report
// its natural size.
var Unbounded = math.Inf(1)

// Constraints bound the space content may occupy when measured.
type Constraints struct {
	Width, Height float64
}

// HeightStrategy yields the panel's content height for the given
// constraints. The handle area is added by the calculator, not by the
// strategy. Implementations must be side-effect free: the result is cached
// until the next layout pass.
type HeightStrategy interface {
	ContentHeight(c Constraints) float64
}

// Fixed is a constant content height.
type Fixed float64

// ContentHeight returns the fixed value, clamped to zero.
func (f Fixed) ContentHeight(Constraints) float64 {
	return clampHeight(float64(f))
}

// HeightFunc adapts a function to a HeightStrategy. Hosts use it for
// custom variants.
type HeightFunc func(c Constraints) float64

// ContentHeight calls f and clamps the result.
func (f HeightFunc) ContentHeight(c Constraints) float64 {
	if f == nil {
		return 0
	}
	return clampHeight(f(c))
}

// Measurer reports the intrinsic height of content laid out within c.
type Measurer interface {
	Measure(c Constraints) float64
}

// MeasureFunc adapts a function to a Measurer.
type MeasureFunc func(c Constraints) float64

// Measure calls f.
func (f MeasureFunc) Measure(c Constraints) float64 { return f(c) }

// IntrinsicFit measures content against the width and height left after
// insets. With NaturalHeight set the height constraint is replaced by
// [Unbounded] so content reports its natural size.
type IntrinsicFit struct {
	Content       Measurer
	NaturalHeight bool
}

// Fit returns an IntrinsicFit strategy for m.
func Fit(m Measurer) IntrinsicFit {
	return IntrinsicFit{Content: m}
}

// ContentHeight measures the content. Missing content or a non-finite or
// negative measurement yields zero.
func (s IntrinsicFit) ContentHeight(c Constraints) float64 {
	if s.Content == nil {
		return 0
	}
	if s.NaturalHeight {
		c.Height = Unbounded
	}
	return clampHeight(s.Content.Measure(c))
}

func clampHeight(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return 0
	}
	return h
}
