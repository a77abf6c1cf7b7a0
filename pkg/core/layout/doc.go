// Package layout computes where a floating bottom sheet rests inside its
// container.
//
// # Overview
//
// The calculator is a pure function of the container geometry, the sheet
// insets, a [HeightStrategy] and the drag handle metrics. It produces a
// [Layout] holding the anchor (the resting Y of the panel's top edge) and
// the panel frame:
//
//	l := layout.Calculate(layout.Config{
//	    Insets: layout.Insets{Top: 50, Leading: 16, Bottom: 30, Trailing: 16},
//	    Height: layout.Fixed(200),
//	    Handle: layout.DefaultHandle,
//	}, layout.Container{Width: 400, Height: 800})
//
//	l.TopY   // 546
//	l.Frame  // {16 546 368 224}
//
// # Height Strategies
//
// Content height is produced by a [HeightStrategy]:
//
//   - [Fixed]: a constant height, negative values clamp to zero
//   - [Fit]: measures content against the width and height left after insets
//   - [HeightFunc]: any host-defined function with the same contract
//
// The handle area ([Handle.AreaHeight]) is always added on top of the
// content height.
//
// # Invariants
//
// The anchor never rises above the top inset. The frame always spans from
// the anchor down to the bottom inset, so its height can be zero or
// negative for degenerate containers; such layouts report
// [Layout.Renderable] as false and hosts should skip drawing them.
//
// Calculate touches nothing but its arguments, so results are safe to
// memoize and to compute from any goroutine.
package layout
