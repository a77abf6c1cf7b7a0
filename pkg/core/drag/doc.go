// Package drag turns vertical pointer gestures into panel movement and
// release decisions.
//
// # Sessions
//
// A [Session] is the per-gesture record a host feeds pointer input into:
// [Session.Begin] on press, [Session.Move] for every motion, and
// [Session.End] or [Session.Cancel] on release. The session accumulates
// translation between controller calls and estimates release velocity
// from the last 100ms of motion.
//
// # Controller
//
// [Controller] is the state machine (Idle → Dragging → Settling → Idle).
// Each call to [Controller.Handle] consumes the session's accumulated
// translation and resets it to zero, so tracking is incremental:
//
//	s := drag.NewSession()
//	s.Begin(p, now)
//	ctrl.Handle(s)
//	s.Move(12, p, now.Add(16*time.Millisecond))
//	ctrl.Handle(s)
//	s.End(now.Add(32 * time.Millisecond))
//	ctrl.Handle(s) // snaps back or dismisses
//
// The controller never owns the panel. It talks to a [Sheet], which the
// presentation layer implements, to read the anchor and current origin and
// to request position updates, snapping, and dismissal.
//
// # Release
//
// On release [Decide] compares |velocity| with [Threshold] (500 pt/s at the
// default sensitivity of 0.5). A fast flick dismisses unless the panel is
// above its anchor or drag-to-dismiss is disabled. A slow release picks
// whichever of the anchor and the container bottom is nearer.
//
// # Ownership
//
// Before moving the panel the controller checks whether the embedded
// scrollable should own the pointer instead: when the panel is anchored,
// the scrollable is scrolled away from its top, and the touch is inside the
// scrollable (or it is mid-scroll), the gesture's translation is discarded.
package drag
