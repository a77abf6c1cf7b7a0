package drag

import (
	"time"

	"github.com/matzehuels/floatsheet/pkg/core/layout"
)

// Phase is the lifecycle stage of a gesture. Within one gesture phases
// arrive in order: Began, Changed*, then Ended or Cancelled.
type Phase int

const (
	PhaseBegan Phase = iota
	PhaseChanged
	PhaseEnded
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseBegan:
		return "began"
	case PhaseChanged:
		return "changed"
	case PhaseEnded:
		return "ended"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Gesture is an immutable snapshot handed to host predicates.
type Gesture struct {
	Phase       Phase
	Translation float64      // vertical translation since the last reset
	Velocity    float64      // points per second, positive is downward
	Location    layout.Point // container coordinates
}

// VelocityWindow is how much recent motion the velocity estimate covers.
const VelocityWindow = 100 * time.Millisecond

type sample struct {
	at time.Time
	y  float64
}

// Session accumulates pointer input for one gesture.
type Session struct {
	phase       Phase
	translation float64
	travelled   float64
	location    layout.Point
	velocity    float64
	lastOrigin  float64
	samples     []sample
	reset       bool
	started     bool
}

// NewSession returns an idle session. Call Begin before feeding motion.
func NewSession() *Session {
	return &Session{phase: PhaseCancelled}
}

// Begin starts a new gesture at loc, clearing any previous state.
func (s *Session) Begin(loc layout.Point, at time.Time) {
	*s = Session{
		phase:    PhaseBegan,
		location: loc,
		samples:  []sample{{at: at}},
		started:  true,
	}
}

// Move records vertical motion dy at loc. It returns false when the
// session is not accepting input (not begun, finished, or reset).
func (s *Session) Move(dy float64, loc layout.Point, at time.Time) bool {
	if !s.Active() {
		return false
	}
	s.phase = PhaseChanged
	s.translation += dy
	s.travelled += dy
	s.location = loc
	s.samples = append(s.samples, sample{at: at, y: s.travelled})
	s.trim(at)
	return true
}

// End finishes the gesture and freezes the release velocity.
func (s *Session) End(at time.Time) bool {
	return s.finish(PhaseEnded, at)
}

// Cancel finishes the gesture as cancelled.
func (s *Session) Cancel(at time.Time) bool {
	return s.finish(PhaseCancelled, at)
}

func (s *Session) finish(p Phase, at time.Time) bool {
	if !s.Active() {
		return false
	}
	s.phase = p
	s.trim(at)
	s.velocity = s.estimate()
	return true
}

// Reset forcibly cancels the gesture, equivalent to disabling and
// re-enabling a recognizer. Input is ignored until the next Begin.
func (s *Session) Reset() {
	s.phase = PhaseCancelled
	s.translation = 0
	s.velocity = 0
	s.samples = nil
	s.reset = true
}

// WasReset reports whether Reset was called since the last Begin.
func (s *Session) WasReset() bool { return s.reset }

// Active reports whether the gesture is between Begin and End.
func (s *Session) Active() bool {
	return s.started && !s.reset && (s.phase == PhaseBegan || s.phase == PhaseChanged)
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Translation returns the translation accumulated since the last
// SetTranslation.
func (s *Session) Translation() float64 { return s.translation }

// SetTranslation replaces the accumulated translation.
func (s *Session) SetTranslation(v float64) { s.translation = v }

// Velocity returns the release velocity once the gesture has finished, or
// the running estimate before that.
func (s *Session) Velocity() float64 {
	if s.Active() {
		return s.estimate()
	}
	return s.velocity
}

// Location returns the last pointer location.
func (s *Session) Location() layout.Point { return s.location }

// LastOrigin returns the panel origin recorded by the controller on the
// most recent update.
func (s *Session) LastOrigin() float64 { return s.lastOrigin }

// Gesture returns a snapshot for host predicates.
func (s *Session) Gesture() Gesture {
	return Gesture{
		Phase:       s.phase,
		Translation: s.translation,
		Velocity:    s.Velocity(),
		Location:    s.location,
	}
}

func (s *Session) trim(now time.Time) {
	cutoff := now.Add(-VelocityWindow)
	i := 0
	for i < len(s.samples)-1 && s.samples[i].at.Before(cutoff) {
		i++
	}
	s.samples = s.samples[i:]
	// A lone sample older than the window means the pointer has stopped.
	if len(s.samples) == 1 && s.samples[0].at.Before(cutoff) {
		s.samples[0].at = cutoff
	}
}

func (s *Session) estimate() float64 {
	if len(s.samples) < 2 {
		return 0
	}
	first, last := s.samples[0], s.samples[len(s.samples)-1]
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return (last.y - first.y) / dt
}
