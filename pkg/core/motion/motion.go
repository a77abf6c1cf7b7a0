// Package motion drives time-based spring interpolation for the sheet.
//
// Animations are not goroutines. The host owns the clock and calls
// [Animator.Step] once per frame on its UI loop; update and completion
// callbacks run synchronously inside Step, Animate, or Stop. Starting a new
// animation, or calling Stop, interrupts the running one and reports it as
// unfinished.
package motion

import (
	"math"
	"time"
)

// Spring describes a damped spring that settles within Duration.
type Spring struct {
	Duration time.Duration
	Damping  float64
}

// DefaultSpring settles in half a second with a slight overshoot.
var DefaultSpring = Spring{Duration: 500 * time.Millisecond, Damping: 0.8}

// settleExponent is ζωT at which the envelope e^(-ζωt) has decayed to ~0.1%.
const settleExponent = 6.9

// Progress returns the spring's normalized position at elapsed time: 0 at
// the start, exactly 1 at or after Duration. Underdamped springs overshoot
// 1 slightly before settling.
func (s Spring) Progress(elapsed time.Duration) float64 {
	if s.Duration <= 0 || elapsed >= s.Duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}

	zeta := s.Damping
	if zeta <= 0 || zeta >= 1 {
		// Critically damped or invalid: fall back to ease-in-out.
		x := elapsed.Seconds() / s.Duration.Seconds()
		return x * x * (3 - 2*x)
	}

	t := elapsed.Seconds()
	omega := settleExponent / (zeta * s.Duration.Seconds())
	omegaD := omega * math.Sqrt(1-zeta*zeta)
	envelope := math.Exp(-zeta * omega * t)
	return 1 - envelope*(math.Cos(omegaD*t)+(zeta*omega/omegaD)*math.Sin(omegaD*t))
}

// Lerp interpolates between from and to. Progress values above 1 overshoot.
func Lerp(from, to, progress float64) float64 {
	return from + (to-from)*progress
}

type animation struct {
	start  time.Time
	update func(progress float64)
	done   func(finished bool)
}

// Animator runs at most one animation at a time.
type Animator struct {
	spring  Spring
	current *animation
}

// NewAnimator returns an animator using spring. A zero Spring uses
// DefaultSpring.
func NewAnimator(spring Spring) *Animator {
	if spring == (Spring{}) {
		spring = DefaultSpring
	}
	return &Animator{spring: spring}
}

// Spring returns the spring in use.
func (a *Animator) Spring() Spring { return a.spring }

// Active reports whether an animation is running.
func (a *Animator) Active() bool { return a.current != nil }

// Animate starts a new animation at now, interrupting any running one.
// update is called immediately with progress 0 and then on every Step;
// done is called once with finished=true when the spring settles, or
// finished=false when interrupted. Either callback may be nil.
func (a *Animator) Animate(now time.Time, update func(progress float64), done func(finished bool)) {
	a.Stop()
	anim := &animation{start: now, update: update, done: done}
	a.current = anim
	if update != nil {
		update(0)
	}
}

// Step advances the running animation to now and reports whether it is
// still running afterwards.
func (a *Animator) Step(now time.Time) bool {
	anim := a.current
	if anim == nil {
		return false
	}

	elapsed := now.Sub(anim.start)
	if anim.update != nil {
		anim.update(a.spring.Progress(elapsed))
	}
	// update may have started a replacement animation.
	if a.current != anim {
		return a.current != nil
	}
	if elapsed < a.spring.Duration {
		return true
	}

	a.current = nil
	if anim.done != nil {
		anim.done(true)
	}
	return a.current != nil
}

// Stop interrupts the running animation, leaving values where the last
// update put them.
func (a *Animator) Stop() {
	anim := a.current
	if anim == nil {
		return
	}
	a.current = nil
	if anim.done != nil {
		anim.done(false)
	}
}
