package io

import (
	"math"
	"time"

	"github.com/matzehuels/floatsheet/pkg/core/layout"
	"github.com/matzehuels/floatsheet/pkg/errors"
)

// Trace is a recorded pointer session.
type Trace struct {
	Container Size    `json:"container"`
	Content   float64 `json:"content"`
	Moves     []Move  `json:"moves"`
	ReleaseMS int64   `json:"release_ms,omitempty"`
}

// Size is a container size in points.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Move is one vertical pointer move.
type Move struct {
	AtMS int64   `json:"at_ms"`
	DY   float64 `json:"dy"`
}

// At returns the move's offset from the start of the session.
func (m Move) At() time.Duration { return time.Duration(m.AtMS) * time.Millisecond }

// NewTrace builds a trace of moves spaced interval apart, released with
// the last move.
func NewTrace(container layout.Container, content float64, deltas []float64, interval time.Duration) Trace {
	t := Trace{
		Container: Size{Width: container.Width, Height: container.Height},
		Content:   content,
		Moves:     make([]Move, len(deltas)),
	}
	for i, dy := range deltas {
		t.Moves[i] = Move{AtMS: int64(i+1) * interval.Milliseconds(), DY: dy}
	}
	return t
}

// Release returns when the pointer was lifted.
func (t Trace) Release() time.Duration {
	if t.ReleaseMS > 0 {
		return time.Duration(t.ReleaseMS) * time.Millisecond
	}
	if len(t.Moves) == 0 {
		return 0
	}
	return t.Moves[len(t.Moves)-1].At()
}

// LayoutContainer returns the container without safe area insets.
func (t Trace) LayoutContainer() layout.Container {
	return layout.Container{Width: t.Container.Width, Height: t.Container.Height}
}

// Validate checks the trace is replayable.
func (t Trace) Validate() error {
	if err := errors.ValidatePositive("container.width", t.Container.Width); err != nil {
		return err
	}
	if err := errors.ValidatePositive("container.height", t.Container.Height); err != nil {
		return err
	}
	if err := errors.ValidateDimension("content", t.Content); err != nil {
		return err
	}
	if len(t.Moves) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "trace has no moves")
	}
	var last int64
	for i, m := range t.Moves {
		if m.AtMS < last {
			return errors.New(errors.ErrCodeInvalidInput, "move %d goes back in time (%dms after %dms)", i, m.AtMS, last)
		}
		if math.IsNaN(m.DY) || math.IsInf(m.DY, 0) {
			return errors.New(errors.ErrCodeInvalidInput, "move %d has a non-finite dy", i)
		}
		last = m.AtMS
	}
	if t.ReleaseMS != 0 && t.ReleaseMS < last {
		return errors.New(errors.ErrCodeInvalidInput, "release at %dms precedes the last move at %dms", t.ReleaseMS, last)
	}
	return nil
}
