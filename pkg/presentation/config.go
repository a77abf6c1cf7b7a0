package presentation

import (
	"github.com/matzehuels/floatsheet/pkg/core/drag"
	"github.com/matzehuels/floatsheet/pkg/core/fusion"
	"github.com/matzehuels/floatsheet/pkg/core/layout"
)

// Defaults for a sheet that overrides nothing.
var (
	DefaultDimColor    = MustParseColor("#00000080")
	DefaultHandleColor = AdaptiveColor{
		Light: MustParseColor("#EAEBEE"),
		Dark:  MustParseColor("#34373D"),
	}
	DefaultCornerRadius = 20.0
	// DefaultHeight is used when there is no scrollable to size against.
	DefaultHeight = layout.Fixed(100)
)

// DefaultInsets derives the panel insets from the container's safe area:
// 42pt below the top safe area, 8pt above the bottom one, 16pt at the sides.
func DefaultInsets(safe layout.Insets) layout.Insets {
	return layout.Insets{
		Top:      safe.Top + 42,
		Leading:  16,
		Bottom:   safe.Bottom + 8,
		Trailing: 16,
	}
}

// Config is what a sheet declares about itself. Nil fields fall back to
// defaults when merged; the core never mutates a Config.
type Config struct {
	// Insets defaults to DefaultInsets of the container safe area.
	Insets *layout.Insets
	// Height defaults to the scrollable's content height when the
	// scrollable reports one, else DefaultHeight.
	Height layout.HeightStrategy
	Handle *layout.Handle

	CornerRadius *float64
	DimColor     *Color
	HandleColor  *AdaptiveColor

	AllowsDragToDismiss *bool
	AllowsTapToDismiss  *bool

	// Scrollable is the optional embedded scroll region.
	Scrollable fusion.Scrollable
	// FullBleed marks Scrollable as the sheet's entire content.
	FullBleed *bool

	ShouldRespond    func(drag.Gesture) bool
	WillRespond      func(drag.Gesture)
	ShouldPrioritize func(drag.Gesture) bool

	WillDismiss func()
	DidDismiss  func()
}

// DefaultConfig returns the container-independent defaults.
func DefaultConfig() Config {
	handle := layout.DefaultHandle
	dim := DefaultDimColor
	handleColor := DefaultHandleColor
	return Config{
		Handle:              &handle,
		CornerRadius:        Float(DefaultCornerRadius),
		DimColor:            &dim,
		HandleColor:         &handleColor,
		AllowsDragToDismiss: Bool(true),
		AllowsTapToDismiss:  Bool(true),
		FullBleed:           Bool(false),
		ShouldRespond:       func(drag.Gesture) bool { return true },
		WillRespond:         func(drag.Gesture) {},
		ShouldPrioritize:    func(drag.Gesture) bool { return false },
		WillDismiss:         func() {},
		DidDismiss:          func() {},
	}
}

// Merge returns c with every unset field taken from defaults.
func (c Config) Merge(defaults Config) Config {
	if c.Insets == nil {
		c.Insets = defaults.Insets
	}
	if c.Height == nil {
		c.Height = defaults.Height
	}
	if c.Handle == nil {
		c.Handle = defaults.Handle
	}
	if c.CornerRadius == nil {
		c.CornerRadius = defaults.CornerRadius
	}
	if c.DimColor == nil {
		c.DimColor = defaults.DimColor
	}
	if c.HandleColor == nil {
		c.HandleColor = defaults.HandleColor
	}
	if c.AllowsDragToDismiss == nil {
		c.AllowsDragToDismiss = defaults.AllowsDragToDismiss
	}
	if c.AllowsTapToDismiss == nil {
		c.AllowsTapToDismiss = defaults.AllowsTapToDismiss
	}
	if c.Scrollable == nil {
		c.Scrollable = defaults.Scrollable
	}
	if c.FullBleed == nil {
		c.FullBleed = defaults.FullBleed
	}
	if c.ShouldRespond == nil {
		c.ShouldRespond = defaults.ShouldRespond
	}
	if c.WillRespond == nil {
		c.WillRespond = defaults.WillRespond
	}
	if c.ShouldPrioritize == nil {
		c.ShouldPrioritize = defaults.ShouldPrioritize
	}
	if c.WillDismiss == nil {
		c.WillDismiss = defaults.WillDismiss
	}
	if c.DidDismiss == nil {
		c.DidDismiss = defaults.DidDismiss
	}
	return c
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

type contentSizer interface {
	ContentHeight() float64
}

// settings is a Config resolved against a container.
type settings struct {
	layout       layout.Config
	cornerRadius float64
	dimColor     Color
	handleColor  AdaptiveColor
	dragDismiss  bool
	tapDismiss   bool
	fullBleed    bool
	scroll       fusion.Scrollable

	shouldRespond    func(drag.Gesture) bool
	willRespond      func(drag.Gesture)
	shouldPrioritize func(drag.Gesture) bool
	willDismiss      func()
	didDismiss       func()
}

func resolve(c Config, container layout.Container) settings {
	c = c.Merge(DefaultConfig())

	insets := DefaultInsets(container.SafeArea)
	if c.Insets != nil {
		insets = *c.Insets
	}
	height := c.Height
	if height == nil {
		height = DefaultHeight
		if sz, ok := c.Scrollable.(contentSizer); ok {
			height = layout.HeightFunc(func(layout.Constraints) float64 {
				return sz.ContentHeight()
			})
		}
	}

	return settings{
		layout: layout.Config{
			Insets: insets,
			Height: height,
			Handle: *c.Handle,
		},
		cornerRadius:     *c.CornerRadius,
		dimColor:         *c.DimColor,
		handleColor:      *c.HandleColor,
		dragDismiss:      *c.AllowsDragToDismiss,
		tapDismiss:       *c.AllowsTapToDismiss,
		fullBleed:        *c.FullBleed && c.Scrollable != nil,
		scroll:           c.Scrollable,
		shouldRespond:    c.ShouldRespond,
		willRespond:      c.WillRespond,
		shouldPrioritize: c.ShouldPrioritize,
		willDismiss:      c.WillDismiss,
		didDismiss:       c.DidDismiss,
	}
}

// Presentable is a sheet that can be presented. SheetConfig is re-read on
// every layout pass, so it may return different values over time.
type Presentable interface {
	SheetConfig() Config
}

// PresentableFunc adapts a function to Presentable.
type PresentableFunc func() Config

func (f PresentableFunc) SheetConfig() Config { return f() }

// Static returns a Presentable that always reports cfg.
func Static(cfg Config) Presentable {
	return PresentableFunc(func() Config { return cfg })
}
