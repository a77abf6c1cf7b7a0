// Package config loads sheet configuration files.
//
// A sheet file describes a panel the same way [presentation.Config] does,
// in TOML or YAML:
//
//	corner_radius = 12
//	dim_color = "#00000066"
//	allows_tap_to_dismiss = false
//
//	[height]
//	mode = "fixed"
//	value = 240
//
//	[handle_color]
//	light = "#EAEBEE"
//	dark = "#34373D"
//
// Files are decoded by extension: .toml with BurntSushi/toml, .yaml and
// .yml with yaml.v3. Every field is optional; unset fields fall back to the
// presentation defaults when converted with [File.PanelConfig].
//
// [Watch] reloads a file whenever it changes on disk so hosts can re-run
// their layout pass with the new values.
package config

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/floatsheet/pkg/core/layout"
	"github.com/matzehuels/floatsheet/pkg/errors"
	"github.com/matzehuels/floatsheet/pkg/observability"
	"github.com/matzehuels/floatsheet/pkg/presentation"
)

// Height modes.
const (
	// HeightAuto sizes the panel from its scrollable's content height, or
	// the default height when there is none.
	HeightAuto = "auto"
	// HeightFixed uses Height.Value as the content height.
	HeightFixed = "fixed"
	// HeightFit measures the content against the available space.
	HeightFit = "fit"
)

// File is the on-disk form of a sheet configuration.
type File struct {
	Insets       *Insets   `toml:"insets" yaml:"insets"`
	Height       *Height   `toml:"height" yaml:"height"`
	Handle       *Handle   `toml:"handle" yaml:"handle"`
	CornerRadius *float64  `toml:"corner_radius" yaml:"corner_radius"`
	DimColor     string    `toml:"dim_color" yaml:"dim_color"`
	HandleColor  *Adaptive `toml:"handle_color" yaml:"handle_color"`

	AllowsDragToDismiss *bool `toml:"allows_drag_to_dismiss" yaml:"allows_drag_to_dismiss"`
	AllowsTapToDismiss  *bool `toml:"allows_tap_to_dismiss" yaml:"allows_tap_to_dismiss"`
	FullBleed           *bool `toml:"full_bleed" yaml:"full_bleed"`

	// Sensitivity tunes the flick threshold, in [0, 1).
	Sensitivity *float64 `toml:"sensitivity" yaml:"sensitivity"`
	// Items is the number of content rows a demo host shows.
	Items int `toml:"items" yaml:"items"`
}

// Insets are explicit panel insets. When set they replace the defaults
// derived from the safe area.
type Insets struct {
	Top      float64 `toml:"top" yaml:"top"`
	Leading  float64 `toml:"leading" yaml:"leading"`
	Bottom   float64 `toml:"bottom" yaml:"bottom"`
	Trailing float64 `toml:"trailing" yaml:"trailing"`
}

// Height selects a height strategy.
type Height struct {
	Mode  string  `toml:"mode" yaml:"mode"`
	Value float64 `toml:"value" yaml:"value"`
	// Natural measures fit content with an unbounded height.
	Natural bool `toml:"natural" yaml:"natural"`
}

// Handle overrides the drag handle metrics.
type Handle struct {
	Width          float64 `toml:"width" yaml:"width"`
	Height         float64 `toml:"height" yaml:"height"`
	VerticalMargin float64 `toml:"vertical_margin" yaml:"vertical_margin"`
}

// Adaptive is a light/dark color pair.
type Adaptive struct {
	Light string `toml:"light" yaml:"light"`
	Dark  string `toml:"dark" yaml:"dark"`
}

// Load reads, decodes and validates the sheet file at path.
func Load(ctx context.Context, path string) (f *File, err error) {
	start := time.Now()
	defer func() {
		observability.Config().OnConfigLoad(ctx, path, time.Since(start), err)
	}()

	if err := errors.ValidateConfigPath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	f, err = Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Decode parses data in the format named by ext (".toml", ".yaml", ".yml").
// It does not validate.
func Decode(data []byte, ext string) (*File, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid TOML")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid TOML: unknown field %q", undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid YAML")
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported config format %q", ext)
	}
	return &f, nil
}

// dimension is a named field checked in file order.
type dimension struct {
	name  string
	value float64
}

// Validate reports the first invalid field, in file order, as an
// INVALID_CONFIG error.
func (f *File) Validate() error {
	invalid := func(err error, field string) error {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", field)
	}

	if in := f.Insets; in != nil {
		for _, d := range []dimension{
			{"insets.top", in.Top}, {"insets.leading", in.Leading},
			{"insets.bottom", in.Bottom}, {"insets.trailing", in.Trailing},
		} {
			if err := errors.ValidateDimension(d.name, d.value); err != nil {
				return invalid(err, d.name)
			}
		}
	}
	if h := f.Height; h != nil {
		switch h.Mode {
		case "", HeightAuto, HeightFit:
		case HeightFixed:
			if err := errors.ValidateDimension("height.value", h.Value); err != nil {
				return invalid(err, "height.value")
			}
		default:
			return errors.New(errors.ErrCodeInvalidConfig, "height.mode: unknown mode %q (want auto, fixed or fit)", h.Mode)
		}
	}
	if h := f.Handle; h != nil {
		for _, d := range []dimension{
			{"handle.width", h.Width}, {"handle.height", h.Height},
			{"handle.vertical_margin", h.VerticalMargin},
		} {
			if err := errors.ValidateDimension(d.name, d.value); err != nil {
				return invalid(err, d.name)
			}
		}
	}
	if f.CornerRadius != nil {
		if err := errors.ValidateDimension("corner_radius", *f.CornerRadius); err != nil {
			return invalid(err, "corner_radius")
		}
	}
	if f.DimColor != "" {
		if _, err := presentation.ParseColor(f.DimColor); err != nil {
			return invalid(errors.Wrap(errors.ErrCodeInvalidColor, err, "%q", f.DimColor), "dim_color")
		}
	}
	if c := f.HandleColor; c != nil {
		if _, err := c.resolve(); err != nil {
			return invalid(err, "handle_color")
		}
	}
	if f.Sensitivity != nil {
		if err := errors.ValidateSensitivity(*f.Sensitivity); err != nil {
			return invalid(err, "sensitivity")
		}
	}
	if f.Items < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "items cannot be negative: %d", f.Items)
	}
	return nil
}

// PanelConfig converts f to a presentation config. measure backs the "fit"
// height mode and may be nil otherwise. Unset fields stay nil so they take
// the presentation defaults.
func (f *File) PanelConfig(measure layout.Measurer) (presentation.Config, error) {
	var cfg presentation.Config

	if in := f.Insets; in != nil {
		cfg.Insets = &layout.Insets{Top: in.Top, Leading: in.Leading, Bottom: in.Bottom, Trailing: in.Trailing}
	}
	if h := f.Height; h != nil {
		switch h.Mode {
		case HeightFixed:
			cfg.Height = layout.Fixed(h.Value)
		case HeightFit:
			if measure == nil {
				return cfg, errors.New(errors.ErrCodeInvalidConfig, "height.mode fit needs measurable content")
			}
			cfg.Height = layout.IntrinsicFit{Content: measure, NaturalHeight: h.Natural}
		}
	}
	if h := f.Handle; h != nil {
		cfg.Handle = &layout.Handle{
			Size:           layout.Size{Width: h.Width, Height: h.Height},
			VerticalMargin: h.VerticalMargin,
		}
	}
	cfg.CornerRadius = f.CornerRadius
	if f.DimColor != "" {
		c, err := presentation.ParseColor(f.DimColor)
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidColor, err, "dim_color %q", f.DimColor)
		}
		cfg.DimColor = &c
	}
	if f.HandleColor != nil {
		ac, err := f.HandleColor.resolve()
		if err != nil {
			return cfg, err
		}
		cfg.HandleColor = &ac
	}
	cfg.AllowsDragToDismiss = f.AllowsDragToDismiss
	cfg.AllowsTapToDismiss = f.AllowsTapToDismiss
	cfg.FullBleed = f.FullBleed
	return cfg, nil
}

// resolve parses the pair. A missing side takes the default handle color
// for that appearance.
func (a Adaptive) resolve() (presentation.AdaptiveColor, error) {
	out := presentation.DefaultHandleColor
	if a.Light != "" {
		c, err := presentation.ParseColor(a.Light)
		if err != nil {
			return out, errors.Wrap(errors.ErrCodeInvalidColor, err, "light %q", a.Light)
		}
		out.Light = c
	}
	if a.Dark != "" {
		c, err := presentation.ParseColor(a.Dark)
		if err != nil {
			return out, errors.Wrap(errors.ErrCodeInvalidColor, err, "dark %q", a.Dark)
		}
		out.Dark = c
	}
	return out, nil
}
