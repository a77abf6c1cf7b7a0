package presentation

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/floatsheet/pkg/core/drag"
	"github.com/matzehuels/floatsheet/pkg/core/fusion"
	"github.com/matzehuels/floatsheet/pkg/core/layout"
	"github.com/matzehuels/floatsheet/pkg/core/motion"
)

// Presenter creates presentations. It holds no per-sheet state, so one
// Presenter can serve any number of sheets.
type Presenter struct {
	ctx         context.Context
	logger      *log.Logger
	clock       func() time.Time
	spring      motion.Spring
	sensitivity float64
	dark        bool
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithLogger sets the logger handed to every presentation.
func WithLogger(l *log.Logger) Option {
	return func(p *Presenter) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClock replaces time.Now as the animation clock.
func WithClock(now func() time.Time) Option {
	return func(p *Presenter) {
		if now != nil {
			p.clock = now
		}
	}
}

// WithSpring sets the spring for transitions and snapping.
func WithSpring(s motion.Spring) Option {
	return func(p *Presenter) { p.spring = s }
}

// WithSensitivity sets the drag snap sensitivity.
func WithSensitivity(s float64) Option {
	return func(p *Presenter) { p.sensitivity = s }
}

// WithDarkAppearance selects the dark variant of adaptive colors.
func WithDarkAppearance(dark bool) Option {
	return func(p *Presenter) { p.dark = dark }
}

// WithContext sets the context passed to observability hooks.
func WithContext(ctx context.Context) Option {
	return func(p *Presenter) {
		if ctx != nil {
			p.ctx = ctx
		}
	}
}

// NewPresenter returns a presenter with the given options.
func NewPresenter(opts ...Option) *Presenter {
	p := &Presenter{
		ctx:         context.Background(),
		logger:      log.New(io.Discard),
		clock:       time.Now,
		spring:      motion.DefaultSpring,
		sensitivity: drag.DefaultSensitivity,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Present attaches src to container and starts the presentation
// transition: the panel rises from the container bottom to its anchor
// while the dimming fades in. completion runs once the panel is at rest,
// and not at all if the transition is interrupted.
func (p *Presenter) Present(src Presentable, container layout.Container, completion func()) *Coordinator {
	if src == nil {
		src = Static(Config{})
	}
	c := &Coordinator{
		id:         uuid.New(),
		src:        src,
		ctx:        p.ctx,
		clock:      p.clock,
		dark:       p.dark,
		anim:       motion.NewAnimator(p.spring),
		completion: completion,
	}
	c.logger = p.logger.With("sheet", c.ShortID())

	c.drag = drag.NewController(&dragSurface{c: c},
		drag.WithSensitivity(p.sensitivity),
		drag.WithLogger(c.logger),
	)
	c.drag.OnRelease(c.released)
	c.fusion = fusion.NewCoordinator(&fusionSurface{c: c},
		fusion.WithLogger(c.logger),
		fusion.WithModeHook(c.arbitrated),
	)

	c.SetContainer(container)
	c.present()
	return c
}
