// Package pkg provides the libraries behind floatsheet, a floating bottom
// sheet engine.
//
// # Overview
//
// A floating sheet is an inset panel that rises from the bottom of a
// container, follows the pointer when dragged down (with rubber banding
// above its resting position), and on release either snaps back or
// dismisses. Content inside the panel may scroll, and the sheet and the
// content share one pointer stream. The pkg directory is organized into:
//
//  1. [core] - Pure interaction logic (layout, drag, scroll fusion, motion)
//  2. [presentation] - Lifecycle orchestration and render snapshots
//  3. [config] - Sheet configuration files (TOML, YAML) with hot reload
//  4. [io] - Recorded drag gestures as JSON
//  5. Support packages: [errors], [observability], [cache], [buildinfo]
//
// # Architecture
//
// Data flows from the host's geometry to a render snapshot:
//
//	Container geometry / content height
//	         ↓
//	    [core/layout] (anchor and frame)
//	         ↓
//	    [core/drag] (pointer session → origin, dim alpha, release decision)
//	         ↓
//	    [core/fusion] (who owns the pointer: sheet or scrollable)
//	         ↓
//	    [presentation] (transitions, callbacks, Snapshot)
//
// The host feeds container changes, pointer sessions and frame ticks to a
// [presentation.Coordinator] and draws whatever [presentation.Snapshot]
// returns. Nothing in these packages draws or blocks; time is whatever
// the host passes to Tick.
//
// # Quick Start
//
//	p := presentation.NewPresenter(presentation.WithLogger(logger))
//	sheet := p.Present(presentation.Static(presentation.Config{
//	    Height: layout.Fixed(200),
//	}), layout.Container{Width: 400, Height: 800}, nil)
//
//	for sheet.NeedsFrame() {
//	    sheet.Tick(time.Now())
//	    draw(sheet.Snapshot())
//	}
//
// # Main Packages
//
// [core/layout] - Anchor and frame calculation, insets, handle metrics and
// height strategies (fixed, intrinsic fit, custom).
//
// [core/drag] - Pointer sessions with velocity estimation, the drag state
// machine (idle, dragging, settling) and the pure release policy.
//
// [core/fusion] - Scroll fusion: halts, tracks or bounces an embedded
// scrollable depending on whether the sheet is anchored.
//
// [core/motion] - Time-driven spring interpolation with interruption.
//
// [presentation] - Presenter and Coordinator: present and dismiss
// transitions, layout passes, dismissal callbacks and colors.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/core/drag/...          # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [core]: https://pkg.go.dev/github.com/matzehuels/floatsheet/pkg/core
// [core/layout]: https://pkg.go.dev/github.com/matzehuels/floatsheet/pkg/core/layout
// [core/drag]: https://pkg.go.dev/github.com/matzehuels/floatsheet/pkg/core/drag
// [core/fusion]: https://pkg.go.dev/github.com/matzehuels/floatsheet/pkg/core/fusion
// [core/motion]: https://pkg.go.dev/github.com/matzehuels/floatsheet/pkg/core/motion
// [presentation]: https://pkg.go.dev/github.com/matzehuels/floatsheet/pkg/presentation
// [presentation.Coordinator]: https://pkg.go.dev/github.com/matzehuels/floatsheet/pkg/presentation#Coordinator
// [presentation.Snapshot]: https://pkg.go.dev/github.com/matzehuels/floatsheet/pkg/presentation#Snapshot
// [config]: https://pkg.go.dev/github.com/matzehuels/floatsheet/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/floatsheet/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/floatsheet/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/floatsheet/pkg/observability
// [cache]: https://pkg.go.dev/github.com/matzehuels/floatsheet/pkg/cache
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/floatsheet/pkg/buildinfo
package pkg
