// Package presentation presents a floating bottom sheet over a host
// surface and drives it for as long as it is on screen.
//
// # Presenting
//
// A [Presenter] is a factory configured once with a logger, clock, and
// spring. [Presenter.Present] returns a [Coordinator] for one sheet:
//
//	p := presentation.NewPresenter(presentation.WithLogger(logger))
//	sheet := p.Present(presentation.Static(presentation.Config{
//	    Height: layout.Fixed(200),
//	}), container, nil)
//
// The host then forwards its events to the coordinator:
//
//   - container size changes to [Coordinator.SetContainer]
//   - pointer sessions to [Coordinator.HandleGesture]
//   - taps on the dimmed area to [Coordinator.TapDimming]
//   - frame ticks to [Coordinator.Tick], while [Coordinator.NeedsFrame]
//
// and draws [Coordinator.Snapshot] after each of them.
//
// # Configuration
//
// A sheet describes itself with a [Config]. Unset fields take the values
// of [DefaultConfig], insets default to [DefaultInsets] of the container's
// safe area, and the height defaults to the embedded scrollable's content
// height (or 100 points without one). The config is re-read on every
// layout pass; call [Coordinator.PerformLayout] after changing it.
//
// # Lifecycle
//
// A coordinator moves through [PhasePresenting], [PhasePresented],
// [PhaseDismissing], and [PhaseDismissed]. Config.WillDismiss runs when
// dismissal starts and Config.DidDismiss once the panel has left the
// screen. [Coordinator.Teardown] detaches a sheet immediately without
// firing either.
package presentation
