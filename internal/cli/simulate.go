package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/floatsheet/pkg/core/drag"
	"github.com/matzehuels/floatsheet/pkg/core/layout"
	"github.com/matzehuels/floatsheet/pkg/errors"
	sheetio "github.com/matzehuels/floatsheet/pkg/io"
	"github.com/matzehuels/floatsheet/pkg/presentation"
)

// maxSettleFrames bounds how long a simulation waits for animations.
const maxSettleFrames = 1000

// simulateOptions are the flags of the simulate command.
type simulateOptions struct {
	width, height float64
	content       float64
	drag          string
	velocity      float64
	interval      time.Duration
	sensitivity   float64
	noDismiss     bool
	tracePath     string
	saveTrace     string
}

// simulateCommand creates the simulate command, which replays a synthetic
// drag against the real sheet coordinator.
func (c *CLI) simulateCommand() *cobra.Command {
	opts := simulateOptions{
		width:       400,
		height:      800,
		content:     200,
		interval:    16 * time.Millisecond,
		sensitivity: drag.DefaultSensitivity,
	}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a drag against a sheet and print the release decision",
		Long: `Replay a drag against a sheet and print the release decision.

The sheet is presented and allowed to settle, then a pointer is pressed on
its handle and moved by each --drag delta, one every --interval. --velocity
appends a steady flick at that speed. The pointer is released after the
last move and the sheet runs until it comes to rest.

--trace replays a gesture recorded by "floatsheet demo --record" instead,
with its own container and content height. --save-trace writes the
gesture that was replayed, so a synthetic drag can be edited and rerun.`,
		Example: `  # Slow drag down by 60pt: snaps back
  floatsheet simulate --drag 10,10,10,10,10,10 --interval 50ms

  # Fast flick: dismisses
  floatsheet simulate --velocity 1200

  # Dragging up meets rubber-band resistance
  floatsheet simulate --drag -20,-20,-20

  # Replay a drag recorded in the demo
  floatsheet simulate --trace drag.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSimulate(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "container width in points")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "container height in points")
	cmd.Flags().Float64Var(&opts.content, "content", opts.content, "fixed content height in points")
	cmd.Flags().StringVar(&opts.drag, "drag", "", "comma-separated vertical deltas in points, positive is down")
	cmd.Flags().Float64Var(&opts.velocity, "velocity", 0, "append a flick at this speed in points per second")
	cmd.Flags().DurationVar(&opts.interval, "interval", opts.interval, "time between pointer moves")
	cmd.Flags().Float64Var(&opts.sensitivity, "sensitivity", opts.sensitivity, "snap sensitivity in [0, 1)")
	cmd.Flags().BoolVar(&opts.noDismiss, "no-dismiss", false, "disallow drag to dismiss")
	cmd.Flags().StringVar(&opts.tracePath, "trace", "", "replay a recorded gesture (.json)")
	cmd.Flags().StringVar(&opts.saveTrace, "save-trace", "", "write the replayed gesture to this file")

	return cmd
}

func (c *CLI) runSimulate(ctx context.Context, w io.Writer, opts simulateOptions) error {
	if err := errors.ValidateSensitivity(opts.sensitivity); err != nil {
		return err
	}
	tr, err := simulationTrace(opts)
	if err != nil {
		return err
	}
	if opts.saveTrace != "" {
		if err := sheetio.ExportJSON(tr, opts.saveTrace); err != nil {
			return fmt.Errorf("save trace: %w", err)
		}
	}

	cfg := presentation.Config{
		Height:              layout.Fixed(tr.Content),
		AllowsDragToDismiss: presentation.Bool(!opts.noDismiss),
	}
	res := simulate(cfg, tr, opts.sensitivity)
	loggerFromContext(ctx).Debug("simulation finished", "steps", len(res.steps), "decision", res.decision)

	rows := make([][]string, len(res.steps))
	for i, s := range res.steps {
		rows[i] = []string{strconv.Itoa(i), s.phase, num(s.delta), fmt.Sprintf("%.1f", s.origin), fmt.Sprintf("%.3f", s.alpha), s.state}
	}
	fmt.Fprintln(w, renderTable([]string{"Step", "Phase", "Δy", "Origin", "Dim", "Drag"}, rows))
	fmt.Fprintf(w, "anchor %s · velocity %.0f pt/s · threshold %.0f pt/s → %s\n",
		num(res.anchor), res.velocity, drag.Threshold(opts.sensitivity), StyleHighlight.Render(res.decision))
	fmt.Fprintf(w, "at rest: %s, origin %.1f\n", res.final, res.finalOrigin)
	return nil
}

// simulationTrace loads the --trace file, or builds a trace from the drag
// and velocity flags.
func simulationTrace(opts simulateOptions) (sheetio.Trace, error) {
	if opts.tracePath != "" {
		tr, err := sheetio.ImportJSON(opts.tracePath)
		if err != nil {
			return sheetio.Trace{}, fmt.Errorf("load trace: %w", err)
		}
		return tr, nil
	}

	if err := errors.ValidatePositive("width", opts.width); err != nil {
		return sheetio.Trace{}, err
	}
	if err := errors.ValidatePositive("height", opts.height); err != nil {
		return sheetio.Trace{}, err
	}
	if err := errors.ValidateDimension("content", opts.content); err != nil {
		return sheetio.Trace{}, err
	}
	if opts.interval < time.Millisecond {
		return sheetio.Trace{}, errors.New(errors.ErrCodeInvalidInput, "interval must be at least 1ms")
	}
	deltas, err := parseDeltas(opts.drag)
	if err != nil {
		return sheetio.Trace{}, err
	}
	deltas = append(deltas, flick(opts.velocity, opts.interval)...)
	if len(deltas) == 0 {
		return sheetio.Trace{}, errors.New(errors.ErrCodeInvalidInput, "nothing to simulate: pass --drag, --velocity or --trace")
	}
	container := layout.Container{Width: opts.width, Height: opts.height}
	return sheetio.NewTrace(container, opts.content, deltas, opts.interval), nil
}

// parseDeltas parses "10,-4,2.5" into point deltas.
func parseDeltas(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid drag delta %q", p)
		}
		out[i] = v
	}
	return out, nil
}

// flick returns enough moves at velocity to fill the velocity window.
func flick(velocity float64, interval time.Duration) []float64 {
	if velocity == 0 {
		return nil
	}
	n := int(drag.VelocityWindow/interval) + 1
	dy := velocity * interval.Seconds()
	out := make([]float64, n)
	for i := range out {
		out[i] = dy
	}
	return out
}

type simStep struct {
	phase  string
	delta  float64
	origin float64
	alpha  float64
	state  string
}

type simResult struct {
	anchor      float64
	steps       []simStep
	velocity    float64
	decision    string
	final       presentation.Phase
	finalOrigin float64
}

// simulate presents cfg in the trace's container on a manual clock,
// settles it, then replays the trace as one pointer session.
func simulate(cfg presentation.Config, tr sheetio.Trace, sensitivity float64) simResult {
	clock := time.Unix(0, 0)
	now := func() time.Time { return clock }
	sheet := presentation.NewPresenter(
		presentation.WithClock(now),
		presentation.WithSensitivity(sensitivity),
	).Present(presentation.Static(cfg), tr.LayoutContainer(), nil)
	defer sheet.Teardown()

	settle := func() {
		for i := 0; i < maxSettleFrames && sheet.NeedsFrame(); i++ {
			clock = clock.Add(frameInterval)
			sheet.Tick(clock)
		}
	}
	settle()

	res := simResult{anchor: sheet.Layout().TopY}
	record := func(phase drag.Phase, dy float64) {
		snap := sheet.Snapshot()
		res.steps = append(res.steps, simStep{
			phase:  phase.String(),
			delta:  dy,
			origin: snap.Frame.Y,
			alpha:  snap.DimAlpha,
			state:  snap.DragState.String(),
		})
	}

	frame := sheet.Snapshot().Frame
	loc := layout.Point{X: frame.X + frame.Width/2, Y: frame.Y + sheet.Snapshot().ContentInsetTop/2}
	down := clock
	session := drag.NewSession()
	session.Begin(loc, down)
	sheet.HandleGesture(session)
	record(drag.PhaseBegan, 0)

	for _, m := range tr.Moves {
		clock = down.Add(m.At())
		loc.Y += m.DY
		session.Move(m.DY, loc, clock)
		sheet.HandleGesture(session)
		record(drag.PhaseChanged, m.DY)
	}

	clock = down.Add(tr.Release())
	session.End(clock)
	sheet.HandleGesture(session)
	record(drag.PhaseEnded, 0)
	res.velocity = session.Velocity()
	res.decision = drag.DecisionSnap.String()
	if sheet.Phase() == presentation.PhaseDismissing {
		res.decision = drag.DecisionDismiss.String()
	}

	settle()
	res.final = sheet.Phase()
	res.finalOrigin = sheet.Snapshot().Frame.Y
	return res
}
