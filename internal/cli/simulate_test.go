package cli

import (
	"bytes"
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/floatsheet/pkg/core/drag"
	"github.com/matzehuels/floatsheet/pkg/core/layout"
	"github.com/matzehuels/floatsheet/pkg/errors"
	sheetio "github.com/matzehuels/floatsheet/pkg/io"
	"github.com/matzehuels/floatsheet/pkg/presentation"
)

func TestParseDeltas(t *testing.T) {
	tests := []struct {
		in      string
		want    []float64
		wantErr bool
	}{
		{"", nil, false},
		{"   ", nil, false},
		{"10", []float64{10}, false},
		{"10,-4, 2.5", []float64{10, -4, 2.5}, false},
		{"10,,4", nil, true},
		{"ten", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDeltas(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("parseDeltas(%q) error = %v, want INVALID_INPUT", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDeltas(%q) error: %v", tt.in, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseDeltas(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseDeltas(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFlick(t *testing.T) {
	if got := flick(0, 16*time.Millisecond); got != nil {
		t.Errorf("flick(0) = %v, want nil", got)
	}

	moves := flick(1000, 20*time.Millisecond)
	if len(moves) != 6 {
		t.Fatalf("len(flick) = %d, want 6", len(moves))
	}
	for _, dy := range moves {
		if math.Abs(dy-20) > 1e-9 {
			t.Errorf("move = %v, want 20", dy)
		}
	}
}

func TestSimulate(t *testing.T) {
	container := layout.Container{Width: 400, Height: 800}
	interval := 16 * time.Millisecond

	tests := []struct {
		name         string
		allowDismiss bool
		deltas       []float64
		interval     time.Duration
		wantDecision string
		wantFinal    presentation.Phase
	}{
		{
			name:         "fast flick dismisses",
			allowDismiss: true,
			deltas:       flick(1200, interval),
			interval:     interval,
			wantDecision: "dismiss",
			wantFinal:    presentation.PhaseDismissed,
		},
		{
			name:         "slow drag snaps back",
			allowDismiss: true,
			deltas:       []float64{10, 10, 10, 10, 10, 10},
			interval:     50 * time.Millisecond,
			wantDecision: "snap",
			wantFinal:    presentation.PhasePresented,
		},
		{
			name:         "flick without drag to dismiss snaps back",
			allowDismiss: false,
			deltas:       flick(1200, interval),
			interval:     interval,
			wantDecision: "snap",
			wantFinal:    presentation.PhasePresented,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := presentation.Config{
				Height:              layout.Fixed(200),
				AllowsDragToDismiss: presentation.Bool(tt.allowDismiss),
			}
			res := simulate(cfg, sheetio.NewTrace(container, 200, tt.deltas, tt.interval), drag.DefaultSensitivity)

			if res.anchor != 568 {
				t.Errorf("anchor = %v, want 568", res.anchor)
			}
			if res.decision != tt.wantDecision {
				t.Errorf("decision = %s, want %s (velocity %.0f)", res.decision, tt.wantDecision, res.velocity)
			}
			if res.final != tt.wantFinal {
				t.Errorf("final phase = %s, want %s", res.final, tt.wantFinal)
			}
			if tt.wantFinal == presentation.PhasePresented && math.Abs(res.finalOrigin-res.anchor) > 0.5 {
				t.Errorf("final origin = %v, want anchor %v", res.finalOrigin, res.anchor)
			}
			if len(res.steps) != len(tt.deltas)+2 {
				t.Errorf("steps = %d, want %d", len(res.steps), len(tt.deltas)+2)
			}
		})
	}
}

func TestSimulateFollowsPointer(t *testing.T) {
	cfg := presentation.Config{Height: layout.Fixed(200)}
	tr := sheetio.NewTrace(layout.Container{Width: 400, Height: 800}, 200, []float64{30}, 200*time.Millisecond)
	res := simulate(cfg, tr, drag.DefaultSensitivity)

	moved := res.steps[1]
	if moved.origin != res.anchor+30 {
		t.Errorf("origin after move = %v, want %v", moved.origin, res.anchor+30)
	}
	if moved.alpha >= 1 || moved.alpha <= 0 {
		t.Errorf("dim alpha after move = %v, want in (0, 1)", moved.alpha)
	}
}

func TestRunSimulate(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	var out bytes.Buffer

	opts := simulateOptions{
		width: 400, height: 800, content: 200,
		velocity:    1200,
		interval:    16 * time.Millisecond,
		sensitivity: drag.DefaultSensitivity,
	}
	if err := c.runSimulate(context.Background(), &out, opts); err != nil {
		t.Fatalf("runSimulate() error: %v", err)
	}
	if !strings.Contains(out.String(), "dismiss") {
		t.Errorf("output missing decision:\n%s", out.String())
	}
}

func TestRunSimulateInvalid(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	base := simulateOptions{width: 400, height: 800, content: 200, interval: 16 * time.Millisecond, drag: "10"}

	tests := []struct {
		name   string
		modify func(*simulateOptions)
	}{
		{"nothing to do", func(o *simulateOptions) { o.drag = "" }},
		{"bad sensitivity", func(o *simulateOptions) { o.sensitivity = 1 }},
		{"zero interval", func(o *simulateOptions) { o.interval = 0 }},
		{"bad delta", func(o *simulateOptions) { o.drag = "x" }},
		{"zero height", func(o *simulateOptions) { o.height = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := base
			tt.modify(&opts)
			if err := c.runSimulate(context.Background(), &bytes.Buffer{}, opts); err == nil {
				t.Error("runSimulate() expected error")
			}
		})
	}
}

func TestRunSimulateTraceRoundTrip(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	path := filepath.Join(t.TempDir(), "flick.json")

	opts := simulateOptions{
		width: 400, height: 800, content: 200,
		velocity:    1200,
		interval:    16 * time.Millisecond,
		sensitivity: drag.DefaultSensitivity,
		saveTrace:   path,
	}
	if err := c.runSimulate(context.Background(), &bytes.Buffer{}, opts); err != nil {
		t.Fatalf("runSimulate() error: %v", err)
	}

	tr, err := sheetio.ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if len(tr.Moves) != len(flick(1200, 16*time.Millisecond)) {
		t.Errorf("saved moves = %d", len(tr.Moves))
	}

	var out bytes.Buffer
	replay := simulateOptions{tracePath: path, sensitivity: drag.DefaultSensitivity}
	if err := c.runSimulate(context.Background(), &out, replay); err != nil {
		t.Fatalf("replay error: %v", err)
	}
	if !strings.Contains(out.String(), "dismiss") {
		t.Errorf("replayed flick should dismiss:\n%s", out.String())
	}
}

func TestRunSimulateMissingTrace(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	opts := simulateOptions{tracePath: filepath.Join(t.TempDir(), "none.json"), sensitivity: drag.DefaultSensitivity}
	err := c.runSimulate(context.Background(), &bytes.Buffer{}, opts)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("runSimulate() error = %v, want FILE_NOT_FOUND", err)
	}
}
