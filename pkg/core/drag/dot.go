package drag

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// Transition is one edge of the controller state machine.
type Transition struct {
	From, To State
	Event    string
}

// Transitions lists every state change the controller can make.
func Transitions() []Transition {
	return []Transition{
		{StateIdle, StateDragging, "began"},
		{StateDragging, StateDragging, "changed"},
		{StateDragging, StateSettling, "released"},
		{StateDragging, StateIdle, "rejected"},
		{StateSettling, StateDragging, "interrupted"},
		{StateSettling, StateIdle, "settled"},
	}
}

// ToDOT returns a Graphviz DOT representation of the state machine.
//
// Render it with the dot command or with RenderSVG.
func ToDOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph DragController {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, fillcolor=white, shape=box, style=\"filled,rounded\"];\n\n")

	for _, s := range []State{StateIdle, StateDragging, StateSettling} {
		fmt.Fprintf(&buf, "  %s [label=%q];\n", s, s)
	}
	buf.WriteString("\n")
	for _, t := range Transitions() {
		fmt.Fprintf(&buf, "  %s -> %s [label=%q];\n", t.From, t.To, t.Event)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders the state machine as an SVG document.
//
// RenderSVG requires the Graphviz library (github.com/goccy/go-graphviz).
// Errors are wrapped with fmt.Errorf and %w.
func RenderSVG(ctx context.Context) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(ToDOT()))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
