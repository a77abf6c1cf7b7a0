package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/floatsheet/pkg/core/layout"
	"github.com/matzehuels/floatsheet/pkg/errors"
)

func TestNewTrace(t *testing.T) {
	tr := NewTrace(layout.Container{Width: 400, Height: 800}, 200, []float64{10, 20, 30}, 16*time.Millisecond)

	if len(tr.Moves) != 3 {
		t.Fatalf("moves = %d, want 3", len(tr.Moves))
	}
	if tr.Moves[2].AtMS != 48 || tr.Moves[2].DY != 30 {
		t.Errorf("last move = %+v, want {48 30}", tr.Moves[2])
	}
	if got := tr.Release(); got != 48*time.Millisecond {
		t.Errorf("Release() = %v, want 48ms", got)
	}
	if err := tr.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestTraceRelease(t *testing.T) {
	tr := Trace{Moves: []Move{{AtMS: 10, DY: 1}}, ReleaseMS: 200}
	if got := tr.Release(); got != 200*time.Millisecond {
		t.Errorf("Release() = %v, want 200ms", got)
	}
	if got := (Trace{}).Release(); got != 0 {
		t.Errorf("empty Release() = %v, want 0", got)
	}
}

func TestRoundTrip(t *testing.T) {
	want := NewTrace(layout.Container{Width: 390, Height: 844}, 120, []float64{4, -2.5, 18}, 20*time.Millisecond)
	want.ReleaseMS = 90

	var buf bytes.Buffer
	if err := WriteJSON(want, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if got.Container != want.Container || got.Content != want.Content || got.ReleaseMS != want.ReleaseMS {
		t.Errorf("ReadJSON() = %+v, want %+v", got, want)
	}
	for i := range want.Moves {
		if got.Moves[i] != want.Moves[i] {
			t.Errorf("move %d = %+v, want %+v", i, got.Moves[i], want.Moves[i])
		}
	}
}

func TestExportImportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flick.json")
	tr := NewTrace(layout.Container{Width: 400, Height: 800}, 200, []float64{20, 20}, 16*time.Millisecond)

	if err := ExportJSON(tr, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if len(got.Moves) != 2 {
		t.Errorf("moves = %d, want 2", len(got.Moves))
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"malformed", `{"moves": [`, errors.ErrCodeInvalidFormat},
		{"unknown field", `{"container": {"width": 1, "height": 1}, "moves": [{"at_ms": 1, "dy": 1}], "speed": 3}`, errors.ErrCodeInvalidFormat},
		{"no moves", `{"container": {"width": 400, "height": 800}, "moves": []}`, errors.ErrCodeInvalidInput},
		{"zero container", `{"container": {"width": 0, "height": 800}, "moves": [{"at_ms": 1, "dy": 1}]}`, errors.ErrCodeInvalidInput},
		{"negative content", `{"container": {"width": 400, "height": 800}, "content": -1, "moves": [{"at_ms": 1, "dy": 1}]}`, errors.ErrCodeInvalidInput},
		{"time goes back", `{"container": {"width": 400, "height": 800}, "moves": [{"at_ms": 20, "dy": 1}, {"at_ms": 10, "dy": 1}]}`, errors.ErrCodeInvalidInput},
		{"early release", `{"container": {"width": 400, "height": 800}, "moves": [{"at_ms": 20, "dy": 1}], "release_ms": 5}`, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestImportJSONMissing(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON() error = %v, want FILE_NOT_FOUND", err)
	}
}
