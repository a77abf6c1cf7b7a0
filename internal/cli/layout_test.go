package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/floatsheet/pkg/core/layout"
	"github.com/matzehuels/floatsheet/pkg/errors"
	"github.com/matzehuels/floatsheet/pkg/presentation"
)

func reportValue(t *testing.T, rows [][]string, key string) string {
	t.Helper()
	for _, r := range rows {
		if r[0] == key {
			return r[1]
		}
	}
	t.Fatalf("row %q missing from report", key)
	return ""
}

func TestLayoutReport(t *testing.T) {
	insets := layout.Insets{Top: 50, Bottom: 30, Leading: 16, Trailing: 16}
	container := layout.Container{Width: 400, Height: 800}

	tests := []struct {
		name       string
		content    float64
		wantAnchor string
		wantFrame  string
		wantHeight string
	}{
		{"fits", 200, "546", "x=16 y=546 w=368 h=224", "fits"},
		{"capped", 1000, "50", "x=16 y=50 w=368 h=720", "capped at top inset"},
		{"empty content", 0, "746", "x=16 y=746 w=368 h=24", "fits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := presentation.Config{Insets: &insets, Height: layout.Fixed(tt.content)}
			rows := layoutReport(cfg, container)

			if got := reportValue(t, rows, "Anchor"); got != tt.wantAnchor {
				t.Errorf("Anchor = %s, want %s", got, tt.wantAnchor)
			}
			if got := reportValue(t, rows, "Frame"); got != tt.wantFrame {
				t.Errorf("Frame = %s, want %s", got, tt.wantFrame)
			}
			if got := reportValue(t, rows, "Height"); got != tt.wantHeight {
				t.Errorf("Height = %s, want %s", got, tt.wantHeight)
			}
			if got := reportValue(t, rows, "Handle area"); got != "24" {
				t.Errorf("Handle area = %s, want 24", got)
			}
		})
	}
}

func TestLayoutReportDefaultInsets(t *testing.T) {
	cfg := presentation.Config{Height: layout.Fixed(200)}
	rows := layoutReport(cfg, layout.Container{Width: 400, Height: 800})

	// 800 - 8 bottom - 224 total
	if got := reportValue(t, rows, "Anchor"); got != "568" {
		t.Errorf("Anchor = %s, want 568", got)
	}
}

func TestRunLayout(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	var out bytes.Buffer

	err := c.runLayout(context.Background(), &out, layoutOptions{width: 400, height: 800, content: 200})
	if err != nil {
		t.Fatalf("runLayout() error: %v", err)
	}
	if !strings.Contains(out.String(), "568") {
		t.Errorf("output missing anchor:\n%s", out.String())
	}
}

func TestRunLayoutWithConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.toml")
	data := "[insets]\ntop = 50.0\nbottom = 30.0\nleading = 16.0\ntrailing = 16.0\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(&bytes.Buffer{}, LogInfo)
	var out bytes.Buffer
	err := c.runLayout(context.Background(), &out, layoutOptions{width: 400, height: 800, content: 200, configPath: path})
	if err != nil {
		t.Fatalf("runLayout() error: %v", err)
	}
	if !strings.Contains(out.String(), "x=16 y=546 w=368 h=224") {
		t.Errorf("output missing frame:\n%s", out.String())
	}
}

func TestRunLayoutInvalid(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)

	tests := []struct {
		name string
		opts layoutOptions
		code errors.Code
	}{
		{"zero width", layoutOptions{width: 0, height: 800}, errors.ErrCodeInvalidInput},
		{"negative content", layoutOptions{width: 400, height: 800, content: -1}, errors.ErrCodeInvalidInput},
		{"missing config", layoutOptions{width: 400, height: 800, configPath: "/nonexistent/sheet.toml"}, errors.ErrCodeFileNotFound},
		{"bad extension", layoutOptions{width: 400, height: 800, configPath: "sheet.json"}, errors.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.runLayout(context.Background(), &bytes.Buffer{}, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("runLayout() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{
		546:   "546",
		0:     "0",
		12.5:  "12.5",
		-3.25: "-3.25",
	}
	for in, want := range tests {
		if got := num(in); got != want {
			t.Errorf("num(%v) = %q, want %q", in, got, want)
		}
	}
}
