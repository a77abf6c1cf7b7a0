package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/floatsheet/pkg/cache"
	"github.com/matzehuels/floatsheet/pkg/core/drag"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	want := []string{"demo", "layout", "simulate", "states", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.Use != appName {
		t.Errorf("Use = %q, want %q", root.Use, appName)
	}
}

func TestCompletion(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "__start_floatsheet"},
		{"zsh", "#compdef floatsheet"},
		{"fish", "complete -c floatsheet"},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			root := New(&bytes.Buffer{}, LogInfo).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"completion", tt.shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("%s script missing %q", tt.shell, tt.want)
			}
		})
	}

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"completion", "powershell"})
	if err := root.Execute(); err == nil {
		t.Error("unsupported shell should fail")
	}
}

func TestRootCommandRunsLayout(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"layout", "--width", "400", "--height", "800", "--content", "200"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(out.String(), "x=16 y=568 w=368 h=224") {
		t.Errorf("output missing frame:\n%s", out.String())
	}
}

func TestDemoWatchNeedsConfig(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"demo", "--watch"})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "--config") {
		t.Errorf("Execute() error = %v, want --config hint", err)
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.dot")
	if err := writeFile([]byte("digraph {}"), path); err != nil {
		t.Fatalf("writeFile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "digraph {}" {
		t.Errorf("file = %q", data)
	}

	if err := writeFile([]byte("x"), filepath.Join(t.TempDir(), "missing", "out.dot")); err == nil {
		t.Error("writeFile() into a missing directory should fail")
	}
}

func TestStatesCommandDOT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drag.dot")
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs([]string{"states", "--dot", "-o", path})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "digraph DragController") {
		t.Errorf("DOT output = %q", data)
	}
}

type memCache struct {
	data map[cache.Key][]byte
	puts int
}

func (m *memCache) Get(_ context.Context, key cache.Key) ([]byte, bool, error) {
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memCache) Put(_ context.Context, key cache.Key, data []byte) error {
	m.data[key] = data
	m.puts++
	return nil
}

func (m *memCache) Delete(_ context.Context, key cache.Key) error {
	delete(m.data, key)
	return nil
}

func TestRenderStatesUsesCache(t *testing.T) {
	ctx := context.Background()
	c := &memCache{data: map[cache.Key][]byte{}}
	c.data[cache.NewKey([]byte(drag.ToDOT()), "svg")] = []byte("<svg>cached</svg>")

	svg, cached, err := renderStates(ctx, c)
	if err != nil {
		t.Fatalf("renderStates() error: %v", err)
	}
	if !cached || string(svg) != "<svg>cached</svg>" {
		t.Errorf("renderStates() = %q, cached %v; want the cached entry", svg, cached)
	}
	if c.puts != 0 {
		t.Errorf("cache hit should not write, got %d puts", c.puts)
	}
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()
	if c := openCache(ctx, log.New(io.Discard), true); c != nil {
		t.Errorf("openCache(disabled) = %T, want no cache", c)
	}

	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	t.Setenv("HOME", dir)
	c := openCache(ctx, log.New(io.Discard), false)
	fc, ok := c.(*cache.FileCache)
	if !ok {
		t.Fatalf("openCache() = %T, want *cache.FileCache", c)
	}
	if !strings.HasPrefix(fc.Dir(), dir) {
		t.Errorf("cache dir = %s, want under %s", fc.Dir(), dir)
	}
}
