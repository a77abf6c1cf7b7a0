package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/floatsheet/pkg/config"
	"github.com/matzehuels/floatsheet/pkg/core/drag"
	sheetio "github.com/matzehuels/floatsheet/pkg/io"
	"github.com/matzehuels/floatsheet/pkg/observability"
)

// demoCommand creates the demo command, an interactive sheet host.
func (c *CLI) demoCommand() *cobra.Command {
	opts := demoOptions{sensitivity: drag.DefaultSensitivity}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Present an interactive floating sheet in the terminal",
		Long: `Present an interactive floating sheet in the terminal.

Drag the panel with the mouse to move it; release with a fast downward flick
to dismiss it, or slowly to let it snap back. Scroll the content with the
wheel or by dragging it. Click the dimmed area to dismiss.

With --config the sheet is styled from a TOML or YAML file; add --watch to
re-layout the sheet whenever the file changes.`,
		Example: `  # Default sheet
  floatsheet demo

  # Long scrollable content filling the panel
  floatsheet demo --items 80 --full-bleed

  # Styled from a file, reloaded on save
  floatsheet demo --config sheet.toml --watch --log-file demo.log -v

  # Record a drag, then replay it
  floatsheet demo --record drag.json
  floatsheet simulate --trace drag.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDemo(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "sheet config file (.toml, .yaml)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the config file when it changes")
	cmd.Flags().IntVarP(&opts.items, "items", "n", 0, "number of content rows (default 24, or the config's items)")
	cmd.Flags().BoolVar(&opts.fullBleed, "full-bleed", false, "the scrollable content is the whole panel")
	cmd.Flags().BoolVar(&opts.fit, "fit", false, "size the panel by measuring its content")
	cmd.Flags().BoolVar(&opts.noDragDismiss, "no-drag-dismiss", false, "always snap back on release")
	cmd.Flags().BoolVar(&opts.noTapDismiss, "no-tap-dismiss", false, "ignore taps on the dimmed area")
	cmd.Flags().BoolVar(&opts.dark, "dark", false, "use the dark appearance")
	cmd.Flags().Float64Var(&opts.sensitivity, "sensitivity", opts.sensitivity, "snap sensitivity in [0, 1); higher flicks dismiss more easily")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file (the terminal is in use)")
	cmd.Flags().StringVar(&opts.record, "record", "", "on exit, save the last panel drag as a trace for simulate --trace")

	return cmd
}

// runDemo loads the optional config, runs the bubbletea program, and
// forwards config reloads to it.
func (c *CLI) runDemo(ctx context.Context, opts demoOptions) error {
	if opts.watch && opts.configPath == "" {
		return fmt.Errorf("--watch needs --config")
	}

	logger, closeLog, err := newFileLogger(opts.logFile, c.Logger.GetLevel())
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	var file *config.File
	if opts.configPath != "" {
		file, err = config.Load(ctx, opts.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newSheetModel(ctx, logger, opts, file, nil)
	observability.SetSheetHooks(statusHooks{m: m})
	defer observability.SetSheetHooks(observability.NoopSheetHooks{})

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if opts.watch {
		w, err := config.NewWatcher(opts.configPath)
		if err != nil {
			return fmt.Errorf("watch config: %w", err)
		}
		defer w.Close()
		go w.Run(log.WithContext(ctx, logger), func(f *config.File, err error) {
			p.Send(configMsg{file: f, err: err})
		})
		logger.Info("watching config", "path", opts.configPath)
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run demo: %w", err)
	}
	return saveRecording(m, opts.record)
}

// saveRecording writes the model's last drag to path, if both exist.
func saveRecording(m *sheetModel, path string) error {
	if path == "" {
		return nil
	}
	if m.lastTrace == nil {
		printError("No drag to record")
		return nil
	}
	if err := sheetio.ExportJSON(*m.lastTrace, path); err != nil {
		return fmt.Errorf("save recording: %w", err)
	}
	printSuccess("Recorded %d moves", len(m.lastTrace.Moves))
	printFile(path)
	return nil
}
