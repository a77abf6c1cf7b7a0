package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/floatsheet/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "floatsheet"

	// Terminal cells are mapped to layout points at a fixed scale so the
	// engine's point-based defaults (insets, handle, thresholds) keep
	// their proportions on screen.
	pointsPerColumn = 4.0
	pointsPerRow    = 8.0
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Floatsheet is a floating bottom sheet engine",
		Long:         `Floatsheet computes, drives and renders floating bottom sheets: inset panels that rise from the bottom of a container, follow drags with rubber banding, and snap back or dismiss on release.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.demoCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.statesCommand())
	root.AddCommand(c.completionCommand())

	return root
}
