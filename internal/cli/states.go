package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/floatsheet/pkg/cache"
	"github.com/matzehuels/floatsheet/pkg/core/drag"
)

// statesCommand creates the states command for exporting the drag state
// machine.
func (c *CLI) statesCommand() *cobra.Command {
	var output string
	var dot, noCache bool

	cmd := &cobra.Command{
		Use:   "states",
		Short: "Render the drag state machine (debug tool)",
		Long: `Render the drag controller's state machine.

The controller moves between idle, dragging and settling. The graph is
rendered to SVG with Graphviz, or printed as DOT with --dot. Rendered SVGs
are cached in the user cache directory; --no-cache bypasses it.`,
		Example: `  # SVG to a file
  floatsheet states -o drag.svg

  # DOT to stdout, rendered with the dot command
  floatsheet states --dot | dot -Tpng > drag.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if dot {
				if err := writeFile([]byte(drag.ToDOT()), output); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				if output != "" {
					printSuccess("State machine written as DOT")
					printFile(output)
				}
				return nil
			}

			prog := newProgress(logger)
			spinner := newSpinnerWithContext(ctx, "Rendering state machine...")
			if output != "" {
				spinner.Start()
			}
			store := openCache(ctx, logger, noCache)
			svg, cached, err := renderStates(ctx, store)
			if output != "" {
				if err != nil {
					spinner.StopWithError("Render failed")
				} else {
					spinner.Stop()
				}
			}
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			if cached {
				logger.Debug("state machine from cache")
			}
			prog.done("Rendered state machine")

			if err := writeFile(svg, output); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			if output != "" {
				printSuccess("State machine rendered")
				printKeyValue("Transitions", fmt.Sprintf("%d", len(drag.Transitions())))
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&dot, "dot", false, "print Graphviz DOT instead of SVG")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "render without the SVG cache")

	return cmd
}

// writeFile writes data to path, or to stdout when path is empty.
func writeFile(data []byte, path string) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// renderMaxAge bounds how long a rendered state machine is reused.
const renderMaxAge = 30 * 24 * time.Hour

// renderStates renders the state machine to SVG, reading and filling
// store when there is one. Entries are keyed by the DOT source, so a
// changed machine always renders afresh. It reports whether the result
// came from the cache.
func renderStates(ctx context.Context, store cache.Cache) ([]byte, bool, error) {
	key := cache.NewKey([]byte(drag.ToDOT()), "svg")
	if store != nil {
		if data, ok, err := store.Get(ctx, key); err == nil && ok {
			return data, true, nil
		}
	}
	svg, err := drag.RenderSVG(ctx)
	if err != nil {
		return nil, false, err
	}
	if store != nil {
		if err := store.Put(ctx, key, svg); err != nil {
			loggerFromContext(ctx).Warn("cache write failed", "key", key, "err", err)
		}
	}
	return svg, false, nil
}

// openCache opens the render cache in the user cache directory and
// prunes stale diagrams. It returns nil when caching is disabled or the
// directory is unusable.
func openCache(ctx context.Context, logger *log.Logger, disabled bool) cache.Cache {
	if disabled {
		return nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		logger.Debug("no user cache directory", "err", err)
		return nil
	}
	fc, err := cache.Open(filepath.Join(dir, appName, "states"), cache.WithMaxAge(renderMaxAge))
	if err != nil {
		logger.Debug("cache unavailable", "err", err)
		return nil
	}
	if n, err := fc.Prune(ctx); err != nil {
		logger.Debug("cache prune failed", "dir", fc.Dir(), "err", err)
	} else if n > 0 {
		logger.Debug("pruned stale diagrams", "dir", fc.Dir(), "removed", n)
	}
	return fc
}
