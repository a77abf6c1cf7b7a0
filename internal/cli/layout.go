package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/floatsheet/pkg/config"
	"github.com/matzehuels/floatsheet/pkg/core/layout"
	"github.com/matzehuels/floatsheet/pkg/errors"
	"github.com/matzehuels/floatsheet/pkg/presentation"
)

// layoutOptions are the flags of the layout command.
type layoutOptions struct {
	width, height float64
	safe          layout.Insets
	content       float64
	configPath    string
}

// layoutCommand creates the layout command for computing a sheet's resting
// geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOptions{width: 400, height: 800, content: 200}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute the anchor and frame of a sheet",
		Long: `Compute the anchor and frame of a sheet for a container.

The sheet sits on the bottom inset and grows upward by its content height
plus the handle area, but never above the top inset. Insets default to the
container's safe area plus 42pt at the top, 8pt at the bottom and 16pt at
the sides.

--content sets a fixed content height; --config reads the sheet from a file
instead, and its height mode wins when present.`,
		Example: `  floatsheet layout --width 400 --height 800 --content 200
  floatsheet layout --width 390 --height 844 --safe-top 47 --safe-bottom 34 --config sheet.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "container width in points")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "container height in points")
	cmd.Flags().Float64Var(&opts.safe.Top, "safe-top", 0, "top safe area inset")
	cmd.Flags().Float64Var(&opts.safe.Bottom, "safe-bottom", 0, "bottom safe area inset")
	cmd.Flags().Float64Var(&opts.safe.Leading, "safe-leading", 0, "leading safe area inset")
	cmd.Flags().Float64Var(&opts.safe.Trailing, "safe-trailing", 0, "trailing safe area inset")
	cmd.Flags().Float64Var(&opts.content, "content", opts.content, "fixed content height in points")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "sheet config file (.toml, .yaml)")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, w io.Writer, opts layoutOptions) error {
	for name, v := range map[string]float64{"width": opts.width, "height": opts.height} {
		if err := errors.ValidatePositive(name, v); err != nil {
			return err
		}
	}
	if err := errors.ValidateDimension("content", opts.content); err != nil {
		return err
	}

	cfg := presentation.Config{Height: layout.Fixed(opts.content)}
	if opts.configPath != "" {
		f, err := config.Load(ctx, opts.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		fc, err := f.PanelConfig(layout.MeasureFunc(func(layout.Constraints) float64 { return opts.content }))
		if err != nil {
			return err
		}
		if fc.Height == nil {
			fc.Height = cfg.Height
		}
		cfg = fc
	}

	container := layout.Container{Width: opts.width, Height: opts.height, SafeArea: opts.safe}
	rows := layoutReport(cfg, container)
	loggerFromContext(ctx).Debug("layout computed", "container", container, "rows", len(rows))

	fmt.Fprintln(w, renderTable([]string{"", "Value"}, rows))
	return nil
}

// layoutReport presents cfg in container through the real coordinator
// and describes the resting result.
func layoutReport(cfg presentation.Config, container layout.Container) [][]string {
	sheet := presentation.NewPresenter().Present(presentation.Static(cfg), container, nil)
	defer sheet.Teardown()
	l := sheet.Layout()
	snap := sheet.Snapshot()

	state := "fits"
	if !l.Renderable() {
		state = "not renderable"
	} else if l.Frame.Height < snap.ContentInsetTop+cfg.Height.ContentHeight(layout.Constraints{Width: l.Frame.Width, Height: container.Height}) {
		state = "capped at top inset"
	}

	return [][]string{
		{"Container", fmt.Sprintf("%s × %s", num(container.Width), num(container.Height))},
		{"Anchor", num(l.TopY)},
		{"Frame", fmt.Sprintf("x=%s y=%s w=%s h=%s", num(l.Frame.X), num(l.Frame.Y), num(l.Frame.Width), num(l.Frame.Height))},
		{"Handle area", num(snap.ContentInsetTop)},
		{"Content area", num(snap.ContentFrame.Height)},
		{"Height", state},
		{"Corner radius", num(snap.CornerRadius)},
		{"Dim color", snap.DimColor.Hex()},
		{"Handle color", snap.HandleColor.Hex()},
	}
}

// renderTable draws rows with a rounded border and dim header.
func renderTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
			default:
				return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
			}
		}).
		Render()
}

// num formats a point value without trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
