package cli

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayAt composites overlay on top of base with its top-left cell at
// (x, y). Both are line-based grids of the given width and height; rows of
// overlay that fall outside the grid are dropped, and columns left of zero
// are cut from the overlay.
func overlayAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitLines(base)
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	overlayLines := splitLines(overlay)
	overlayWidth := maxLineWidth(overlayLines)

	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		line = padRight(line, overlayWidth)
		col := x
		if col < 0 {
			line = ansi.TruncateLeft(line, -col, "")
			col = 0
		}
		if width > 0 && col+ansi.StringWidth(line) > width {
			line = ansi.Truncate(line, width-col, "")
		}

		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, col, "")
		if w := ansi.StringWidth(left); w < col {
			left += strings.Repeat(" ", col-w)
		}
		right := ansi.TruncateLeft(target, col+ansi.StringWidth(line), "")
		baseLines[row] = left + line + right
	}
	return strings.Join(baseLines, "\n")
}

// splitLines splits a string on newlines, returning at least one element.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// maxLineWidth returns the visual width of the widest line.
func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

// padRight pads s with spaces so its visual width equals width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// ansiTruncate cuts s to width cells, keeping escape sequences intact.
func ansiTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "")
}
