package cli

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/floatsheet/pkg/config"
	"github.com/matzehuels/floatsheet/pkg/core/drag"
	"github.com/matzehuels/floatsheet/pkg/core/fusion"
	"github.com/matzehuels/floatsheet/pkg/core/layout"
	"github.com/matzehuels/floatsheet/pkg/errors"
	sheetio "github.com/matzehuels/floatsheet/pkg/io"
	"github.com/matzehuels/floatsheet/pkg/observability"
	"github.com/matzehuels/floatsheet/pkg/presentation"
)

// frameInterval paces animation ticks while the sheet is moving.
const frameInterval = time.Second / 60

// wheelStep is how far one wheel notch scrolls, in points.
const wheelStep = 3 * pointsPerRow

// Host colors behind the sheet, per appearance.
var (
	hostBackground = presentation.AdaptiveColor{
		Light: presentation.MustParseColor("#F2F2F7"),
		Dark:  presentation.MustParseColor("#1C1C1E"),
	}
	hostForeground = presentation.AdaptiveColor{
		Light: presentation.MustParseColor("#8E8E93"),
		Dark:  presentation.MustParseColor("#636366"),
	}
	panelBackground = presentation.AdaptiveColor{
		Light: presentation.MustParseColor("#FFFFFF"),
		Dark:  presentation.MustParseColor("#2C2C2E"),
	}
	panelForeground = presentation.AdaptiveColor{
		Light: presentation.MustParseColor("#1C1C1E"),
		Dark:  presentation.MustParseColor("#F2F2F7"),
	}
)

// =============================================================================
// Messages
// =============================================================================

type frameMsg time.Time

// configMsg carries a reloaded sheet file from the watcher.
type configMsg struct {
	file *config.File
	err  error
}

type pointer int

const (
	pointerNone pointer = iota
	pointerPanel
	pointerDim
)

// =============================================================================
// sheetModel - Interactive sheet host
// =============================================================================

// demoOptions are the flags of the demo command.
type demoOptions struct {
	configPath    string
	watch         bool
	items         int
	fullBleed     bool
	fit           bool
	noDragDismiss bool
	noTapDismiss  bool
	dark          bool
	sensitivity   float64
	logFile       string
	record        string
}

// sheetModel hosts one floating sheet in the terminal. Terminal cells are
// converted to layout points at pointsPerColumn × pointsPerRow; row 0 is a
// status line, so the container starts at row 1.
type sheetModel struct {
	ctx       context.Context
	logger    *log.Logger
	opts      demoOptions
	file      *config.File
	now       func() time.Time
	presenter *presentation.Presenter

	sheet  *presentation.Coordinator
	region *fusion.Region
	vp     viewport.Model

	width, height int
	items         int

	session    *drag.Session
	pointer    pointer
	scrollDrag bool
	last       layout.Point

	ticking  bool
	status   string
	decision string

	// The panel drag in progress and the last one completed, for --record.
	recStart  time.Time
	recMoves  []sheetio.Move
	lastTrace *sheetio.Trace
}

// newSheetModel builds the host. The sheet is presented on the first
// WindowSizeMsg, once the container geometry is known.
func newSheetModel(ctx context.Context, logger *log.Logger, opts demoOptions, file *config.File, now func() time.Time) *sheetModel {
	if now == nil {
		now = time.Now
	}
	m := &sheetModel{
		ctx:     ctx,
		logger:  logger,
		opts:    opts,
		file:    file,
		now:     now,
		items:   opts.items,
		session: drag.NewSession(),
		vp:      viewport.New(0, 0),
	}
	if file != nil && file.Items > 0 && opts.items <= 0 {
		m.items = file.Items
	}
	if m.items <= 0 {
		m.items = defaultItems
	}
	sensitivity := opts.sensitivity
	if file != nil && file.Sensitivity != nil {
		sensitivity = *file.Sensitivity
	}
	m.presenter = presentation.NewPresenter(
		presentation.WithLogger(logger),
		presentation.WithClock(now),
		presentation.WithContext(ctx),
		presentation.WithSensitivity(sensitivity),
		presentation.WithDarkAppearance(opts.dark),
	)
	m.region = fusion.NewRegion(layout.Rect{}, m.contentHeight())
	return m
}

const defaultItems = 24

func (m *sheetModel) present() {
	if m.sheet != nil {
		m.sheet.Teardown()
	}
	m.region.SetContentOffset(0)
	m.decision = ""
	m.status = "presenting"
	m.sheet = m.presenter.Present(presentation.PresentableFunc(m.sheetConfig), m.container(), func() {
		m.status = "presented"
	})
	m.syncRegion()
}

// sheetConfig is re-read by the coordinator on every layout pass: flags
// override the file, and the file overrides the defaults.
func (m *sheetModel) sheetConfig() presentation.Config {
	var cfg presentation.Config
	if m.file != nil {
		c, err := m.file.PanelConfig(m.measurer())
		if err != nil {
			m.logger.Warn("config ignored", "err", err)
		} else {
			cfg = c
		}
	}
	if m.opts.fit {
		cfg.Height = layout.Fit(m.measurer())
	}
	if m.opts.fullBleed {
		cfg.FullBleed = presentation.Bool(true)
	}
	if m.opts.noDragDismiss {
		cfg.AllowsDragToDismiss = presentation.Bool(false)
	}
	if m.opts.noTapDismiss {
		cfg.AllowsTapToDismiss = presentation.Bool(false)
	}
	cfg.Scrollable = m.region
	cfg.WillDismiss = func() { m.status = "dismissing" }
	cfg.DidDismiss = func() { m.status = "dismissed, press p to present again" }
	return cfg
}

// measurer reports the rendered content height for the fit strategy.
func (m *sheetModel) measurer() layout.Measurer {
	return layout.MeasureFunc(func(c layout.Constraints) float64 {
		cols := int(c.Width / pointsPerColumn)
		return float64(lipgloss.Height(m.content(cols))) * pointsPerRow
	})
}

func (m *sheetModel) contentHeight() float64 {
	return float64(m.items) * pointsPerRow
}

func (m *sheetModel) container() layout.Container {
	rows := m.height - 1
	if rows < 0 {
		rows = 0
	}
	return layout.Container{
		Width:  float64(m.width) * pointsPerColumn,
		Height: float64(rows) * pointsPerRow,
	}
}

// syncRegion keeps the scroll region's viewport on the panel's content
// area. Full-bleed sheets have it set by the coordinator already.
func (m *sheetModel) syncRegion() {
	m.region.SetFrame(m.sheet.Snapshot().ContentFrame)
}

// point converts a terminal cell to container coordinates.
func (m *sheetModel) point(x, y int) layout.Point {
	return layout.Point{
		X: (float64(x) + 0.5) * pointsPerColumn,
		Y: (float64(y-1) + 0.5) * pointsPerRow,
	}
}

// overContent reports whether p lies on the panel's scrollable area.
func (m *sheetModel) overContent(p layout.Point) bool {
	s := m.sheet.Snapshot()
	f := s.ContentFrame
	f.X += s.Frame.X
	f.Y += s.Frame.Y
	return f.Contains(p)
}

func (m *sheetModel) Init() tea.Cmd {
	return nil
}

func (m *sheetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if m.handleKey(msg.String()) {
			return m, tea.Quit
		}
	case tea.MouseMsg:
		if m.sheet != nil {
			m.handleMouse(msg)
		}
	case frameMsg:
		m.ticking = false
		if m.sheet != nil {
			m.sheet.Tick(m.now())
		}
	case configMsg:
		m.applyConfig(msg)
	}
	return m, m.schedule()
}

func (m *sheetModel) resize(width, height int) {
	m.width, m.height = width, height
	if m.sheet == nil {
		m.present()
		return
	}
	m.sheet.SetContainer(m.container())
	m.syncRegion()
}

// handleKey reports whether the program should quit.
func (m *sheetModel) handleKey(key string) bool {
	switch key {
	case "q", "ctrl+c", "esc":
		if m.sheet != nil {
			m.sheet.Teardown()
		}
		return true
	}
	if m.sheet == nil {
		return false
	}
	switch key {
	case "p":
		if m.sheet.Phase() == presentation.PhaseDismissed {
			m.present()
		}
	case "d":
		m.sheet.Dismiss()
	case "+", "=":
		m.setItems(m.items + 4)
	case "-", "_":
		m.setItems(m.items - 4)
	}
	return false
}

// schedule starts the frame loop if the sheet has something to animate.
func (m *sheetModel) schedule() tea.Cmd {
	if m.sheet == nil || m.ticking || !m.sheet.NeedsFrame() {
		return nil
	}
	m.ticking = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// setItems changes the content length and lets the sheet grow or shrink
// to fit it.
func (m *sheetModel) setItems(n int) {
	if n < 1 {
		n = 1
	}
	m.items = n
	m.region.SetContentHeight(m.contentHeight())
	m.sheet.PerformLayout(true)
	m.syncRegion()
	m.logger.Debug("content changed", "items", n)
}

func (m *sheetModel) applyConfig(msg configMsg) {
	if msg.err != nil {
		m.status = "config: " + errors.UserMessage(msg.err)
		return
	}
	m.file = msg.file
	if m.file.Items > 0 && m.file.Items != m.items {
		m.items = m.file.Items
		m.region.SetContentHeight(m.contentHeight())
	}
	m.status = "config reloaded"
	if m.sheet == nil {
		return
	}
	m.sheet.PerformLayout(true)
	m.syncRegion()
}

func (m *sheetModel) handleMouse(msg tea.MouseMsg) {
	now := m.now()
	loc := m.point(msg.X, msg.Y)

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if msg.Action != tea.MouseActionPress || !m.overContent(loc) {
			return
		}
		dy := wheelStep
		if msg.Button == tea.MouseButtonWheelUp {
			dy = -dy
		}
		m.region.ScrollBy(dy)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.last = loc
		if !m.sheet.Snapshot().Frame.Contains(loc) {
			m.pointer = pointerDim
			return
		}
		m.pointer = pointerPanel
		if m.overContent(loc) {
			m.region.BeginDrag()
			m.scrollDrag = true
		}
		m.session.Begin(loc, now)
		m.sheet.HandleGesture(m.session)
		m.recStart, m.recMoves = now, nil

	case msg.Action == tea.MouseActionMotion && m.pointer == pointerPanel:
		dy := loc.Y - m.last.Y
		if dy == 0 {
			return
		}
		m.last = loc
		if m.scrollDrag {
			m.region.DragBy(dy)
		}
		m.session.Move(dy, loc, now)
		m.sheet.HandleGesture(m.session)
		m.recMoves = append(m.recMoves, sheetio.Move{AtMS: now.Sub(m.recStart).Milliseconds(), DY: dy})

	case msg.Action == tea.MouseActionRelease:
		switch m.pointer {
		case pointerPanel:
			m.session.End(now)
			m.sheet.HandleGesture(m.session)
			if m.scrollDrag {
				m.region.EndDrag(m.session.Velocity())
			}
			m.keepTrace(now)
		case pointerDim:
			if !m.sheet.Snapshot().Frame.Contains(loc) && !m.sheet.TapDimming() {
				m.status = "tap to dismiss is off"
			}
		}
		m.pointer = pointerNone
		m.scrollDrag = false
	}
}

// keepTrace stores the drag that just ended as a replayable trace.
func (m *sheetModel) keepTrace(end time.Time) {
	if len(m.recMoves) == 0 {
		return
	}
	c := m.container()
	m.lastTrace = &sheetio.Trace{
		Container: sheetio.Size{Width: c.Width, Height: c.Height},
		Content:   m.contentHeight(),
		Moves:     m.recMoves,
		ReleaseMS: end.Sub(m.recStart).Milliseconds(),
	}
	m.recMoves = nil
}

// =============================================================================
// Rendering
// =============================================================================

func (m *sheetModel) View() string {
	if m.sheet == nil || m.width <= 0 || m.height <= 0 {
		return ""
	}
	snap := m.sheet.Snapshot()
	out := m.statusLine(snap) + "\n" + m.hostView(snap)
	if !snap.Visible() {
		return out
	}

	x := int(math.Round(snap.Frame.X / pointsPerColumn))
	y := int(math.Round(snap.Frame.Y/pointsPerRow)) + 1
	return overlayAt(out, m.panelView(snap), x, y, m.width, m.height)
}

func (m *sheetModel) statusLine(snap presentation.Snapshot) string {
	parts := []string{
		StyleTitle.Render(appName),
		StyleDim.Render(snap.Phase.String()),
		StyleDim.Render("drag " + snap.DragState.String()),
		StyleDim.Render("scroll " + snap.ScrollMode.String()),
		StyleNumber.Render(fmt.Sprintf("%.0fpt", m.region.ContentOffset())),
	}
	if m.decision != "" {
		parts = append(parts, StyleHighlight.Render(m.decision))
	}
	if m.status != "" {
		parts = append(parts, StyleValue.Render(m.status))
	}
	parts = append(parts, StyleDim.Render("+/- content  d dismiss  p present  q quit"))
	return ansiTruncate(strings.Join(parts, StyleDim.Render(" · ")), m.width)
}

// hostView draws the screen behind the sheet, blended toward the dimming
// color by the current dim alpha.
func (m *sheetModel) hostView(snap presentation.Snapshot) string {
	bg := hostBackground.Resolve(m.opts.dark).Color
	fg := hostForeground.Resolve(m.opts.dark).Color
	alpha := snap.DimAlpha
	if !snap.Visible() {
		alpha = 0
	}
	style := lipgloss.NewStyle().
		Background(lipglossColor(snap.DimColor.Over(bg, alpha))).
		Foreground(lipglossColor(snap.DimColor.Over(fg, alpha)))

	const pattern = "floatsheet    "
	rows := m.height - 1
	lines := make([]string, rows)
	for i := range lines {
		offset := (i * 3) % len(pattern)
		text := strings.Repeat(pattern, m.width/len(pattern)+2)[offset:]
		lines[i] = style.Render(ansiTruncate(text, m.width))
	}
	return strings.Join(lines, "\n")
}

// panelView draws the panel: a bordered box with the handle at the top and
// the scrolled content below it.
func (m *sheetModel) panelView(snap presentation.Snapshot) string {
	w := int(math.Round(snap.Frame.Width / pointsPerColumn))
	h := int(math.Round(snap.Frame.Height / pointsPerRow))
	if w < 3 || h < 3 {
		return ""
	}
	innerW, innerH := w-2, h-2

	bg := lipglossColor(panelBackground.Resolve(m.opts.dark).Color)
	fg := lipglossColor(panelForeground.Resolve(m.opts.dark).Color)
	border := lipgloss.NormalBorder()
	if snap.CornerRadius > 0 {
		border = lipgloss.RoundedBorder()
	}

	handleRows := int(math.Round(snap.ContentInsetTop/pointsPerRow)) - 1
	if handleRows < 1 {
		handleRows = 1
	}
	if handleRows > innerH {
		handleRows = innerH
	}
	grip := int(math.Round(snap.Handle.Size.Width / pointsPerColumn))
	if grip > innerW {
		grip = innerW
	}
	handle := make([]string, handleRows)
	handle[handleRows/2] = lipgloss.NewStyle().
		Foreground(lipglossColor(snap.HandleColor.Color)).
		Render(strings.Repeat("━", grip))
	handleBlock := lipgloss.PlaceHorizontal(innerW, lipgloss.Center, strings.Join(handle, "\n"))

	m.vp.Width = innerW
	m.vp.Height = innerH - handleRows
	m.vp.SetContent(m.content(innerW))
	m.vp.SetYOffset(int(math.Round(math.Max(m.region.ContentOffset(), 0) / pointsPerRow)))

	body := handleBlock
	if m.vp.Height > 0 {
		body += "\n" + m.vp.View()
	}
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(lipglossColor(snap.HandleColor.Color)).
		Background(bg).
		Foreground(fg).
		Width(innerW).
		Height(innerH).
		MaxHeight(h).
		Render(body)
}

// content is the sheet's scrollable body, cols cells wide.
func (m *sheetModel) content(cols int) string {
	lines := make([]string, m.items)
	for i := range lines {
		lines[i] = ansiTruncate(fmt.Sprintf("  ● Row %02d", i+1), cols)
	}
	return strings.Join(lines, "\n")
}

func lipglossColor(c colorful.Color) lipgloss.Color {
	return lipgloss.Color(c.Clamped().Hex())
}

// =============================================================================
// Observability
// =============================================================================

// statusHooks mirrors sheet events into the status line and the log.
type statusHooks struct {
	observability.NoopSheetHooks
	m *sheetModel
}

func (h statusHooks) OnRelease(_ context.Context, _ string, velocity float64, decision string) {
	h.m.decision = fmt.Sprintf("%s @ %.0fpt/s", decision, velocity)
}

func (h statusHooks) OnDismiss(_ context.Context, id string, cause string, shown time.Duration) {
	h.m.logger.Info("sheet dismissed", "sheet", id[:8], "cause", cause, "shown", shown.Round(time.Millisecond))
}
