package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	rpio "github.com/matzehuels/ratioplot/pkg/io"
	"github.com/matzehuels/ratioplot/pkg/layout"
	"github.com/matzehuels/ratioplot/pkg/pipeline"
	"github.com/matzehuels/ratioplot/pkg/ratioplot"
	"github.com/matzehuels/ratioplot/pkg/render/sink"
)

const (
	splitStep  = 0.05
	marginStep = 0.01
	// chromeRows are the terminal rows taken by the header and footer.
	chromeRows = 3
)

// hideCycle is the order the label-hiding key steps through.
var hideCycle = []string{"hideup", "hidelow", "fhideup", "fhidelow", "nohide"}

// viewCommand creates the interactive terminal viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var option, drawOption, style string

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse a comparison plot in the terminal",
		Long: `Open an interactive terminal view of a histogram document.

Keys:
  + / -        zoom the shared x axis in or out
  ← / →        pan
  0            unzoom
  ↑ / ↓        drag the split between the panels
  [ / ]        drag the left margin of the lower panel
  g            toggle gridlines
  b            toggle confidence bands
  h            cycle label hiding
  s            save the current view as SVG
  q            quit`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args[0], option, drawOption, style)
		},
	}

	cmd.Flags().StringVar(&option, "option", "", "comparison option")
	cmd.Flags().StringVar(&drawOption, "draw-option", "", "initial draw option")
	cmd.Flags().StringVar(&style, "style", "", "TOML style file")
	registerPlotCompletions(cmd)

	return cmd
}

func (c *CLI) runView(ctx context.Context, input, option, drawOption, stylePath string) error {
	rp, title, err := c.loadPlot(ctx, input, option, drawOption, stylePath)
	if err != nil {
		return err
	}
	m := newViewModel(rp, title, basePath("", input)+".svg", c.Logger)
	m.drawOpt = drawOption
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// loadPlot parses input and builds its plot without drawing it.
func (c *CLI) loadPlot(ctx context.Context, input, option, drawOption, stylePath string) (*ratioplot.RatioPlot, string, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", input, err)
	}
	style, err := loadStyle(stylePath)
	if err != nil {
		return nil, "", err
	}
	opts := pipeline.Options{
		Input:       data,
		InputFormat: rpio.FormatFromPath(input),
		Option:      option,
		DrawOption:  drawOption,
		Style:       style,
		Logger:      c.Logger,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, "", err
	}
	in, err := pipeline.Parse(ctx, opts)
	if err != nil {
		return nil, "", err
	}
	rp, err := pipeline.NewPlot(in, opts)
	if err != nil {
		return nil, "", err
	}
	title := in.Title
	if title == "" {
		title = filepath.Base(input)
	}
	return rp, title, nil
}

// viewModel is the bubbletea model of the viewer. Keys act on the plot's
// regions the way a host canvas would, so every change flows back through
// the plot's observer hooks.
type viewModel struct {
	plot    *ratioplot.RatioPlot
	title   string
	output  string
	logger  *log.Logger
	drawOpt string

	cols, rows int
	scene      *ratioplot.Scene
	grid       bool
	bands      bool
	hide       int
	status     string
	err        error
}

func newViewModel(rp *ratioplot.RatioPlot, title, output string, logger *log.Logger) viewModel {
	if logger == nil {
		logger = log.Default()
	}
	return viewModel{
		plot:   rp,
		title:  title,
		output: output,
		logger: logger,
		grid:   true,
		bands:  true,
		hide:   len(hideCycle) - 1,
	}
}

func (m viewModel) Init() tea.Cmd { return nil }

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		w, h := surfaceSize(m.cols, m.canvasRows())
		if err := m.plot.SetSurfaceSize(w, h); err != nil {
			m.err = err
			return m, nil
		}
		m.plot.OnRegionResized()
		m.redraw(m.drawOpt)
		m.drawOpt = ""
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m viewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status, m.err = "", nil
	opt := ""

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "+", "=":
		m.zoom(0.5)
	case "-":
		m.zoom(2)
	case "left":
		m.pan(-0.25)
	case "right":
		m.pan(0.25)
	case "0":
		m.plot.OnUnzoomed()
	case "up", "k":
		m.dragSplit(splitStep)
	case "down", "j":
		m.dragSplit(-splitStep)
	case "[":
		m.dragLeftMargin(-marginStep)
	case "]":
		m.dragLeftMargin(marginStep)
	case "g":
		m.grid = !m.grid
		opt = toggle(m.grid, "grid", "nogrid")
	case "b":
		m.bands = !m.bands
		opt = toggle(m.bands, "confint", "noconfint")
	case "h":
		m.hide = (m.hide + 1) % len(hideCycle)
		opt = hideCycle[m.hide]
		m.status = opt
	case "s":
		m.save()
	default:
		return m, nil
	}
	m.redraw(opt)
	return m, nil
}

// zoom scales the visible x span about its centre.
func (m *viewModel) zoom(factor float64) {
	vis := m.plot.XAxis().Visible
	mid, half := (vis.Min+vis.Max)/2, vis.Span()*factor/2
	m.plot.UpperRegion().SetXRange(layout.Range{Min: mid - half, Max: mid + half})
}

// pan shifts the visible x range by a fraction of its span, stopping at
// the full range.
func (m *viewModel) pan(frac float64) {
	x := m.plot.XAxis()
	vis, full := x.Visible, x.Full
	d := vis.Span() * frac
	d = max(d, full.Min-vis.Min)
	d = min(d, full.Max-vis.Max)
	m.plot.UpperRegion().SetXRange(layout.Range{Min: vis.Min + d, Max: vis.Max + d})
}

// dragSplit moves the shared edge between the panels as a mouse drag on
// the upper region's bottom edge would.
func (m *viewModel) dragSplit(d float64) {
	up := m.plot.UpperRegion()
	b := up.Bounds()
	b.Bottom = m.plot.Geometry().ClampSplit(b.Bottom + d)
	up.SetBounds(b)
}

func (m *viewModel) dragLeftMargin(d float64) {
	low := m.plot.LowerRegion()
	mg := low.Margins()
	mg.Left += d
	if err := low.SetMargins(mg); err != nil {
		m.err = err
	}
}

func (m *viewModel) save() {
	if m.scene == nil {
		return
	}
	if err := os.WriteFile(m.output, sink.RenderSVG(m.scene), 0o644); err != nil {
		m.err = err
		return
	}
	m.status = "saved " + m.output
	m.logger.Debug("saved view", "path", m.output)
}

func (m *viewModel) redraw(opt string) {
	scene, err := m.plot.Draw(opt)
	if err != nil {
		m.err = err
		return
	}
	scene.Title = m.title
	m.scene = scene
}

func (m viewModel) canvasRows() int { return max(m.rows-chromeRows, 1) }

func (m viewModel) View() string {
	if m.cols == 0 {
		return "loading..."
	}

	var b strings.Builder
	x := m.plot.XAxis().Visible
	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s  x [%.4g, %.4g]  split %.2f", m.plot.Mode(), x.Min, x.Max, m.plot.SplitFraction())))
	b.WriteByte('\n')

	if m.scene != nil {
		cv := newCanvas(m.cols, m.canvasRows())
		cv.drawScene(m.scene)
		b.WriteString(cv.String())
	}
	b.WriteByte('\n')

	b.WriteString(StyleDim.Render("+/- zoom  ←/→ pan  0 unzoom  ↑/↓ split  [/] margin  g grid  b bands  h labels  s save  q quit"))
	b.WriteByte('\n')
	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
	case m.status != "":
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + m.status)
	}
	return b.String()
}

func toggle(on bool, yes, no string) string {
	if on {
		return yes
	}
	return no
}
