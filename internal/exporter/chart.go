package exporter

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"storeinsight/internal/config"
	apperrors "storeinsight/internal/errors"
	"storeinsight/pkg/contracts/domain"
)

// Figure sizes
const (
	wideWidth   = 10 * vg.Inch
	wideHeight  = 6 * vg.Inch
	squareSide  = 8 * vg.Inch
	twinMargin  = 0.9 * vg.Inch
	pieStartDeg = 140
)

// ChartWriter renders chart specs to PNG files in the output directory
type ChartWriter struct {
	paths  *config.Paths
	theme  Theme
	dpi    int
	logger *slog.Logger
}

// NewChartWriter creates a chart writer. A dpi of zero uses config.DefaultDPI.
func NewChartWriter(paths *config.Paths, theme Theme, dpi int, logger *slog.Logger) *ChartWriter {
	if dpi <= 0 {
		dpi = config.DefaultDPI
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartWriter{paths: paths, theme: theme, dpi: dpi, logger: logger}
}

// Theme returns the theme used for every chart
func (w *ChartWriter) Theme() Theme {
	return w.theme
}

// figure is a built plot plus the canvas it is drawn on
type figure struct {
	plot          *plot.Plot
	width, height vg.Length
	// rightMargin is reserved for a secondary axis.
	rightMargin vg.Length
}

// Render draws spec and writes it to the output directory, replacing any
// existing file. It returns the written path.
func (w *ChartWriter) Render(ctx context.Context, spec domain.ChartSpec) (string, error) {
	if spec.Data == nil {
		return "", apperrors.NewAppValidationError(fmt.Sprintf("chart %q has no data", spec.File))
	}
	if spec.File == "" {
		return "", apperrors.NewAppValidationError(fmt.Sprintf("chart %q has no file name", spec.Title))
	}

	fig, err := w.build(spec)
	if err != nil {
		return "", err
	}

	fullPath := w.paths.ChartPath(spec.File)
	if err := os.MkdirAll(w.paths.OutputDir, 0755); err != nil {
		return "", apperrors.NewStorageError("failed to create output directory", err).
			WithContext("dir", w.paths.OutputDir)
	}
	if err := w.save(fig, fullPath); err != nil {
		return "", apperrors.NewStorageError("failed to write chart", err).
			WithContext("path", fullPath)
	}

	w.logger.InfoContext(ctx, "Chart written",
		slog.String("kind", string(spec.Kind)),
		slog.String("path", fullPath),
		slog.Int("groups", spec.Data.Len()))

	return fullPath, nil
}

func (w *ChartWriter) build(spec domain.ChartSpec) (*figure, error) {
	switch spec.Kind {
	case domain.ChartBarLine:
		return w.barLine(spec)
	case domain.ChartPie:
		return w.pie(spec)
	case domain.ChartHorizontalBar:
		return w.horizontalBar(spec)
	case domain.ChartGroupedBar:
		return w.groupedBar(spec)
	default:
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("unknown chart kind %q", spec.Kind))
	}
}

// newPlot applies the theme's colours and tick style to an empty plot
func (w *ChartWriter) newPlot(spec domain.ChartSpec) *plot.Plot {
	p := plot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Title.Padding = vg.Points(8)
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel
	p.BackgroundColor = w.theme.Background

	for _, axis := range []*plot.Axis{&p.X, &p.Y} {
		axis.Label.TextStyle.Color = w.theme.AxisColor
		axis.Tick.Label.Color = w.theme.AxisColor
		axis.Tick.LineStyle.Color = w.theme.AxisColor
		axis.LineStyle.Color = w.theme.AxisColor
		if !w.theme.Spines {
			axis.LineStyle.Color = color.Transparent
		}
		if !w.theme.TickMarks {
			axis.Tick.Length = 0
		}
	}
	return p
}

// decorate shades the data area and adds grid lines
func (w *ChartWriter) decorate(p *plot.Plot) {
	p.Add(face{color: w.theme.Face})
	if w.theme.Grid {
		grid := plotter.NewGrid()
		grid.Vertical.Color = w.theme.GridColor
		grid.Horizontal.Color = w.theme.GridColor
		grid.Vertical.Dashes = nil
		grid.Horizontal.Dashes = nil
		p.Add(grid)
	}
}

// barWidth splits the usable plot width evenly between slots bars.
func barWidth(width vg.Length, slots int) vg.Length {
	if slots < 1 {
		slots = 1
	}
	return width * 0.7 / vg.Length(slots)
}

// padCategories widens a category axis by half a slot on both sides so the
// outermost bars do not touch the edge of the data area.
func padCategories(axis *plot.Axis, n int) {
	if n == 0 {
		return
	}
	axis.Min = math.Min(axis.Min, -0.5)
	axis.Max = math.Max(axis.Max, float64(n)-0.5)
}

// barLine draws the first measure as bars on the left axis and the second as
// a line on an independent right axis.
func (w *ChartWriter) barLine(spec domain.ChartSpec) (*figure, error) {
	agg := spec.Data
	if len(agg.Measures) < 2 {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("chart %q needs two measures", spec.File))
	}

	p := w.newPlot(spec)
	w.decorate(p)
	p.Legend.Top = true
	p.Legend.Left = true

	labels := agg.Labels()
	if agg.Len() > 0 {
		bars, err := plotter.NewBarChart(plotter.Values(agg.Floats(0)), barWidth(wideWidth-twinMargin, agg.Len()))
		if err != nil {
			return nil, apperrors.NewParsingError("failed to build bar chart", err)
		}
		bars.Color = colornames.Skyblue
		bars.LineStyle.Width = 0
		p.Add(bars)
		p.Legend.Add("Sales", bars)
	}
	if len(labels) > 0 {
		p.NominalX(labels...)
	}
	padCategories(&p.X, len(labels))
	p.Y.Tick.Marker = valueTicks{}

	line := &twinLine{
		values:     agg.Floats(1),
		label:      spec.SecondaryLabel,
		line:       draw.LineStyle{Color: colornames.Darkblue, Width: vg.Points(2)},
		glyph:      draw.GlyphStyle{Color: colornames.Darkblue, Radius: vg.Points(3), Shape: draw.CircleGlyph{}},
		axis:       p.Y.LineStyle,
		tickLength: vg.Points(4),
		tickStyle:  p.Y.Tick.Label,
		labelStyle: p.Y.Label.TextStyle,
	}
	line.axis.Color = w.theme.AxisColor
	line.tickStyle.XAlign = draw.XLeft
	line.tickStyle.YAlign = draw.YCenter
	line.labelStyle.XAlign = draw.XCenter
	line.labelStyle.YAlign = draw.YTop
	p.Add(line)
	p.Legend.Add("Orders", line)

	return &figure{plot: p, width: wideWidth, height: wideHeight, rightMargin: twinMargin}, nil
}

// pie draws one wedge per group with percentage labels.
func (w *ChartWriter) pie(spec domain.ChartSpec) (*figure, error) {
	colors, err := w.theme.paletteFor(spec.Colors)
	if err != nil {
		return nil, err
	}

	p := w.newPlot(spec)
	p.HideAxes()

	chart := &pieChart{
		values:     spec.Data.Floats(0),
		labels:     spec.Data.Labels(),
		colors:     colors,
		start:      pieStartDeg * math.Pi / 180,
		labelStyle: p.X.Tick.Label,
		pctStyle:   p.X.Tick.Label,
		edge:       draw.LineStyle{Color: w.theme.Background, Width: vg.Points(1)},
	}
	chart.labelStyle.Font.Size = vg.Points(12)
	chart.labelStyle.YAlign = draw.YCenter
	chart.pctStyle.Font.Size = vg.Points(11)
	chart.pctStyle.XAlign = draw.XCenter
	chart.pctStyle.YAlign = draw.YCenter

	p.Add(chart)

	return &figure{plot: p, width: squareSide, height: squareSide}, nil
}

// horizontalBar draws ranked groups top to bottom, largest first.
func (w *ChartWriter) horizontalBar(spec domain.ChartSpec) (*figure, error) {
	agg := spec.Data
	p := w.newPlot(spec)
	w.decorate(p)

	n := agg.Len()
	values := agg.Floats(0)
	labels := make([]string, n)
	width := barWidth(wideHeight, n)
	for i, label := range agg.Labels() {
		pos := n - 1 - i
		labels[pos] = label

		bar, err := plotter.NewBarChart(plotter.Values{values[i]}, width)
		if err != nil {
			return nil, apperrors.NewParsingError("failed to build bar chart", err)
		}
		bar.Horizontal = true
		bar.XMin = float64(pos)
		bar.Color = sequentialColor(w.theme.Sequential, i, n)
		bar.LineStyle.Width = 0
		p.Add(bar)
	}
	if n > 0 {
		p.NominalY(labels...)
	}
	padCategories(&p.Y, n)
	p.X.Tick.Marker = valueTicks{}

	return &figure{plot: p, width: wideWidth, height: wideHeight}, nil
}

// sequentialColor spreads n bars across the palette
func sequentialColor(palette []color.Color, i, n int) color.Color {
	if len(palette) == 0 {
		return colornames.Steelblue
	}
	if n <= 1 {
		return palette[0]
	}
	return palette[i*(len(palette)-1)/(n-1)]
}

// groupedBar puts the first key on the x-axis and draws one bar per value of
// the second key, side by side.
func (w *ChartWriter) groupedBar(spec domain.ChartSpec) (*figure, error) {
	agg := spec.Data
	if len(agg.GroupBy) < 2 {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("chart %q needs two group keys", spec.File))
	}

	categories, hues := distinct(agg, 0), distinct(agg, 1)
	catIndex := indexOf(categories)
	hueIndex := indexOf(hues)

	series := make([]plotter.Values, len(hues))
	for j := range series {
		series[j] = make(plotter.Values, len(categories))
	}
	for _, row := range agg.Rows {
		series[hueIndex[row.Keys[1]]][catIndex[row.Keys[0]]] += row.Values[0].InexactFloat64()
	}

	p := w.newPlot(spec)
	w.decorate(p)
	p.Legend.Top = true
	p.Legend.Add(agg.GroupBy[1])

	width := barWidth(wideWidth, len(categories)*len(hues))
	for j, values := range series {
		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return nil, apperrors.NewParsingError("failed to build bar chart", err)
		}
		bars.Color = w.theme.Color(j)
		bars.LineStyle.Width = 0
		bars.Offset = vg.Length(float64(j)-float64(len(hues)-1)/2) * width
		p.Add(bars)
		p.Legend.Add(hues[j], bars)
	}
	if len(categories) > 0 {
		p.NominalX(categories...)
	}
	padCategories(&p.X, len(categories))
	p.Y.Tick.Marker = valueTicks{}

	return &figure{plot: p, width: wideWidth, height: wideHeight}, nil
}

// distinct returns the values of key k in first-seen order
func distinct(agg *domain.Aggregate, k int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range agg.Rows {
		if !seen[row.Keys[k]] {
			seen[row.Keys[k]] = true
			out = append(out, row.Keys[k])
		}
	}
	return out
}

func indexOf(values []string) map[string]int {
	idx := make(map[string]int, len(values))
	for i, v := range values {
		idx[v] = i
	}
	return idx
}

// save draws the figure at the writer's DPI and writes it as PNG.
func (w *ChartWriter) save(fig *figure, path string) error {
	canvas := vgimg.NewWith(
		vgimg.UseWH(fig.width, fig.height),
		vgimg.UseDPI(w.dpi),
		vgimg.UseBackgroundColor(w.theme.Background),
	)
	dc := draw.New(canvas)
	if fig.rightMargin > 0 {
		dc = draw.Crop(dc, 0, -fig.rightMargin, 0, 0)
	}
	fig.plot.Draw(dc)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return file.Close()
}
