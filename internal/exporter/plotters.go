package exporter

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// face fills the data area of a plot. It is added before any other plotter.
type face struct {
	color color.Color
}

func (f face) Plot(c draw.Canvas, _ *plot.Plot) {
	c.SetColor(f.color)
	c.Fill(c.Rectangle.Path())
}

// pieChart draws wedges counter-clockwise from start, labelled with the
// category outside and the percentage inside.
type pieChart struct {
	values []float64
	labels []string
	colors []color.Color
	// start angle in radians
	start float64

	labelStyle text.Style
	pctStyle   text.Style
	edge       draw.LineStyle
}

func (pc *pieChart) total() float64 {
	sum := 0.0
	for _, v := range pc.values {
		if v > 0 {
			sum += v
		}
	}
	return sum
}

func (pc *pieChart) Plot(c draw.Canvas, _ *plot.Plot) {
	total := pc.total()
	if total == 0 {
		return
	}

	center := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}
	radius := min(c.Max.X-c.Min.X, c.Max.Y-c.Min.Y) / 2 * 0.8

	angle := pc.start
	for i, v := range pc.values {
		if v <= 0 {
			continue
		}
		sweep := 2 * math.Pi * v / total

		var wedge vg.Path
		wedge.Move(center)
		wedge.Line(polar(center, radius, angle))
		wedge.Arc(center, radius, angle, sweep)
		wedge.Close()

		c.SetColor(pc.colors[i%len(pc.colors)])
		c.Fill(wedge)
		c.SetLineStyle(pc.edge)
		c.Stroke(wedge)

		mid := angle + sweep/2
		c.FillText(pc.pctStyle, polar(center, radius*0.6, mid), fmt.Sprintf("%.1f%%", 100*v/total))

		label := pc.labelStyle
		if math.Cos(mid) >= 0 {
			label.XAlign = text.XLeft
		} else {
			label.XAlign = text.XRight
		}
		c.FillText(label, polar(center, radius*1.1, mid), pc.labels[i])

		angle += sweep
	}
}

func polar(center vg.Point, r vg.Length, angle float64) vg.Point {
	return vg.Point{
		X: center.X + r*vg.Length(math.Cos(angle)),
		Y: center.Y + r*vg.Length(math.Sin(angle)),
	}
}

// twinLine plots values as a line against its own y-axis drawn on the right
// edge of the data area. The primary axis range is left untouched.
type twinLine struct {
	values []float64
	label  string
	line   draw.LineStyle
	glyph  draw.GlyphStyle

	axis       draw.LineStyle
	tickLength vg.Length
	tickStyle  text.Style
	labelStyle text.Style
}

// max returns the top of the secondary axis
func (tl *twinLine) max() float64 {
	top := 0.0
	for _, v := range tl.values {
		top = math.Max(top, v)
	}
	if top == 0 {
		return 1
	}
	return top * 1.1
}

func (tl *twinLine) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, _ := plt.Transforms(&c)
	top := tl.max()
	trY := func(v float64) vg.Length {
		return c.Min.Y + vg.Length(v/top)*(c.Max.Y-c.Min.Y)
	}

	if len(tl.values) > 0 {
		pts := make([]vg.Point, len(tl.values))
		for i, v := range tl.values {
			pts[i] = vg.Point{X: trX(float64(i)), Y: trY(v)}
		}
		c.StrokeLines(tl.line, pts)
		for _, pt := range pts {
			c.DrawGlyph(tl.glyph, pt)
		}
	}

	x := c.Max.X
	c.StrokeLine2(tl.axis, x, c.Min.Y, x, c.Max.Y)

	widest := vg.Length(0)
	for _, tick := range (valueTicks{}).Ticks(0, top) {
		if tick.IsMinor() {
			continue
		}
		y := trY(tick.Value)
		c.StrokeLine2(tl.axis, x, y, x+tl.tickLength, y)
		c.FillText(tl.tickStyle, vg.Point{X: x + tl.tickLength + vg.Points(2), Y: y}, tick.Label)
		widest = max(widest, tl.tickStyle.Width(tick.Label))
	}

	at := vg.Point{X: x + tl.tickLength + widest + vg.Points(8), Y: (c.Min.Y + c.Max.Y) / 2}
	c.FillText(tl.labelStyle, at, tl.label)
}

// Thumbnail draws the legend entry
func (tl *twinLine) Thumbnail(c *draw.Canvas) {
	y := (c.Min.Y + c.Max.Y) / 2
	c.StrokeLine2(tl.line, c.Min.X, y, c.Max.X, y)
	c.DrawGlyph(tl.glyph, vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: y})
}

// valueTicks places about n labelled ticks on round steps (1, 2 or 5 times a
// power of ten). Zero n means defaultTickCount.
type valueTicks struct {
	n int
}

const defaultTickCount = 8

func (vt valueTicks) Ticks(min, max float64) []plot.Tick {
	n := vt.n
	if n < 2 {
		n = defaultTickCount
	}
	if !(max > min) {
		return []plot.Tick{{Value: min, Label: strconv.FormatFloat(min, 'f', -1, 64)}}
	}

	step, prec := niceStep((max - min) / float64(n-1))
	first := math.Ceil(min / step)
	var ticks []plot.Tick
	for i := 0; ; i++ {
		v := (first + float64(i)) * step
		if v > max+step*1e-9 {
			break
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', prec, 64)})
	}
	return ticks
}

// niceStep rounds raw up to 1, 2 or 5 times a power of ten and returns the
// number of decimals needed to print multiples of it.
func niceStep(raw float64) (float64, int) {
	exp := math.Floor(math.Log10(raw))
	base := math.Pow(10, exp)
	var nice float64
	switch f := raw / base; {
	case f <= 1:
		nice = 1
	case f <= 2:
		nice = 2
	case f <= 5:
		nice = 5
	default:
		nice = 10
	}
	return nice * base, max(0, -int(exp))
}
