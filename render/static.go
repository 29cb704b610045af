package render

import (
	"bytes"
	"fmt"
	"html"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/spektr-org/pokedash/engine"
	"github.com/spektr-org/pokedash/logging"
)

// ============================================================================
// STATIC RENDERER — ChartConfig → PNG / SVG via go-chart
// ============================================================================
// go-chart draws pies, bars and continuous series only, so each kind is drawn
// with the nearest of the three:
//
//	proportion                                  → pie
//	bar, histogram, box, violin, heatmap,
//	funnel, bar_polar                           → bars
//	line, area, density_contour, line_polar     → line (area filled)
//	scatter, scatter_polar                      → points
//
// An empty subset renders a blank canvas with a caption.
// ============================================================================

type staticShape int

const (
	shapePie staticShape = iota
	shapeBars
	shapeLine
	shapeArea
	shapePoints
)

func shapeFor(kind engine.ChartKind) staticShape {
	switch kind {
	case engine.KindPie, engine.KindSunburst, engine.KindTreemap:
		return shapePie
	case engine.KindLine, engine.KindDensityContour, engine.KindLinePolar:
		return shapeLine
	case engine.KindArea:
		return shapeArea
	case engine.KindScatter, engine.KindScatterPolar:
		return shapePoints
	default:
		return shapeBars
	}
}

// WriteImage renders spec as PNG or SVG.
func WriteImage(w io.Writer, spec *engine.ChartSpec, format Format, opts ...Option) error {
	if spec == nil {
		return errNilSpec
	}
	if format != FormatPNG && format != FormatSVG {
		return fmt.Errorf("render: %q is not an image format", format)
	}
	o := applyOptions(opts)
	cfg := engine.BuildChart(spec)
	points := cfg.Series[0].Data

	if len(points) == 0 || (shapeFor(spec.Kind) == shapePie && !hasPositive(points)) {
		caption := fmt.Sprintf("%s: no data", cfg.Title)
		logging.Debugf("🖼️  Blank %s for %q", format, cfg.Title)
		if format == FormatSVG {
			return writeBlankSVG(w, o.width, o.height, caption)
		}
		return writeBlankPNG(w, o.width, o.height, caption)
	}

	provider := chart.PNG
	if format == FormatSVG {
		provider = chart.SVG
	}

	var buf bytes.Buffer
	var err error
	switch shapeFor(spec.Kind) {
	case shapePie:
		err = pieChart(cfg, o).Render(provider, &buf)
	case shapeBars:
		err = barChart(cfg, o).Render(provider, &buf)
	default:
		err = seriesChart(cfg, shapeFor(spec.Kind), o).Render(provider, &buf)
	}
	if err != nil {
		return fmt.Errorf("render %s %s: %w", spec.Kind, format, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

func pieChart(cfg *engine.ChartConfig, o *options) chart.PieChart {
	points := cfg.Series[0].Data
	values := make([]chart.Value, 0, len(points))
	for i, p := range points {
		values = append(values, chart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: chart.Style{FillColor: hexColor(cfg.Colors[i%len(cfg.Colors)])},
		})
	}
	return chart.PieChart{
		Title:  cfg.Title,
		Width:  o.width,
		Height: o.height,
		Values: values,
	}
}

func barChart(cfg *engine.ChartConfig, o *options) chart.BarChart {
	points := cfg.Series[0].Data
	col := hexColor(cfg.Series[0].Color)

	bars := make([]chart.Value, 0, len(points))
	for _, p := range points {
		bars = append(bars, chart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: chart.Style{FillColor: col, StrokeColor: col},
		})
	}

	const spacing = 8
	width := o.width
	barWidth := (width-120)/len(points) - spacing
	if barWidth < 6 {
		barWidth = 6
		width = len(points)*(barWidth+spacing) + 120
	}

	return chart.BarChart{
		Title:      cfg.Title,
		Width:      width,
		Height:     o.height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis:      chart.YAxis{Name: cfg.YAxis, Range: valueRange(points)},
		Bars:       bars,
	}
}

func seriesChart(cfg *engine.ChartConfig, shape staticShape, o *options) chart.Chart {
	points := cfg.Series[0].Data
	col := hexColor(cfg.Series[0].Color)

	// go-chart takes the x range from the ticks; the blank ends keep a
	// single point off the edges and the range non-zero.
	n := float64(len(points))
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	ticks := make([]chart.Tick, 0, len(points)+2)
	ticks = append(ticks, chart.Tick{Value: -0.5})
	for i, p := range points {
		xs[i] = float64(i)
		ys[i] = p.Value
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: p.Label})
	}
	ticks = append(ticks, chart.Tick{Value: n - 0.5})

	st := chart.Style{StrokeColor: col, StrokeWidth: 2}
	switch shape {
	case shapeArea:
		st.FillColor = col.WithAlpha(96)
	case shapePoints:
		st = chart.Style{StrokeWidth: chart.Disabled, DotWidth: 5, DotColor: col}
	}

	ch := chart.Chart{
		Title:      cfg.Title,
		Width:      o.width,
		Height:     o.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 48}},
		XAxis: chart.XAxis{
			Name:  cfg.XAxis,
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: n - 0.5},
		},
		YAxis: chart.YAxis{Name: cfg.YAxis, Range: valueRange(points)},
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    cfg.Series[0].Name,
			Style:   st,
			XValues: xs,
			YValues: ys,
		}},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}

// valueRange spans zero to a little above the largest value.
func valueRange(points []engine.ChartPoint) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, p := range points {
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}
	if hi <= lo {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi * 1.1}
}

func hasPositive(points []engine.ChartPoint) bool {
	for _, p := range points {
		if p.Value > 0 {
			return true
		}
	}
	return false
}

func hexColor(hex string) drawing.Color {
	if hex == "" {
		return chart.ColorBlue
	}
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// ============================================================================
// BLANK CANVAS
// ============================================================================

func writeBlankPNG(w io.Writer, width, height int, caption string) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	dr := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 96, G: 96, B: 96, A: 255}),
		Face: face,
	}
	tw := dr.MeasureString(caption).Ceil()
	x := (width - tw) / 2
	if x < 8 {
		x = 8
	}
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(height / 2)}
	dr.DrawString(caption)

	return png.Encode(w, img)
}

func writeBlankSVG(w io.Writer, width, height int, caption string) error {
	_, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+
			`<rect width="100%%" height="100%%" fill="white"/>`+
			`<text x="50%%" y="50%%" text-anchor="middle" fill="#606060" font-family="sans-serif" font-size="13">%s</text>`+
			`</svg>`,
		width, height, html.EscapeString(caption))
	return err
}
