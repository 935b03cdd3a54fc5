package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/NeurArk/mcp-data-assistant/pkg/models/domain"
)

const (
	defaultChartWidth  = 640
	defaultChartHeight = 480
)

// brandColor is used for charts when the spec carries no color.
var brandColor = drawing.Color{R: 0x2e, G: 0x86, B: 0xc1, A: 0xff}

// ChartRenderer renders chart specs into standalone PNG files. Each
// Render call produces a fresh uniquely named temporary file; the
// caller owns deletion.
type ChartRenderer struct {
	tmpDir string
}

// NewChartRenderer creates a renderer writing into tmpDir, or the
// platform temporary directory when tmpDir is empty.
func NewChartRenderer(tmpDir string) *ChartRenderer {
	return &ChartRenderer{tmpDir: tmpDir}
}

// Render draws the chart described by spec and returns the path of the
// PNG file created.
func (r *ChartRenderer) Render(spec domain.ChartSpec) (string, error) {
	if len(spec.Labels) != len(spec.Values) {
		return "", fmt.Errorf("chart labels and values must have equal length: %d != %d",
			len(spec.Labels), len(spec.Values))
	}
	if len(spec.Values) == 0 {
		return "", fmt.Errorf("chart spec has no values")
	}

	width := spec.Width
	if width <= 0 {
		width = defaultChartWidth
	}
	height := spec.Height
	if height <= 0 {
		height = defaultChartHeight
	}
	color := parseColor(spec.Color)

	f, err := os.CreateTemp(r.tmpDir, "chart-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}

	switch spec.Type {
	case domain.ChartBar:
		err = renderBar(spec, width, height, color, f)
	case domain.ChartPie:
		err = renderPie(spec, width, height, f)
	case domain.ChartLine:
		err = renderLine(spec, width, height, color, f)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedChartType, spec.Type)
	}

	if cerr := f.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("failed to close chart file: %w", cerr)
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func renderBar(spec domain.ChartSpec, width, height int, color drawing.Color, f *os.File) error {
	bars := make([]chart.Value, 0, len(spec.Values))
	for i, v := range spec.Values {
		bars = append(bars, chart.Value{
			Value: v,
			Label: spec.Labels[i],
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}

	bc := chart.BarChart{
		Width:    width,
		Height:   height,
		BarWidth: barWidthFor(width, len(bars)),
		XAxis:    chart.Shown(),
		YAxis:    chart.YAxis{Style: chart.Shown()},
		Bars:     bars,
	}
	return bc.Render(chart.PNG, f)
}

func renderPie(spec domain.ChartSpec, width, height int, f *os.File) error {
	var total float64
	for _, v := range spec.Values {
		total += v
	}
	if total == 0 {
		return fmt.Errorf("pie chart values sum to zero")
	}

	values := make([]chart.Value, 0, len(spec.Values))
	for i, v := range spec.Values {
		values = append(values, chart.Value{
			Value: v,
			Label: fmt.Sprintf("%s (%.1f%%)", spec.Labels[i], 100*v/total),
		})
	}

	pc := chart.PieChart{
		Width:  width,
		Height: height,
		Values: values,
	}
	return pc.Render(chart.PNG, f)
}

func renderLine(spec domain.ChartSpec, width, height int, color drawing.Color, f *os.File) error {
	xs := make([]float64, len(spec.Values))
	ticks := make([]chart.Tick, len(spec.Labels))
	for i, label := range spec.Labels {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}

	lc := chart.Chart{
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Style: chart.Shown(),
			Ticks: ticks,
		},
		YAxis: chart.YAxis{Style: chart.Shown()},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeColor: color,
					DotColor:    color,
					DotWidth:    4,
				},
				XValues: xs,
				YValues: spec.Values,
			},
		},
	}
	return lc.Render(chart.PNG, f)
}

func barWidthFor(chartWidth, bars int) int {
	if bars == 0 {
		return 40
	}
	w := (chartWidth - 100) / (bars * 2)
	if w < 10 {
		w = 10
	}
	if w > 80 {
		w = 80
	}
	return w
}

func parseColor(hex string) drawing.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return brandColor
	}
	return drawing.ColorFromHex(hex)
}
