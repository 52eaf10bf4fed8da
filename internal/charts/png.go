package charts

import (
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const noDataLabel = "no data"

// WritePNG rasterizes a scene with go-chart. The y range and ticks come from
// the scene so both encodings share one scale.
func WritePNG(w io.Writer, sc *Scene) error {
	if sc == nil {
		return ErrNotDrawn
	}
	if sc.Kind == MarkLine && len(sc.Marks) > 0 {
		return lineChart(sc).Render(chart.PNG, w)
	}
	return barChart(sc).Render(chart.PNG, w)
}

func yAxis(sc *Scene) chart.YAxis {
	ticks := make([]chart.Tick, 0, len(sc.YTicks))
	for _, t := range sc.YTicks {
		ticks = append(ticks, chart.Tick{Value: t.Value, Label: t.Label})
	}
	return chart.YAxis{
		Range: &chart.ContinuousRange{Min: sc.YDomain[0], Max: sc.YDomain[1]},
		Ticks: ticks,
	}
}

func background() chart.Style {
	return chart.Style{Padding: chart.Box{
		Top:    int(MarginTop),
		Left:   int(MarginLeft / 3),
		Right:  int(MarginRight),
		Bottom: int(MarginBottom / 3),
	}}
}

func barChart(sc *Scene) chart.BarChart {
	normal := color(sc.ColorNormal, chart.ColorBlue)
	highlight := color(sc.ColorHighlight, normal)

	bars := make([]chart.Value, 0, len(sc.Marks))
	for _, m := range sc.Marks {
		fill := normal
		if m.Index == sc.Hovered {
			fill = highlight
		}
		bars = append(bars, chart.Value{
			Value: m.Value,
			Label: m.Category,
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		})
	}
	if len(bars) == 0 {
		// BarChart refuses to render without bars
		bars = append(bars, chart.Value{Value: 0, Label: noDataLabel})
	}

	barWidth, spacing := 1, 0
	if len(sc.Marks) > 1 {
		barWidth = int(math.Max(1, sc.Marks[0].Width))
		spacing = int(math.Max(0, sc.Marks[1].X-sc.Marks[0].X-sc.Marks[0].Width))
	} else if len(sc.Marks) == 1 {
		barWidth = int(math.Max(1, sc.Marks[0].Width))
	}

	return chart.BarChart{
		Title:      sc.Title,
		Width:      sc.Width,
		Height:     sc.Height,
		Background: background(),
		BarWidth:   barWidth,
		BarSpacing: spacing,
		YAxis:      yAxis(sc),
		Bars:       bars,
	}
}

func lineChart(sc *Scene) chart.Chart {
	normal := color(sc.ColorNormal, chart.ColorBlue)
	highlight := color(sc.ColorHighlight, normal)

	n := len(sc.Marks)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, m := range sc.Marks {
		xs[i] = float64(m.Index)
		ys[i] = m.Value
	}

	// half-band ticks at both ends give a non-empty x range for a single point
	xTicks := []chart.Tick{{Value: -0.5}}
	for _, t := range sc.XTicks {
		xTicks = append(xTicks, chart.Tick{Value: t.Value, Label: t.Label})
	}
	xTicks = append(xTicks, chart.Tick{Value: float64(n) - 0.5})

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    sc.Title,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: normal,
				StrokeWidth: 2,
				DotColor:    normal,
				DotWidth:    pointRadius,
			},
		},
	}
	if sc.Hovered >= 0 && sc.Hovered < n {
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{xs[sc.Hovered]},
			YValues: []float64{ys[sc.Hovered]},
			Style: chart.Style{
				StrokeWidth: 0,
				DotColor:    highlight,
				DotWidth:    pointRadius * 1.5,
			},
		})
	}

	return chart.Chart{
		Title:      sc.Title,
		Width:      sc.Width,
		Height:     sc.Height,
		Background: background(),
		XAxis:      chart.XAxis{Ticks: xTicks},
		YAxis:      yAxis(sc),
		Series:     series,
	}
}

func color(hex string, fallback drawing.Color) drawing.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 && len(hex) != 3 {
		return fallback
	}
	return drawing.ColorFromHex(hex)
}
