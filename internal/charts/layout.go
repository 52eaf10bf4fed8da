package charts

import "math"

// series is the data of one Draw call, captured by value so a surface never
// holds on to the caller's slice.
type series struct {
	surfaceID      string
	title          string
	kind           MarkKind
	colorNormal    string
	colorHighlight string
	format         func(float64) string

	categories []string
	values     []float64
}

func captureSeries[T any](spec Spec[T], data []T) *series {
	s := &series{
		surfaceID:      spec.SurfaceID,
		title:          spec.Title,
		kind:           spec.Mark,
		colorNormal:    spec.ColorNormal,
		colorHighlight: spec.ColorHighlight,
		format:         spec.Format,
		categories:     make([]string, len(data)),
		values:         make([]float64, len(data)),
	}
	if s.kind == "" {
		s.kind = MarkBar
	}
	if s.format == nil {
		s.format = FormatCount
	}
	for i, d := range data {
		s.categories[i] = spec.Category(d)
		s.values[i] = spec.Value(d)
	}
	return s
}

// layout computes the full scene for the series at the given size.
func (s *series) layout(width, height, hovered int) *Scene {
	plot := Rect{
		X:      MarginLeft,
		Y:      MarginTop,
		Width:  math.Max(1, float64(width)-MarginLeft-MarginRight),
		Height: math.Max(1, float64(height)-MarginTop-MarginBottom),
	}

	x := NewBandScale(len(s.values), plot.X, plot.X+plot.Width, bandPadding)
	y := NewValueScale(s.values, plot.Y+plot.Height, plot.Y)
	d0, d1 := y.Domain()
	baseline := y.Map(math.Max(d0, math.Min(0, d1)))

	sc := &Scene{
		SurfaceID:      s.surfaceID,
		Width:          width,
		Height:         height,
		Title:          s.title,
		Kind:           s.kind,
		ColorNormal:    s.colorNormal,
		ColorHighlight: s.colorHighlight,
		Plot:           plot,
		Marks:          make([]Mark, len(s.values)),
		YDomain:        [2]float64{d0, d1},
		Hovered:        -1,
	}

	for i, v := range s.values {
		top := y.Map(v)
		m := Mark{
			Index:    i,
			Category: s.categories[i],
			Value:    v,
			Text:     s.format(v),
			CX:       x.Mid(i),
			CY:       top,
		}
		switch s.kind {
		case MarkLine:
			m.Rect = Rect{X: m.CX - pointRadius, Y: top - pointRadius, Width: 2 * pointRadius, Height: 2 * pointRadius}
			sc.Path = append(sc.Path, Point{X: m.CX, Y: top})
		default:
			m.Rect = Rect{X: x.Start(i), Y: math.Min(top, baseline), Width: x.Bandwidth(), Height: math.Abs(baseline - top)}
		}
		sc.Marks[i] = m
	}

	// thin out category labels on crowded axes
	every := 1
	if n := len(s.categories); n > maxXTickLabel {
		every = int(math.Ceil(float64(n) / maxXTickLabel))
	}
	for i, c := range s.categories {
		if i%every == 0 {
			sc.XTicks = append(sc.XTicks, Tick{Value: float64(i), Pos: x.Mid(i), Label: c})
		}
	}

	step := tickStep(d0, d1, yTickCount)
	for _, t := range y.Ticks(yTickCount) {
		sc.YTicks = append(sc.YTicks, Tick{Value: t, Pos: y.Map(t), Label: formatTick(t, step)})
	}

	if hovered >= 0 && hovered < len(sc.Marks) {
		m := sc.Marks[hovered]
		sc.Hovered = hovered
		sc.Label = &Label{X: m.CX, Y: math.Min(m.CY, m.Rect.Y) - labelOffset, Text: m.Text}
	}
	return sc
}
