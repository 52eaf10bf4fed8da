// Package charts lays out aggregate series as bar or line charts on named
// surfaces and renders them to SVG or PNG.
package charts

import (
	"errors"
	"fmt"
)

var (
	ErrNoSuchMark     = errors.New("no such mark")
	ErrNotDrawn       = errors.New("surface not drawn")
	ErrUnknownSurface = errors.New("unknown surface")
)

type MarkKind string

const (
	MarkBar  MarkKind = "bar"
	MarkLine MarkKind = "line"
)

type State string

const (
	StateEmpty       State = "empty"
	StateDrawn       State = "drawn"
	StateHighlighted State = "highlighted"
)

// Spec describes how one series type is encoded on a surface.
type Spec[T any] struct {
	SurfaceID      string
	Title          string
	Mark           MarkKind
	Category       func(T) string
	Value          func(T) float64
	Format         func(float64) string
	ColorNormal    string // hex, e.g. "#4682b4"
	ColorHighlight string
}

// Margins around the plot area, in pixels.
var (
	MarginTop    = 40.0
	MarginRight  = 20.0
	MarginBottom = 50.0
	MarginLeft   = 60.0
)

const (
	bandPadding   = 0.1
	labelOffset   = 10.0
	pointRadius   = 4.0
	yTickCount    = 10
	maxXTickLabel = 12
)

type Rect struct {
	X, Y, Width, Height float64
}

// Mark is one encoded data point. For bars the rect is the bar itself; for
// lines it is the hover target around the point and (CX, CY) the vertex.
type Mark struct {
	Index    int
	Category string
	Value    float64
	Text     string // Format(Value)
	Rect
	CX, CY float64
}

type Tick struct {
	Value float64 // data value, or point index on the category axis
	Pos   float64
	Label string
}

type Label struct {
	X, Y float64
	Text string
}

// Scene is everything currently drawn on a surface. A redraw replaces it
// wholesale.
type Scene struct {
	SurfaceID      string
	Width, Height  int
	Title          string
	Kind           MarkKind
	ColorNormal    string
	ColorHighlight string

	Plot    Rect
	Marks   []Mark
	XTicks  []Tick
	YTicks  []Tick
	YDomain [2]float64
	Path    []Point // line vertices, empty for bars

	Hovered int    // -1 when nothing is highlighted
	Label   *Label // at most one floating label
}

type Point struct {
	X, Y float64
}

// FormatMoney renders a currency amount.
func FormatMoney(v float64) string { return fmt.Sprintf("$%.2f", v) }

func FormatCount(v float64) string { return fmt.Sprintf("%.0f", v) }

// FormatPercent renders a fractional rate (0.5 -> "50.0%").
func FormatPercent(v float64) string { return fmt.Sprintf("%.1f%%", v*100) }

func formatTick(v, step float64) string {
	decimals := 0
	for s := step; s < 1 && decimals < 10; s *= 10 {
		decimals++
	}
	if v == 0 {
		v = 0 // normalize -0
	}
	return fmt.Sprintf("%.*f", decimals, v)
}
