package charts

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// WriteSVG renders a scene as a standalone SVG document. Every mark carries a
// <title> with its formatted value, and a CSS rule scoped to the surface id
// swaps to the highlight color on hover.
func WriteSVG(w io.Writer, sc *Scene) error {
	if sc == nil {
		return ErrNotDrawn
	}

	bw := bufio.NewWriter(w)
	p := func(format string, args ...any) {
		fmt.Fprintf(bw, format, args...)
	}

	id := escape(sc.SurfaceID)
	p(`<svg xmlns="http://www.w3.org/2000/svg" id="%s" class="chart" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		id, sc.Width, sc.Height, sc.Width, sc.Height)
	p("<style>#%s .mark{fill:%s}#%s .mark:hover,#%s .mark.highlighted{fill:%s}#%s .line{fill:none;stroke:%s;stroke-width:2}#%s text{font-family:sans-serif;font-size:11px}#%s .chart-title{font-size:16px;font-weight:bold}</style>\n",
		id, escape(sc.ColorNormal), id, id, escape(sc.ColorHighlight), id, escape(sc.ColorNormal), id, id)

	plotBottom := sc.Plot.Y + sc.Plot.Height

	// x axis
	p(`<g class="axis x" transform="translate(0,%s)">`+"\n", num(plotBottom))
	p(`<path d="M%s,0H%s" stroke="currentColor"/>`+"\n", num(sc.Plot.X), num(sc.Plot.X+sc.Plot.Width))
	for _, t := range sc.XTicks {
		p(`<g class="tick" transform="translate(%s,0)"><line y2="6" stroke="currentColor"/><text y="9" dy="0.71em" text-anchor="middle">%s</text></g>`+"\n",
			num(t.Pos), escape(t.Label))
	}
	p("</g>\n")

	// y axis
	p(`<g class="axis y" transform="translate(%s,0)">`+"\n", num(sc.Plot.X))
	p(`<path d="M0,%sV%s" stroke="currentColor"/>`+"\n", num(sc.Plot.Y), num(plotBottom))
	for _, t := range sc.YTicks {
		p(`<g class="tick" transform="translate(0,%s)"><line x2="-6" stroke="currentColor"/><text x="-9" dy="0.32em" text-anchor="end">%s</text></g>`+"\n",
			num(t.Pos), escape(t.Label))
	}
	p("</g>\n")

	if sc.Kind == MarkLine && len(sc.Path) > 0 {
		var d strings.Builder
		for i, pt := range sc.Path {
			if i == 0 {
				d.WriteString("M")
			} else {
				d.WriteString("L")
			}
			d.WriteString(num(pt.X) + "," + num(pt.Y))
		}
		p(`<path class="line" d="%s"/>`+"\n", d.String())
	}

	for _, m := range sc.Marks {
		class := "mark"
		if m.Index == sc.Hovered {
			class += " highlighted"
		}
		if sc.Kind == MarkLine {
			p(`<circle class="%s" data-index="%d" cx="%s" cy="%s" r="%s"><title>%s: %s</title></circle>`+"\n",
				class, m.Index, num(m.CX), num(m.CY), num(pointRadius), escape(m.Category), escape(m.Text))
			continue
		}
		p(`<rect class="%s" data-index="%d" x="%s" y="%s" width="%s" height="%s"><title>%s: %s</title></rect>`+"\n",
			class, m.Index, num(m.X), num(m.Y), num(m.Width), num(m.Height), escape(m.Category), escape(m.Text))
	}

	if sc.Label != nil {
		p(`<text id="tooltip" x="%s" y="%s" text-anchor="middle">%s</text>`+"\n",
			num(sc.Label.X), num(sc.Label.Y), escape(sc.Label.Text))
	}

	p(`<text class="chart-title" x="%s" y="%s" text-anchor="middle">%s</text>`+"\n",
		num(float64(sc.Width)/2), num(MarginTop/2), escape(sc.Title))
	p("</svg>\n")

	return bw.Flush()
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func num(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
