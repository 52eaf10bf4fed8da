package charts

import "math"

// BandScale maps point indexes to evenly spaced bands, laid out like a d3
// band scale with equal inner and outer padding. Bands are addressed by
// index so repeated category labels still get one band each.
type BandScale struct {
	n         int
	start     float64
	step      float64
	bandwidth float64
}

func NewBandScale(n int, r0, r1, padding float64) BandScale {
	if n < 0 {
		n = 0
	}
	span := r1 - r0
	step := span / math.Max(1, float64(n)-padding+padding*2)
	start := r0 + (span-step*(float64(n)-padding))*0.5
	return BandScale{
		n:         n,
		start:     start,
		step:      step,
		bandwidth: step * (1 - padding),
	}
}

func (b BandScale) Len() int { return b.n }
func (b BandScale) Bandwidth() float64 { return b.bandwidth }
func (b BandScale) Start(i int) float64 { return b.start + b.step*float64(i) }

// Mid is the horizontal center of band i.
func (b BandScale) Mid(i int) float64 { return b.Start(i) + b.bandwidth/2 }

// LinearScale maps a continuous domain onto a pixel range.
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

// NewValueScale builds the vertical scale for a series: the domain always
// includes zero, is widened to [0, 1] when the data spans nothing, and is
// rounded outward to nice tick values.
func NewValueScale(values []float64, r0, r1 float64) LinearScale {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	d0, d1 := nice(lo, hi, defaultTickCount)
	return LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

const defaultTickCount = 10

func (s LinearScale) Domain() (float64, float64) { return s.d0, s.d1 }

func (s LinearScale) Map(v float64) float64 {
	if s.d1 == s.d0 {
		return s.r0
	}
	t := (v - s.d0) / (s.d1 - s.d0)
	return s.r0 + t*(s.r1-s.r0)
}

// Ticks returns round values inside the domain, about count of them.
func (s LinearScale) Ticks(count int) []float64 {
	return ticks(s.d0, s.d1, count)
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickIncrement returns a positive step, or the negated inverse of a
// fractional step, so that small steps stay exact.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / math.Max(0, float64(count))
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

func nice(start, stop float64, count int) (float64, float64) {
	var prestep float64
	for i := 0; i < 10; i++ {
		step := tickIncrement(start, stop, count)
		if step == prestep {
			break
		}
		switch {
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			return start, stop
		}
		prestep = step
	}
	return start, stop
}

func ticks(start, stop float64, count int) []float64 {
	if count <= 0 || stop <= start {
		return nil
	}
	step := tickIncrement(start, stop, count)
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil
	}

	var out []float64
	if step > 0 {
		i0, i1 := math.Ceil(start/step), math.Floor(stop/step)
		for i := i0; i <= i1; i++ {
			out = append(out, i*step)
		}
		return out
	}

	inv := -step
	i0, i1 := math.Ceil(start*inv), math.Floor(stop*inv)
	for i := i0; i <= i1; i++ {
		out = append(out, i/inv)
	}
	return out
}

// tickStep is the spacing of ticks(start, stop, count), used to pick label precision.
func tickStep(start, stop float64, count int) float64 {
	step := tickIncrement(start, stop, count)
	if step < 0 {
		return -1 / step
	}
	return step
}
