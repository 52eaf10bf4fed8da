package charts

import (
	"fmt"
	"sync"
)

const (
	DefaultWidth  = 600
	DefaultHeight = 400
)

// CurrentHover asks Preview to keep whatever mark the surface has highlighted.
const CurrentHover = -2

// Surface is one named drawing target. It owns its size, the last drawn
// series and its hover state; all of it is guarded by the surface's own lock.
type Surface struct {
	id string

	mu         sync.Mutex
	width      int
	height     int
	generation uint64
	data       *series
	hovered    int
	scene      *Scene
}

func NewSurface(id string, width, height int) *Surface {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Surface{id: id, width: width, height: height, hovered: -1}
}

func (s *Surface) ID() string { return s.id }

// Draw fully redraws the surface with data, discarding previous marks, axes,
// title and label. Calls carrying a generation older than the last one drawn
// are dropped and report false.
func Draw[T any](s *Surface, generation uint64, spec Spec[T], data []T) bool {
	captured := captureSeries(spec, data)
	if captured.surfaceID == "" {
		captured.surfaceID = s.id
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if generation < s.generation {
		return false
	}
	s.generation = generation
	s.data = captured
	s.hovered = -1
	s.scene = captured.layout(s.width, s.height, -1)
	return true
}

// Resize changes the measured size and redraws the current series. Like any
// redraw it drops the highlight.
func (s *Surface) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	if s.data != nil {
		s.hovered = -1
		s.scene = s.data.layout(width, height, -1)
	}
}

// PointerEnter highlights mark i and shows its label. Entering a mark while
// another is highlighted moves the highlight; there is never more than one
// label.
func (s *Surface) PointerEnter(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return ErrNotDrawn
	}
	if i < 0 || i >= len(s.data.values) {
		return fmt.Errorf("%w: %s[%d]", ErrNoSuchMark, s.id, i)
	}
	s.hovered = i
	s.scene = s.data.layout(s.width, s.height, i)
	return nil
}

// PointerLeave reverts mark i and removes the label. Leaving a mark that is
// not highlighted is a no-op.
func (s *Surface) PointerLeave(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return ErrNotDrawn
	}
	if i < 0 || i >= len(s.data.values) {
		return fmt.Errorf("%w: %s[%d]", ErrNoSuchMark, s.id, i)
	}
	if s.hovered != i {
		return nil
	}
	s.hovered = -1
	s.scene = s.data.layout(s.width, s.height, -1)
	return nil
}

func (s *Surface) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.data == nil:
		return StateEmpty
	case s.hovered >= 0:
		return StateHighlighted
	default:
		return StateDrawn
	}
}

func (s *Surface) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Scene returns a copy of what is currently drawn, or nil when empty.
func (s *Surface) Scene() *Scene {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scene == nil {
		return nil
	}
	return s.scene.clone()
}

func (sc *Scene) clone() *Scene {
	c := *sc
	c.Marks = append([]Mark(nil), sc.Marks...)
	c.XTicks = append([]Tick(nil), sc.XTicks...)
	c.YTicks = append([]Tick(nil), sc.YTicks...)
	c.Path = append([]Point(nil), sc.Path...)
	if sc.Label != nil {
		l := *sc.Label
		c.Label = &l
	}
	return &c
}

// Preview lays out the current series at the given size with mark hovered
// highlighted (-1 for none, CurrentHover for the surface's own highlight),
// leaving the surface untouched.
func (s *Surface) Preview(width, height, hovered int) (*Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, ErrNotDrawn
	}
	if hovered == CurrentHover {
		hovered = s.hovered
	}
	if hovered < -1 || hovered >= len(s.data.values) {
		return nil, fmt.Errorf("%w: %s[%d]", ErrNoSuchMark, s.id, hovered)
	}
	if width <= 0 {
		width = s.width
	}
	if height <= 0 {
		height = s.height
	}
	return s.data.layout(width, height, hovered), nil
}
