package chartboard

import (
	"fmt"
	"sync"

	"shop-analytics-service/internal/charts"
	"shop-analytics-service/internal/metrics/core/domain"

	"golang.org/x/sync/errgroup"
)

// Surface ids, in page order.
const (
	SurfaceSales           = "salesChart"
	SurfaceSalesGrowthRate = "salesGrowthRateChart"
	SurfaceNewCustomers    = "newCustomersChart"
	SurfaceRepeatCustomers = "repeatCustomersChart"
	SurfaceCustomerGeo     = "customerGeoChart"
	SurfaceLifetimeValue   = "customerLifetimeValueChart"
)

var SurfaceIDs = []string{
	SurfaceSales,
	SurfaceSalesGrowthRate,
	SurfaceNewCustomers,
	SurfaceRepeatCustomers,
	SurfaceCustomerGeo,
	SurfaceLifetimeValue,
}

// DrawObserver is told whether each draw was applied or dropped as stale.
type DrawObserver interface {
	ChartDrawn(surface string, applied bool)
}

// Board owns the six dashboard surfaces and redraws them on every published
// snapshot.
type Board struct {
	surfaces map[string]*charts.Surface
	observer DrawObserver

	mu   sync.RWMutex
	last *domain.DashboardSnapshot
}

func NewBoard(width, height int, observer DrawObserver) *Board {
	b := &Board{
		surfaces: make(map[string]*charts.Surface, len(SurfaceIDs)),
		observer: observer,
	}
	for _, id := range SurfaceIDs {
		b.surfaces[id] = charts.NewSurface(id, width, height)
	}
	return b
}

func (b *Board) Surface(id string) (*charts.Surface, error) {
	s, ok := b.surfaces[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", charts.ErrUnknownSurface, id)
	}
	return s, nil
}

// Surfaces returns the surfaces in page order.
func (b *Board) Surfaces() []*charts.Surface {
	out := make([]*charts.Surface, 0, len(SurfaceIDs))
	for _, id := range SurfaceIDs {
		out = append(out, b.surfaces[id])
	}
	return out
}

// Publish draws every series of s on its surface. Draws are independent and
// run concurrently; a surface that already shows a newer generation keeps it.
func (b *Board) Publish(s *domain.DashboardSnapshot) {
	if s == nil {
		return
	}

	b.mu.Lock()
	if b.last == nil || s.Generation >= b.last.Generation {
		b.last = s
	}
	b.mu.Unlock()

	var g errgroup.Group
	for _, id := range SurfaceIDs {
		surface := b.surfaces[id]
		g.Go(func() error {
			b.report(surface.ID(), drawSeries(surface, s))
			return nil
		})
	}
	_ = g.Wait()
}

// Resize sets a new measured size on one surface and redraws it.
func (b *Board) Resize(id string, width, height int) error {
	s, err := b.Surface(id)
	if err != nil {
		return err
	}
	s.Resize(width, height)
	return nil
}

// Last returns the snapshot the board was last drawn from.
func (b *Board) Last() *domain.DashboardSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.last
}

func (b *Board) report(id string, applied bool) {
	if b.observer != nil {
		b.observer.ChartDrawn(id, applied)
	}
}

func drawSeries(surface *charts.Surface, s *domain.DashboardSnapshot) bool {
	gen := s.Generation
	switch surface.ID() {
	case SurfaceSales:
		return charts.Draw(surface, gen, salesSpec(s.Granularity), s.Sales)
	case SurfaceSalesGrowthRate:
		return charts.Draw(surface, gen, growthSpec, s.Growth)
	case SurfaceNewCustomers:
		return charts.Draw(surface, gen, newCustomersSpec, s.NewCustomers)
	case SurfaceRepeatCustomers:
		return charts.Draw(surface, gen, repeatCustomersSpec, s.RepeatCustomers)
	case SurfaceCustomerGeo:
		return charts.Draw(surface, gen, geoSpec, s.Geo)
	case SurfaceLifetimeValue:
		return charts.Draw(surface, gen, lifetimeValueSpec, s.LifetimeValue)
	}
	return false
}
