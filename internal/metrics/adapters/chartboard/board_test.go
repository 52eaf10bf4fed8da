package chartboard

import (
	"errors"
	"sync"
	"testing"

	"shop-analytics-service/internal/charts"
	"shop-analytics-service/internal/metrics/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDrawObserver struct {
	mu      sync.Mutex
	applied map[string]int
	dropped map[string]int
}

func (f *fakeDrawObserver) ChartDrawn(surface string, applied bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.applied == nil {
		f.applied, f.dropped = map[string]int{}, map[string]int{}
	}
	if applied {
		f.applied[surface]++
	} else {
		f.dropped[surface]++
	}
}

func snapshot(gen uint64, g domain.Granularity, sales ...string) *domain.DashboardSnapshot {
	s := &domain.DashboardSnapshot{Generation: gen, Granularity: g}
	for i, total := range sales {
		s.Sales = append(s.Sales, domain.PeriodTotal{
			PeriodKey: string(rune('a' + i)),
			Total:     decimal.RequireFromString(total),
		})
	}
	s.Growth = []domain.GrowthPoint{{PeriodKey: "a", GrowthRate: decimal.Zero}}
	s.Geo = []domain.GeoPoint{{Region: "US", Count: 2}, {Region: domain.UnknownRegion, Count: 2}}
	s.LifetimeValue = []domain.LifetimeValuePoint{{CustomerID: "", Value: decimal.NewFromInt(100)}}
	return s
}

func TestBoard_SurfaceIDs(t *testing.T) {
	b := NewBoard(600, 400, nil)

	surfaces := b.Surfaces()
	require.Len(t, surfaces, 6)
	for i, s := range surfaces {
		assert.Equal(t, SurfaceIDs[i], s.ID())
		assert.Equal(t, charts.StateEmpty, s.State())
	}

	_, err := b.Surface("pieChart")
	assert.True(t, errors.Is(err, charts.ErrUnknownSurface))
}

func TestBoard_PublishDrawsEverySurface(t *testing.T) {
	obs := &fakeDrawObserver{}
	b := NewBoard(600, 400, obs)

	b.Publish(snapshot(1, domain.GranularityMonth, "100", "150"))

	for _, s := range b.Surfaces() {
		assert.Equal(t, charts.StateDrawn, s.State(), s.ID())
		assert.Equal(t, 1, obs.applied[s.ID()], s.ID())
	}

	sales, err := b.Surface(SurfaceSales)
	require.NoError(t, err)
	sc := sales.Scene()
	assert.Equal(t, "Monthly Sales", sc.Title)
	assert.Len(t, sc.Marks, 2)
	assert.Equal(t, "$150.00", sc.Marks[1].Text)

	// empty series still produce a drawn, empty surface
	repeat, _ := b.Surface(SurfaceRepeatCustomers)
	assert.Empty(t, repeat.Scene().Marks)

	ltv, _ := b.Surface(SurfaceLifetimeValue)
	assert.Equal(t, "(no id)", ltv.Scene().Marks[0].Category)
}

func TestBoard_StaleSnapshotDropped(t *testing.T) {
	obs := &fakeDrawObserver{}
	b := NewBoard(600, 400, obs)

	b.Publish(snapshot(2, domain.GranularityDay, "1", "2", "3"))
	b.Publish(snapshot(1, domain.GranularityDay, "9"))

	sales, _ := b.Surface(SurfaceSales)
	assert.Len(t, sales.Scene().Marks, 3)
	assert.Equal(t, uint64(2), b.Last().Generation)
	assert.Equal(t, 1, obs.dropped[SurfaceSales])
}

func TestBoard_Resize(t *testing.T) {
	b := NewBoard(600, 400, nil)
	b.Publish(snapshot(1, domain.GranularityDay, "5"))

	require.NoError(t, b.Resize(SurfaceCustomerGeo, 800, 300))
	geo, _ := b.Surface(SurfaceCustomerGeo)
	assert.Equal(t, 800, geo.Scene().Width)

	assert.ErrorIs(t, b.Resize("nope", 1, 1), charts.ErrUnknownSurface)
}

func TestBoard_PublishNil(t *testing.T) {
	b := NewBoard(600, 400, nil)
	b.Publish(nil)
	assert.Nil(t, b.Last())
}
