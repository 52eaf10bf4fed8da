package engine

import (
	"sort"
	"time"

	"shop-analytics-service/internal/metrics/core/domain"

	"github.com/shopspring/decimal"
)

// BucketSales sums order totals per period. Orders without a creation date
// cannot be bucketed; they are left out and counted in skipped.
func BucketSales(orders []domain.Order, g domain.Granularity) (points []domain.PeriodTotal, skipped int, err error) {
	if err := validGranularity(g); err != nil {
		return nil, 0, err
	}

	totals := make(map[time.Time]decimal.Decimal)
	for _, o := range orders {
		if o.CreatedAt.IsZero() {
			skipped++
			continue
		}
		start, _ := truncate(o.CreatedAt, g)
		totals[start] = totals[start].Add(o.TotalPrice)
	}

	points = make([]domain.PeriodTotal, 0, len(totals))
	for start, total := range totals {
		points = append(points, domain.PeriodTotal{
			PeriodKey: periodKey(start, g),
			Start:     start,
			Total:     total,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Start.Before(points[j].Start)
	})

	return points, skipped, nil
}

// SalesByGranularity buckets the same orders at every supported granularity.
func SalesByGranularity(orders []domain.Order) map[domain.Granularity][]domain.PeriodTotal {
	out := make(map[domain.Granularity][]domain.PeriodTotal, len(domain.Granularities))
	for _, g := range domain.Granularities {
		points, _, _ := BucketSales(orders, g)
		out[g] = points
	}
	return out
}

// GrowthRate computes the period-over-period fractional change. The first
// period, and any period whose predecessor totals zero, report 0.
func GrowthRate(periods []domain.PeriodTotal) []domain.GrowthPoint {
	points := make([]domain.GrowthPoint, 0, len(periods))
	for i, p := range periods {
		rate := decimal.Zero
		if i > 0 {
			prev := periods[i-1].Total
			if !prev.IsZero() {
				rate = p.Total.Sub(prev).Div(prev)
			}
		}
		points = append(points, domain.GrowthPoint{
			PeriodKey:  p.PeriodKey,
			GrowthRate: rate,
		})
	}
	return points
}
