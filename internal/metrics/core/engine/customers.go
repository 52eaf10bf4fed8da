package engine

import (
	"sort"
	"time"

	"shop-analytics-service/internal/metrics/core/domain"
)

// NewCustomers counts customers per period of their creation date. A customer
// id seen more than once in the sample counts once, at its earliest date.
func NewCustomers(customers []domain.Customer, g domain.Granularity) ([]domain.CustomerCountPoint, int, error) {
	return countCustomers(customers, g, func(domain.Customer) bool { return true })
}

// RepeatCustomers counts, per creation period, the customers whose current
// cumulative ordersCount is above one. The count is not reconstructed as of
// the period: a customer who placed a second order last week shows up as a
// repeat customer in the period they signed up.
func RepeatCustomers(customers []domain.Customer, g domain.Granularity) ([]domain.CustomerCountPoint, int, error) {
	return countCustomers(customers, g, func(c domain.Customer) bool { return c.OrdersCount > 1 })
}

func countCustomers(customers []domain.Customer, g domain.Granularity, keep func(domain.Customer) bool) ([]domain.CustomerCountPoint, int, error) {
	if err := validGranularity(g); err != nil {
		return nil, 0, err
	}

	skipped := 0
	counts := make(map[time.Time]int)
	for _, c := range dedupeCustomers(customers) {
		if c.CreatedAt.IsZero() {
			skipped++
			continue
		}
		if !keep(c) {
			continue
		}
		start, _ := truncate(c.CreatedAt, g)
		counts[start]++
	}

	points := make([]domain.CustomerCountPoint, 0, len(counts))
	for start, n := range counts {
		points = append(points, domain.CustomerCountPoint{
			PeriodKey: periodKey(start, g),
			Start:     start,
			Count:     n,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Start.Before(points[j].Start)
	})

	return points, skipped, nil
}

// dedupeCustomers merges records sharing an id: earliest known createdAt,
// highest ordersCount, first known totalSpent and region. Records without an
// id are kept as-is.
func dedupeCustomers(customers []domain.Customer) []domain.Customer {
	out := make([]domain.Customer, 0, len(customers))
	index := make(map[string]int, len(customers))

	for _, c := range customers {
		if c.ID == "" {
			out = append(out, c)
			continue
		}
		i, seen := index[c.ID]
		if !seen {
			index[c.ID] = len(out)
			out = append(out, c)
			continue
		}

		merged := &out[i]
		if !c.CreatedAt.IsZero() && (merged.CreatedAt.IsZero() || c.CreatedAt.Before(merged.CreatedAt)) {
			merged.CreatedAt = c.CreatedAt
		}
		if c.OrdersCount > merged.OrdersCount {
			merged.OrdersCount = c.OrdersCount
		}
		if !merged.TotalSpent.Valid && c.TotalSpent.Valid {
			merged.TotalSpent = c.TotalSpent
		}
		if merged.Region == "" {
			merged.Region = c.Region
		}
	}
	return out
}

// GeoDistribution counts customers per region, largest first (ties by name).
func GeoDistribution(customers []domain.Customer) []domain.GeoPoint {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, c := range customers {
		region := c.Region
		if region == "" {
			region = domain.UnknownRegion
		}
		if _, exists := counts[region]; !exists {
			order = append(order, region)
		}
		counts[region]++
	}

	points := make([]domain.GeoPoint, 0, len(order))
	for _, region := range order {
		points = append(points, domain.GeoPoint{Region: region, Count: counts[region]})
	}
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].Count != points[j].Count {
			return points[i].Count > points[j].Count
		}
		return points[i].Region < points[j].Region
	})
	return points
}
