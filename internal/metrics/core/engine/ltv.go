package engine

import (
	"shop-analytics-service/internal/metrics/core/domain"

	"github.com/shopspring/decimal"
)

// LifetimeValue emits one point per customer id, in first-seen order, with
// duplicate records merged first. The stored totalSpent wins when present (LTVRuleTotalSpent); otherwise the value is the
// sum of the customer's orders in the sample (LTVRuleOrderSum), which is zero
// for a customer without orders.
func LifetimeValue(customers []domain.Customer, orders []domain.Order) []domain.LifetimeValuePoint {
	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	for _, o := range orders {
		if o.CustomerID == "" {
			continue
		}
		sums[o.CustomerID] = sums[o.CustomerID].Add(o.TotalPrice)
		counts[o.CustomerID]++
	}

	unique := dedupeCustomers(customers)
	points := make([]domain.LifetimeValuePoint, 0, len(unique))
	for _, c := range unique {
		p := domain.LifetimeValuePoint{
			CustomerID: c.ID,
			Value:      sums[c.ID],
			Rule:       domain.LTVRuleOrderSum,
			Orders:     counts[c.ID],
		}
		if c.TotalSpent.Valid {
			p.Value = c.TotalSpent.Decimal
			p.Rule = domain.LTVRuleTotalSpent
		}
		points = append(points, p)
	}
	return points
}
