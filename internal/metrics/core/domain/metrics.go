package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Granularity string

const (
	GranularityDay     Granularity = "day"
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// Granularities in ascending coarseness.
var Granularities = []Granularity{
	GranularityDay, GranularityWeek, GranularityMonth, GranularityQuarter, GranularityYear,
}

func ParseGranularity(s string) (Granularity, bool) {
	switch s {
	case "day", "daily":
		return GranularityDay, true
	case "week", "weekly":
		return GranularityWeek, true
	case "month", "monthly":
		return GranularityMonth, true
	case "quarter", "quarterly":
		return GranularityQuarter, true
	case "year", "yearly":
		return GranularityYear, true
	}
	return "", false
}

// Order is a decoded raw order. Missing numeric fields are zero; a missing or
// unparseable creation date leaves CreatedAt zero.
type Order struct {
	ID         string
	CustomerID string
	CreatedAt  time.Time
	TotalPrice decimal.Decimal
	LineItems  []json.RawMessage
}

type Customer struct {
	ID          string
	CreatedAt   time.Time
	OrdersCount int
	TotalSpent  decimal.NullDecimal // Valid=false when absent or null
	Region      string              // "" when absent, null or empty
}

type PeriodTotal struct {
	PeriodKey string // e.g. "2024-01-02", "2024-W01", "2024-01", "2024-Q1", "2024"
	Start     time.Time
	Total     decimal.Decimal
}

type GrowthPoint struct {
	PeriodKey  string
	GrowthRate decimal.Decimal // fractional change vs previous period
}

type CustomerCountPoint struct {
	PeriodKey string
	Start     time.Time
	Count     int
}

// UnknownRegion buckets customers with no region.
const UnknownRegion = "Unknown"

type GeoPoint struct {
	Region string
	Count  int
}

type LTVRule string

const (
	LTVRuleTotalSpent LTVRule = "total_spent"
	LTVRuleOrderSum   LTVRule = "order_sum"
)

type LifetimeValuePoint struct {
	CustomerID string
	Value      decimal.Decimal
	Rule       LTVRule
	Orders     int // matching orders seen in the sample
}

// Diagnostics tallies data-quality issues found while deriving a snapshot.
type Diagnostics struct {
	OrdersMalformed        int
	CustomersMalformed     int
	SalesSkipped           int // orders without a usable createdAt
	NewCustomersSkipped    int
	RepeatCustomersSkipped int
}

// DashboardSnapshot is the complete derived state of one refresh cycle. It is
// built once and never mutated after publication.
type DashboardSnapshot struct {
	ID          string
	Generation  uint64
	Granularity Granularity
	GeneratedAt time.Time

	Sales              []PeriodTotal
	SalesByGranularity map[Granularity][]PeriodTotal
	Growth             []GrowthPoint
	NewCustomers       []CustomerCountPoint
	RepeatCustomers    []CustomerCountPoint
	Geo                []GeoPoint
	LifetimeValue      []LifetimeValuePoint

	Diagnostics Diagnostics
	FetchErrors map[string]string // collection -> error, empty when all fetches succeeded
}
