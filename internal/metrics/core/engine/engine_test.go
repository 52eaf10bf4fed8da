package engine

import (
	"testing"
	"time"

	"shop-analytics-service/internal/metrics/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func order(id, customer, date, total string) domain.Order {
	o := domain.Order{ID: id, CustomerID: customer, TotalPrice: d(total)}
	if date != "" {
		o.CreatedAt = day(date)
	}
	return o
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s", want, got)
}

// ============================================================================
// BucketSales
// ============================================================================

func TestBucketSales_Daily(t *testing.T) {
	orders := []domain.Order{
		order("2", "c1", "2024-01-02", "150"),
		order("1", "c1", "2024-01-01", "100"),
	}

	points, skipped, err := BucketSales(orders, domain.GranularityDay)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Zero(t, skipped)

	assert.Equal(t, "2024-01-01", points[0].PeriodKey)
	assertDecimal(t, "100", points[0].Total)
	assert.Equal(t, "2024-01-02", points[1].PeriodKey)
	assertDecimal(t, "150", points[1].Total)
}

func TestBucketSales_Granularities(t *testing.T) {
	orders := []domain.Order{
		order("1", "", "2024-01-01", "10"), // Monday, ISO 2024-W01
		order("2", "", "2024-01-07", "20"), // Sunday, same ISO week
		order("3", "", "2024-02-15", "30"),
		order("4", "", "2024-04-01", "40"),
		order("5", "", "2025-12-31", "50"),
	}

	tests := []struct {
		g      domain.Granularity
		keys   []string
		totals []string
	}{
		{domain.GranularityWeek, []string{"2024-W01", "2024-W07", "2024-W14", "2026-W01"}, []string{"30", "30", "40", "50"}},
		{domain.GranularityMonth, []string{"2024-01", "2024-02", "2024-04", "2025-12"}, []string{"30", "30", "40", "50"}},
		{domain.GranularityQuarter, []string{"2024-Q1", "2024-Q2", "2025-Q4"}, []string{"60", "40", "50"}},
		{domain.GranularityYear, []string{"2024", "2025"}, []string{"100", "50"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.g), func(t *testing.T) {
			points, _, err := BucketSales(orders, tt.g)
			require.NoError(t, err)
			require.Len(t, points, len(tt.keys))
			for i := range points {
				assert.Equal(t, tt.keys[i], points[i].PeriodKey)
				assertDecimal(t, tt.totals[i], points[i].Total)
			}
		})
	}
}

func TestBucketSales_ConservesTotal(t *testing.T) {
	orders := []domain.Order{
		order("1", "a", "2024-03-01", "19.99"),
		order("2", "b", "2024-03-01", "0.01"),
		order("3", "a", "2024-03-09", "250.00"),
		order("4", "c", "2024-05-20", "3.33"),
		order("5", "c", "2023-12-31", "7.77"),
	}

	want := decimal.Zero
	for _, o := range orders {
		want = want.Add(o.TotalPrice)
	}

	for _, g := range domain.Granularities {
		points, _, err := BucketSales(orders, g)
		require.NoError(t, err)

		got := decimal.Zero
		for _, p := range points {
			got = got.Add(p.Total)
		}
		assert.Truef(t, want.Equal(got), "%s: want %s, got %s", g, want, got)

		for i := 1; i < len(points); i++ {
			assert.True(t, points[i-1].Start.Before(points[i].Start), "points must be ascending")
		}
	}
}

func TestBucketSales_SkipsUndatedOrders(t *testing.T) {
	orders := []domain.Order{
		order("1", "a", "2024-03-01", "10"),
		order("2", "a", "", "99"),
	}

	points, skipped, err := BucketSales(orders, domain.GranularityDay)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, points, 1)
	assertDecimal(t, "10", points[0].Total)
}

func TestBucketSales_EmptyInput(t *testing.T) {
	points, skipped, err := BucketSales(nil, domain.GranularityMonth)
	require.NoError(t, err)
	assert.NotNil(t, points)
	assert.Empty(t, points)
	assert.Zero(t, skipped)
}

func TestBucketSales_UnknownGranularity(t *testing.T) {
	_, _, err := BucketSales(nil, domain.Granularity("fortnight"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSalesByGranularity(t *testing.T) {
	out := SalesByGranularity([]domain.Order{order("1", "", "2024-01-01", "5")})
	require.Len(t, out, len(domain.Granularities))
	assert.Equal(t, "2024-Q1", out[domain.GranularityQuarter][0].PeriodKey)
}

// ============================================================================
// GrowthRate
// ============================================================================

func periods(totals ...string) []domain.PeriodTotal {
	out := make([]domain.PeriodTotal, len(totals))
	for i, total := range totals {
		out[i] = domain.PeriodTotal{PeriodKey: string(rune('a' + i)), Total: d(total)}
	}
	return out
}

func TestGrowthRate(t *testing.T) {
	tests := []struct {
		name   string
		totals []string
		want   []string
	}{
		{"increase", []string{"100", "150"}, []string{"0", "0.5"}},
		{"zero_prior", []string{"0", "50"}, []string{"0", "0"}},
		{"decrease", []string{"200", "50", "50"}, []string{"0", "-0.75", "0"}},
		{"single", []string{"42"}, []string{"0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := GrowthRate(periods(tt.totals...))
			require.Len(t, points, len(tt.want))
			for i, w := range tt.want {
				assertDecimal(t, w, points[i].GrowthRate)
			}
		})
	}
}

func TestGrowthRate_Empty(t *testing.T) {
	points := GrowthRate(nil)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestSalesToGrowth_EndToEnd(t *testing.T) {
	raw := []byte(`[{"id":1,"date":"2024-01-01","total":100},{"id":2,"date":"2024-01-02","total":150}]`)

	orders, malformed, err := DecodeOrders(raw)
	require.NoError(t, err)
	assert.Zero(t, malformed)

	sales, _, err := BucketSales(orders, domain.GranularityDay)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "2024-01-01", sales[0].PeriodKey)
	assertDecimal(t, "100", sales[0].Total)
	assert.Equal(t, "2024-01-02", sales[1].PeriodKey)
	assertDecimal(t, "150", sales[1].Total)

	growth := GrowthRate(sales)
	require.Len(t, growth, 2)
	assertDecimal(t, "0", growth[0].GrowthRate)
	assertDecimal(t, "0.5", growth[1].GrowthRate)
}

// ============================================================================
// Decoding
// ============================================================================

func TestDecodeOrders_ToleratesAndCountsMalformed(t *testing.T) {
	raw := []byte(`[
		1, null, "x",
		{"id":"a","total_price":"x"},
		{"customer":{"id":9},"created_at":{"$date":"2024-01-02T10:00:00Z"},"total_price":"-5"},
		{"id":3,"created_at":1704067200000,"total_price":12.5},
		{"id":4,"created_at":"garbage","total_price":"7.00"}
	]`)

	orders, malformed, err := DecodeOrders(raw)
	require.NoError(t, err)
	assert.Equal(t, 6, malformed)
	require.Len(t, orders, 4)

	assert.Equal(t, "a", orders[0].ID)
	assertDecimal(t, "0", orders[0].TotalPrice)

	assert.Equal(t, "9", orders[1].CustomerID)
	assert.Equal(t, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), orders[1].CreatedAt)
	assertDecimal(t, "0", orders[1].TotalPrice)

	assert.Equal(t, "3", orders[2].ID)
	assert.Equal(t, day("2024-01-01"), orders[2].CreatedAt)
	assertDecimal(t, "12.5", orders[2].TotalPrice)

	assert.True(t, orders[3].CreatedAt.IsZero())
	assertDecimal(t, "7", orders[3].TotalPrice)
}

func TestDecodeCustomers_Fields(t *testing.T) {
	tests := []struct {
		name      string
		item      string
		malformed bool
		check     func(t *testing.T, c domain.Customer)
	}{
		{
			name: "quoted orders count and country fallback",
			item: `{"id":"c1","orders_count":"3","default_address":{"province":"","country":"CA"}}`,
			check: func(t *testing.T, c domain.Customer) {
				assert.Equal(t, 3, c.OrdersCount)
				assert.Equal(t, "CA", c.Region)
			},
		},
		{
			name: "province when region is null",
			item: `{"id":"c2","region":null,"default_address":{"province":"Quebec"}}`,
			check: func(t *testing.T, c domain.Customer) {
				assert.Equal(t, "Quebec", c.Region)
			},
		},
		{
			name: "mongo date and total spent",
			item: `{"id":"c3","created_at":{"$date":"2024-03-01T00:00:00Z"},"total_spent":"42.10"}`,
			check: func(t *testing.T, c domain.Customer) {
				assert.Equal(t, day("2024-03-01"), c.CreatedAt)
				require.True(t, c.TotalSpent.Valid)
				assertDecimal(t, "42.10", c.TotalSpent.Decimal)
			},
		},
		{
			name:      "negative orders count is reset",
			item:      `{"id":"c4","orders_count":-1}`,
			malformed: true,
			check: func(t *testing.T, c domain.Customer) {
				assert.Zero(t, c.OrdersCount)
			},
		},
		{
			name:      "negative total spent is dropped",
			item:      `{"id":"c5","total_spent":"-10.00"}`,
			malformed: true,
			check: func(t *testing.T, c domain.Customer) {
				assert.False(t, c.TotalSpent.Valid)
			},
		},
		{
			name:      "unparseable orders count",
			item:      `{"id":"c6","orders_count":"many"}`,
			malformed: true,
			check: func(t *testing.T, c domain.Customer) {
				assert.Zero(t, c.OrdersCount)
			},
		},
		{
			name:      "wrong-typed region",
			item:      `{"id":"c7","region":7}`,
			malformed: true,
			check: func(t *testing.T, c domain.Customer) {
				assert.Empty(t, c.Region)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customers, malformed, err := DecodeCustomers([]byte("[" + tt.item + "]"))
			require.NoError(t, err)
			require.Len(t, customers, 1)
			if tt.malformed {
				assert.Equal(t, 1, malformed)
			} else {
				assert.Zero(t, malformed)
			}
			tt.check(t, customers[0])
		})
	}
}

func TestDecodeCustomers_DropsNonObjects(t *testing.T) {
	customers, malformed, err := DecodeCustomers([]byte(`[{"id":"c1"},[],42,null]`))
	require.NoError(t, err)
	assert.Equal(t, 3, malformed)
	require.Len(t, customers, 1)
	assert.Equal(t, "c1", customers[0].ID)
}

func TestDecode_NotAnArray(t *testing.T) {
	_, _, err := DecodeOrders([]byte(`{"id":1}`))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = DecodeCustomers([]byte(`not json`))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// ============================================================================
// New / repeat customers
// ============================================================================

func customer(id, date string, ordersCount int) domain.Customer {
	c := domain.Customer{ID: id, OrdersCount: ordersCount}
	if date != "" {
		c.CreatedAt = day(date)
	}
	return c
}

func TestNewCustomers(t *testing.T) {
	customers := []domain.Customer{
		customer("a", "2024-01-05", 1),
		customer("b", "2024-01-20", 3),
		customer("c", "2024-02-01", 0),
		customer("a", "2023-12-30", 1), // same customer, earlier record
		customer("d", "", 2),
	}

	points, skipped, err := NewCustomers(customers, domain.GranularityMonth)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, points, 3)

	assert.Equal(t, "2023-12", points[0].PeriodKey)
	assert.Equal(t, 1, points[0].Count)
	assert.Equal(t, "2024-01", points[1].PeriodKey)
	assert.Equal(t, 1, points[1].Count)
	assert.Equal(t, "2024-02", points[2].PeriodKey)
	assert.Equal(t, 1, points[2].Count)
}

func TestNewCustomers_CountsEachCustomerOnce(t *testing.T) {
	customers := []domain.Customer{
		customer("a", "2024-01-01", 1),
		customer("a", "2024-01-01", 1),
		customer("", "2024-01-01", 1),
		customer("", "2024-01-01", 1),
	}

	points, _, err := NewCustomers(customers, domain.GranularityDay)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 3, points[0].Count, "id-less records are distinct customers")
}

func TestRepeatCustomers_UsesCumulativeOrdersCount(t *testing.T) {
	customers := []domain.Customer{
		customer("a", "2024-01-05", 1),
		customer("b", "2024-01-20", 2),
		customer("c", "2024-01-21", 7),
		customer("d", "2024-02-01", 1),
		customer("e", "2024-03-01", 5),
	}

	points, skipped, err := RepeatCustomers(customers, domain.GranularityMonth)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, points, 2, "months without repeat customers are not emitted")

	assert.Equal(t, "2024-01", points[0].PeriodKey)
	assert.Equal(t, 2, points[0].Count)
	assert.Equal(t, "2024-03", points[1].PeriodKey)
	assert.Equal(t, 1, points[1].Count)
}

func TestCustomerCounts_Empty(t *testing.T) {
	newPts, _, err := NewCustomers([]domain.Customer{}, domain.GranularityDay)
	require.NoError(t, err)
	assert.NotNil(t, newPts)
	assert.Empty(t, newPts)

	repeatPts, _, err := RepeatCustomers(nil, domain.GranularityDay)
	require.NoError(t, err)
	assert.Empty(t, repeatPts)
}

// ============================================================================
// GeoDistribution
// ============================================================================

func TestGeoDistribution_UnknownBucket(t *testing.T) {
	raw := []byte(`[
		{"id":1,"region":"US"},
		{"id":2,"region":"US"},
		{"id":3,"region":""},
		{"id":4,"region":null}
	]`)
	customers, _, err := DecodeCustomers(raw)
	require.NoError(t, err)

	got := map[string]int{}
	for _, p := range GeoDistribution(customers) {
		got[p.Region] = p.Count
	}
	assert.Equal(t, map[string]int{"US": 2, "Unknown": 2}, got)
}

func TestGeoDistribution_DisplayOrder(t *testing.T) {
	customers := []domain.Customer{
		{Region: "Ontario"}, {Region: "Quebec"}, {Region: "Quebec"}, {Region: "Alberta"},
	}

	points := GeoDistribution(customers)
	require.Len(t, points, 3)
	assert.Equal(t, domain.GeoPoint{Region: "Quebec", Count: 2}, points[0])
	assert.Equal(t, "Alberta", points[1].Region)
	assert.Equal(t, "Ontario", points[2].Region)
}

func TestGeoDistribution_Empty(t *testing.T) {
	points := GeoDistribution(nil)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

// ============================================================================
// LifetimeValue
// ============================================================================

func TestLifetimeValue_FallsBackToOrderSum(t *testing.T) {
	customers := []domain.Customer{{ID: "c1"}}
	orders := []domain.Order{
		order("o1", "c1", "2024-01-01", "40"),
		order("o2", "c1", "2024-01-02", "60"),
		order("o3", "c2", "2024-01-02", "500"),
	}

	points := LifetimeValue(customers, orders)
	require.Len(t, points, 1)
	assert.Equal(t, "c1", points[0].CustomerID)
	assertDecimal(t, "100", points[0].Value)
	assert.Equal(t, domain.LTVRuleOrderSum, points[0].Rule)
	assert.Equal(t, 2, points[0].Orders)
}

func TestLifetimeValue_PrefersTotalSpent(t *testing.T) {
	customers := []domain.Customer{
		{ID: "c1", TotalSpent: decimal.NewNullDecimal(d("250.50"))},
	}
	orders := []domain.Order{order("o1", "c1", "2024-01-01", "40")}

	points := LifetimeValue(customers, orders)
	require.Len(t, points, 1)
	assertDecimal(t, "250.50", points[0].Value)
	assert.Equal(t, domain.LTVRuleTotalSpent, points[0].Rule)
}

func TestLifetimeValue_NoOrdersNoTotalSpentIsZero(t *testing.T) {
	points := LifetimeValue([]domain.Customer{{ID: "lonely"}, {ID: ""}}, nil)
	require.Len(t, points, 2)
	for _, p := range points {
		assertDecimal(t, "0", p.Value)
		assert.Equal(t, domain.LTVRuleOrderSum, p.Rule)
	}
}

func TestLifetimeValue_OnePointPerCustomer(t *testing.T) {
	customers := []domain.Customer{{ID: "a"}, {ID: "b"}, {ID: "a"}}

	points := LifetimeValue(customers, nil)
	require.Len(t, points, 2)
	assert.Equal(t, "a", points[0].CustomerID)
	assert.Equal(t, "b", points[1].CustomerID)
}

func TestLifetimeValue_MergesTotalSpentAcrossDuplicates(t *testing.T) {
	customers := []domain.Customer{
		{ID: "a"},
		{ID: "a", TotalSpent: decimal.NewNullDecimal(d("75.00"))},
	}
	orders := []domain.Order{order("o1", "a", "2024-01-01", "10")}

	points := LifetimeValue(customers, orders)
	require.Len(t, points, 1)
	assertDecimal(t, "75", points[0].Value)
	assert.Equal(t, domain.LTVRuleTotalSpent, points[0].Rule)
	assert.Equal(t, 1, points[0].Orders)
}

func TestLifetimeValue_Empty(t *testing.T) {
	points := LifetimeValue(nil, nil)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}
