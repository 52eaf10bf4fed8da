package chartboard

import (
	"shop-analytics-service/internal/charts"
	"shop-analytics-service/internal/metrics/core/domain"
)

var salesTitles = map[domain.Granularity]string{
	domain.GranularityDay:     "Daily Sales",
	domain.GranularityWeek:    "Weekly Sales",
	domain.GranularityMonth:   "Monthly Sales",
	domain.GranularityQuarter: "Quarterly Sales",
	domain.GranularityYear:    "Yearly Sales",
}

func salesSpec(g domain.Granularity) charts.Spec[domain.PeriodTotal] {
	title, ok := salesTitles[g]
	if !ok {
		title = "Sales"
	}
	return charts.Spec[domain.PeriodTotal]{
		SurfaceID:      SurfaceSales,
		Title:          title,
		Mark:           charts.MarkBar,
		Category:       func(p domain.PeriodTotal) string { return p.PeriodKey },
		Value:          func(p domain.PeriodTotal) float64 { return p.Total.InexactFloat64() },
		Format:         charts.FormatMoney,
		ColorNormal:    "#4682b4", // steelblue
		ColorHighlight: "#ffa500", // orange
	}
}

var growthSpec = charts.Spec[domain.GrowthPoint]{
	SurfaceID:      SurfaceSalesGrowthRate,
	Title:          "Sales Growth Rate",
	Mark:           charts.MarkLine,
	Category:       func(p domain.GrowthPoint) string { return p.PeriodKey },
	Value:          func(p domain.GrowthPoint) float64 { return p.GrowthRate.InexactFloat64() },
	Format:         charts.FormatPercent,
	ColorNormal:    "#008000", // green
	ColorHighlight: "#006400", // darkgreen
}

var newCustomersSpec = charts.Spec[domain.CustomerCountPoint]{
	SurfaceID:      SurfaceNewCustomers,
	Title:          "New Customers",
	Mark:           charts.MarkBar,
	Category:       func(p domain.CustomerCountPoint) string { return p.PeriodKey },
	Value:          func(p domain.CustomerCountPoint) float64 { return float64(p.Count) },
	Format:         charts.FormatCount,
	ColorNormal:    "#ffa500", // orange
	ColorHighlight: "#ff0000", // red
}

var repeatCustomersSpec = charts.Spec[domain.CustomerCountPoint]{
	SurfaceID:      SurfaceRepeatCustomers,
	Title:          "Repeat Customers",
	Mark:           charts.MarkBar,
	Category:       func(p domain.CustomerCountPoint) string { return p.PeriodKey },
	Value:          func(p domain.CustomerCountPoint) float64 { return float64(p.Count) },
	Format:         charts.FormatCount,
	ColorNormal:    "#008000", // green
	ColorHighlight: "#006400", // darkgreen
}

var geoSpec = charts.Spec[domain.GeoPoint]{
	SurfaceID:      SurfaceCustomerGeo,
	Title:          "Customer Geographical Distribution",
	Mark:           charts.MarkBar,
	Category:       func(p domain.GeoPoint) string { return p.Region },
	Value:          func(p domain.GeoPoint) float64 { return float64(p.Count) },
	Format:         charts.FormatCount,
	ColorNormal:    "#800080", // purple
	ColorHighlight: "#4b0082", // indigo
}

var lifetimeValueSpec = charts.Spec[domain.LifetimeValuePoint]{
	SurfaceID: SurfaceLifetimeValue,
	Title:     "Customer Lifetime Value",
	Mark:      charts.MarkBar,
	Category: func(p domain.LifetimeValuePoint) string {
		if p.CustomerID == "" {
			return "(no id)"
		}
		return p.CustomerID
	},
	Value:          func(p domain.LifetimeValuePoint) float64 { return p.Value.InexactFloat64() },
	Format:         charts.FormatMoney,
	ColorNormal:    "#008080", // teal
	ColorHighlight: "#008b8b", // darkcyan
}
