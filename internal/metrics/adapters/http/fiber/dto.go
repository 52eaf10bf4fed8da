package fiber

import (
	"time"

	"shop-analytics-service/internal/charts"
	"shop-analytics-service/internal/metrics/core/domain"
)

type PeriodTotalResponse struct {
	Period string    `json:"period" example:"2024-01-02"`
	Start  time.Time `json:"start"`
	Total  string    `json:"total" example:"150.00"`
}

type GrowthPointResponse struct {
	Period     string  `json:"period" example:"2024-01-02"`
	GrowthRate float64 `json:"growth_rate" example:"0.5"`
}

type CustomerCountResponse struct {
	Period string `json:"period" example:"2024-01"`
	Count  int    `json:"count" example:"3"`
}

type GeoPointResponse struct {
	Region string `json:"region" example:"Ontario"`
	Count  int    `json:"count" example:"2"`
}

type LifetimeValueResponse struct {
	CustomerID string `json:"customer_id" example:"207119551"`
	Value      string `json:"value" example:"100.00"`
	Rule       string `json:"rule" example:"order_sum"`
	Orders     int    `json:"orders" example:"2"`
}

type DiagnosticsResponse struct {
	OrdersMalformed        int `json:"orders_malformed"`
	CustomersMalformed     int `json:"customers_malformed"`
	SalesSkipped           int `json:"sales_skipped"`
	NewCustomersSkipped    int `json:"new_customers_skipped"`
	RepeatCustomersSkipped int `json:"repeat_customers_skipped"`
}

type DashboardResponse struct {
	ID          string    `json:"id"`
	Generation  uint64    `json:"generation"`
	Granularity string    `json:"granularity" example:"day"`
	GeneratedAt time.Time `json:"generated_at"`
	Published   *bool     `json:"published,omitempty"`

	Sales              []PeriodTotalResponse            `json:"sales"`
	SalesByGranularity map[string][]PeriodTotalResponse `json:"sales_by_granularity"`
	Growth             []GrowthPointResponse            `json:"sales_growth_rate"`
	NewCustomers       []CustomerCountResponse          `json:"new_customers"`
	RepeatCustomers    []CustomerCountResponse          `json:"repeat_customers"`
	Geo                []GeoPointResponse               `json:"customer_geo"`
	LifetimeValue      []LifetimeValueResponse          `json:"customer_lifetime_value"`

	Diagnostics DiagnosticsResponse `json:"diagnostics"`
	FetchErrors map[string]string   `json:"fetch_errors,omitempty"`
}

type ChartResponse struct {
	ID         string `json:"id" example:"salesChart"`
	State      string `json:"state" example:"drawn"`
	Generation uint64 `json:"generation"`
	Width      int    `json:"width" example:"600"`
	Height     int    `json:"height" example:"400"`
	Marks      int    `json:"marks"`
	Hovered    *int   `json:"hovered,omitempty"`
	Label      string `json:"label,omitempty" example:"$150.00"`
}

type PointerRequest struct {
	Event string `json:"event" example:"enter"` // enter | leave
	Index int    `json:"index" example:"0"`
}

type ResizeRequest struct {
	Width  int `json:"width" example:"600"`
	Height int `json:"height" example:"400"`
}

type SeriesResponse struct {
	Name   string `json:"name" example:"sales"`
	Points any    `json:"points"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_granularity"`
	Message string `json:"message" example:"invalid granularity: \"hourly\""`
}

func periodTotals(in []domain.PeriodTotal) []PeriodTotalResponse {
	out := make([]PeriodTotalResponse, 0, len(in))
	for _, p := range in {
		out = append(out, PeriodTotalResponse{Period: p.PeriodKey, Start: p.Start, Total: p.Total.StringFixed(2)})
	}
	return out
}

func growthPoints(in []domain.GrowthPoint) []GrowthPointResponse {
	out := make([]GrowthPointResponse, 0, len(in))
	for _, p := range in {
		out = append(out, GrowthPointResponse{Period: p.PeriodKey, GrowthRate: p.GrowthRate.InexactFloat64()})
	}
	return out
}

func customerCounts(in []domain.CustomerCountPoint) []CustomerCountResponse {
	out := make([]CustomerCountResponse, 0, len(in))
	for _, p := range in {
		out = append(out, CustomerCountResponse{Period: p.PeriodKey, Count: p.Count})
	}
	return out
}

func geoPoints(in []domain.GeoPoint) []GeoPointResponse {
	out := make([]GeoPointResponse, 0, len(in))
	for _, p := range in {
		out = append(out, GeoPointResponse{Region: p.Region, Count: p.Count})
	}
	return out
}

func lifetimeValues(in []domain.LifetimeValuePoint) []LifetimeValueResponse {
	out := make([]LifetimeValueResponse, 0, len(in))
	for _, p := range in {
		out = append(out, LifetimeValueResponse{
			CustomerID: p.CustomerID,
			Value:      p.Value.StringFixed(2),
			Rule:       string(p.Rule),
			Orders:     p.Orders,
		})
	}
	return out
}

func dashboardResponse(s *domain.DashboardSnapshot) DashboardResponse {
	byGranularity := make(map[string][]PeriodTotalResponse, len(s.SalesByGranularity))
	for g, points := range s.SalesByGranularity {
		byGranularity[string(g)] = periodTotals(points)
	}

	return DashboardResponse{
		ID:                 s.ID,
		Generation:         s.Generation,
		Granularity:        string(s.Granularity),
		GeneratedAt:        s.GeneratedAt,
		Sales:              periodTotals(s.Sales),
		SalesByGranularity: byGranularity,
		Growth:             growthPoints(s.Growth),
		NewCustomers:       customerCounts(s.NewCustomers),
		RepeatCustomers:    customerCounts(s.RepeatCustomers),
		Geo:                geoPoints(s.Geo),
		LifetimeValue:      lifetimeValues(s.LifetimeValue),
		Diagnostics: DiagnosticsResponse{
			OrdersMalformed:        s.Diagnostics.OrdersMalformed,
			CustomersMalformed:     s.Diagnostics.CustomersMalformed,
			SalesSkipped:           s.Diagnostics.SalesSkipped,
			NewCustomersSkipped:    s.Diagnostics.NewCustomersSkipped,
			RepeatCustomersSkipped: s.Diagnostics.RepeatCustomersSkipped,
		},
		FetchErrors: s.FetchErrors,
	}
}

func chartResponse(s *charts.Surface) ChartResponse {
	w, h := s.Size()
	resp := ChartResponse{
		ID:         s.ID(),
		State:      string(s.State()),
		Generation: s.Generation(),
		Width:      w,
		Height:     h,
	}
	if sc := s.Scene(); sc != nil {
		resp.Marks = len(sc.Marks)
		if sc.Hovered >= 0 {
			hovered := sc.Hovered
			resp.Hovered = &hovered
		}
		if sc.Label != nil {
			resp.Label = sc.Label.Text
		}
	}
	return resp
}
