package fiber

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"shop-analytics-service/internal/charts"
	"shop-analytics-service/internal/metrics/core/domain"
	"shop-analytics-service/internal/metrics/core/engine"
	"shop-analytics-service/internal/metrics/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type DashboardUseCase interface {
	Refresh(ctx context.Context, g domain.Granularity) (*usecase.RefreshResult, error)
	Snapshot() *domain.DashboardSnapshot
	View(ctx context.Context, g domain.Granularity) (*domain.DashboardSnapshot, error)
}

type ChartBoard interface {
	Surface(id string) (*charts.Surface, error)
	Surfaces() []*charts.Surface
}

type DashboardHandler struct {
	uc    DashboardUseCase
	board ChartBoard
}

func NewDashboardHandler(uc DashboardUseCase, board ChartBoard) *DashboardHandler {
	return &DashboardHandler{uc: uc, board: board}
}

func (h *DashboardHandler) Register(r fiber.Router) {
	r.Get("/dashboard", h.GetDashboard)
	r.Post("/dashboard/refresh", h.RefreshDashboard)
	r.Get("/dashboard/series/:name", h.GetSeries)

	r.Get("/charts", h.ListCharts)
	r.Get("/charts/:surface", h.RenderChart)
	r.Post("/charts/:surface/pointer", h.PointerEvent)
	r.Put("/charts/:surface/size", h.ResizeChart)
}

// GetDashboard godoc
// @Summary Current dashboard snapshot
// @Description Returns the last published snapshot. Passing granularity re-buckets the published records at that granularity without fetching or redrawing. Before the first refresh a cycle is run.
// @Tags Dashboard
// @Produce json
// @Param granularity query string false "day | week | month | quarter | year"
// @Success 200 {object} DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	g, ok := granularityParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_granularity",
			Message: "granularity must be one of day, week, month, quarter, year",
		})
	}

	snap, err := h.uc.View(c.UserContext(), g)
	if err != nil {
		return writeRefreshError(c, err)
	}
	if snap == nil {
		return h.refresh(c)
	}
	return c.Status(http.StatusOK).JSON(dashboardResponse(snap))
}

// RefreshDashboard godoc
// @Summary Run a refresh cycle
// @Description Fetches orders and customers once, derives every series and redraws the charts
// @Tags Dashboard
// @Produce json
// @Param granularity query string false "day | week | month | quarter | year"
// @Success 200 {object} DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/refresh [post]
func (h *DashboardHandler) RefreshDashboard(c *fiber.Ctx) error {
	return h.refresh(c)
}

func (h *DashboardHandler) refresh(c *fiber.Ctx) error {
	g, ok := granularityParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_granularity",
			Message: "granularity must be one of day, week, month, quarter, year",
		})
	}

	res, err := h.uc.Refresh(c.UserContext(), g)
	if err != nil {
		return writeRefreshError(c, err)
	}

	resp := dashboardResponse(res.Snapshot)
	published := res.Published
	resp.Published = &published
	return c.Status(http.StatusOK).JSON(resp)
}

// GetSeries godoc
// @Summary One derived series
// @Description Returns a single series of the current snapshot (sales, sales_growth_rate, new_customers, repeat_customers, customer_geo, customer_lifetime_value). For sales, granularity picks another bucketing of the same orders.
// @Tags Dashboard
// @Produce json
// @Param name path string true "Series name"
// @Param granularity query string false "day | week | month | quarter | year (sales only)"
// @Success 200 {object} SeriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/series/{name} [get]
func (h *DashboardHandler) GetSeries(c *fiber.Ctx) error {
	snap := h.uc.Snapshot()
	if snap == nil {
		res, err := h.uc.Refresh(c.UserContext(), "")
		if err != nil {
			return writeRefreshError(c, err)
		}
		snap = res.Snapshot
	}

	name := c.Params("name")
	var points any
	switch name {
	case "sales":
		points = periodTotals(snap.Sales)
		if c.Query("granularity") != "" {
			g, ok := granularityParam(c)
			if !ok {
				return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
					Error:   "invalid_granularity",
					Message: "granularity must be one of day, week, month, quarter, year",
				})
			}
			points = periodTotals(snap.SalesByGranularity[g])
		}
	case "sales_growth_rate":
		points = growthPoints(snap.Growth)
	case "new_customers":
		points = customerCounts(snap.NewCustomers)
	case "repeat_customers":
		points = customerCounts(snap.RepeatCustomers)
	case "customer_geo":
		points = geoPoints(snap.Geo)
	case "customer_lifetime_value":
		points = lifetimeValues(snap.LifetimeValue)
	default:
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "unknown_series",
			Message: "unknown series " + strconv.Quote(name),
		})
	}

	return c.Status(http.StatusOK).JSON(SeriesResponse{Name: name, Points: points})
}

// ListCharts godoc
// @Summary List chart surfaces
// @Tags Charts
// @Produce json
// @Success 200 {array} ChartResponse
// @Router /charts [get]
func (h *DashboardHandler) ListCharts(c *fiber.Ctx) error {
	surfaces := h.board.Surfaces()
	resp := make([]ChartResponse, 0, len(surfaces))
	for _, s := range surfaces {
		resp = append(resp, chartResponse(s))
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// RenderChart godoc
// @Summary Render a chart
// @Description Renders a surface as SVG (default) or PNG. width and height are the container's measured size; hover previews a highlighted mark without changing the surface.
// @Tags Charts
// @Produce image/svg+xml
// @Produce image/png
// @Param surface path string true "Surface id, e.g. salesChart"
// @Param format query string false "svg | png"
// @Param width query int false "Width in pixels"
// @Param height query int false "Height in pixels"
// @Param hover query int false "Mark index to highlight"
// @Success 200 {string} string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /charts/{surface} [get]
func (h *DashboardHandler) RenderChart(c *fiber.Ctx) error {
	surface, err := h.board.Surface(c.Params("surface"))
	if err != nil {
		return writeChartError(c, err)
	}

	width, height := c.QueryInt("width", 0), c.QueryInt("height", 0)
	if width < 0 || height < 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_size",
			Message: "width and height must be positive",
		})
	}

	hovered := charts.CurrentHover
	if raw := c.Query("hover"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < -1 {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_hover",
				Message: "hover must be a mark index",
			})
		}
		hovered = n
	}

	scene, err := surface.Preview(width, height, hovered)
	if err != nil {
		return writeChartError(c, err)
	}

	var buf bytes.Buffer
	switch c.Query("format", "svg") {
	case "svg":
		if err := charts.WriteSVG(&buf, scene); err != nil {
			return writeChartError(c, err)
		}
		c.Set(fiber.HeaderContentType, "image/svg+xml")
	case "png":
		if err := charts.WritePNG(&buf, scene); err != nil {
			return writeChartError(c, err)
		}
		c.Set(fiber.HeaderContentType, "image/png")
	default:
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_format",
			Message: "format must be svg or png",
		})
	}

	return c.Status(http.StatusOK).Send(buf.Bytes())
}

// PointerEvent godoc
// @Summary Pointer enter / leave on a mark
// @Tags Charts
// @Accept json
// @Produce json
// @Param surface path string true "Surface id"
// @Param request body PointerRequest true "Pointer event"
// @Success 200 {object} ChartResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /charts/{surface}/pointer [post]
func (h *DashboardHandler) PointerEvent(c *fiber.Ctx) error {
	surface, err := h.board.Surface(c.Params("surface"))
	if err != nil {
		return writeChartError(c, err)
	}

	var req PointerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	switch req.Event {
	case "enter":
		err = surface.PointerEnter(req.Index)
	case "leave":
		err = surface.PointerLeave(req.Index)
	default:
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_event",
			Message: "event must be enter or leave",
		})
	}
	if err != nil {
		return writeChartError(c, err)
	}

	return c.Status(http.StatusOK).JSON(chartResponse(surface))
}

// ResizeChart godoc
// @Summary Report a surface's measured size
// @Description Sets the container size and redraws the surface
// @Tags Charts
// @Accept json
// @Produce json
// @Param surface path string true "Surface id"
// @Param request body ResizeRequest true "Measured size"
// @Success 200 {object} ChartResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /charts/{surface}/size [put]
func (h *DashboardHandler) ResizeChart(c *fiber.Ctx) error {
	surface, err := h.board.Surface(c.Params("surface"))
	if err != nil {
		return writeChartError(c, err)
	}

	var req ResizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}
	if req.Width <= 0 || req.Height <= 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_size",
			Message: "width and height must be positive",
		})
	}

	surface.Resize(req.Width, req.Height)
	return c.Status(http.StatusOK).JSON(chartResponse(surface))
}

func granularityParam(c *fiber.Ctx) (domain.Granularity, bool) {
	raw := c.Query("granularity")
	if raw == "" {
		return "", true
	}
	return domain.ParseGranularity(raw)
}

func writeRefreshError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidGranularity):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_granularity",
			Message: err.Error(),
		})
	case errors.Is(err, engine.ErrInvalidInput):
		log.Printf("[WARN] refresh: %v", err)
		return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
			Error:   "invalid_source_data",
			Message: err.Error(),
		})
	default:
		log.Printf("[WARN] refresh: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

func writeChartError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, charts.ErrUnknownSurface):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "unknown_surface",
			Message: err.Error(),
		})
	case errors.Is(err, charts.ErrNoSuchMark):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "no_such_mark",
			Message: err.Error(),
		})
	case errors.Is(err, charts.ErrNotDrawn):
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "not_drawn",
			Message: "chart has not been drawn yet; refresh the dashboard first",
		})
	default:
		log.Printf("[WARN] chart: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
