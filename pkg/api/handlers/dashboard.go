package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/commercedash/pkg/analytics"
	apierrors "github.com/jordanlanch/commercedash/pkg/api/errors"
	"github.com/jordanlanch/commercedash/pkg/cache"
	"github.com/jordanlanch/commercedash/pkg/domain"
	"github.com/jordanlanch/commercedash/pkg/metrics"
	"github.com/jordanlanch/commercedash/pkg/models"
	"github.com/jordanlanch/commercedash/pkg/period"
	"github.com/jordanlanch/commercedash/pkg/present"
)

const dateLayout = "2006-01-02"

// DashboardHandler serves the dashboard endpoints
type DashboardHandler struct {
	service   *analytics.Service
	store     *cache.Store
	metrics   *metrics.Metrics
	validator *validator.Validate
}

// NewDashboardHandler creates a new dashboard handler. The cache store and
// metrics may be nil; both degrade to no-ops.
func NewDashboardHandler(service *analytics.Service, store *cache.Store, m *metrics.Metrics) *DashboardHandler {
	return &DashboardHandler{
		service:   service,
		store:     store,
		metrics:   m,
		validator: validator.New(),
	}
}

// parseWindow reads the start/end query params, falling back to the last
// year of data when absent
func (h *DashboardHandler) parseWindow(c echo.Context) (time.Time, time.Time, error) {
	var q models.WindowQuery
	if err := c.Bind(&q); err != nil {
		return time.Time{}, time.Time{}, domain.NewBadRequestError("malformed query parameters")
	}
	if err := h.validator.Struct(q); err != nil {
		return time.Time{}, time.Time{}, domain.NewBadRequestError("dates must be YYYY-MM-DD")
	}

	if q.Start == "" || q.End == "" {
		start, end, ok := h.service.DefaultWindow()
		if !ok {
			return time.Time{}, time.Time{}, domain.NewNotFoundError("dataset")
		}
		return start, end, nil
	}

	start, _ := time.Parse(dateLayout, q.Start)
	end, _ := time.Parse(dateLayout, q.End)
	return start, end, nil
}

// overview returns the window's overview, served from cache when possible
func (h *DashboardHandler) overview(c echo.Context) (*analytics.DashboardOverview, error) {
	start, end, err := h.parseWindow(c)
	if err != nil {
		return nil, err
	}

	current, _, err := period.Resolve(start, end)
	if err != nil {
		return nil, err
	}

	ctx := c.Request().Context()
	if cached, hit := h.store.GetOverview(ctx, current); hit {
		if h.metrics != nil {
			h.metrics.RecordCacheHit()
		}
		return cached, nil
	}
	if h.metrics != nil {
		h.metrics.RecordCacheMiss()
	}

	began := time.Now()
	overview, err := h.service.Overview(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if h.metrics != nil {
		h.metrics.RecordDashboardComputed(time.Since(began))
	}

	h.store.SetOverview(ctx, overview)
	return overview, nil
}

// Overview returns the full chart-ready dashboard payload
func (h *DashboardHandler) Overview(c echo.Context) error {
	overview, err := h.overview(c)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, present.BuildDashboard(overview))
}

// KPIs returns the headline cards only
func (h *DashboardHandler) KPIs(c echo.Context) error {
	overview, err := h.overview(c)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"window": overview.Window,
		"cards":  present.KPICards(overview.KPIs),
	})
}

// Trend returns the monthly revenue series with the previous window
// overlaid
func (h *DashboardHandler) Trend(c echo.Context) error {
	overview, err := h.overview(c)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, present.Trend(overview.Trend, overview.PreviousTrend))
}

// Categories returns the top categories chart
func (h *DashboardHandler) Categories(c echo.Context) error {
	overview, err := h.overview(c)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, present.Categories(overview.Categories))
}

// States returns the per-state revenue map data
func (h *DashboardHandler) States(c echo.Context) error {
	overview, err := h.overview(c)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, present.States(overview.States))
}

// Satisfaction returns the delivery-speed satisfaction chart, or its
// explicit placeholder
func (h *DashboardHandler) Satisfaction(c echo.Context) error {
	overview, err := h.overview(c)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, present.Satisfaction(overview.Satisfaction))
}

// SummaryCards returns the delivery and review summary cards
func (h *DashboardHandler) SummaryCards(c echo.Context) error {
	overview, err := h.overview(c)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"delivery":    present.Delivery(overview.Delivery),
		"review":      present.Review(overview.Reviews),
		"fulfillment": overview.Fulfillment,
	})
}
