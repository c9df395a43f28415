package handlers

import (
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/commercedash/pkg/analytics"
	apierrors "github.com/jordanlanch/commercedash/pkg/api/errors"
	"github.com/jordanlanch/commercedash/pkg/domain"
	"github.com/jordanlanch/commercedash/pkg/export"
	"github.com/jordanlanch/commercedash/pkg/metrics"
	"github.com/jordanlanch/commercedash/pkg/models"
)

// ExportHandler serves window exports
type ExportHandler struct {
	exportService *export.Service
	analyticsSvc  *analytics.Service
	metrics       *metrics.Metrics
	validator     *validator.Validate
}

func NewExportHandler(exportService *export.Service, analyticsSvc *analytics.Service, m *metrics.Metrics) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		analyticsSvc:  analyticsSvc,
		metrics:       m,
		validator:     validator.New(),
	}
}

// Create computes the requested window's aggregates and streams them back
// as a CSV or Excel attachment
func (h *ExportHandler) Create(c echo.Context) error {
	var req models.ExportRequest
	binder := &echo.DefaultBinder{}
	if err := binder.BindBody(c, &req); err != nil {
		return apierrors.ValidationError(c, err)
	}
	// query params are not bound on POST by default
	if err := binder.BindQueryParams(c, &req); err != nil {
		return apierrors.ValidationError(c, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	start, end, err := h.resolveWindow(req)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	overview, err := h.analyticsSvc.Overview(c.Request().Context(), start, end)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	path, err := h.exportService.CreateExport(overview, req.Format)
	if err != nil {
		return apierrors.InternalError(c, err)
	}
	if h.metrics != nil {
		h.metrics.RecordExportCreated(req.Format)
	}

	return c.Attachment(path, filepath.Base(path))
}

func (h *ExportHandler) resolveWindow(req models.ExportRequest) (time.Time, time.Time, error) {
	if req.Start == "" || req.End == "" {
		start, end, ok := h.analyticsSvc.DefaultWindow()
		if !ok {
			return time.Time{}, time.Time{}, domain.NewNotFoundError("dataset")
		}
		return start, end, nil
	}

	start, _ := time.Parse(dateLayout, req.Start)
	end, _ := time.Parse(dateLayout, req.End)
	return start, end, nil
}
