package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apierrors "github.com/jordanlanch/commercedash/pkg/api/errors"
	"github.com/jordanlanch/commercedash/pkg/dataset"
	"github.com/jordanlanch/commercedash/pkg/models"
)

// DatasetHandler serves dataset introspection endpoints
type DatasetHandler struct {
	tables *dataset.Tables
}

func NewDatasetHandler(tables *dataset.Tables) *DatasetHandler {
	return &DatasetHandler{tables: tables}
}

// Summary returns record counts and distributions per table
func (h *DatasetHandler) Summary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.tables.Summarize())
}

// Range returns the dataset's purchase date span for date pickers
func (h *DatasetHandler) Range(c echo.Context) error {
	min, max, ok := h.tables.DateRange()
	if !ok {
		return apierrors.NotFoundError(c, "dataset date range")
	}
	return c.JSON(http.StatusOK, models.DateRangeResponse{
		MinDate: min.Format(dateLayout),
		MaxDate: max.Format(dateLayout),
	})
}

// Health reports process and dataset health
func (h *DatasetHandler) Health(c echo.Context) error {
	status := "ok"
	datasetStatus := "loaded"
	if len(h.tables.Orders) == 0 {
		datasetStatus = "empty"
	}
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:  status,
		Dataset: datasetStatus,
		Orders:  len(h.tables.Orders),
	})
}
