package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/commercedash/pkg/analytics"
	"github.com/jordanlanch/commercedash/pkg/export"
	"github.com/jordanlanch/commercedash/pkg/logger"
)

func newExportHandler(t *testing.T) *ExportHandler {
	t.Helper()

	exportSvc, err := export.NewService(t.TempDir(), logger.Default())
	require.NoError(t, err)

	analyticsSvc := analytics.NewService(handlerTables(), logger.Default())
	return NewExportHandler(exportSvc, analyticsSvc, nil)
}

func postExport(t *testing.T, h *ExportHandler, target string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Create(c))
	return rec
}

func TestExportCreateCSV(t *testing.T) {
	h := newExportHandler(t)

	rec := postExport(t, h, "/api/v1/exports?format=csv&start=2023-03-01&end=2023-03-31")
	require.Equal(t, http.StatusOK, rec.Code)

	disposition := rec.Header().Get(echo.HeaderContentDisposition)
	assert.Contains(t, disposition, "attachment")
	assert.Contains(t, disposition, ".csv")

	body := rec.Body.String()
	assert.Contains(t, body, "Total Revenue,150.00")
	assert.True(t, strings.Contains(body, "electronics"))
}

func TestExportCreateExcel(t *testing.T) {
	h := newExportHandler(t)

	rec := postExport(t, h, "/api/v1/exports?format=excel&start=2023-03-01&end=2023-03-31")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), ".xlsx")
	assert.NotZero(t, rec.Body.Len())
}

func TestExportCreateDefaultWindow(t *testing.T) {
	h := newExportHandler(t)

	rec := postExport(t, h, "/api/v1/exports?format=csv")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExportCreateBadFormat(t *testing.T) {
	h := newExportHandler(t)

	rec := postExport(t, h, "/api/v1/exports?format=pdf")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestExportCreateInvalidWindow(t *testing.T) {
	h := newExportHandler(t)

	rec := postExport(t, h, "/api/v1/exports?format=csv&start=2023-03-31&end=2023-03-01")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_window")
}
