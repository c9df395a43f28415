package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/commercedash/pkg/dataset"
	"github.com/jordanlanch/commercedash/pkg/models"
)

func TestDatasetRange(t *testing.T) {
	h := NewDatasetHandler(handlerTables())

	rec := doRequest(t, h.Range, "/api/v1/dataset/range")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.DateRangeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2023-03-05", body.MinDate)
	assert.Equal(t, "2023-03-20", body.MaxDate)
}

func TestDatasetRangeEmpty(t *testing.T) {
	h := NewDatasetHandler(&dataset.Tables{})

	rec := doRequest(t, h.Range, "/api/v1/dataset/range")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDatasetSummary(t *testing.T) {
	h := NewDatasetHandler(handlerTables())

	rec := doRequest(t, h.Summary, "/api/v1/dataset/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary dataset.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.Orders.TotalRecords)
	assert.Equal(t, 2, summary.Customers.TotalRecords)
}

func TestDatasetHealth(t *testing.T) {
	t.Run("loaded", func(t *testing.T) {
		h := NewDatasetHandler(handlerTables())

		rec := doRequest(t, h.Health, "/health")
		require.Equal(t, http.StatusOK, rec.Code)

		var body models.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "loaded", body.Dataset)
		assert.Equal(t, 2, body.Orders)
	})

	t.Run("empty dataset", func(t *testing.T) {
		h := NewDatasetHandler(&dataset.Tables{})

		rec := doRequest(t, h.Health, "/health")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"dataset":"empty"`)
	})
}
