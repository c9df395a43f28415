package models

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WindowQuery carries the optional date range on dashboard endpoints.
// Both dates are inclusive calendar days.
type WindowQuery struct {
	Start string `query:"start" validate:"omitempty,datetime=2006-01-02"`
	End   string `query:"end" validate:"omitempty,datetime=2006-01-02"`
}

// ExportRequest asks for the current window's aggregates as a file
type ExportRequest struct {
	Format string `json:"format" query:"format" validate:"required,oneof=csv excel"`
	Start  string `json:"start" query:"start" validate:"omitempty,datetime=2006-01-02"`
	End    string `json:"end" query:"end" validate:"omitempty,datetime=2006-01-02"`
}

// DateRangeResponse is the dataset's purchase date span, for date pickers
type DateRangeResponse struct {
	MinDate string `json:"min_date"`
	MaxDate string `json:"max_date"`
}

// HealthResponse reports process and dataset health
type HealthResponse struct {
	Status  string `json:"status"`
	Dataset string `json:"dataset"`
	Orders  int    `json:"orders"`
}
