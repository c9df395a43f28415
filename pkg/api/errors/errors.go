package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/commercedash/pkg/domain"
	"github.com/jordanlanch/commercedash/pkg/logger"
	"github.com/jordanlanch/commercedash/pkg/models"
)

var log = logger.Default()

// ValidationError returns a generic validation error without exposing internal details
func ValidationError(c echo.Context, err error) error {
	log.Warn("validation error", "path", c.Request().URL.Path, "error", err)

	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "validation_error",
		Message: "Invalid request data. Please check your input and try again.",
	})
}

// InvalidWindowError rejects a window whose start is not before its end
func InvalidWindowError(c echo.Context, err error) error {
	log.Warn("invalid window", "path", c.Request().URL.Path, "error", err)

	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_window",
		Message: "The start date must be before the end date.",
	})
}

// NotFoundError returns a generic not found error
func NotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "not_found",
		Message: "The requested " + resource + " was not found.",
	})
}

// InternalError returns a generic internal server error
func InternalError(c echo.Context, err error) error {
	log.Error("internal error", "path", c.Request().URL.Path, "error", err)

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred. Please try again later.",
	})
}

// FromDomain maps a domain error onto the matching HTTP response
func FromDomain(c echo.Context, err error) error {
	switch {
	case domain.IsInvalidWindow(err):
		return InvalidWindowError(c, err)
	case domain.IsNotFound(err):
		return NotFoundError(c, "resource")
	case domain.IsBadRequest(err):
		return ValidationError(c, err)
	default:
		return InternalError(c, err)
	}
}
