package serviceutils

import (
	"github.com/labstack/echo/v4"
	"github.com/locvowork/employee_api_gateway/internal/logger"
)

// APIResponse is the envelope every inbound endpoint answers with.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// ResponseSuccess writes a success envelope with the given payload.
func ResponseSuccess(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// ResponseError logs the underlying error and writes an error envelope.
// The raw error text stays out of the response body.
func ResponseError(c echo.Context, code int, message string, err error) error {
	logger.ErrorLog(c.Request().Context(), message, err)
	return c.JSON(code, APIResponse{
		Status:  "error",
		Message: message,
	})
}

// ResponseValidationError writes a 400 envelope carrying per-field messages.
func ResponseValidationError(c echo.Context, code int, fieldErrors map[string]string) error {
	return c.JSON(code, APIResponse{
		Status:  "error",
		Message: "Validation failed",
		Errors:  fieldErrors,
	})
}
