package handlers

import (
	"net/http"

	"barber_flow_app_go/config"
	"barber_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body for every failed request
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// httpStatusFor maps service error codes to HTTP statuses
func httpStatusFor(code string) int {
	switch code {
	case services.CodeValidationError, services.CodeInvalidTimeRange, services.CodeInvalidDateRange:
		return http.StatusBadRequest
	case services.CodeNotFound:
		return http.StatusNotFound
	case services.CodeUnauthorized:
		return http.StatusForbidden
	case services.CodeSlotConflict, services.CodeConflictsExist, services.CodeConcurrencyConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// jsonError renders a service error as JSON, hiding internals behind a
// generic message when the error carries no code
func jsonError(c echo.Context, err error) error {
	return jsonErrorData(c, err, nil)
}

// jsonErrorData is jsonError with an extra payload (e.g. conflict lists)
func jsonErrorData(c echo.Context, err error, data interface{}) error {
	code := services.ErrorCode(err)
	if code == "" {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    services.CodeDatabaseError,
			Message: "internal error",
		})
	}
	return c.JSON(httpStatusFor(code), ErrorResponse{
		Code:    code,
		Message: err.Error(),
		Data:    data,
	})
}

// getConfig pulls the config injected by the middleware in main
func getConfig(c echo.Context) *config.Config {
	return c.Get("config").(*config.Config)
}

// getPushSender pulls the push transport injected by the middleware in main,
// defaulting to the logging sender
func getPushSender(c echo.Context) services.PushSender {
	if sender, ok := c.Get("pushSender").(services.PushSender); ok {
		return sender
	}
	return services.LogPushSender{}
}
