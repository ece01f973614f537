package http

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	pkgerrors "github.com/slobodan-ilic/ggrc-core/pkg/errors"
)

// NewErrorHandler renders AppError codes as HTTP statuses and logs the cause
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		httpErr := pkgerrors.ToHTTPError(err)
		body := map[string]interface{}{"error": httpErr.Message}

		var echoErr *echo.HTTPError
		if pkgerrors.As(err, &echoErr) {
			// router and binder errors
			logger.Debug("Request rejected",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", httpErr.Code),
				zap.Error(err))
		} else {
			body["code"] = pkgerrors.CodeOf(err)
			pkgerrors.LogError(logger, err, "Request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", httpErr.Code))
		}

		var sendErr error
		if c.Request().Method == echo.HEAD {
			sendErr = c.NoContent(httpErr.Code)
		} else {
			sendErr = c.JSON(httpErr.Code, body)
		}
		if sendErr != nil {
			logger.Error("Failed to send error response", zap.Error(sendErr))
		}
	}
}
