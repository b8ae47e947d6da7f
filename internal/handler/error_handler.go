package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// NewHTTPErrorHandler renders errors that escape handlers and middleware in
// the response envelope.  Unknown routes and unsupported methods become 404
// "Route not found"; other client errors keep their status; everything else
// is logged and reported as a generic 500.
func NewHTTPErrorHandler(log *zap.SugaredLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := msgInternal
		var he *echo.HTTPError
		if errors.As(err, &he) {
			switch {
			case he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed:
				status, msg = http.StatusNotFound, msgRouteNotFound
			case he.Code < http.StatusInternalServerError:
				status = he.Code
				msg = http.StatusText(he.Code)
				if m, ok := he.Message.(string); ok && m != "" {
					msg = m
				}
			}
		}
		if status >= http.StatusInternalServerError {
			log.Errorw("unhandled error", "method", c.Request().Method, "path", c.Request().URL.Path, "error", err)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, errorBody(msg))
		}
		if werr != nil {
			log.Errorw("writing error response", "error", werr)
		}
	}
}
