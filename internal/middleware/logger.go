package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request through zap.  Server errors are
// logged at error level, everything else at info.
func RequestLogger(log *zap.SugaredLogger) echo.MiddlewareFunc {
	log = log.With("component", "http")
	cfg := echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
	}
	cfg.LogValuesFunc = func(c echo.Context, v echomw.RequestLoggerValues) error {
		kv := []interface{}{
			"method", v.Method,
			"uri", v.URI,
			"status", v.Status,
			"latency", v.Latency,
			"remote_ip", v.RemoteIP,
		}
		if v.Error != nil {
			kv = append(kv, "error", v.Error)
		}
		if v.Status >= 500 {
			log.Errorw("request", kv...)
		} else {
			log.Infow("request", kv...)
		}
		return nil
	}
	return echomw.RequestLoggerWithConfig(cfg)
}
