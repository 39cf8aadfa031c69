package transport

import (
	"encoding/json"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var censoredFields = []string{"password", "access_token"}

// RequestLogger writes one line per request.
func RequestLogger(logger *zap.SugaredLogger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"user_agent", v.UserAgent,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			logger.Infow("http_request", fields...)
			return nil
		},
	})
}

// BodyLogger dumps request and response bodies at debug level with
// credentials censored.
func BodyLogger(logger *zap.SugaredLogger) echo.MiddlewareFunc {
	return middleware.BodyDumpWithConfig(middleware.BodyDumpConfig{
		Skipper: func(echo.Context) bool {
			return !logger.Desugar().Core().Enabled(zapcore.DebugLevel)
		},
		Handler: func(c echo.Context, reqBody, resBody []byte) {
			logger.Debugw("http_body",
				"path", c.Path(),
				"request", string(censorBody(reqBody)),
				"response", string(censorBody(resBody)),
			)
		},
	})
}

func censorBody(body []byte) []byte {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return body
	}

	changed := false
	for _, name := range censoredFields {
		if _, ok := fields[name]; ok {
			fields[name] = json.RawMessage(`"$censored"`)
			changed = true
		}
	}
	if !changed {
		return body
	}

	out, err := json.Marshal(fields)
	if err != nil {
		return body
	}
	return out
}
