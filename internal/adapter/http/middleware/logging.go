package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// quietPrefixes lists paths whose successful responses log at debug.
// Health probes and swagger assets fire constantly and would otherwise
// drown out search traffic in the request log.
var quietPrefixes = []string{"/health", "/swagger"}

// RequestLogger returns middleware that logs one line per completed request.
// Each request gets a sub-logger tagged with its request ID, mirroring the
// provider-tagged loggers the adapters use. The log level follows the
// response status: 5xx at error, 4xx at warn, everything else at info,
// except quiet paths which drop to debug on success.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				// Let Echo's error handler shape the response before
				// the status is read
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			reqLog := log.With().
				Str("request_id", GetRequestID(c)).
				Logger()

			reqLog.WithLevel(completionLevel(res.Status, req.URL.Path)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("query", req.URL.RawQuery).
				Int("status", res.Status).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("bytes_out", res.Size).
				Str("client_ip", c.RealIP()).
				Str("user_agent", req.UserAgent()).
				Msg("HTTP request")

			return nil
		}
	}
}

// completionLevel picks the log level for a finished request.
func completionLevel(status int, path string) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	}
	for _, prefix := range quietPrefixes {
		if strings.HasPrefix(path, prefix) {
			return zerolog.DebugLevel
		}
	}
	return zerolog.InfoLevel
}
