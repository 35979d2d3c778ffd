package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"catalogadmin.cl/app/internal/monitoring"
)

const unmatchedRoute = "unmatched"

// AccessLog writes one http_request line per request. Requests are keyed
// by route template and the section/product params, so query strings and
// unknown paths never reach the log or the metric labels.
func AccessLog(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		monitoring.TickHTTPRequest(route, c.Request.Method, status)

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		case route == "/healthz" || route == "/metrics":
			level = slog.LevelDebug
		}

		attrs := []slog.Attr{
			slog.String("request_id", GetRequestID(c)),
			slog.String("method", c.Request.Method),
			slog.String("route", route),
		}
		if s := c.Param("seccion"); s != "" {
			attrs = append(attrs, slog.String("section", s))
		}
		if id := c.Param("id"); id != "" {
			attrs = append(attrs, slog.String("product_id", id))
		}
		attrs = append(attrs,
			slog.Int("status", status),
			slog.Int64("latency_ms", time.Since(start).Milliseconds()),
			slog.Int("bytes", c.Writer.Size()),
			slog.String("client_ip", c.ClientIP()),
		)
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		l.LogAttrs(c.Request.Context(), level, "http_request", attrs...)
	}
}
