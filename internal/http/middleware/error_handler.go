package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"catalogadmin.cl/app/internal/shared/apperr"
	"catalogadmin.cl/app/templates/pages"
)

func WantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func ErrorHandler(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		writeError(c, l, c.Errors.Last().Err)
	}
}

// writeError logs err and answers with its public message as JSON or as
// the HTML error page.
func writeError(c *gin.Context, l *slog.Logger, err error) {
	status := apperr.HTTPStatus(err)
	publicMsg := apperr.PublicMessage(err)
	rid := GetRequestID(c)

	level := slog.LevelError
	if status < 500 {
		level = slog.LevelWarn
	}
	l.LogAttrs(c.Request.Context(), level, "request_failed",
		slog.String("request_id", rid),
		slog.Int("status", status),
		slog.Any("err", err),
	)

	if WantsJSON(c) {
		payload := gin.H{
			"error":      publicMsg,
			"request_id": rid,
		}
		if ae, ok := apperr.As(err); ok && len(ae.Fields) > 0 {
			payload["fields"] = ae.Fields
		}
		c.AbortWithStatusJSON(status, payload)
		return
	}

	c.Abort()
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := pages.Error(status, publicMsg, rid, GetFlash(c)).Render(c.Request.Context(), c.Writer); err != nil {
		l.LogAttrs(c.Request.Context(), slog.LevelError, "render_failed",
			slog.String("request_id", rid),
			slog.Any("err", err),
		)
	}
}
