package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogadmin.cl/app/internal/http/flash"
	"catalogadmin.cl/app/pkg/view"
)

const CtxKeyFlash = "flash"

// Flash moves the one-shot alert left by the previous product submit from
// its cookie into the context, then expires the cookie. A cookie that
// fails verification is expired and logged as flash_rejected.
func Flash(codec *flash.Codec, l *slog.Logger) gin.HandlerFunc {
	if l == nil {
		l = slog.Default()
	}
	return func(c *gin.Context) {
		raw, err := c.Cookie(codec.CookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		f, err := codec.Decode(raw)
		if err != nil {
			l.LogAttrs(c.Request.Context(), slog.LevelWarn, "flash_rejected",
				slog.String("request_id", GetRequestID(c)),
				slog.Any("err", err),
			)
		} else {
			c.Set(CtxKeyFlash, f)
		}
		expireFlash(c, codec)

		c.Next()
	}
}

// GetFlash returns the alert to show on this page, or nil.
func GetFlash(c *gin.Context) *view.Flash {
	v, _ := c.Get(CtxKeyFlash)
	f, _ := v.(*view.Flash)
	return f
}

// SetFlashCookie stores f for the page the client is redirected to. A flash
// that cannot be encoded is dropped; the redirect still happens.
func SetFlashCookie(c *gin.Context, codec *flash.Codec, f view.Flash) {
	val, err := codec.Encode(f)
	if err != nil {
		slog.Default().LogAttrs(c.Request.Context(), slog.LevelWarn, "flash_dropped",
			slog.String("request_id", GetRequestID(c)),
			slog.String("kind", string(f.Kind)),
			slog.Any("err", err),
		)
		return
	}
	writeFlash(c, codec, val, codec.CookieMaxAge())
}

func expireFlash(c *gin.Context, codec *flash.Codec) {
	writeFlash(c, codec, "", -1)
}

func writeFlash(c *gin.Context, codec *flash.Codec, val string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(codec.CookieName, val, maxAge, "/", "", codec.Secure, true)
}
