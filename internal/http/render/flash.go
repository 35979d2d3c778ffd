package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogadmin.cl/app/internal/http/flash"
	"catalogadmin.cl/app/internal/http/middleware"
	"catalogadmin.cl/app/pkg/view"
)

// RedirectWithFlash uses 303 so a POST is followed by a GET.
func RedirectWithFlash(c *gin.Context, codec *flash.Codec, location string, kind view.FlashKind, msg string) {
	middleware.SetFlashCookie(c, codec, view.Flash{Kind: kind, Message: msg})
	c.Redirect(http.StatusSeeOther, location)
}
