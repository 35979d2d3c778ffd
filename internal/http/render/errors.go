package render

import (
	"github.com/gin-gonic/gin"

	"catalogadmin.cl/app/internal/http/middleware"
	"catalogadmin.cl/app/templates/pages"
)

func ErrorPage(c *gin.Context, status int, msg string) {
	Component(c, status, pages.Error(status, msg, middleware.GetRequestID(c), middleware.GetFlash(c)))
}
