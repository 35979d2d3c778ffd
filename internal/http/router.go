package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"catalogadmin.cl/app/internal/config"
	"catalogadmin.cl/app/internal/http/flash"
	"catalogadmin.cl/app/internal/http/handlers/admin"
	"catalogadmin.cl/app/internal/http/middleware"
	"catalogadmin.cl/app/internal/http/render"
	"catalogadmin.cl/app/internal/modules/products"
	"catalogadmin.cl/app/internal/storage"
)

type Deps struct {
	Logger   *slog.Logger
	DB       *gorm.DB
	Catalog  products.Catalog
	Uploader *storage.Uploader
	Sections config.Sections
	Flash    *flash.Codec

	MaxUploadBytes int64

	// LocalUploads serves the local storage directory under its URL prefix.
	LocalUploads *storage.Local
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20

	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.ErrorHandler(d.Logger),
		middleware.Flash(d.Flash, d.Logger),
	)

	r.GET("/healthz", health(d.DB))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/static", "./static")
	if d.LocalUploads != nil && d.LocalUploads.URLPrefix != "" {
		r.Static(d.LocalUploads.URLPrefix, d.LocalUploads.BaseDir)
	}

	catalog := d.Catalog
	if catalog == nil {
		catalog = products.NewRepo(d.DB)
	}
	var uploader products.ImageUploader
	if d.Uploader != nil {
		uploader = d.Uploader
	}
	h := admin.NewProductsHandler(catalog, uploader, d.Sections, d.Flash, d.Logger)
	if d.MaxUploadBytes > 0 {
		h.MaxUploadBytes = d.MaxUploadBytes
	}

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/admin/productos") })

	for _, prefix := range []string{"/admin/productos", "/api/admin/productos"} {
		g := r.Group(prefix)
		g.GET("", h.Index)
		g.GET("/:seccion", h.List)
		g.POST("/:seccion/:id", h.Submit)
	}

	r.NoRoute(func(c *gin.Context) {
		if middleware.WantsJSON(c) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No encontrado.", "request_id": middleware.GetRequestID(c)})
			return
		}
		render.ErrorPage(c, http.StatusNotFound, "La página solicitada no existe.")
	})

	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Request.Context())
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "db": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
