package main

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"catalogadmin.cl/app/internal/config"
	"catalogadmin.cl/app/internal/database"
	apphttp "catalogadmin.cl/app/internal/http"
	"catalogadmin.cl/app/internal/http/flash"
	"catalogadmin.cl/app/internal/modules/products"
	"catalogadmin.cl/app/internal/storage"
	"catalogadmin.cl/app/internal/telemetry"
	"catalogadmin.cl/app/pkg/logger"
	"catalogadmin.cl/app/pkg/shutdown"
)

const serviceName = "catalog-admin"

func main() {
	// .env is optional; prod uses real env vars
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: serviceName,
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	if err := run(cfg, log); err != nil {
		log.Error("fatal", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	stopTracing, err := telemetry.Setup(ctx, serviceName)
	if err != nil {
		return err
	}
	defer func() {
		sctx, c := context.WithTimeout(context.Background(), 5*time.Second)
		defer c()
		_ = stopTracing(sctx)
	}()

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}

	sections, err := config.LoadSections(cfg.SectionsFile)
	if err != nil {
		return err
	}
	if len(sections.Items) == 0 {
		log.Warn("sections_catalog_empty", slog.String("file", cfg.SectionsFile))
	}

	st, err := storage.FromEnv(ctx)
	if err != nil {
		return err
	}
	uploader := storage.NewUploader(st.Storage, st.Driver, cfg.UploadPrefix, log)
	log.Info("storage_ready", slog.String("driver", st.Driver))

	secret, err := flashSecret(cfg, log)
	if err != nil {
		return err
	}

	deps := apphttp.Deps{
		Logger:         log,
		DB:             db,
		Catalog:        products.NewRepo(db),
		Uploader:       uploader,
		Sections:       sections,
		Flash:          flash.NewCodec(secret, "flash", cfg.CookieSecure),
		MaxUploadBytes: int64(cfg.MaxUploadMB) << 20,
	}
	if local, ok := st.Storage.(*storage.Local); ok {
		deps.LocalUploads = local
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           apphttp.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http_listen", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("http_shutdown")
	sctx, c := context.WithTimeout(context.Background(), 10*time.Second)
	defer c()
	return srv.Shutdown(sctx)
}

// flashSecret is random per process in dev; prod must set FLASH_SECRET.
func flashSecret(cfg config.Config, log *slog.Logger) ([]byte, error) {
	if cfg.FlashSecret != "" {
		return []byte(cfg.FlashSecret), nil
	}
	if cfg.IsProd() {
		return nil, errors.New("FLASH_SECRET environment variable is required in prod")
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	log.Warn("flash_secret_generated")
	return b, nil
}
