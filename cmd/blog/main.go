package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/streamvault/streamvault/config"
	"github.com/streamvault/streamvault/internal/application"
	"github.com/streamvault/streamvault/internal/blog"
	pginfra "github.com/streamvault/streamvault/internal/infrastructure/postgres"
	"github.com/streamvault/streamvault/pkg/helpers"
)

// The blog server renders HTML pages instead of JSON. It shares the
// Postgres instance and GCS bucket with the api server but runs on its own
// port with its own session cookie.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-blog", cfg.Env)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
	if err != nil {
		log.Fatalf("failed to init GCS client: %v", err)
	}
	defer func() { _ = gcsClient.Close() }()

	uploader := application.NewGCSUploader(gcsClient, cfg.GCSBucket)
	tokens := blog.NewTokenManager(cfg.JWTAccessSecret, cfg.RefreshTTL)

	repo := blog.NewRepository(pool)
	svc := blog.NewService(repo, tokens, uploader)
	handlers := blog.NewHandlers(svc, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}
	r.LoadHTMLGlob(filepath.Join(cfg.BlogTemplatesDir, "*.html"))

	handlers.Routes(r, tokens)

	srv := &http.Server{Addr: ":" + cfg.BlogPort, Handler: r}
	go func() {
		logger.Infof("blog server starting on :%s", cfg.BlogPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down blog server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
