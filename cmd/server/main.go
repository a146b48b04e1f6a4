package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/db"
	"yatube/internal/logger"
	"yatube/internal/models"
	"yatube/internal/router"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, finding env vars from system")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.App.Environment)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	models.PostSummaryLength = cfg.Feed.PostSummaryLength

	ctx := context.Background()

	// Initialize Database
	gdb, err := db.Open(cfg.App.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	store, err := newCacheStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up page cache")
	}
	storage, err := newStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up media storage")
	}

	templates, err := router.LoadTemplates(cfg.App.TemplatesDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load templates")
	}

	r := router.New(router.Deps{
		DB:            gdb,
		Cache:         store,
		CacheTTL:      cfg.Cache.TTL,
		Storage:       storage,
		PageSize:      cfg.Feed.PageSize,
		SessionSecret: cfg.App.SessionSecret,
		SecureCookies: !cfg.IsDevelopment(),
		SiteURL:       cfg.App.SiteURL,
		Templates:     templates,
		StaticDir:     "./web/static",
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Yatube server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
}

func newCacheStore(ctx context.Context, cfg *config.Config) (cache.Store, error) {
	if cfg.Cache.Backend == "redis" {
		client := cache.NewRedisClient(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		return cache.NewRedisStore(ctx, client, "yatube:")
	}
	return cache.NewMemoryStore(cfg.Cache.Size)
}

func newStorage(ctx context.Context, cfg *config.Config) (services.Storage, error) {
	if cfg.Storage.Backend == "minio" {
		m := cfg.MinIO
		return services.NewMinIOStorage(ctx, m.Endpoint, m.AccessKey, m.SecretKey, m.Bucket, m.UseSSL)
	}
	return services.NewLocalStorage(cfg.Storage.MediaRoot)
}
