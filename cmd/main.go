package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "pawstails/docs"
	"pawstails/internal/app"
	"pawstails/internal/config"
	"pawstails/internal/logger"
)

// @title Paws & Tails API
// @version 1.0
// @description Content backend for the Paws & Tails pet care blog: articles, versions, static pages and sitemap.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("config: " + err.Error())
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	warnings, err := cfg.Validate()
	for _, w := range warnings {
		logger.Log.Warn("Config warning", zap.String("warning", w))
	}
	if err != nil {
		logger.Log.Fatal("Invalid configuration", zap.Error(err))
	}
	logger.Log.Info("Configuration loaded",
		zap.String("db", cfg.GetDSNSafe()),
		zap.String("public_dir", cfg.PublicDir),
		zap.String("website_url", cfg.WebsiteURL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.InitApp(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("Application init failed", zap.Error(err))
	}
	defer a.Close()

	a.Router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	a.Router.PathPrefix("/").Handler(a.Static)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsMiddleware.Handler(a.Router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if a.Scheduler != nil {
		a.Scheduler.Start()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Log.Error("Server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Log.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Graceful shutdown failed", zap.Error(err))
	}
}
