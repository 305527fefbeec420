package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yamdb/database"
	"yamdb/internal/config"
	"yamdb/internal/logger"
	"yamdb/internal/mail"
	"yamdb/internal/microservices/http-api/router"
	"yamdb/internal/ratelimit"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer zlog.Sync()
	zap.ReplaceGlobals(zlog)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg, zlog)
	if err != nil {
		zlog.Fatal("database unavailable", zap.Error(err))
	}
	defer database.Close(db)

	limiter, closeLimiter, err := ratelimit.New(cfg)
	if err != nil {
		zlog.Fatal("rate limiter unavailable", zap.Error(err))
	}
	defer func() {
		if err := closeLimiter(); err != nil {
			zlog.Warn("close rate limiter", zap.Error(err))
		}
	}()

	engine, err := router.New(router.Options{
		Config:  cfg,
		DB:      db,
		Logger:  zlog,
		Mailer:  mail.New(cfg, zlog),
		Limiter: limiter,
	})
	if err != nil {
		zlog.Fatal("build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("yamdb api listening", zap.String("addr", srv.Addr), zap.Bool("tls", cfg.TLSEnabled))
		var err error
		if cfg.TLSEnabled {
			err = srv.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
		} else {
			err = srv.ListenAndServe()
		}
		if !errors.Is(err, http.ErrServerClosed) {
			zlog.Error("listen", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("graceful shutdown failed", zap.Error(err))
	}
	zlog.Info("yamdb api stopped")
}
