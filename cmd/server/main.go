package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oGrizz34/quant-canvas/internal/auth"
	"github.com/oGrizz34/quant-canvas/internal/config"
	"github.com/oGrizz34/quant-canvas/internal/cron"
	"github.com/oGrizz34/quant-canvas/internal/db"
	"github.com/oGrizz34/quant-canvas/internal/handler"
	"github.com/oGrizz34/quant-canvas/internal/logger"
	gormrepository "github.com/oGrizz34/quant-canvas/internal/repository/gorm"
	"github.com/oGrizz34/quant-canvas/internal/service"
)

func main() {
	cfgPath := os.Getenv("QC_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	envOnly := strings.EqualFold(os.Getenv("QC_ENV_ONLY"), "true")

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	database, err := db.Open(cfg.DB)
	if err != nil {
		log.Fatal("open database failed", zap.Error(err))
	}
	defer db.Close(database)

	if err := db.SetTimezone(database, cfg.DB.Timezone); err != nil {
		log.Warn("set timezone failed", zap.Error(err))
	}
	if err := db.AutoMigrate(database); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	repo := gormrepository.New(database.Gorm)

	strategies := &service.StrategyService{Repo: repo, Logger: log}
	updater := &service.StatsUpdater{Repo: repo, Logger: log}

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())
	r.Use(auth.RequireUserMiddleware())

	(&handler.HealthHandler{DB: database}).Register(r)
	(&handler.CatalogHandler{}).Register(r)
	(&handler.StrategyHandler{Service: strategies}).Register(r)
	(&handler.CommunityHandler{Service: strategies}).Register(r)
	(&handler.PortfolioHandler{Repo: repo, Cfg: cfg.Portfolio, Logger: log}).Register(r)
	(&handler.SignalHandler{Repo: repo, Cfg: cfg.Signals}).Register(r)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := cron.New(ctx, log)
	if cfg.Cron.Enabled {
		if err := runner.Add(cfg.Cron.StatsRefresh, "stats_refresh", func(jobCtx context.Context) {
			if err := updater.UpdateOnce(jobCtx); err != nil {
				log.Warn("stats refresh failed", zap.Error(err))
			}
		}); err != nil {
			log.Fatal("schedule stats refresh failed", zap.Error(err))
		}
		runner.Start()
	}

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: r,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	runner.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown failed", zap.Error(err))
	}
	log.Info("bye")
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-User-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
