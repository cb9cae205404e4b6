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
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"betsense/internal/cache"
	"betsense/internal/config"
	cronrunner "betsense/internal/cron"
	"betsense/internal/db"
	"betsense/internal/gateway"
	"betsense/internal/handler"
	"betsense/internal/llm"
	"betsense/internal/logger"
	"betsense/internal/notify"
	"betsense/internal/repository"
	gormrepository "betsense/internal/repository/gorm"
	"betsense/internal/repository/memory"
	"betsense/internal/seed"
	"betsense/internal/service"
	"betsense/internal/stream"

	_ "betsense/docs"
)

func main() {
	cfgPath := os.Getenv("BETSENSE_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("BETSENSE_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log, zap.String("app_env", cfg.App.Env))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store repository.Repository
	switch strings.ToLower(cfg.Store.Backend) {
	case "postgres":
		dbConn, err := db.Open(cfg.DB)
		if err != nil {
			logger.Fatal("db open failed", zap.Error(err))
		}
		defer db.Close(dbConn)
		if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
			logger.Warn("failed to set timezone", zap.Error(err))
		}
		if err := db.AutoMigrate(dbConn); err != nil {
			logger.Fatal("auto-migrate failed", zap.Error(err))
		}
		store = gormrepository.New(dbConn.Gorm)
	case "", "memory":
		store = memory.New()
	default:
		logger.Fatal("unknown store backend", zap.String("backend", cfg.Store.Backend))
	}
	logger.Info("store ready", zap.String("backend", cfg.Store.Backend))

	hub := stream.NewHub(stream.Options{OriginPatterns: cfg.Server.AllowedOrigins, Logger: logger})
	ledger := &service.Ledger{Repo: store, Stream: hub, Logger: logger}

	if cfg.Store.Seed {
		data, err := seed.Default()
		if err != nil {
			logger.Fatal("load seed failed", zap.Error(err))
		}
		if err := seed.Apply(ctx, ledger, data, logger); err != nil {
			logger.Fatal("apply seed failed", zap.Error(err))
		}
	}

	analyst, resultCache := buildAnalyst(ctx, cfg, logger)
	if closer, ok := resultCache.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	surfaces := service.NewSurfaces()
	surfaces.MaxKeys = cfg.Surfaces.MaxKeys
	surfaces.IdleTime = cfg.Surfaces.IdleTime
	advisor := &service.Advisor{
		Repo:     store,
		Actions:  &service.Actions{Analyst: analyst, Logger: logger},
		Surfaces: surfaces,
		Stream:   hub,
		Logger:   logger,
	}
	if n := buildNotifier(cfg, logger); n != nil {
		advisor.Notifier = n
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(handler.CORS(cfg.Server.AllowedOrigins))

	healthHandler := &handler.HealthHandler{Store: store}
	healthHandler.Register(engine)
	catalogHandler := &handler.CatalogHandler{DefaultHistoricalOdds: service.DefaultHistoricalOdds}
	catalogHandler.Register(engine)
	oddsHandler := &handler.OddsHandler{Repo: store, Ledger: ledger, Advisor: advisor, Logger: logger}
	oddsHandler.Register(engine)
	betsHandler := &handler.BetsHandler{Repo: store, Ledger: ledger, Logger: logger}
	betsHandler.Register(engine)
	actionsHandler := &handler.ActionsHandler{Advisor: advisor, Surfaces: surfaces, Logger: logger}
	actionsHandler.Register(engine)
	streamHandler := &handler.StreamHandler{Hub: hub}
	streamHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, ctx)
		if sweeper, ok := resultCache.(cronrunner.Sweeper); ok && cfg.Cron.CacheSweep != "" {
			if _, err := cronRunner.Add("cache_sweep", cfg.Cron.CacheSweep, cronrunner.SweepJob("cache", sweeper, logger)); err != nil {
				logger.Warn("cron register cache sweep failed", zap.Error(err))
			}
		}
		if cfg.Cron.SurfaceSweep != "" {
			if _, err := cronRunner.Add("surface_sweep", cfg.Cron.SurfaceSweep, cronrunner.SweepJob("surface", surfaces, logger)); err != nil {
				logger.Warn("cron register surface sweep failed", zap.Error(err))
			}
		}
		if cfg.Cron.StoreStats != "" {
			stats := cronrunner.StatsSource{Repo: store, Surfaces: surfaces, Stream: hub}
			if _, err := cronRunner.Add("store_stats", cfg.Cron.StoreStats, cronrunner.StoreStats(stats, logger)); err != nil {
				logger.Warn("cron register store stats failed", zap.Error(err))
			}
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown failed", zap.Error(err))
	}
	logger.Info("http server stopped")
}

// buildAnalyst picks the heuristic or model-backed analyst and wraps it in
// the result cache when enabled. The returned store is nil without a cache.
func buildAnalyst(ctx context.Context, cfg config.Config, logger *zap.Logger) (gateway.Analyst, cache.Store) {
	creds, err := llm.LoadCredentials()
	if err != nil {
		logger.Fatal("load llm credentials failed", zap.Error(err))
	}
	model, err := llm.New(cfg.LLM, creds)
	if err != nil {
		logger.Fatal("llm init failed", zap.Error(err))
	}

	var analyst gateway.Analyst = gateway.Heuristic{}
	if model != nil {
		analyst = &gateway.LLM{Model: model, Timeout: cfg.LLM.Timeout, Logger: logger}
	}
	logger.Info("analyst ready", zap.String("analyst", analyst.Name()))

	if !cfg.Cache.Enabled {
		return analyst, nil
	}
	var store cache.Store
	switch strings.ToLower(cfg.Cache.Backend) {
	case "redis":
		rs := cache.NewRedisStore(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		}, cfg.Cache.KeyPrefix)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rs.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Warn("redis unreachable, using memory cache", zap.String("addr", cfg.Cache.RedisAddr), zap.Error(err))
			_ = rs.Close()
			store = cache.NewMemoryStore()
		} else {
			store = rs
		}
	default:
		store = cache.NewMemoryStore()
	}
	return &gateway.Cached{Next: analyst, Store: store, TTL: cfg.Cache.DefaultTTL, Logger: logger}, store
}

func buildNotifier(cfg config.Config, logger *zap.Logger) *notify.Telegram {
	tg := cfg.Notify.Telegram
	if !tg.Enabled {
		return nil
	}
	creds, err := notify.LoadCredentials()
	if err != nil {
		logger.Warn("load notify credentials failed", zap.Error(err))
		return nil
	}
	n, err := notify.NewTelegram(creds.TelegramBotToken, tg.ChatID, tg.MinConfidence, logger)
	if err != nil {
		logger.Warn("telegram notifier disabled", zap.Error(err))
		return nil
	}
	logger.Info("telegram notifier ready", zap.Int64("chat_id", tg.ChatID), zap.Int("min_confidence", tg.MinConfidence))
	return n
}
