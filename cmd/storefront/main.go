package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adminapp "github.com/aaushop/storefront/internal/application/admin"
	catalogapp "github.com/aaushop/storefront/internal/application/catalog"
	sessionapp "github.com/aaushop/storefront/internal/application/session"
	"github.com/aaushop/storefront/internal/infrastructure/cache"
	"github.com/aaushop/storefront/internal/infrastructure/config"
	"github.com/aaushop/storefront/internal/infrastructure/health"
	"github.com/aaushop/storefront/internal/infrastructure/logger"
	"github.com/aaushop/storefront/internal/infrastructure/persistence"
	"github.com/aaushop/storefront/internal/infrastructure/storeapi"
	"github.com/aaushop/storefront/internal/interfaces/http/handler"
	"github.com/aaushop/storefront/internal/interfaces/http/middleware"
	"github.com/aaushop/storefront/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	storeURL := pflag.String("store-url", "", "remote store backend base URL (overrides config)")
	localPath := pflag.String("local-path", "", "local state database path (overrides config)")
	port := pflag.String("port", "", "HTTP listen port (overrides config)")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	if *storeURL != "" {
		cfg.Store.BaseURL = *storeURL
	}
	if *localPath != "" {
		cfg.Local.Path = *localPath
	}
	if *port != "" {
		cfg.App.Port = *port
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting AauShop storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("store_url", cfg.Store.BaseURL),
	)

	// Local persistence
	db, err := persistence.NewDatabaseWithLogger(&cfg.Local,
		logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level)))
	if err != nil {
		log.Fatal("Failed to open local database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing local database", zap.Error(err))
		}
	}()

	stateStore, err := persistence.NewGormStateStore(db.DB)
	if err != nil {
		log.Fatal("Failed to initialize state store", zap.Error(err))
	}

	// Remote store gateway
	tokens := storeapi.NewTokenStore(log)
	gateway := storeapi.NewClient(storeapi.Config{
		BaseURL:        cfg.Store.BaseURL,
		RequestTimeout: cfg.Store.RequestTimeout,
	}, tokens, log)

	// Session bootstrap: restore whatever state survived the last run
	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 10*time.Second)
	manager := sessionapp.NewManager(bootstrapCtx, stateStore, gateway, tokens, log)
	cancelBootstrap()

	// Catalog cache: Redis when configured, in-memory otherwise
	var catalogCache cache.CatalogCache
	if cfg.Cache.Backend == "redis" {
		factory := cache.NewCatalogCacheFactory(cache.RedisConfig{
			Host:     cfg.Cache.Redis.Host,
			Port:     cfg.Cache.Redis.Port,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		}, cfg.Cache.TTL, cache.WithLogger(log))
		catalogCache, err = factory.CreateCache()
		if err != nil {
			log.Fatal("Failed to initialize catalog cache", zap.Error(err))
		}
	} else {
		catalogCache = cache.NewInMemoryCatalogCache(cfg.Cache.TTL)
	}

	browseService := catalogapp.NewBrowseService(gateway, catalogCache, log)
	valuationService := adminapp.NewValuationService(gateway, catalogCache, log)

	// Backend health monitor
	monitor := health.NewMonitor(health.MonitorConfig{
		Interval:     cfg.Health.Interval,
		ProbeTimeout: cfg.Health.ProbeTimeout,
	}, gateway, log)
	if err := monitor.Start(context.Background()); err != nil {
		log.Fatal("Failed to start health monitor", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := monitor.Stop(stopCtx); err != nil {
			log.Error("Error stopping health monitor", zap.Error(err))
		}
	}()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := handler.RegisterValidations(); err != nil {
		log.Fatal("Failed to register request validations", zap.Error(err))
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSessionHandler(manager)).
		Register(handler.NewCartHandler(manager, browseService)).
		Register(handler.NewCatalogHandler(browseService)).
		Register(handler.NewAdminHandler(manager, valuationService)).
		Register(handler.NewSystemHandler(monitor, version))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down storefront...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	// Let any in-flight cart pushes reach the backend before exit
	manager.Flush()

	log.Info("Storefront exited gracefully")
}
