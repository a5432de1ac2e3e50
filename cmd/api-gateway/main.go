package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/andesedu/eventos-api/api/swagger"
	"github.com/andesedu/eventos-api/internal/handler"
	"github.com/andesedu/eventos-api/internal/middleware"
	"github.com/andesedu/eventos-api/internal/models"
	"github.com/andesedu/eventos-api/internal/repository"
	"github.com/andesedu/eventos-api/internal/service"
	"github.com/andesedu/eventos-api/pkg/cache"
	"github.com/andesedu/eventos-api/pkg/config"
	"github.com/andesedu/eventos-api/pkg/database"
	"github.com/andesedu/eventos-api/pkg/logger"
	corsmiddleware "github.com/andesedu/eventos-api/pkg/middleware/cors"
	reqidmiddleware "github.com/andesedu/eventos-api/pkg/middleware/requestid"
)

// @title Eventos API
// @version 1.0.0
// @description Event query service for the school administration backend
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	registry, err := database.NewRegistry(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer registry.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, search cache disabled", "error", err)
		redisClient = nil
	}

	metricsSvc := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	eventRepo := repository.NewEventRepository(registry)
	userRepo := repository.NewUserRepository(registry)

	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	eventSvc := service.NewEventService(eventRepo, cacheRepo, metricsSvc, nil, logr, cfg.Events)
	exportSvc := service.NewExportService(eventSvc, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	eventHandler := handler.NewEventHandler(eventSvc, exportSvc, cfg.Events)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	eventos := api.Group("/eventos")
	eventos.Use(middleware.JWT(authSvc))
	eventos.Use(middleware.Instance(registry))
	{
		responsable := middleware.RequireRoles(models.RoleResponsable, models.RoleDirectivo)
		directivo := middleware.RequireRoles(models.RoleDirectivo)

		eventos.GET("", responsable, eventHandler.Search)
		eventos.GET("/mes", responsable, eventHandler.SearchMonth)
		eventos.GET("/mes/total", responsable, eventHandler.CountMonth)
		eventos.GET("/anio", directivo, eventHandler.SearchYear)
		eventos.GET("/rango", directivo, eventHandler.SearchRange)
		eventos.GET("/export", directivo, eventHandler.Export)
		eventos.POST("", directivo, eventHandler.Create)
		eventos.GET("/:id", responsable, eventHandler.Get)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
