package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/mvargas-dev/uni-scheduler-api/api/swagger"
	"github.com/mvargas-dev/uni-scheduler-api/internal/handler"
	"github.com/mvargas-dev/uni-scheduler-api/internal/middleware"
	"github.com/mvargas-dev/uni-scheduler-api/internal/repository"
	"github.com/mvargas-dev/uni-scheduler-api/internal/service"
	"github.com/mvargas-dev/uni-scheduler-api/pkg/cache"
	"github.com/mvargas-dev/uni-scheduler-api/pkg/config"
	"github.com/mvargas-dev/uni-scheduler-api/pkg/database"
	"github.com/mvargas-dev/uni-scheduler-api/pkg/logger"
	corsmiddleware "github.com/mvargas-dev/uni-scheduler-api/pkg/middleware/cors"
	reqidmiddleware "github.com/mvargas-dev/uni-scheduler-api/pkg/middleware/requestid"
)

// @title University Scheduler API
// @version 1.0.0
// @description Greedy class-session placement: labs first, theory second, validation alerts last
// @BasePath /
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	var db *sqlx.DB
	if cfg.Database.Enabled {
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
		}
		defer db.Close() //nolint:errcheck
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close() //nolint:errcheck
	}

	metrics := service.NewMetricsService()
	validate := validator.New()

	var runRepo *repository.ScheduleRunRepository
	if db != nil {
		runRepo = repository.NewScheduleRunRepository(db)
	}
	var runCache *cache.Store
	if redisClient != nil {
		runCache = cache.NewStore(redisClient)
	}

	// Typed nils must not reach the service as non-nil interfaces.
	scheduleSvc := service.NewScheduleService(
		orNilRepo(runRepo),
		orNilCache(runCache),
		metrics,
		validate,
		logr,
		service.ScheduleServiceConfig{
			RunTTL:   cfg.Scheduler.RunTTL,
			CacheTTL: cfg.Scheduler.CacheTTL,
		},
	)
	exportSvc := service.NewExportService(scheduleSvc, logr)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, exportSvc, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if db != nil {
			if err := db.PingContext(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "postgres": err.Error()})
				return
			}
		}
		if redisClient != nil {
			if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "redis": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.Auth(cfg.Auth.Secret))
	scheduleHandler.Register(api)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting",
		"addr", addr,
		"env", cfg.Env,
		"postgres", db != nil,
		"redis", redisClient != nil,
		"auth", cfg.Auth.Secret != "",
	)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func orNilRepo(repo *repository.ScheduleRunRepository) service.RunRepository {
	if repo == nil {
		return nil
	}
	return repo
}

func orNilCache(store *cache.Store) service.RunCache {
	if store == nil {
		return nil
	}
	return store
}
