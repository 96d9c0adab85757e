package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sagarsaathi/saathi/internal/pkg/config"
	"github.com/sagarsaathi/saathi/internal/pkg/database"
	"github.com/sagarsaathi/saathi/internal/pkg/health"
	jwtpkg "github.com/sagarsaathi/saathi/internal/pkg/jwt"
	"github.com/sagarsaathi/saathi/internal/pkg/logger"
	"github.com/sagarsaathi/saathi/internal/pkg/middleware"
	"github.com/sagarsaathi/saathi/internal/pkg/models"
	natspkg "github.com/sagarsaathi/saathi/internal/pkg/nats"
	nrpkg "github.com/sagarsaathi/saathi/internal/pkg/newrelic"
	"github.com/sagarsaathi/saathi/internal/pkg/observability"
	"github.com/sagarsaathi/saathi/internal/pkg/server"
	wspkg "github.com/sagarsaathi/saathi/internal/pkg/websocket"
	"github.com/sagarsaathi/saathi/services/trips"
	"github.com/sagarsaathi/saathi/services/trips/gateway"
	"github.com/sagarsaathi/saathi/services/trips/handler"
	httpHandler "github.com/sagarsaathi/saathi/services/trips/handler/http"
	wsHandler "github.com/sagarsaathi/saathi/services/trips/handler/websocket"
	"github.com/sagarsaathi/saathi/services/trips/repository"
	"github.com/sagarsaathi/saathi/services/trips/usecase"
	"go.uber.org/zap"
)

func main() {
	configs := config.InitConfig(".env")
	appName := configs.App.Name

	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
		zap.String("store", configs.Database.Driver),
	)

	if configs.JWT.Secret == "" {
		zapLogger.Fatal("JWT_SECRET is required")
	}

	healthService := health.NewHealthService()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Record store
	var (
		tripRepo       trips.TripRepo
		postgresClient *database.PostgresClient
	)
	switch configs.Database.Driver {
	case "memory":
		memoryRepo := repository.NewMemoryTripRepository()
		for _, id := range configs.Database.SeedDrivers {
			memoryRepo.UpsertDriver(models.Driver{ID: id, IsVerified: true})
		}
		tripRepo = memoryRepo
		zapLogger.Warn("Using in-memory record store; data is lost on restart",
			zap.Int("seeded_drivers", len(configs.Database.SeedDrivers)))
	default:
		postgresClient, err = database.NewPostgresClient(configs.Database)
		if err != nil {
			zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		if configs.Database.Migrate {
			if err := postgresClient.Migrate(ctx); err != nil {
				zapLogger.Fatal("Failed to apply migrations", zap.Error(err))
			}
		}
		tripRepo = repository.NewTripRepository(postgresClient)
		healthService.AddChecker("postgres", health.PostgresHealthChecker(postgresClient))
	}

	// Location cache
	var (
		locationCache trips.LocationCache
		redisClient   *database.RedisClient
	)
	if configs.Redis.Host != "" {
		redisClient, err = database.NewRedisClient(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		locationCache = repository.NewLocationCache(redisClient, configs.Tracking.LocationCacheTTL)
		healthService.AddChecker("redis", health.RedisHealthChecker(redisClient))
	}

	// Domain events
	var (
		tripGW     trips.TripGW
		natsClient *natspkg.Client
	)
	if configs.NATS.URL != "" {
		natsClient, err = natspkg.NewClient(configs.NATS.URL, appName)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		tripGW = gateway.NewTripGW(natsClient)
		healthService.AddChecker("nats", health.NATSHealthChecker(natsClient))
	}

	// Realtime hub; the trip usecase authorizes room joins once it exists
	authenticator := jwtpkg.NewAuthenticator(configs.JWT)
	manager := wspkg.NewManager(authenticator, nil, wspkg.Options{
		SendBufferSize: configs.Tracking.SendBufferSize,
		PingInterval:   configs.Tracking.PingInterval,
		AllowedOrigins: configs.Server.AllowedOrigins,
	})

	tripUC, err := usecase.NewTripUC(configs, tripRepo, locationCache, tripGW, manager)
	if err != nil {
		zapLogger.Fatal("Failed to create trip usecase", zap.Error(err))
	}
	locationUC, err := usecase.NewLocationUC(configs, tripRepo, locationCache, manager)
	if err != nil {
		zapLogger.Fatal("Failed to create location usecase", zap.Error(err))
	}
	distressUC, err := usecase.NewDistressUC(configs, tripRepo, tripGW, manager)
	if err != nil {
		zapLogger.Fatal("Failed to create distress usecase", zap.Error(err))
	}
	manager.SetAuthorizer(tripUC)

	// Handlers
	tripHandler := httpHandler.NewTripHandler(tripUC, locationUC)
	adminHandler := httpHandler.NewAdminHandler(tripUC, distressUC)
	realtimeHandler := wsHandler.NewRealtimeHandler(manager, locationUC, distressUC)
	h := handler.NewHandler(tripHandler, adminHandler, realtimeHandler, manager, authenticator)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(configs.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(configs.Server.WriteTimeout) * time.Second

	e.Use(middleware.RequestIDMiddleware())
	e.Use(nrpkg.Middleware(nrApp))
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(observability.MetricsMiddleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: configs.Server.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderXRequestID},
	}))

	health.RegisterHealthEndpoints(e, appName, configs.App.Version, healthService)
	e.GET("/metrics", observability.Handler())
	h.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, configs.Server.Host, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)

	srv.OnShutdown("realtime", func(context.Context) error {
		manager.Close()
		return nil
	})
	srv.OnShutdown("location-writes", locationUC.Drain)
	if natsClient != nil {
		srv.OnShutdown("nats", func(context.Context) error {
			natsClient.Close()
			return nil
		})
	}
	if redisClient != nil {
		srv.OnShutdown("redis", func(context.Context) error { return redisClient.Close() })
	}
	if postgresClient != nil {
		srv.OnShutdown("postgres", func(context.Context) error { return postgresClient.Close() })
	}
	if nrApp != nil {
		srv.OnShutdown("newrelic", func(context.Context) error {
			nrApp.Shutdown(5 * time.Second)
			return nil
		})
	}
	srv.OnShutdown("logger", func(context.Context) error { return zapLogger.Close() })

	if err := srv.Run(ctx); err != nil {
		zapLogger.Fatal("Server stopped with error", zap.String("app", appName), zap.Error(err))
	}
}
