package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-scheduling/config"
	deliveryHttp "hospital-scheduling/internal/delivery/http"
	"hospital-scheduling/internal/delivery/http/handler"
	"hospital-scheduling/internal/delivery/http/middleware"
	"hospital-scheduling/internal/infrastructure/cache"
	"hospital-scheduling/internal/infrastructure/database"
	"hospital-scheduling/internal/repository"
	"hospital-scheduling/internal/service"
	"hospital-scheduling/internal/usecase"
	"hospital-scheduling/pkg/jwt"
	"hospital-scheduling/pkg/metrics"
	"hospital-scheduling/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

const metricsNamespace = "hospital_scheduling"

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	log := NewLogger("info")
	app.Log = log

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	log.SetLevel(ParseLevel(cfg.App.LogLevel))
	log.Info("Configuration loaded successfully")

	if cfg.App.MigrateOnStart {
		if err := database.RunMigrations(cfg.DB, database.MigrateUp, log); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	// Initialize all layers
	app.Server = initializeServer(cfg, log, db, redisClient)

	return app, nil
}

// NewLogger configures a JSON logrus logger on stdout
func NewLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(ParseLevel(level))
	return log
}

// ParseLevel falls back to info for unknown level names
func ParseLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(registry, metricsNamespace)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	availabilityRepo := repository.NewDoctorAvailabilityRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	encounterRepo := repository.NewEncounterRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	profileResolver := service.NewProfileResolver(db, log, cfg.Cache.ProfileTTL, doctorProfileRepo, patientProfileRepo)
	badgeCache := service.NewRedisBadgeCache(db, redisClient, log, cfg.Cache.BadgeTTL)

	warmCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := badgeCache.WarmDoctorPendingCounts(warmCtx); err != nil {
		log.Warnf("Badge warm-up failed, counters will load lazily: %+v", err)
	}

	// Initialize usecases
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, appMetrics, availabilityRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appMetrics, cfg.Scheduling, appointmentRepo, availabilityRepo, doctorProfileRepo, patientProfileRepo, auditService, badgeCache)
	encounterUsecase := usecase.NewEncounterUsecase(db, log, appMetrics, encounterRepo, prescriptionRepo, patientProfileRepo, appointmentRepo, auditService)
	notificationUsecase := usecase.NewNotificationUsecase(db, log, appMetrics, appointmentRepo, badgeCache)
	directoryUsecase := usecase.NewDirectoryUsecase(db, log, doctorProfileRepo, patientProfileRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize router
	router := deliveryHttp.NewRouter(deliveryHttp.RouterConfig{
		AvailabilityHandler: handler.NewAvailabilityHandler(availabilityUsecase, customValidator),
		AppointmentHandler:  handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		EncounterHandler:    handler.NewEncounterHandler(encounterUsecase, customValidator),
		NotificationHandler: handler.NewNotificationHandler(notificationUsecase),
		DirectoryHandler:    handler.NewDirectoryHandler(directoryUsecase),
		AuditLogHandler:     handler.NewAuditLogHandler(auditLogUsecase, customValidator),
		HealthHandler:       handler.NewHealthHandler(db, redisClient),
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		AuthMiddleware:      middleware.NewAuthMiddleware(jwtService, redisClient, log),
		ProfileMiddleware:   middleware.NewProfileMiddleware(profileResolver),
		CORSMiddleware:      middleware.NewCORSMiddleware(),
		LoggerMiddleware:    middleware.NewLoggerMiddleware(log, appMetrics),
		RateLimiter: middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  rate.Limit(cfg.RateLimit.RPS),
			Burst: cfg.RateLimit.Burst,
		}),
		Recovery: middleware.Recovery(log),
	})

	// Create server
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
