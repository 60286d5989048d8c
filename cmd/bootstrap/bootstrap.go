package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"consultation-booking/config"
	deliveryHttp "consultation-booking/internal/delivery/http"
	"consultation-booking/internal/delivery/http/handler"
	"consultation-booking/internal/delivery/http/middleware"
	"consultation-booking/internal/infrastructure/cache"
	"consultation-booking/internal/infrastructure/database"
	"consultation-booking/internal/infrastructure/queue"
	"consultation-booking/internal/repository"
	"consultation-booking/internal/service"
	"consultation-booking/internal/usecase"
	"consultation-booking/pkg/jwt"
	"consultation-booking/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds the shared dependencies of a running service. Fields not
// used by a given service stay nil and are skipped on Close.
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Queue       *queue.RabbitMQ
	Server      *http.Server
	Dispatcher  *service.Dispatcher
}

// NewAPI builds the schedule service: customer, doctor and schedule
// endpoints behind token authentication delegated to the identity
// service.
func NewAPI() (*App, error) {
	app := &App{}

	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateForAPI(); err != nil {
		return nil, err
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	if err := app.connectInfra(); err != nil {
		return nil, err
	}

	rabbit, err := queue.NewRabbitMQ(cfg.Queue)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	app.Queue = rabbit
	logrus.Info("RabbitMQ connected successfully")

	app.Server = initializeAPIServer(cfg, app.DB, app.RedisClient, rabbit)

	return app, nil
}

// NewAuth builds the identity service: register, login and the
// internal token validation endpoint.
func NewAuth() (*App, error) {
	app := &App{}

	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateForAuth(); err != nil {
		return nil, err
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	if err := app.connectInfra(); err != nil {
		return nil, err
	}

	app.Server = initializeAuthServer(cfg, app.DB, app.RedisClient)

	return app, nil
}

// NewWorker builds the notification worker: it consumes email jobs,
// delivers them over SMTP and retires jobs that exhaust their attempts.
func NewWorker() (*App, error) {
	app := &App{}

	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, err
	}

	rabbit, err := queue.NewRabbitMQ(cfg.Queue)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	app.Queue = rabbit
	logrus.Info("RabbitMQ connected successfully")

	log := logrus.StandardLogger()
	mailer := service.NewSMTPMailer(cfg.SMTP)
	notificationRepo := repository.NewNotificationRepository()
	app.Dispatcher = service.NewDispatcher(db, log, rabbit, mailer, notificationRepo)

	return app, nil
}

// connectInfra opens the database and Redis connections used by both
// HTTP services, and applies pending migrations.
func (app *App) connectInfra() error {
	db, err := database.NewPostgresConnection(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if err := database.RunMigrations(app.Config.DB); err != nil {
		return err
	}

	redisClient, err := cache.NewRedisClient(app.Config.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	return nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

func initializeAPIServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, emailQueue queue.Queue) *http.Server {
	log := logrus.StandardLogger()
	customValidator := validator.NewValidator()
	cacheStore := cache.NewStore(redisClient, cfg.Redis.DefaultTTL, log)

	customerRepo := repository.NewCustomerRepository()
	doctorRepo := repository.NewDoctorRepository()
	scheduleRepo := repository.NewScheduleRepository()

	customerUsecase := usecase.NewCustomerUsecase(db, log, customerRepo, cacheStore)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, cacheStore)
	scheduleUsecase := usecase.NewScheduleUsecase(db, log, scheduleRepo, customerRepo, doctorRepo, cacheStore, emailQueue)

	customerHandler := handler.NewCustomerHandler(customerUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	scheduleHandler := handler.NewScheduleHandler(scheduleUsecase, customValidator)

	notificationRepo := repository.NewNotificationRepository()
	notificationUsecase := usecase.NewNotificationUsecase(db, log, notificationRepo)
	notificationHandler := handler.NewNotificationHandler(notificationUsecase)

	authClient := service.NewAuthClient(cfg.Auth, cacheStore, customValidator, log)
	authMiddleware := middleware.NewAuthMiddleware(authClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	router := deliveryHttp.NewRouter(customerHandler, doctorHandler, scheduleHandler, notificationHandler, authMiddleware, corsMiddleware)

	return &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.App.Port),
		Handler: router.Setup(),
	}
}

func initializeAuthServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	log := logrus.StandardLogger()
	customValidator := validator.NewValidator()
	cacheStore := cache.NewStore(redisClient, cfg.Redis.DefaultTTL, log)
	jwtService := jwt.NewJWTService(cfg.JWT)

	userRepo := repository.NewUserRepository()
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, cacheStore, cfg.Redis.DefaultTTL)

	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	corsMiddleware := middleware.NewCORSMiddleware()

	router := deliveryHttp.NewAuthRouter(authHandler, corsMiddleware)

	return &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.App.Port),
		Handler: router.Setup(),
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// RunWorker runs the dispatcher until an interrupt signal arrives.
func (app *App) RunWorker() {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logrus.Info("Shutting down worker...")
		cancel()
	}()

	if err := app.Dispatcher.Run(ctx); err != nil && err != context.Canceled {
		logrus.Errorf("Dispatcher stopped: %v", err)
	}

	app.Close()
	logrus.Info("Worker shutdown complete")
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, queue)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	if app.Queue != nil {
		app.Queue.Close()
	}
}
