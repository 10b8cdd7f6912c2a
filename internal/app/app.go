package app

import (
	"fmt"
	"time"

	"gatherly_backend/database"
	"gatherly_backend/internal/auth"
	"gatherly_backend/internal/cache"
	"gatherly_backend/internal/config"
	"gatherly_backend/internal/email"
	"gatherly_backend/internal/handlers"
	"gatherly_backend/internal/logger"
	"gatherly_backend/internal/middleware"
	"gatherly_backend/internal/routes"
	"gatherly_backend/internal/services"
	"gatherly_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	cacheTTL    = 30 * time.Second
	authRPS     = 1
	authBurst   = 5
	limiterIdle = 10 * time.Minute
)

func Run() {
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	auth.Configure(cfg.JWT.Secret, cfg.JWT.TTL)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg)

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		logger.Info("Response cache enabled", "redis_addr", cfg.Redis.Addr)
	} else {
		logger.Info("Response cache disabled: no redis address configured")
	}

	appHandlers := initializeHandlers(serviceContainer, rdb)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	var mailProvider email.Provider

	if cfg.MailConfigured() {
		provider, err := email.NewSMTPProvider(email.Config{
			SMTPHost:  cfg.Email.SMTPHost,
			SMTPPort:  cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			logger.Fatal("Mail transport misconfigured", "error", err)
		}
		mailProvider = provider
		logger.Info("SMTP mail provider initialized", "host", cfg.Email.SMTPHost)
	} else {
		logger.Warn("Mail transport not configured, invites and reset mails are logged only")
		mailProvider = &MockEmailProvider{}
	}

	return services.NewServiceContainer(mailProvider, cfg.App.BaseURL)
}

func initializeHandlers(container *services.ServiceContainer, rdb *redis.Client) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	loginLimiter := middleware.NewRateLimiter(middleware.LimiterConfig{
		RPS:     authRPS,
		Burst:   authBurst,
		IdleTTL: limiterIdle,
	})

	cacheMW := cache.ResponseCache(rdb, cacheTTL)
	invalidator := cache.NewInvalidator(rdb)

	return &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, container.Auth, loginLimiter),
		EventHandler:    handlers.NewEventHandler(baseHandler, container.Event, invalidator, cacheMW),
		GuestHandler:    handlers.NewGuestHandler(baseHandler, container.Guest),
		BookingHandler:  handlers.NewBookingHandler(baseHandler, container.Booking, invalidator),
		ProviderHandler: handlers.NewProviderHandler(baseHandler, container.Provider, invalidator, cacheMW),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
