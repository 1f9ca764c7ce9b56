package config

import (
	"fmt"
	"time"

	"cozycash/database/migration"
	"cozycash/database/postgres"
	"cozycash/database/sqlite"
	analyticsHandler "cozycash/internal/api/analytics/handler"
	analyticsRepository "cozycash/internal/api/analytics/repository"
	analyticsService "cozycash/internal/api/analytics/service"
	authHandler "cozycash/internal/api/auth/handler"
	authRepository "cozycash/internal/api/auth/repository"
	authService "cozycash/internal/api/auth/service"
	budgetHandler "cozycash/internal/api/budget_manager/handler"
	budgetRepository "cozycash/internal/api/budget_manager/repository"
	budgetService "cozycash/internal/api/budget_manager/service"
	expenseHandler "cozycash/internal/api/expense/handler"
	expenseRepository "cozycash/internal/api/expense/repository"
	expenseService "cozycash/internal/api/expense/service"
	"cozycash/internal/entity"
	"cozycash/internal/middleware"
	"cozycash/pkg/bcrypt"
	jwtPkg "cozycash/pkg/jwt"
	"cozycash/pkg/redis"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine           *fiber.App
	db               *sqlx.DB
	log              *logrus.Logger
	middleware       middleware.Middleware
	validator        *validator.Validate
	bcryptUtils      bcrypt.IBcrypt
	tokenService     jwtPkg.ITokenService
	redisServer      redis.IRedis
	authService      authService.AuthService
	apiPrefix        string
	warningThreshold float64
	handlers         []handler
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{
		apiPrefix:        "/api/v1",
		warningThreshold: entity.DefaultWarningThreshold,
	}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if server.middleware == nil {
		return nil, fmt.Errorf("middleware is required")
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithAPIPrefix(prefix string) ServerOption {
	return func(s *Server) error {
		s.apiPrefix = prefix
		return nil
	}
}

func WithWarningThreshold(threshold float64) ServerOption {
	return func(s *Server) error {
		s.warningThreshold = threshold
		return nil
	}
}

// WithDatabase opens the configured store and brings its schema up to date.
func WithDatabase(cfg DatabaseConfig) ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before database")
		}

		var (
			db  *sqlx.DB
			dsn string
			err error
		)
		switch cfg.Driver {
		case sqlite.DriverName:
			db, err = sqlite.New(cfg.SQLitePath, s.log)
		case postgres.DriverName, "":
			dsn = cfg.Postgres.DSN()
			db, err = postgres.New(cfg.Postgres, s.log)
		default:
			return fmt.Errorf("unsupported database driver %q", cfg.Driver)
		}
		if err != nil {
			s.log.Errorf("Failed to connect to database: %v", err)
			return fmt.Errorf("failed to create database connection: %w", err)
		}

		if err := migration.Up(db, dsn, s.log); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		s.db = db
		return nil
	}
}

// WithRedisServer connects the shared rate limiter store. A nil config
// leaves rate limiting in process.
func WithRedisServer(cfg *redis.Config) ServerOption {
	return func(s *Server) error {
		if cfg == nil {
			return nil
		}
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before redis")
		}

		client, err := redis.New(*cfg, s.log)
		if err != nil {
			return fmt.Errorf("failed to create redis client: %w", err)
		}
		s.redisServer = client
		return nil
	}
}

func WithTokenService(cfg jwtPkg.Config) ServerOption {
	return func(s *Server) error {
		tokens, err := jwtPkg.New(cfg)
		if err != nil {
			return fmt.Errorf("failed to create token service: %w", err)
		}
		s.tokenService = tokens
		return nil
	}
}

func WithBcryptUtils(bcryptUtils bcrypt.IBcrypt) ServerOption {
	return func(s *Server) error {
		if bcryptUtils == nil {
			bcryptUtils = bcrypt.New()
		}
		s.bcryptUtils = bcryptUtils
		return nil
	}
}

// WithMiddleware builds the auth service the token middleware resolves
// against, so the database, token service and hasher must already be set.
func WithMiddleware(cfg RateLimitConfig) ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		if s.db == nil || s.tokenService == nil {
			return fmt.Errorf("database and token service must be initialized before middleware")
		}
		if s.bcryptUtils == nil {
			s.bcryptUtils = bcrypt.New()
		}

		authRepo := authRepository.New(s.db, s.log)
		s.authService = authService.New(s.log, authRepo, s.tokenService, s.bcryptUtils)
		s.middleware = middleware.New(s.log, s.authService.Auth(), middleware.Config{
			RateLimitRPS:   cfg.RPS,
			RateLimitBurst: cfg.Burst,
			Redis:          s.redisServer,
		})
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Auth Domain
	authHandlers := authHandler.New(s.log, s.authService, s.validator, s.middleware)

	// Expenses
	expenseRepo := expenseRepository.New(s.db, s.log)
	expenseServices := expenseService.NewExpenseService(s.log, expenseRepo)
	expenseHandlers := expenseHandler.New(s.log, s.validator, s.middleware, expenseServices)

	// Budget Manager
	budgetRepo := budgetRepository.New(s.db, s.log)
	budgetServices := budgetService.NewBudgetService(s.log, budgetRepo)
	budgetHandlers := budgetHandler.New(s.log, s.validator, s.middleware, budgetServices)

	// Analytics
	analyticsRepo := analyticsRepository.New(s.db, s.log)
	analyticsServices := analyticsService.NewAnalyticsService(s.log, analyticsRepo, s.warningThreshold)
	analyticsHandlers := analyticsHandler.New(s.log, s.validator, s.middleware, analyticsServices)

	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	s.setupHealthCheck()
	s.handlers = append(s.handlers, authHandlers, expenseHandlers, budgetHandlers, analyticsHandlers)

	router := s.engine.Group(s.apiPrefix)
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) App() *fiber.App {
	return s.engine
}

func (s *Server) Run(port string) error {
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown stops accepting requests, waits for in-flight ones up to timeout
// and then releases the store connections.
func (s *Server) Shutdown(timeout time.Duration) error {
	err := s.engine.ShutdownWithTimeout(timeout)

	if s.redisServer != nil {
		if cerr := s.redisServer.Close(); cerr != nil {
			s.log.Errorf("Failed to close redis client: %v", cerr)
		}
	}

	if cerr := s.db.Close(); cerr != nil {
		s.log.Errorf("Failed to close database: %v", cerr)
		if err == nil {
			err = cerr
		}
	}

	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
