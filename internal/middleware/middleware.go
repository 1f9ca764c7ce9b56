package middleware

import (
	"context"
	"cozycash/internal/entity"
	"cozycash/pkg/redis"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Authenticator resolves a bearer token to the user it belongs to.
type Authenticator interface {
	Resolve(c context.Context, token string) (entity.UserLoginData, error)
}

type Middleware interface {
	NewRateLimiter(ctx *fiber.Ctx) error
	NewTokenMiddleware(ctx *fiber.Ctx) error
	NewRequestIDMiddleware() fiber.Handler
	GetRequestID(ctx *fiber.Ctx) string
}

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	// Redis switches the limiter to a shared fixed window when set.
	Redis redis.IRedis
}

type middleware struct {
	auth                Authenticator
	rateLimitter        limiter
	requestIDMiddleware fiber.Handler
	log                 *logrus.Logger
}

func New(logger *logrus.Logger, auth Authenticator, cfg Config) Middleware {
	rps, burst := cfg.RateLimitRPS, cfg.RateLimitBurst
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 10
	}

	var rateLimit limiter = newRateLimiter(rate.Limit(rps), burst)
	if cfg.Redis != nil {
		rateLimit = newRedisRateLimiter(cfg.Redis, burst, logger)
	}

	return &middleware{
		auth:                auth,
		rateLimitter:        rateLimit,
		requestIDMiddleware: NewRequestIDMiddleware(),
		log:                 logger,
	}
}

func (m *middleware) GetRequestID(ctx *fiber.Ctx) string {
	requestID, ok := ctx.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func (m *middleware) NewRequestIDMiddleware() fiber.Handler {
	return m.requestIDMiddleware
}
