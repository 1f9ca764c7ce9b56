package middleware

import (
	"context"
	"cozycash/pkg/redis"
	"cozycash/pkg/response"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	ErrTooManyRequests = response.NewError(http.StatusTooManyRequests, "too many requests")
)

type limiter interface {
	Allow(c context.Context, key string) bool
}

type rateLimiter struct {
	bucket    map[string]*rate.Limiter
	rate      rate.Limit
	burstSize int
	mutex     *sync.RWMutex
}

func newRateLimiter(reqRate rate.Limit, burstSize int) *rateLimiter {
	return &rateLimiter{
		bucket:    make(map[string]*rate.Limiter),
		rate:      reqRate,
		burstSize: burstSize,
		mutex:     &sync.RWMutex{},
	}
}

func (r *rateLimiter) GetLimiterFrom(ip string) *rate.Limiter {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exist := r.bucket[ip]; !exist {
		r.bucket[ip] = rate.NewLimiter(r.rate, r.burstSize)
	}

	return r.bucket[ip]
}

func (r *rateLimiter) Allow(_ context.Context, key string) bool {
	return r.GetLimiterFrom(key).Allow()
}

// redisRateLimiter admits limit requests per key and second across every
// instance sharing the Redis server.
type redisRateLimiter struct {
	redis  redis.IRedis
	limit  int
	window time.Duration
	log    *logrus.Logger
}

func newRedisRateLimiter(client redis.IRedis, limit int, log *logrus.Logger) *redisRateLimiter {
	return &redisRateLimiter{
		redis:  client,
		limit:  limit,
		window: time.Second,
		log:    log,
	}
}

func (r *redisRateLimiter) Allow(c context.Context, key string) bool {
	allowed, err := r.redis.Allow(c, key, r.limit, r.window)
	if err != nil {
		// Fail open so a Redis outage does not take the API down.
		r.log.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Error("Rate limiter backend unavailable")
		return true
	}

	return allowed
}

func (m *middleware) NewRateLimiter(ctx *fiber.Ctx) error {
	clientIP := ctx.IP()

	if !m.rateLimitter.Allow(ctx.UserContext(), clientIP) {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"client_ip":  clientIP,
			"path":       ctx.Path(),
		}).Warn("Too many requests")
		return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": ErrTooManyRequests.Error(),
		})
	}

	return ctx.Next()
}
