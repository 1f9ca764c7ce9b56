package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Address  string
	Password string
	DB       int
}

type IRedis interface {
	// Allow increments the counter of key for the current window and reports
	// whether it is still within limit.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Close() error
}

type redisClient struct {
	client *redis.Client
	log    *logrus.Logger
}

func New(cfg Config, log *logrus.Logger) (IRedis, error) {
	log.Info(fmt.Sprintf("Connecting to Redis at %s...", cfg.Address))

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
		_ = client.Close()
		return nil, err
	}
	log.Info("Successfully connected to Redis")

	return &redisClient{client: client, log: log}, nil
}

func (r *redisClient) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	bucket := fmt.Sprintf("ratelimit:%s:%d", key, time.Now().UnixNano()/int64(window))

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, bucket)
	pipe.Expire(ctx, bucket, window)
	if _, err := pipe.Exec(ctx); err != nil {
		r.log.Error(fmt.Sprintf("Error incrementing rate limit bucket %s: %v", bucket, err))
		return false, err
	}

	count := incr.Val()
	if count > int64(limit) {
		r.log.Debug(fmt.Sprintf("Rate limit exceeded for %s (%d/%d)", key, count, limit))
		return false, nil
	}

	return true, nil
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
