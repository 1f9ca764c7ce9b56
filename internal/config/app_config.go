package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cozycash/database/postgres"
	"cozycash/database/sqlite"
	"cozycash/internal/entity"
	jwtPkg "cozycash/pkg/jwt"
	"cozycash/pkg/redis"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5500",
}

type DatabaseConfig struct {
	Driver     string
	Postgres   postgres.Config
	SQLitePath string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// AppConfig is read from the environment once at startup and passed by
// value afterwards.
type AppConfig struct {
	AppEnv           string
	Port             string
	APIPrefix        string
	Database         DatabaseConfig
	JWT              jwtPkg.Config
	CORSOrigins      []string
	Redis            *redis.Config
	RateLimit        RateLimitConfig
	WarningThreshold float64
}

// LoadAppConfig reads every setting and reports all problems at once.
func LoadAppConfig() (AppConfig, error) {
	return loadAppConfig(os.Getenv)
}

func loadAppConfig(getenv func(string) string) (AppConfig, error) {
	var errs []error
	r := envReader{getenv: getenv}

	cfg := AppConfig{
		AppEnv:    r.str("APP_ENV", "development"),
		Port:      r.str("APP_PORT", "3000"),
		APIPrefix: "/" + strings.Trim(r.str("API_V1_STR", "/api/v1"), "/"),
		Database: DatabaseConfig{
			Driver: strings.ToLower(r.str("DB_DRIVER", postgres.DriverName)),
			Postgres: postgres.Config{
				Host:     r.str("DATABASE_HOST", "localhost"),
				Port:     r.str("DATABASE_PORT", "5432"),
				User:     getenv("DATABASE_USER"),
				Password: getenv("DATABASE_PASSWORD"),
				Name:     getenv("DATABASE_NAME"),
				SSLMode:  getenv("DATABASE_SSLMODE"),
			},
			SQLitePath: r.str("SQLITE_DB_PATH", "cozycash.db"),
		},
		JWT: jwtPkg.Config{
			Secret:         []byte(getenv("SECRET_KEY")),
			Algorithm:      strings.ToUpper(r.str("ALGORITHM", "HS256")),
			AccessTokenTTL: time.Duration(r.integer("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		},
		CORSOrigins: r.list("CORS_ORIGINS", defaultCORSOrigins),
		RateLimit: RateLimitConfig{
			RPS:   r.float("RATE_LIMIT_RPS", 5),
			Burst: r.integer("RATE_LIMIT_BURST", 10),
		},
		WarningThreshold: r.float("BUDGET_WARNING_THRESHOLD", entity.DefaultWarningThreshold),
	}

	if addr := getenv("REDIS_ADDRESS"); addr != "" {
		cfg.Redis = &redis.Config{
			Address:  addr,
			Password: getenv("REDIS_PASSWORD"),
			DB:       r.integer("REDIS_DB", 0),
		}
	}

	errs = append(errs, r.errs...)
	errs = append(errs, cfg.validate()...)

	if len(errs) > 0 {
		return AppConfig{}, errors.Join(errs...)
	}

	return cfg, nil
}

func (c AppConfig) validate() []error {
	var errs []error

	switch c.Database.Driver {
	case postgres.DriverName:
		if c.Database.Postgres.User == "" {
			errs = append(errs, errors.New("DATABASE_USER is required"))
		}
		if c.Database.Postgres.Name == "" {
			errs = append(errs, errors.New("DATABASE_NAME is required"))
		}
	case sqlite.DriverName:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", postgres.DriverName, sqlite.DriverName, c.Database.Driver))
	}

	if len(c.JWT.Secret) == 0 {
		errs = append(errs, errors.New("SECRET_KEY is required"))
	}
	switch c.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		errs = append(errs, fmt.Errorf("ALGORITHM must be one of HS256, HS384, HS512, got %q", c.JWT.Algorithm))
	}
	if c.JWT.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive"))
	}

	if c.RateLimit.RPS <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS must be positive"))
	}
	if c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be positive"))
	}

	if c.WarningThreshold <= 0 || c.WarningThreshold >= 1 {
		errs = append(errs, errors.New("BUDGET_WARNING_THRESHOLD must be between 0 and 1"))
	}

	return errs
}

type envReader struct {
	getenv func(string) string
	errs   []error
}

func (r *envReader) str(key, def string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *envReader) integer(key string, def int) int {
	raw := strings.TrimSpace(r.getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s must be an integer, got %q", key, raw))
		return def
	}
	return v
}

func (r *envReader) float(key string, def float64) float64 {
	raw := strings.TrimSpace(r.getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s must be a number, got %q", key, raw))
		return def
	}
	return v
}

func (r *envReader) list(key string, def []string) []string {
	raw := strings.TrimSpace(r.getenv(key))
	if raw == "" {
		return def
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
