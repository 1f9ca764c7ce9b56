package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoadAppConfigDefaults(t *testing.T) {
	cfg, err := loadAppConfig(envFrom(map[string]string{
		"DB_DRIVER":  "sqlite",
		"SECRET_KEY": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, defaultCORSOrigins, cfg.CORSOrigins)
	assert.Nil(t, cfg.Redis)
	assert.Equal(t, 0.2, cfg.WarningThreshold)
}

func TestLoadAppConfigOverrides(t *testing.T) {
	cfg, err := loadAppConfig(envFrom(map[string]string{
		"DB_DRIVER":                   "postgres",
		"DATABASE_USER":               "cozy",
		"DATABASE_NAME":               "cozycash",
		"SECRET_KEY":                  "s3cret",
		"ALGORITHM":                   "hs512",
		"ACCESS_TOKEN_EXPIRE_MINUTES": "15",
		"API_V1_STR":                  "api/v2/",
		"CORS_ORIGINS":                "https://a.example, https://b.example ,",
		"REDIS_ADDRESS":               "localhost:6379",
		"REDIS_DB":                    "2",
		"BUDGET_WARNING_THRESHOLD":    "0.3",
	}))
	require.NoError(t, err)

	assert.Equal(t, "HS512", cfg.JWT.Algorithm)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, "/api/v2", cfg.APIPrefix)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	require.NotNil(t, cfg.Redis)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 0.3, cfg.WarningThreshold)
}

func TestLoadAppConfigReportsEveryProblem(t *testing.T) {
	_, err := loadAppConfig(envFrom(map[string]string{
		"DB_DRIVER":                   "mysql",
		"ALGORITHM":                   "RS256",
		"ACCESS_TOKEN_EXPIRE_MINUTES": "soon",
		"BUDGET_WARNING_THRESHOLD":    "2",
	}))
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "DB_DRIVER")
	assert.Contains(t, msg, "SECRET_KEY is required")
	assert.Contains(t, msg, "ALGORITHM")
	assert.Contains(t, msg, "ACCESS_TOKEN_EXPIRE_MINUTES must be an integer")
	assert.Contains(t, msg, "BUDGET_WARNING_THRESHOLD")
}

func TestLoadAppConfigRequiresPostgresCredentials(t *testing.T) {
	_, err := loadAppConfig(envFrom(map[string]string{
		"SECRET_KEY": "s3cret",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_USER is required")
	assert.Contains(t, err.Error(), "DATABASE_NAME is required")
}
