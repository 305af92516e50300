package config

import (
	"strings"
	"time"

	"github.com/mobiliza/peticoes/internal/env"
)

type Config struct {
	Port        string
	ENV         string
	PublicURL   string
	DB          DatabaseConfig
	RateLimiter RateLimiterConfig
	Minio       MinioConfig
}

type RateLimiterConfig struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

type DatabaseConfig struct {
	DB_HOST      string
	DB_PORT      string
	DB_DATABASE  string
	DB_USERNAME  string
	DB_PASSWORD  string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  string
}

type MinioConfig struct {
	ENDPOINT   string
	ACCESS_KEY string
	SECRET_KEY string
	BUCKET     string
	USE_SSL    bool
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

func GetConfig() Config {
	rateLimitTimeFrame, err := time.ParseDuration(env.GetString("RATE_LIMIT_TIME_FRAME", "1m"))
	if err != nil {
		rateLimitTimeFrame = 60 * time.Second
	}

	return Config{
		Port:      env.GetString("PORT", "8080"),
		ENV:       env.GetString("ENV", "development"),
		PublicURL: env.GetString("PUBLIC_URL", "http://localhost:5173"),
		DB: DatabaseConfig{
			DB_HOST:      env.GetString("PGHOST", "127.0.0.1"),
			DB_PORT:      env.GetString("PGPORT", "5432"),
			DB_USERNAME:  env.GetString("PGUSER", "postgres"),
			DB_PASSWORD:  env.GetString("PGPASSWORD", ""),
			DB_DATABASE:  env.GetString("PGDATABASE", "peticoes_db"),
			MaxOpenConns: env.GetInt("DB_MAX_OPEN_CONNS", 30),
			MaxIdleConns: env.GetInt("DB_MAX_IDLE_CONNS", 30),
			MaxIdleTime:  env.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
		// 100 signature submissions per ip per minute by default.
		RateLimiter: RateLimiterConfig{
			RequestsPerTimeFrame: env.GetInt("RATE_LIMIT_REQUESTS_PER_TIME_FRAME", 100),
			TimeFrame:            rateLimitTimeFrame,
			Enabled:              env.GetBool("RATE_LIMIT_ENABLED", true),
		},
		Minio: MinioConfig{
			ENDPOINT:   env.GetString("MINIO_ENDPOINT", "127.0.0.1:9000"),
			ACCESS_KEY: env.GetString("MINIO_ACCESS_KEY", ""),
			SECRET_KEY: env.GetString("MINIO_SECRET_KEY", ""),
			BUCKET:     env.GetString("MINIO_BUCKET", "peticoes"),
			USE_SSL:    env.GetBool("MINIO_USE_SSL", false),
		},
	}
}
