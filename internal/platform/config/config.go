package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr         string
	DatabaseURL  string
	Redis        RedisConfig
	KafkaBrokers string
	AuditTopic   string

	// HolidayCacheTTL bounds how stale the in-process holiday snapshot may
	// be. Holiday-table edits become visible within this window without a
	// restart.
	HolidayCacheTTL time.Duration

	// StoreTimeout caps each holiday/catalog/outage store call. On expiry
	// the computation fails with data_unavailable instead of hanging.
	StoreTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:            envOr("PRAZO_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("PRAZO_DATABASE_URL"),
		Redis:           redisFromEnv(),
		KafkaBrokers:    os.Getenv("PRAZO_KAFKA_BROKERS"),
		AuditTopic:      envOr("PRAZO_AUDIT_TOPIC", "prazo.deadline.audit"),
		HolidayCacheTTL: durationOr("PRAZO_HOLIDAY_CACHE_TTL", 5*time.Minute),
		StoreTimeout:    durationOr("PRAZO_STORE_TIMEOUT", 3*time.Second),
	}
}

// RedisConfig holds connection settings for the optional holiday cache layer.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func redisFromEnv() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("PRAZO_REDIS_URL"),
		PoolSize:     intOr("PRAZO_REDIS_POOL_SIZE", 10),
		MinIdleConns: intOr("PRAZO_REDIS_MIN_IDLE", 2),
		DialTimeout:  durationOr("PRAZO_REDIS_DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  durationOr("PRAZO_REDIS_READ_TIMEOUT", 3*time.Second),
		WriteTimeout: durationOr("PRAZO_REDIS_WRITE_TIMEOUT", 3*time.Second),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
