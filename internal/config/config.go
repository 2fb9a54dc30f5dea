package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr string

	MySQLDSN          string
	MySQLMaxOpenConns int
	MySQLMaxIdleConns int

	RedisAddr string

	JWTSecret string
	JWTTTL    time.Duration

	MigrationDir string
}

// Load reads configuration from the environment with development defaults.
func Load() Config {
	return Config{
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		MySQLDSN:          getenv("MYSQL_DSN", "root:root@tcp(localhost:3306)/goshop?parseTime=true"),
		MySQLMaxOpenConns: getenvInt("MYSQL_MAX_OPEN_CONNS", 50),
		MySQLMaxIdleConns: getenvInt("MYSQL_MAX_IDLE_CONNS", 25),
		RedisAddr:         getenv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:         getenv("JWT_SECRET", "dev-secret-change-me"),
		JWTTTL:            getenvDuration("JWT_TTL", 24*time.Hour),
		MigrationDir:      getenv("MIGRATION_DIR", "migrations"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
