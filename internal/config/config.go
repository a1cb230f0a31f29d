package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Live     LiveConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Secure      bool   // HTTPS-only cookies
	Environment string // "development", "production", "test"
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	// Pool sizing. MinConns are kept warm so the first requests after an
	// idle spell do not pay connection setup.
	MaxConns     int
	MinConns     int
	ConnLifetime time.Duration
	ConnIdleTime time.Duration
}

type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

type LiveConfig struct {
	// Broker selects the live-update fanout: "redis" for multi-instance
	// deployments, "memory" for single-node and demo mode.
	Broker string
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvInt("SERVER_PORT", 8080),
			Secure:      getEnvBool("SERVER_SECURE", false),
			Environment: getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "sportsbuddy"),
			Password:     getEnv("DB_PASSWORD", "sportsbuddy"),
			DBName:       getEnv("DB_NAME", "sportsbuddy"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxConns:     getEnvInt("DB_MAX_CONNS", 25),
			MinConns:     getEnvInt("DB_MIN_CONNS", 5),
			ConnLifetime: getEnvDuration("DB_CONN_LIFETIME", time.Hour),
			ConnIdleTime: getEnvDuration("DB_CONN_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnvInt("REDIS_PORT", 6379),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvInt("REDIS_DB", 0),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 3),
		},
		Live: LiveConfig{
			Broker: getEnv("LIVE_BROKER", "redis"),
		},
	}

	if cfg.Live.Broker != "redis" && cfg.Live.Broker != "memory" {
		return nil, fmt.Errorf("invalid LIVE_BROKER %q (want redis or memory)", cfg.Live.Broker)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
