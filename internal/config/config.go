// internal/config/config.go
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

// Config holds every setting the server and historian binaries read from the environment.
// A .env file in the working directory is loaded by the binaries through godotenv/autoload.
type Config struct {
	Host     string // THEGAME_HOST
	Port     int    // THEGAME_PORT
	WSAddr   string // THEGAME_WS_ADDR; empty disables the WebSocket gateway
	LogLevel string // THEGAME_LOG_LEVEL

	RedisAddr      string // REDIS_ADDR; empty disables action history on the server
	RedisDB        int    // REDIS_DB
	HistorianQueue string // HISTORIAN_QUEUE_NAME

	DatabaseURL        string
	HistorianBatchSize int
	HistorianFlush     time.Duration
	InactivityTimeout  time.Duration
}

// Load reads the configuration from the environment, applying defaults.
func Load() Config {
	return Config{
		Host:     getEnv("THEGAME_HOST", "0.0.0.0"),
		Port:     getEnvInt("THEGAME_PORT", 12345),
		WSAddr:   getEnv("THEGAME_WS_ADDR", ""),
		LogLevel: getEnv("THEGAME_LOG_LEVEL", "info"),

		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		HistorianQueue: getEnv("HISTORIAN_QUEUE_NAME", "thegame_actions"),

		DatabaseURL:        databaseURL(),
		HistorianBatchSize: getEnvInt("HISTORIAN_BATCH_SIZE", 20),
		HistorianFlush:     time.Duration(getEnvInt("HISTORIAN_FLUSH_MS", 500)) * time.Millisecond,
		InactivityTimeout:  time.Duration(getEnvInt("GAME_INACTIVITY_TIMEOUT_SEC", 600)) * time.Second,
	}
}

// ListenAddr is the host:port the TCP listener binds.
func (c Config) ListenAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// databaseURL prefers DATABASE_URL and otherwise assembles one from the POSTGRES_* / PG_* variables.
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		getEnv("POSTGRES_USER", "postgres"),
		os.Getenv("POSTGRES_PASSWORD"),
		getEnv("PG_HOST", "localhost"),
		getEnv("PG_PORT", "5432"),
		getEnv("PG_DATABASE", "thegame"),
	)
}

// getEnv retrieves an environment variable's value or returns a default.
func getEnv(key, defVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defVal
}

// getEnvInt retrieves an integer value from an environment variable or returns a default value.
func getEnvInt(key string, defVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defVal
	}
	return i
}
