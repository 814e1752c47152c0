package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// inbound server config
	APP_PORT string
	// upstream API config
	UPSTREAM_BASE_URL   string
	RETRY_MAX_ATTEMPTS  int
	RETRY_INITIAL_DELAY time.Duration
	// outbound http transport config
	HTTP_TIMEOUT                 time.Duration
	HTTP_DIAL_TIMEOUT            time.Duration
	HTTP_IDLE_CONN_TIMEOUT       time.Duration
	HTTP_MAX_IDLE_CONNS          int
	HTTP_MAX_IDLE_CONNS_PER_HOST int
	// logger config
	LOG_FILE_PATH string
	// export config
	EXPORT_LAYOUT_PATH string
}

func LoadEnvConfig() error {
	// A missing .env file is fine; values then come from the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}

	DefaultEnvConfig = &envConfig{
		APP_PORT:                     getEnvString("APP_PORT", "8080"),
		UPSTREAM_BASE_URL:            getEnvString("UPSTREAM_BASE_URL", "http://localhost:8112/api/v1/employee"),
		RETRY_MAX_ATTEMPTS:           getEnvInt("RETRY_MAX_ATTEMPTS", 3),
		RETRY_INITIAL_DELAY:          getEnvDuration("RETRY_INITIAL_DELAY", time.Second),
		HTTP_TIMEOUT:                 getEnvDuration("HTTP_TIMEOUT", 30*time.Second),
		HTTP_DIAL_TIMEOUT:            getEnvDuration("HTTP_DIAL_TIMEOUT", 5*time.Second),
		HTTP_IDLE_CONN_TIMEOUT:       getEnvDuration("HTTP_IDLE_CONN_TIMEOUT", 90*time.Second),
		HTTP_MAX_IDLE_CONNS:          getEnvInt("HTTP_MAX_IDLE_CONNS", 100),
		HTTP_MAX_IDLE_CONNS_PER_HOST: getEnvInt("HTTP_MAX_IDLE_CONNS_PER_HOST", 20),
		LOG_FILE_PATH:                getEnvString("LOG_FILE_PATH", ""),
		EXPORT_LAYOUT_PATH:           getEnvString("EXPORT_LAYOUT_PATH", "export_layout.yaml"),
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
