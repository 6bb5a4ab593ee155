package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds runtime settings for the API server.
type Config struct {
	Port           string
	MongoURI       string
	DBName         string
	APIPrefix      string
	AllowedOrigins []string
	LogLevel       string
	StoreDriver    string
	ConnectTimeout time.Duration
}

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment")
	}

	timeout, err := time.ParseDuration(getEnv("DB_CONNECT_TIMEOUT", "10s"))
	if err != nil {
		logrus.WithError(err).Warn("Invalid DB_CONNECT_TIMEOUT, falling back to 10s")
		timeout = 10 * time.Second
	}

	return &Config{
		Port:           getEnv("PORT", "3001"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         getEnv("MONGO_DB", "socialNetworkDB"),
		APIPrefix:      strings.TrimRight(getEnv("API_PREFIX", "/api"), "/"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
		ConnectTimeout: timeout,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
