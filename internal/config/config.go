package config

import (
	"os"
	"strconv"
)

// Backend mode, decided once at startup and immutable for the process
const (
	BackendRemote = "remote"
	BackendLocal  = "local"
)

// Config holds everything read from the environment at startup.
type Config struct {
	MongoURI      string
	MongoDatabase string
	LocalDBPath   string
	ServerPort    string
	JWTSecret     string
	JWTExpHours   int64
	LogFile       string
}

// Load reads configuration from environment variables with defaults. The
// caller is expected to have loaded .env first (godotenv in main).
func Load() Config {
	return Config{
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: getEnv("MONGO_DATABASE", "trip_logger"),
		LocalDBPath:   getEnv("LOCAL_DB_PATH", "trip_logger.db"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		JWTSecret:     getEnv("JWT_SECRET_KEY", "dev-secret-change-me"),
		JWTExpHours:   getEnvInt64("JWT_EXPIRATION_HOURS", 24),
		LogFile:       getEnv("LOG_FILE", "./logs/app.log"),
	}
}

// Backend reports which storage backend the process should run against:
// remote when a Mongo URI is configured, the local fallback otherwise.
func (c Config) Backend() string {
	if c.MongoURI != "" {
		return BackendRemote
	}
	return BackendLocal
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}
