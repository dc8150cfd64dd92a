package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries process configuration for binaries embedding the state core.
type Config struct {
	// Backend selects the key-value medium: memory, file, or sqlite.
	Backend string
	// DataDir holds the file or sqlite database for durable backends.
	DataDir string
	// QuotaBytes bounds the backing store; 0 means unlimited.
	QuotaBytes int
	// VerifyDelay is the simulated classifier latency.
	VerifyDelay time.Duration
}

// Load reads configuration from the environment, loading .env first when
// ENV=dev.
func Load() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}
	return Config{
		Backend:     getEnv("SPOTG_BACKEND", "file"),
		DataDir:     getEnv("SPOTG_DATA_DIR", "."),
		QuotaBytes:  getEnvInt("SPOTG_QUOTA_BYTES", 0),
		VerifyDelay: getEnvDuration("SPOTG_VERIFY_DELAY", 500*time.Millisecond),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
