package config

import (
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DBDriver    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	JWTKey      string
	JWTIssuer   string
	JWTAudience string
	TokenTTL    time.Duration
	UploadsDir  string
	RedisAddr   string
	GinMode     string
	Port        string
	CORSOrigin  string
}

// Load reads configuration from the environment. The signing key has no
// default: a missing JWT_SIGNING_KEY is fatal.
func Load() *Config {
	cfg := &Config{
		DBDriver:    getEnv("DB_DRIVER", "mysql"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "3306"),
		DBUser:      getEnv("DB_USER", "internos"),
		DBPassword:  getEnv("DB_PASSWORD", "internos"),
		DBName:      getEnv("DB_NAME", "internos"),
		JWTKey:      os.Getenv("JWT_SIGNING_KEY"),
		JWTIssuer:   getEnv("JWT_ISSUER", "internos-api"),
		JWTAudience: getEnv("JWT_AUDIENCE", "internos-clients"),
		TokenTTL:    24 * time.Hour,
		UploadsDir:  getEnv("UPLOADS_DIR", "uploads"),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		GinMode:     getEnv("GIN_MODE", "debug"),
		Port:        getEnv("PORT", "8080"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "http://localhost:5173"),
	}

	if cfg.JWTKey == "" {
		log.Fatal().Msg("JWT_SIGNING_KEY is required")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
