package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	JWTSecret       string
	TokenTTLMinutes int
	GinMode         string
	UploadDir       string
	UploadBaseURL   string
	Port            string
}

func Load() *Config {
	// Missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load()

	return &Config{
		DBDriver:        getEnv("DB_DRIVER", "mysql"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBUser:          getEnv("DB_USER", "rentalhub"),
		DBPassword:      getEnv("DB_PASSWORD", "rentalhub"),
		DBName:          getEnv("DB_NAME", "rentalhub"),
		JWTSecret:       getEnv("JWT_SECRET", "default-secret-key-change-me"),
		TokenTTLMinutes: getEnvInt("TOKEN_TTL_MINUTES", 60),
		GinMode:         getEnv("GIN_MODE", "debug"),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		UploadBaseURL:   getEnv("UPLOAD_BASE_URL", "/media"),
		Port:            getEnv("PORT", "8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
