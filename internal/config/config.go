package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	ServerPort       string
	JWTSecret        string
	JWTExpiryMinutes int
	CORSOrigin       string
	MigrationsPath   string
	LogFile          string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "twistlist_user"),
		DBPassword:       getEnv("DB_PASSWORD", "twistlist_pass"),
		DBName:           getEnv("DB_NAME", "twistlist_db"),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		JWTSecret:        getEnv("JWT_SECRET", "supersecretkey"),
		JWTExpiryMinutes: getEnvInt("JWT_EXPIRY_MINUTES", 15),
		CORSOrigin:       getEnv("CORS_ORIGIN", "http://localhost:3001"),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", "file://migrations"),
		LogFile:          getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}
