package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/tamaki/restaurant-ops-api/internal/constants"
)

type Config struct {
	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	RedisHost             string
	RedisPort             string
	SessionSecret         string
	GinMode               string
	ServerAddr            string
	BusinessDayCutoffHour int
}

// Load reads configuration from the environment. A .env file is honored
// when present so local setups match the deployed container.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                getEnv("DB_PORT", "3306"),
		DBUser:                getEnv("DB_USER", "opsuser"),
		DBPassword:            getEnv("DB_PASSWORD", "opspassword"),
		DBName:                getEnv("DB_NAME", "restaurant_ops"),
		RedisHost:             getEnv("REDIS_HOST", "localhost"),
		RedisPort:             getEnv("REDIS_PORT", "6379"),
		SessionSecret:         getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:               getEnv("GIN_MODE", "debug"),
		ServerAddr:            getEnv("SERVER_ADDR", ":8080"),
		BusinessDayCutoffHour: getEnvInt("BUSINESS_DAY_CUTOFF_HOUR", constants.DefaultBusinessDayCutoffHour),
	}
}

// Validate rejects configuration that would make business-date math ambiguous.
func (c *Config) Validate() error {
	if c.BusinessDayCutoffHour < 0 || c.BusinessDayCutoffHour > 23 {
		return fmt.Errorf("BUSINESS_DAY_CUTOFF_HOUR must be between 0 and 23, got %d", c.BusinessDayCutoffHour)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
