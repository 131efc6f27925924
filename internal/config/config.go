package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName string
	Debug   bool

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost string
	RedisPort string
	RedisDB   int

	Auth0Domain       string
	Auth0ClientID     string
	Auth0ClientSecret string
	Auth0Audience     string
	Auth0RedirectURI  string

	JWTSecret       string
	JWTAlgorithm    string
	TokenExpireMins int

	GinMode string
}

// Load reads configuration from the environment. An optional .env file is
// loaded first so local development matches production variable names.
// Secrets have no defaults; Load fails when they are missing.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppName: getEnv("APP_NAME", "company-directory-api"),
		Debug:   getEnvBool("DEBUG", false),

		DBHost:     getEnv("POSTGRES_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("POSTGRES_USER", "postgres"),
		DBPassword: os.Getenv("POSTGRES_PASSWORD"),
		DBName:     getEnv("POSTGRES_DB", "company_directory"),

		RedisHost: getEnv("REDIS_HOST", "localhost"),
		RedisPort: getEnv("REDIS_PORT", "6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		Auth0Domain:       os.Getenv("AUTH0_DOMAIN"),
		Auth0ClientID:     os.Getenv("AUTH0_CLIENT_ID"),
		Auth0ClientSecret: os.Getenv("AUTH0_CLIENT_SECRET"),
		Auth0Audience:     os.Getenv("AUTH0_AUDIENCE"),
		Auth0RedirectURI:  os.Getenv("AUTH0_REDIRECT_URI"),

		JWTSecret:       os.Getenv("JWT_SECRET_KEY"),
		JWTAlgorithm:    getEnv("JWT_ALGORITHM", "HS256"),
		TokenExpireMins: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),

		GinMode: getEnv("GIN_MODE", "debug"),
	}

	if cfg.DBPassword == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is required")
	}

	return cfg, nil
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
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
