package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// EnvDevelopment enables verbose logging and .env loading.
const EnvDevelopment = "development"

// managedRuntimeMarkers are environment variables whose presence indicates
// a managed host with a read-only filesystem, where file logging must be
// suppressed.
var managedRuntimeMarkers = []string{
	"AWS_LAMBDA_FUNCTION_NAME",
	"AWS_EXECUTION_ENV",
	"FUNCTION_TARGET",
	"K_SERVICE",
	"VERCEL",
	"NETLIFY",
	"DYNO",
}

type Config struct {
	ServerPort     int
	Environment    string
	ManagedRuntime bool
	LogDir         string
	Database       DatabaseConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

func LoadConfig() Config {
	environment := getEnv("ENV", EnvDevelopment)
	if environment == EnvDevelopment {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "elicapp"),
		Password: getEnv("DB_PASSWORD", "password"),
		DBName:   getEnv("DB_NAME", "elicapp_db"),
		UseSSL:   getEnv("DB_SSL", "") == "true",
	}

	return Config{
		ServerPort:     getEnvInt("SERVER_PORT", 3003),
		Environment:    environment,
		ManagedRuntime: detectManagedRuntime(),
		LogDir:         getEnv("LOG_DIR", "logs"),
		Database:       dbConfig,
	}
}

// IsDevelopment reports whether the process runs in the development
// environment.
func (c Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

func detectManagedRuntime() bool {
	for _, marker := range managedRuntimeMarkers {
		if _, exists := os.LookupEnv(marker); exists {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}
