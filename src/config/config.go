package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
// The values are loaded from environment variables.
type AppConfig struct {
	// Core settings
	Port         string
	DatabasePath string
	LogLevel     string

	// Request limits
	MaxPasteSizeBytes int64
	AllowedOrigins    []string

	// Cash-flow simulation tuning
	SimGranularity            string
	SimInterestRate           float64
	SimPreseasonRounds        int
	SimSettleBeforeInterest   bool
	SimVariableIncome         bool
	SimVariableIncomeFactor   float64
	SimStartingCashFourRounds bool
	SimClampNegativeCash      bool
}

// Cfg is a global instance of the AppConfig.
var Cfg *AppConfig

// LoadConfig loads configuration from environment variables or a .env file.
// It centralizes all configuration logic for the application.
func LoadConfig() {
	// 1. Try loading from the current directory (standard behavior)
	errEnv := godotenv.Load()

	// 2. If not found, try loading from the parent directory (common when running from /backend)
	if errEnv != nil {
		errEnv = godotenv.Load("../.env")
	}

	if errEnv != nil {
		if os.IsNotExist(errEnv) {
			log.Println("Info: No .env file found in current or parent directory. Relying on OS environment variables (expected in production).")
		} else {
			log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", errEnv)
		}
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	maxPasteSizeBytesStr := getEnv("MAX_PASTE_SIZE_BYTES", "1048576") // 1MB default
	maxPasteSizeBytes, err := strconv.ParseInt(maxPasteSizeBytesStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_PASTE_SIZE_BYTES format '%s'. Using default 1MB. Error: %v", maxPasteSizeBytesStr, err)
		maxPasteSizeBytes = 1024 * 1024
	}

	simGranularity := getEnv("SIM_GRANULARITY", "round")
	if simGranularity != "round" && simGranularity != "day" {
		log.Printf("WARNING: Invalid SIM_GRANULARITY '%s'. Using 'round'.", simGranularity)
		simGranularity = "round"
	}

	// --- Populate the Global Config Struct ---
	Cfg = &AppConfig{
		// Core
		Port:         getEnv("PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "./osmtracker.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		// Limits
		MaxPasteSizeBytes: maxPasteSizeBytes,
		AllowedOrigins:    getListEnv("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		// Simulation
		SimGranularity:            simGranularity,
		SimInterestRate:           getEnvAsFloat("SIM_INTEREST_RATE", 0.02),
		SimPreseasonRounds:        getEnvAsInt("SIM_PRESEASON_ROUNDS", 3),
		SimSettleBeforeInterest:   getEnvAsBool("SIM_SETTLE_BEFORE_INTEREST", false),
		SimVariableIncome:         getEnvAsBool("SIM_VARIABLE_INCOME", false),
		SimVariableIncomeFactor:   getEnvAsFloat("SIM_VARIABLE_INCOME_FACTOR", 0.7),
		SimStartingCashFourRounds: getEnvAsBool("SIM_STARTING_CASH_FOUR_ROUNDS", false),
		SimClampNegativeCash:      getEnvAsBool("SIM_CLAMP_NEGATIVE_CASH", false),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s, SimGranularity=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath, Cfg.SimGranularity)
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer or returns a fallback.
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

// getEnvAsFloat retrieves an environment variable as a float or returns a fallback.
func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	log.Printf("Invalid float value for %s ('%s'), using default: %g", key, valueStr, fallback)
	return fallback
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a fallback.
func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid boolean value for %s ('%s'), using default: %t", key, valueStr, fallback)
	return fallback
}

// getListEnv retrieves and parses a comma-separated list.
func getListEnv(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	parts := strings.Split(valueStr, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
