package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP            string   // Host IP for the server
	RESTPort          int      // Port for the REST API
	DBHost            string   // Hostname or IP address for the database
	DBPort            int      // Port number for the database
	DBUser            string   // Username for the database
	DBPassword        string   // Password for the database
	DBName            string   // Name of the database
	RedisAddr         string   // host:port of the redis server holding move history
	RedisPassword     string   // Password for the redis server
	HistoryTTLSeconds int      // Lifetime of a player's move history after its first move
	GinMode           string   // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret         string   // Secret key for JWT signing
	JWTIssuer         string   // Issuer claim for JWTs
	GridSize          int      // Cells along one side of the board
	GridDensity       float64  // Approximate share of blocked cells
	GridSeed          int64    // Seed for the board roll, 0 seeds from the clock
	GridLayout        []string // Fixed board rows, overrides the random roll when set
	MovementBudget    int      // Moves an agent may make per turn
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		DBHost:            mustGetEnv("DB_HOST"),
		DBPort:            mustGetEnvAsInt("DB_PORT"),
		DBUser:            mustGetEnv("DB_USER"),
		DBPassword:        mustGetEnv("DB_PASS"),
		DBName:            mustGetEnv("DB_NAME"),
		RedisAddr:         mustGetEnv("REDIS_ADDR"),
		RedisPassword:     getEnvWithDefault("REDIS_PASSWORD", ""),
		HistoryTTLSeconds: getEnvAsIntWithDefault("HISTORY_TTL_SECONDS", 24*60*60),
		GinMode:           getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:         mustGetEnv("JWT_SECRET"),
		JWTIssuer:         mustGetEnv("JWT_ISSUER"),
		HostIP:            mustGetEnv("HOST_IP"),
		RESTPort:          mustGetEnvAsInt("REST_PORT"),
		GridSize:          getEnvAsIntWithDefault("GRID_SIZE", 12),
		GridDensity:       getEnvAsFloatWithDefault("GRID_DENSITY", 0.15),
		GridSeed:          int64(getEnvAsIntWithDefault("GRID_SEED", 0)),
		GridLayout:        splitLayout(getEnvWithDefault("GRID_LAYOUT", "")),
		MovementBudget:    getEnvAsIntWithDefault("MOVEMENT_BUDGET", 6),
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault is getEnvWithDefault for integers; a malformed value is fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsFloatWithDefault is getEnvWithDefault for floats; a malformed value is fatal.
func getEnvAsFloatWithDefault(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a number: %v", key, err)
	}
	return value
}

// splitLayout turns "--*/-*-/---" into board rows. Empty means no fixed layout.
func splitLayout(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "/")
}
