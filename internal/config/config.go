// Package config provides environment configuration for the simulator.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application. Command-line flags
// override the run settings; environment variables carry everything else.
type Config struct {
	// LLM settings
	AnthropicAPIKey string
	OpenAIAPIKey    string
	DefaultLLM      string

	// Generation pacing
	PreCallDelay      time.Duration
	PostCallDelay     time.Duration
	RateLimitCooldown time.Duration

	// Run settings
	Workers     int
	MaxTurns    int
	RunDeadline time.Duration
	Seed        int64

	// Profile overrides
	ProfileFile string

	// Output
	OutputPath string

	// Status server
	StatusEnabled bool
	StatusAddr    string

	// NATS settings
	NATSEnabled  bool
	NATSURL      string
	NATSCAFile   string
	NATSCertFile string
	NATSKeyFile  string
	NATSToken    string

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		// LLM
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		DefaultLLM:      getEnv("DEFAULT_LLM", "anthropic"),

		// Pacing
		PreCallDelay:      getDurationEnv("SIM_PRE_CALL_DELAY", 3*time.Second),
		PostCallDelay:     getDurationEnv("SIM_POST_CALL_DELAY", time.Second),
		RateLimitCooldown: getDurationEnv("SIM_RATE_LIMIT_COOLDOWN", 30*time.Second),

		// Run
		Workers:     getIntEnv("SIM_WORKERS", 3),
		MaxTurns:    getIntEnv("SIM_MAX_TURNS", 10),
		RunDeadline: getDurationEnv("SIM_RUN_DEADLINE", 0),
		Seed:        int64(getIntEnv("SIM_SEED", 0)),

		// Profiles
		ProfileFile: getEnv("SIM_PROFILE_FILE", ""),

		// Output
		OutputPath: getEnv("SIM_OUTPUT", "simulation_results.json"),

		// Status server
		StatusEnabled: getBoolEnv("SIM_STATUS_ENABLED", true),
		StatusAddr:    getEnv("SIM_STATUS_ADDR", ":8080"),

		// NATS
		NATSEnabled:  getBoolEnv("NATS_ENABLED", false),
		NATSURL:      getEnv("NATS_URL", "nats://localhost:4222"),
		NATSCAFile:   getEnv("NATS_CA_FILE", ""),
		NATSCertFile: getEnv("NATS_CERT_FILE", ""),
		NATSKeyFile:  getEnv("NATS_KEY_FILE", ""),
		NATSToken:    getEnv("NATS_TOKEN", ""),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
