// ABOUTME: Configuration loader for the planning service
// ABOUTME: Loads settings from environment variables, optionally seeded from a .env file

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/markalston/network-capacity-planner/models"
)

type Config struct {
	// Server
	Port               string
	CacheTTL           int      // seconds, plan response cache
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)

	// Planning
	EscalationPolicy   models.EscalationPolicy // default policy when a request names none
	MaxRouterAdditions int                     // per-pair ceiling for router addition

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitPlan    int  // Requests per minute for planning endpoints (default: 30)
}

// Load reads ENV_FILE (default .env) if present, then the environment.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	if err := loadEnvFile(getEnv("ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	policy, err := models.ParseEscalationPolicy(os.Getenv("ESCALATION_POLICY"))
	if err != nil {
		return nil, fmt.Errorf("ESCALATION_POLICY: %w", err)
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CacheTTL:           getEnvInt("CACHE_TTL", 300),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),

		EscalationPolicy:   policy,
		MaxRouterAdditions: getEnvInt("MAX_ROUTER_ADDITIONS", models.DefaultMaxRouterAdditions),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitPlan:    getEnvInt("RATE_LIMIT_PLAN", 30),
	}

	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("CACHE_TTL cannot be negative, got %d", cfg.CacheTTL)
	}

	for _, rl := range []struct {
		name  string
		value int
	}{
		{"MAX_ROUTER_ADDITIONS", cfg.MaxRouterAdditions},
		{"RATE_LIMIT_PLAN", cfg.RateLimitPlan},
	} {
		if rl.value < 1 || rl.value > 10000 {
			return nil, fmt.Errorf("%s must be between 1 and 10000, got %d", rl.name, rl.value)
		}
	}

	return cfg, nil
}

// loadEnvFile seeds the environment from path; a missing file is not an error
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
