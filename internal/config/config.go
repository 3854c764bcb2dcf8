package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration derived from environment variables.
type Config struct {
	HTTPPort            string
	LogLevel            string
	APIPrefix           string
	RateLimitRPS        int
	SeedDefaultMerchant bool
	ShutdownTimeout     time.Duration
}

// Load reads environment variables using viper and returns a typed config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	bindEnv(v, "port", "PORT", "LOAN_PORT")
	bindEnv(v, "log_level", "LOG_LEVEL", "LOAN_LOG_LEVEL")
	bindEnv(v, "api_prefix", "API_PREFIX", "LOAN_API_PREFIX")
	bindEnv(v, "rate_limit_rps", "RATE_LIMIT_RPS", "LOAN_RATE_LIMIT_RPS")
	bindEnv(v, "seed_default_merchant", "SEED_DEFAULT_MERCHANT", "LOAN_SEED_DEFAULT_MERCHANT")
	bindEnv(v, "shutdown_timeout", "SHUTDOWN_TIMEOUT", "LOAN_SHUTDOWN_TIMEOUT")

	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_prefix", "/api")
	v.SetDefault("rate_limit_rps", 100)
	v.SetDefault("seed_default_merchant", true)
	v.SetDefault("shutdown_timeout", "30s")

	shutdownTimeout, err := time.ParseDuration(v.GetString("shutdown_timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	prefix := strings.TrimSuffix(strings.TrimSpace(v.GetString("api_prefix")), "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		return nil, fmt.Errorf("API_PREFIX must start with '/': %q", prefix)
	}

	cfg := &Config{
		HTTPPort:            v.GetString("port"),
		LogLevel:            v.GetString("log_level"),
		APIPrefix:           prefix,
		RateLimitRPS:        max(v.GetInt("rate_limit_rps"), 1),
		SeedDefaultMerchant: v.GetBool("seed_default_merchant"),
		ShutdownTimeout:     shutdownTimeout,
	}

	if strings.TrimSpace(cfg.HTTPPort) == "" {
		return nil, fmt.Errorf("PORT is required")
	}

	return cfg, nil
}

func bindEnv(v *viper.Viper, key string, names ...string) {
	args := append([]string{key}, names...)
	_ = v.BindEnv(args...)
}
