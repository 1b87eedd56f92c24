package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config contains all runtime settings for the university chatbot service.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	SessionTimeout   time.Duration
	SweepInterval    time.Duration
	MetricsNamespace string

	AllowAnyOrigin bool

	VerifyProvider string
	VerifyTimeout  time.Duration

	TwilioAccountSID      string
	TwilioAuthToken       string
	TwilioVerifyServiceID string
	VerifyBypassCode      string

	DefaultCountryCode string

	DatabaseURL string
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:              envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace:      envOrDefault("APP_METRICS_NAMESPACE", "unibot"),
		AllowAnyOrigin:        false,
		VerifyProvider:        envOrDefault("VERIFY_PROVIDER", "auto"),
		TwilioAccountSID:      stringsTrimSpace("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:       stringsTrimSpace("TWILIO_AUTH_TOKEN"),
		TwilioVerifyServiceID: stringsTrimSpace("TWILIO_VERIFY_SERVICE_SID"),
		VerifyBypassCode:      envOrDefault("VERIFY_BYPASS_CODE", "123456"),
		DefaultCountryCode:    envOrDefault("DEFAULT_COUNTRY_CODE", "+91"),
		DatabaseURL:           stringsTrimSpace("DATABASE_URL"),
		ShutdownTimeout:       15 * time.Second,
		SessionTimeout:        time.Hour,
		SweepInterval:         5 * time.Minute,
		VerifyTimeout:         10 * time.Second,
	}
	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionTimeout, err = durationFromEnv("APP_SESSION_TIMEOUT", cfg.SessionTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.SweepInterval, err = durationFromEnv("APP_SESSION_SWEEP_INTERVAL", cfg.SweepInterval)
	if err != nil {
		return Config{}, err
	}
	cfg.VerifyTimeout, err = durationFromEnv("VERIFY_TIMEOUT", cfg.VerifyTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}

	if cfg.SessionTimeout < time.Minute {
		return Config{}, fmt.Errorf("APP_SESSION_TIMEOUT must be at least 1m")
	}
	if cfg.SweepInterval <= 0 {
		return Config{}, fmt.Errorf("APP_SESSION_SWEEP_INTERVAL must be positive")
	}
	if cfg.VerifyTimeout <= 0 {
		return Config{}, fmt.Errorf("VERIFY_TIMEOUT must be positive")
	}
	switch cfg.VerifyProvider {
	case "auto", "twilio", "bypass":
	default:
		return Config{}, fmt.Errorf("VERIFY_PROVIDER must be one of auto, twilio, bypass")
	}
	if !strings.HasPrefix(cfg.DefaultCountryCode, "+") {
		return Config{}, fmt.Errorf("DEFAULT_COUNTRY_CODE must start with +")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func stringsTrimSpace(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(stringsTrimSpace(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
