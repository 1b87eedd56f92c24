package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	setCoreEnvEmpty(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BindAddr != ":8080" {
		t.Fatalf("BindAddr = %q, want %q", cfg.BindAddr, ":8080")
	}
	if cfg.SessionTimeout != time.Hour {
		t.Fatalf("SessionTimeout = %v, want 1h", cfg.SessionTimeout)
	}
	if cfg.SweepInterval != 5*time.Minute {
		t.Fatalf("SweepInterval = %v, want 5m", cfg.SweepInterval)
	}
	if cfg.VerifyProvider != "auto" {
		t.Fatalf("VerifyProvider = %q, want %q", cfg.VerifyProvider, "auto")
	}
	if cfg.VerifyBypassCode != "123456" {
		t.Fatalf("VerifyBypassCode = %q, want default", cfg.VerifyBypassCode)
	}
	if cfg.DefaultCountryCode != "+91" {
		t.Fatalf("DefaultCountryCode = %q, want %q", cfg.DefaultCountryCode, "+91")
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("DatabaseURL = %q, want empty default", cfg.DatabaseURL)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("APP_BIND_ADDR", ":9090")
	t.Setenv("APP_SESSION_TIMEOUT", "30m")
	t.Setenv("VERIFY_PROVIDER", "bypass")
	t.Setenv("APP_ALLOW_ANY_ORIGIN", "true")
	t.Setenv("DEFAULT_COUNTRY_CODE", "+1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BindAddr != ":9090" {
		t.Fatalf("BindAddr = %q, want explicit value", cfg.BindAddr)
	}
	if cfg.SessionTimeout != 30*time.Minute {
		t.Fatalf("SessionTimeout = %v, want 30m", cfg.SessionTimeout)
	}
	if cfg.VerifyProvider != "bypass" {
		t.Fatalf("VerifyProvider = %q, want %q", cfg.VerifyProvider, "bypass")
	}
	if !cfg.AllowAnyOrigin {
		t.Fatalf("AllowAnyOrigin = false, want true")
	}
	if cfg.DefaultCountryCode != "+1" {
		t.Fatalf("DefaultCountryCode = %q, want %q", cfg.DefaultCountryCode, "+1")
	}
}

func TestLoadRejectsShortSessionTimeout(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("APP_SESSION_TIMEOUT", "10s")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted a sub-minute session timeout")
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("VERIFY_PROVIDER", "carrier-pigeon")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted an unknown verify provider")
	}
}

func TestLoadRejectsBareCountryCode(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("DEFAULT_COUNTRY_CODE", "91")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted a country code without a leading +")
	}
}

func setCoreEnvEmpty(t *testing.T) {
	t.Helper()
	keys := []string{
		"APP_BIND_ADDR",
		"APP_SHUTDOWN_TIMEOUT",
		"APP_SESSION_TIMEOUT",
		"APP_SESSION_SWEEP_INTERVAL",
		"APP_METRICS_NAMESPACE",
		"APP_ALLOW_ANY_ORIGIN",
		"VERIFY_PROVIDER",
		"VERIFY_TIMEOUT",
		"VERIFY_BYPASS_CODE",
		"TWILIO_ACCOUNT_SID",
		"TWILIO_AUTH_TOKEN",
		"TWILIO_VERIFY_SERVICE_SID",
		"DEFAULT_COUNTRY_CODE",
		"DATABASE_URL",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}
