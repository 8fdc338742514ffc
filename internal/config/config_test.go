package config

import (
	"os"
	"testing"
	"time"
)

func TestGetEnvWithDefault(t *testing.T) {
	const key = "TEST_APP_PORT"

	// 环境变量未设置时，应该返回默认值
	_ = os.Unsetenv(key)
	if got := getEnv(key, "9000"); got != "9000" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "9000")
	}

	// 环境变量设置后，应优先返回环境变量
	if err := os.Setenv(key, "8080"); err != nil {
		t.Fatalf("Setenv error: %v", err)
	}
	defer os.Unsetenv(key)
	if got := getEnv(key, "9000"); got != "8080" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "8080")
	}
}

func TestGetEnvIntAndDurationFallBackOnGarbage(t *testing.T) {
	_ = os.Setenv("TEST_MAX", "not-a-number")
	_ = os.Setenv("TEST_TIMEOUT", "soon")
	defer func() {
		_ = os.Unsetenv("TEST_MAX")
		_ = os.Unsetenv("TEST_TIMEOUT")
	}()

	if got := getEnvInt("TEST_MAX", 5); got != 5 {
		t.Fatalf("getEnvInt fallback = %d, want 5", got)
	}
	if got := getEnvDuration("TEST_TIMEOUT", 15*time.Second); got != 15*time.Second {
		t.Fatalf("getEnvDuration fallback = %s, want 15s", got)
	}

	_ = os.Setenv("TEST_MAX", "7")
	_ = os.Setenv("TEST_TIMEOUT", "30s")
	if got := getEnvInt("TEST_MAX", 5); got != 7 {
		t.Fatalf("getEnvInt = %d, want 7", got)
	}
	if got := getEnvDuration("TEST_TIMEOUT", 15*time.Second); got != 30*time.Second {
		t.Fatalf("getEnvDuration = %s, want 30s", got)
	}
}

func TestLoadReadsAuthAndPorts(t *testing.T) {
	_ = os.Setenv("APP_PORT", "1234")
	_ = os.Setenv("APP_BASIC_USER", "user")
	_ = os.Setenv("APP_BASIC_PASS", "pass")
	_ = os.Setenv("OUTPUT_PATH", "public/index.html")
	defer func() {
		_ = os.Unsetenv("APP_PORT")
		_ = os.Unsetenv("APP_BASIC_USER")
		_ = os.Unsetenv("APP_BASIC_PASS")
		_ = os.Unsetenv("OUTPUT_PATH")
	}()

	cfg := Load()
	if cfg.AppPort != "1234" {
		t.Fatalf("AppPort = %q, want %q", cfg.AppPort, "1234")
	}
	if cfg.BasicAuthUser != "user" || cfg.BasicAuthPass != "pass" {
		t.Fatalf("BasicAuthUser/Pass not loaded correctly: %+v", cfg)
	}
	if cfg.OutputPath != "public/index.html" {
		t.Fatalf("OutputPath = %q", cfg.OutputPath)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "OUTPUT_PATH", "MAX_PER_SOURCE", "FETCH_TIMEOUT", "CRON_SPEC"} {
		_ = os.Unsetenv(k)
	}
	cfg := Load()
	if cfg.OutputPath != "docs/index.html" {
		t.Fatalf("default OutputPath = %q", cfg.OutputPath)
	}
	if cfg.MaxPerSource != 5 {
		t.Fatalf("default MaxPerSource = %d", cfg.MaxPerSource)
	}
	if cfg.FetchTimeout != 15*time.Second {
		t.Fatalf("default FetchTimeout = %s", cfg.FetchTimeout)
	}
	if cfg.CronSpec != "0 * * * *" {
		t.Fatalf("default CronSpec = %q", cfg.CronSpec)
	}
}
