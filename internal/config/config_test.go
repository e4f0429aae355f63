package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAPIBase, "")
	t.Setenv(EnvPostcode, "")
	t.Setenv(EnvArea, "")
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load = %#v, want defaults %#v", cfg, Default())
	}
	if cfg.Postcode != "NR32" || cfg.Area != "Lowestoft" {
		t.Fatalf("location = %s/%s, want NR32/Lowestoft", cfg.Postcode, cfg.Area)
	}
	if cfg.Retries != 0 {
		t.Fatalf("Retries = %d, want 0", cfg.Retries)
	}
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "skipper")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`area = "Norwich"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Area != "Norwich" {
		t.Fatalf("Area = %q, want Norwich", cfg.Area)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
api_base = "  http://127.0.0.1:9999  "
postcode = " LS1 "
area = "Leeds"
request_timeout = "3s"
retries = 2
retry_backoff = "250ms"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Config{
		APIBase:        "http://127.0.0.1:9999",
		Postcode:       "LS1",
		Area:           "Leeds",
		RequestTimeout: 3 * time.Second,
		Retries:        2,
		RetryBackoff:   250 * time.Millisecond,
	}
	if cfg != want {
		t.Fatalf("Load = %#v, want %#v", cfg, want)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
api_base = "   "
postcode = ""
request_timeout = ""
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load = %#v, want defaults", cfg)
	}
}

func TestLoad_RetriesAreBounded(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, `retries = 50`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Retries != maxRetries {
		t.Fatalf("Retries = %d, want cap %d", cfg.Retries, maxRetries)
	}

	if _, err := Load(writeConfig(t, `retries = -1`)); err == nil {
		t.Fatalf("Load accepted negative retries")
	}
}

func TestLoad_InvalidDurationFails(t *testing.T) {
	clearEnv(t)
	for _, body := range []string{`request_timeout = "soon"`, `retry_backoff = "-1s"`} {
		_, err := Load(writeConfig(t, body))
		if err == nil || !strings.Contains(err.Error(), "parse config") {
			t.Fatalf("Load(%s) error = %v, want parse config error", body, err)
		}
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, `api_base = [`))
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
postcode = "LS1"
area = "Leeds"
`)
	t.Setenv(EnvAPIBase, "http://localhost:8080")
	t.Setenv(EnvPostcode, "NR32")
	t.Setenv(EnvArea, "  ")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "http://localhost:8080" || cfg.Postcode != "NR32" {
		t.Fatalf("env overrides not applied: %#v", cfg)
	}
	if cfg.Area != "Leeds" {
		t.Fatalf("blank env var should not override: Area = %q", cfg.Area)
	}
}

func TestLoadDotEnv_SetsUnsetVariables(t *testing.T) {
	t.Setenv(EnvPostcode, "KEEP")
	t.Setenv(EnvArea, "")
	os.Unsetenv(EnvArea)

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("SKIPPER_POSTCODE=IGNORED\nSKIPPER_AREA=Lowestoft\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv returned error: %v", err)
	}
	if got := os.Getenv(EnvPostcode); got != "KEEP" {
		t.Fatalf("%s = %q, want existing value kept", EnvPostcode, got)
	}
	if got := os.Getenv(EnvArea); got != "Lowestoft" {
		t.Fatalf("%s = %q, want Lowestoft from file", EnvArea, got)
	}
}

func TestLoadDotEnv_MissingFileIsNotAnError(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("LoadDotEnv returned error: %v", err)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
