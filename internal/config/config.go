package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures where Skipper fetches skips from and how.
type Config struct {
	APIBase        string
	Postcode       string
	Area           string
	RequestTimeout time.Duration
	Retries        int
	RetryBackoff   time.Duration
}

const (
	defaultConfigPath     = "~/.config/skipper/config.toml"
	defaultAPIBase        = "https://app.wewantwaste.co.uk"
	defaultPostcode       = "NR32"
	defaultArea           = "Lowestoft"
	defaultRequestTimeout = 10 * time.Second
	defaultRetryBackoff   = time.Second
	maxRetries            = 5
)

// Environment overrides for the endpoint.
const (
	EnvAPIBase  = "SKIPPER_API_BASE"
	EnvPostcode = "SKIPPER_POSTCODE"
	EnvArea     = "SKIPPER_AREA"
)

// Default returns the built-in configuration: the reference endpoint and
// location, one request, no retries.
func Default() Config {
	return Config{
		APIBase:        defaultAPIBase,
		Postcode:       defaultPostcode,
		Area:           defaultArea,
		RequestTimeout: defaultRequestTimeout,
		RetryBackoff:   defaultRetryBackoff,
	}
}

// Load locates and parses the config, falling back to defaults when the
// file is missing, then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg, err := loadFile(resolved)
	if err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

// LoadDotEnv reads KEY=value pairs from path into the process environment
// without overwriting variables that are already set. A missing file is
// not an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func loadFile(resolved string) (Config, error) {
	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase        string `toml:"api_base"`
		Postcode       string `toml:"postcode"`
		Area           string `toml:"area"`
		RequestTimeout string `toml:"request_timeout"`
		Retries        int    `toml:"retries"`
		RetryBackoff   string `toml:"retry_backoff"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(raw.Postcode); v != "" {
		cfg.Postcode = v
	}
	if v := strings.TrimSpace(raw.Area); v != "" {
		cfg.Area = v
	}
	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout, defaultRequestTimeout); err != nil {
		return Config{}, err
	}
	if cfg.RetryBackoff, err = parseDuration("retry_backoff", raw.RetryBackoff, defaultRetryBackoff); err != nil {
		return Config{}, err
	}
	switch {
	case raw.Retries < 0:
		return Config{}, fmt.Errorf("parse config: retries must not be negative, got %d", raw.Retries)
	case raw.Retries > maxRetries:
		cfg.Retries = maxRetries
	default:
		cfg.Retries = raw.Retries
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIBase)); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPostcode)); v != "" {
		cfg.Postcode = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvArea)); v != "" {
		cfg.Area = v
	}
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("parse config: %s must be positive, got %s", key, trimmed)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
