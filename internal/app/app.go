package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/five82/skipper/internal/config"
	"github.com/five82/skipper/internal/prefs"
	"github.com/five82/skipper/internal/skips"
	"github.com/five82/skipper/internal/ui"
)

// Options configure the Skipper application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/skipper/prefs.toml
	EnvFile    string // empty uses ./.env when present
	Postcode   string // overrides config and environment
	Area       string // overrides config and environment
	LogOutput  string // JSON log file; empty logs to the TUI only
}

// Result reports how the session ended.
type Result struct {
	// Confirmed is the skip the user continued with, if any.
	Confirmed *skips.Skip
}

// Run boots the Skipper TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) (Result, error) {
	if err := config.LoadDotEnv(opts.EnvFile); err != nil {
		return Result{}, err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return Result{}, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.Postcode); v != "" {
		cfg.Postcode = v
	}
	if v := strings.TrimSpace(opts.Area); v != "" {
		cfg.Area = v
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := skips.NewClient(cfg.APIBase, skips.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return Result{}, fmt.Errorf("init skips client: %w", err)
	}

	tuiHandler := ui.NewTUILogHandler(slog.LevelWarn)
	logger, closeLog, err := newLogger(tuiHandler, opts.LogOutput)
	if err != nil {
		return Result{}, err
	}
	defer closeLog()

	location := skips.Location{Postcode: cfg.Postcode, Area: cfg.Area}
	l := loader{
		fetcher:  client,
		location: location,
		retries:  cfg.Retries,
		backoff:  cfg.RetryBackoff,
		logger:   logger,
	}

	var result Result
	uiOpts := ui.Options{
		Context:    ctx,
		Load:       l.Load,
		Location:   location,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
		Logger:     logger,
		LogHandler: tuiHandler,
		OnContinue: func(s skips.Skip) {
			confirmed := s
			result.Confirmed = &confirmed
			logger.Info("skip confirmed",
				"id", s.ID,
				"size", s.Size,
				"total", s.FormatTotal(),
				"hire_period_days", s.HirePeriodDays,
			)
		},
	}
	logger.Debug("starting picker",
		"api_base", cfg.APIBase,
		"postcode", cfg.Postcode,
		"area", cfg.Area,
		"retries", cfg.Retries,
	)
	if err := ui.Run(uiOpts); err != nil {
		return result, err
	}
	return result, nil
}
