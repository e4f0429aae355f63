package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/five82/skipper/internal/skips"
)

const maxBackoff = 30 * time.Second

// loader performs the picker's fetch. With retries at zero it issues
// exactly one request.
type loader struct {
	fetcher  skips.Fetcher
	location skips.Location
	retries  int
	backoff  time.Duration
	logger   *slog.Logger
}

// Load fetches the skips for the configured location. Transport failures
// and 5xx responses are retried up to l.retries times with exponential
// backoff; anything else fails immediately.
func (l loader) Load(ctx context.Context) ([]skips.Skip, error) {
	logger := l.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	for attempt := 0; ; attempt++ {
		records, err := l.fetcher.FetchSkips(ctx, l.location)
		if err == nil {
			logger.Info("skips loaded",
				"count", len(records),
				"postcode", l.location.Postcode,
				"area", l.location.Area,
				"attempt", attempt+1,
			)
			return records, nil
		}
		if attempt >= l.retries || !retryable(err) {
			logger.Error("skip fetch failed", "error", err, "attempt", attempt+1)
			return nil, err
		}

		wait := calculateBackoff(attempt, l.backoff)
		logger.Warn("skip fetch failed, retrying", "error", err, "attempt", attempt+1, "wait", wait)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func retryable(err error) bool {
	var fetchErr *skips.FetchError
	if !errors.As(err, &fetchErr) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return fetchErr.StatusCode == 0 || fetchErr.StatusCode >= http.StatusInternalServerError
}

// calculateBackoff doubles base for every prior failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
