package postgres

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// RetryConfig задаёт экспоненциальную задержку между попытками подключения.
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig подходит для старта рядом с ещё не поднявшейся базой (docker compose).
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   5,
		InitialDelay:  200 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
	}
}

func (c RetryConfig) nextDelay(delay time.Duration) time.Duration {
	factor := c.BackoffFactor
	if factor < 1 {
		factor = 1
	}
	next := time.Duration(float64(delay) * factor)
	if c.MaxDelay > 0 && next > c.MaxDelay {
		next = c.MaxDelay
	}
	return next
}

// OpenWithRetry повторяет Open, пока база не ответит или не кончатся попытки.
func OpenWithRetry(ctx context.Context, dsn string, cfg RetryConfig, logger *log.Entry) (*Store, error) {
	if logger == nil {
		logger = log.WithField("component", "postgres")
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	var lastErr error
	delay := cfg.InitialDelay
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		store, err := Open(ctx, dsn)
		if err == nil {
			if attempt > 1 {
				logger.WithField("attempt", attempt).Info("подключение к PostgreSQL установлено после повтора")
			}
			return store, nil
		}
		lastErr = err

		if attempt == cfg.MaxAttempts {
			break
		}
		logger.WithError(err).WithFields(log.Fields{
			"attempt": attempt,
			"delay":   delay,
		}).Warn("PostgreSQL недоступен, повторяем подключение")

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("connect postgres: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay = cfg.nextDelay(delay)
	}

	return nil, fmt.Errorf("connect postgres after %d attempts: %w", cfg.MaxAttempts, lastErr)
}
