package connector

import (
	"context"
	"time"
)

const (
	defaultBaseDelay = time.Second
	defaultBackoff   = 2.0
)

func attempts(cfg RetryConfig) int {
	return cfg.MaxRetries + 1
}

// retryConnect calls connectFn until it succeeds, the attempts run out or ctx
// is done. The delay grows by cfg.Backoff after each failure, capped at
// cfg.MaxDelay.
func retryConnect(ctx context.Context, cfg RetryConfig, connectFn func(context.Context) (Connection, error)) (Connection, error) {
	delay := cfg.BaseDelay
	if delay <= 0 {
		delay = defaultBaseDelay
	}
	backoff := cfg.Backoff
	if backoff < 1 {
		backoff = defaultBackoff
	}

	var err error
	for i := 0; i < attempts(cfg); i++ {
		var conn Connection
		conn, err = connectFn(ctx)
		if err == nil {
			return conn, nil
		}
		if i == attempts(cfg)-1 {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * backoff)
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
	return nil, err
}
