package ratelimiter

import (
	"sync"
	"time"

	"github.com/mobiliza/peticoes/internal/config"
	"go.uber.org/zap"
)

// FixedWindowRateLimiter counts requests per key inside a fixed time frame.
// State lives in memory, so limits apply per process. Deployments running
// multiple replicas need a shared counter instead.
type FixedWindowRateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	frame   time.Duration
	enabled bool
	logger  *zap.SugaredLogger

	// overridable in tests
	now func() time.Time
}

type window struct {
	count    int
	startsAt time.Time
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		windows: make(map[string]*window),
		limit:   cfg.RequestsPerTimeFrame,
		frame:   cfg.TimeFrame,
		enabled: cfg.Enabled,
		logger:  logger,
		now:     time.Now,
	}
}

// Allow consumes one unit of the key's budget. When the budget is exhausted it
// returns false together with the time left until the window rolls over.
func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	if !rl.enabled {
		return true, 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	w, ok := rl.windows[key]
	if !ok || now.Sub(w.startsAt) >= rl.frame {
		rl.windows[key] = &window{count: 1, startsAt: now}
		return true, 0
	}

	if w.count >= rl.limit {
		retryAfter := rl.frame - now.Sub(w.startsAt)
		rl.logger.Debugf("rate limit exceeded for key %s, retry after %s", key, retryAfter)
		return false, retryAfter
	}

	w.count++
	return true, 0
}

// Prune drops windows that rolled over. The map only grows with distinct
// client ips inside one time frame, so pruning on a timer is enough.
func (rl *FixedWindowRateLimiter) Prune() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, w := range rl.windows {
		if now.Sub(w.startsAt) >= rl.frame {
			delete(rl.windows, key)
		}
	}
}
