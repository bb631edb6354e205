// filepath: internal/services/auth/throttle.go
package auth

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// Throttle limits failed logins per (username, client IP). Each key owns a
// token bucket holding maxFailures tokens that refills over window; every
// failure spends one token and an empty bucket blocks further attempts.
type Throttle struct {
	mu       sync.Mutex
	limiters *cache.Cache
	max      int
	window   time.Duration
	now      func() time.Time
}

// NewThrottle creates a Throttle. Idle entries expire after one window.
func NewThrottle(maxFailures int, window time.Duration) *Throttle {
	if maxFailures < 1 {
		maxFailures = 1
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &Throttle{
		limiters: cache.New(window, window),
		max:      maxFailures,
		window:   window,
		now:      time.Now,
	}
}

// SetClock overrides the time source.
func (t *Throttle) SetClock(now func() time.Time) {
	t.now = now
}

func throttleKey(username, clientIP string) string {
	return username + "|" + clientIP
}

// Blocked reports whether the key has used up its failures.
func (t *Throttle) Blocked(username, clientIP string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.limiters.Get(throttleKey(username, clientIP))
	if !ok {
		return false
	}
	return v.(*rate.Limiter).TokensAt(t.now()) < 1
}

// Failure records one failed attempt.
func (t *Throttle) Failure(username, clientIP string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := throttleKey(username, clientIP)
	var limiter *rate.Limiter
	if v, ok := t.limiters.Get(key); ok {
		limiter = v.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(rate.Every(t.window/time.Duration(t.max)), t.max)
	}
	limiter.AllowN(t.now(), 1)
	t.limiters.Set(key, limiter, cache.DefaultExpiration)
}

// Reset forgets the key's failures.
func (t *Throttle) Reset(username, clientIP string) {
	t.limiters.Delete(throttleKey(username, clientIP))
}
