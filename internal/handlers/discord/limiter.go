package discord

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultCommandRate  = rate.Limit(1)
	DefaultCommandBurst = 3

	// idle limiters are dropped after this long
	limiterIdleTTL = 10 * time.Minute
)

// userLimiter rate limits commands per user
type userLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu       sync.Mutex
	limiters map[string]*userBucket
}

type userBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newUserLimiter(limit rate.Limit, burst int, now func() time.Time) *userLimiter {
	if limit <= 0 {
		limit = DefaultCommandRate
	}
	if burst <= 0 {
		burst = DefaultCommandBurst
	}
	if now == nil {
		now = time.Now
	}
	return &userLimiter{
		limit:    limit,
		burst:    burst,
		now:      now,
		limiters: make(map[string]*userBucket),
	}
}

// Allow reports whether userID may run a command now
func (l *userLimiter) Allow(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	bucket, ok := l.limiters[userID]
	if !ok {
		bucket = &userBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[userID] = bucket
	}
	bucket.lastSeen = now

	return bucket.limiter.AllowN(now, 1)
}

func (l *userLimiter) sweep(now time.Time) {
	for userID, bucket := range l.limiters {
		if now.Sub(bucket.lastSeen) > limiterIdleTTL {
			delete(l.limiters, userID)
		}
	}
}
