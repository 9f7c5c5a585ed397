package worker

import (
	"sync"

	"golang.org/x/time/rate"
)

// Limiter implements per-client token-bucket rate limiting for the HTTP API.
// Each client key (typically the remote IP) gets its own bucket.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new rate limiter
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Allow checks whether a request from the given client is allowed right now.
func (l *Limiter) Allow(client string) bool {
	return l.getLimiter(client).Allow()
}

// getLimiter returns the rate limiter for a client key.
func (l *Limiter) getLimiter(client string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[client]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[client]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[client] = limiter

	return limiter
}
