// Package middleware provides HTTP middleware for Atlas.
// ratelimit.go implements a per-IP token bucket limiter for the API.
package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// rateLimitClient is one IP's bucket and when it was last used.
type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds per-IP token buckets allowing maxRequests per window
// with bursts up to maxRequests.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateLimitClient
	limit   rate.Limit
	burst   int
	window  time.Duration
	now     func() time.Time
}

// NewRateLimiter creates a limiter for maxRequests per window.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*rateLimitClient),
		limit:   rate.Every(window / time.Duration(maxRequests)),
		burst:   maxRequests,
		window:  window,
		now:     time.Now,
	}
}

// Allow reports whether a request from ip may proceed.
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	client, ok := l.clients[ip]
	if !ok {
		client = &rateLimitClient{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = client
	}
	client.lastSeen = now
	return client.limiter.AllowN(now, 1)
}

// Sweep drops buckets idle for more than two windows.
func (l *RateLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for ip, client := range l.clients {
		if now.Sub(client.lastSeen) > l.window*2 {
			delete(l.clients, ip)
		}
	}
}

// Run sweeps idle buckets every minute until ctx is cancelled.
func (l *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Sweep()
		case <-ctx.Done():
			return
		}
	}
}

// Middleware returns Echo middleware that answers 429 when the caller's
// bucket is empty.
func (l *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error":   "Too Many Requests",
					"message": "Rate limit exceeded. Please try again later.",
				})
			}
			return next(c)
		}
	}
}

// RateLimit returns middleware limiting each IP to maxRequests per window.
// Idle buckets are swept until ctx is cancelled.
func RateLimit(ctx context.Context, maxRequests int, window time.Duration) echo.MiddlewareFunc {
	l := NewRateLimiter(maxRequests, window)
	go l.Run(ctx)
	return l.Middleware()
}
