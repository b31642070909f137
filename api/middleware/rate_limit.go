package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const defaultRateLimitMessage = "Too many requests, please try again later."

// RateLimitConfig describes a per-client token bucket: Burst requests at
// once, refilled at Limit per second. Idle clients are forgotten after TTL.
type RateLimitConfig struct {
	Limit   rate.Limit
	Burst   int
	TTL     time.Duration
	Message string
}

// PerWindow allows n requests per window for each client.
func PerWindow(n int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit: rate.Every(window / time.Duration(n)),
		Burst: n,
		TTL:   window,
	}
}

type RateLimiter struct {
	limiters map[string]*rate.Limiter
	lastSeen map[string]time.Time
	mutex    sync.Mutex
	config   RateLimitConfig
	now      func() time.Time
}

func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.Message == "" {
		config.Message = defaultRateLimitMessage
	}
	if config.Burst <= 0 {
		config.Burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		config:   config,
		now:      time.Now,
	}
}

func (l *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limiter := l.getLimiter(c.RealIP())
			if !limiter.AllowN(l.now(), 1) {
				return echo.NewHTTPError(http.StatusTooManyRequests, l.config.Message)
			}
			return next(c)
		}
	}
}

func (l *RateLimiter) getLimiter(ip string) *rate.Limiter {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := l.now()
	if limiter, ok := l.limiters[ip]; ok {
		l.lastSeen[ip] = now
		return limiter
	}
	limiter := rate.NewLimiter(l.config.Limit, l.config.Burst)
	l.limiters[ip] = limiter
	l.lastSeen[ip] = now
	l.cleanup(now)
	return limiter
}

func (l *RateLimiter) cleanup(now time.Time) {
	if l.config.TTL == 0 {
		return
	}
	cutoff := now.Add(-l.config.TTL)
	for ip, last := range l.lastSeen {
		if last.Before(cutoff) {
			delete(l.lastSeen, ip)
			delete(l.limiters, ip)
		}
	}
}
