package middleware

import (
	"html"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig defines the configuration for rate limiting
type RateLimitConfig struct {
	// Requests is the maximum number of requests allowed within the window
	Requests int
	// Window is the time window for rate limiting
	Window time.Duration
	// KeyFunc is a function that returns a unique key for rate limiting (defaults to IP)
	KeyFunc func(c echo.Context) string
	// Message is the error message returned when rate limit is exceeded
	Message string
}

// rateLimitEntry tracks request count and window expiration
type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

// RateLimiter is a per-endpoint rate limiter
type RateLimiter struct {
	config RateLimitConfig
	store  map[string]*rateLimitEntry
	mu     sync.RWMutex
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c echo.Context) string {
			return c.RealIP()
		}
	}
	if config.Message == "" {
		config.Message = "Too many requests. Please try again later."
	}

	rl := &RateLimiter{
		config: config,
		store:  make(map[string]*rateLimitEntry),
	}

	// Start cleanup goroutine
	go rl.cleanup()

	return rl
}

// allow counts a request for key and reports whether it fits the window.
// When it does not, wait is the time left until the window resets.
func (rl *RateLimiter) allow(key string, now time.Time) (ok bool, wait time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.store[key]
	if !exists || now.After(entry.expiresAt) {
		rl.store[key] = &rateLimitEntry{count: 1, expiresAt: now.Add(rl.config.Window)}
		return true, 0
	}
	if entry.count >= rl.config.Requests {
		return false, entry.expiresAt.Sub(now)
	}
	entry.count++
	return true, 0
}

// Middleware returns the rate limiting middleware. Rejected htmx requests get
// a form alert fragment so the contact panel can show it in place.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, wait := rl.allow(rl.config.KeyFunc(c), time.Now())
			if ok {
				return next(c)
			}

			c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			if c.Request().Header.Get("HX-Request") == "true" {
				return c.HTML(http.StatusTooManyRequests, `<div class="form-alert form-alert--error" role="alert">`+html.EscapeString(rl.config.Message)+`</div>`)
			}
			return echo.NewHTTPError(http.StatusTooManyRequests, rl.config.Message)
		}
	}
}

// cleanup removes expired entries every minute
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	for range ticker.C {
		rl.sweep(time.Now())
	}
}

func (rl *RateLimiter) sweep(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	removed := 0
	for key, entry := range rl.store {
		if now.After(entry.expiresAt) {
			delete(rl.store, key)
			removed++
		}
	}
	return removed
}

// Pre-configured rate limiters

// ContactFormRateLimiter limits contact form submissions to 5 per minute per IP
var ContactFormRateLimiter = NewRateLimiter(RateLimitConfig{
	Requests: 5,
	Window:   1 * time.Minute,
	Message:  "Too many form submissions. Please wait before trying again.",
})

// StatusPollRateLimiter limits submission status polling to 60 per minute per IP
var StatusPollRateLimiter = NewRateLimiter(RateLimitConfig{
	Requests: 60,
	Window:   1 * time.Minute,
	Message:  "Rate limit exceeded. Please slow down your requests.",
})
