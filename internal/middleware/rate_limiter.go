package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Rate limiting ─────────────────────────────────────────────────────────────
// Fixed-window counters keyed by client IP. One limiter instance protects the
// login endpoint against credential stuffing, another caps the whole API.

type windowCounter struct {
	mu        sync.Mutex
	count     int
	windowEnd time.Time
}

type ipLimiter struct {
	mu      sync.Mutex
	perIP   map[string]*windowCounter
	limit   int
	window  time.Duration
	message string
}

func newIPLimiter(limit int, window time.Duration, message string) *ipLimiter {
	return &ipLimiter{
		perIP:   make(map[string]*windowCounter),
		limit:   limit,
		window:  window,
		message: message,
	}
}

func (l *ipLimiter) allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	entry, ok := l.perIP[ip]
	if !ok {
		entry = &windowCounter{}
		l.perIP[ip] = entry
	}
	l.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	if now.After(entry.windowEnd) {
		entry.count = 0
		entry.windowEnd = now.Add(l.window)
	}
	entry.count++
	return entry.count <= l.limit, entry.windowEnd
}

// purge drops counters whose window has already closed.
func (l *ipLimiter) purge(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	purged := 0
	for ip, entry := range l.perIP {
		entry.mu.Lock()
		if now.After(entry.windowEnd) {
			delete(l.perIP, ip)
			purged++
		}
		entry.mu.Unlock()
	}
	return purged
}

func (l *ipLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.message))
			return
		}
		c.Next()
	}
}

var loginLimiter = newIPLimiter(20, time.Minute, "Too many login attempts. Try again in 1 minute.")

// LoginRateLimiter caps login attempts at 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return loginLimiter.handler()
}

var (
	apiLimiter   *ipLimiter
	apiLimiterMu sync.Mutex
)

// RateLimiter caps all API traffic at limit requests per window per IP.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	apiLimiterMu.Lock()
	if apiLimiter == nil {
		apiLimiter = newIPLimiter(limit, window, "Too many requests. Try again shortly.")
	}
	l := apiLimiter
	apiLimiterMu.Unlock()
	return l.handler()
}

// Stale counters accumulate one per IP ever seen, so both maps are swept
// periodically.
const purgeInterval = 5 * time.Minute

func init() {
	go purgeLoop()
}

func purgeLoop() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		purged := loginLimiter.purge(now)

		apiLimiterMu.Lock()
		l := apiLimiter
		apiLimiterMu.Unlock()
		if l != nil {
			purged += l.purge(now)
		}

		if purged > 0 {
			log.Debug().Int("entries_purged", purged).Msg("rate limiter maps purged")
		}
	}
}
