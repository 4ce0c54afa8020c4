package middleware

import (
	"net/http"
	"sync"
	"time"

	"storefront-api/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type rateLimitEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateLimitEntry
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewRateLimiter creates a rate limiter.
// maxRequests is the burst size, perDuration is the window over which maxRequests are allowed.
func NewRateLimiter(maxRequests int, perDuration time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*rateLimitEntry),
		limit:   rate.Limit(float64(maxRequests) / perDuration.Seconds()),
		burst:   maxRequests,
		idleTTL: 10 * time.Minute,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	go rl.cleanup(5 * time.Minute)

	return rl
}

// Stop ends the background eviction loop and waits for it to exit. Safe to
// call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
	<-rl.done
}

func (rl *RateLimiter) cleanup(every time.Duration) {
	defer close(rl.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.evictIdle(now)
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, entry := range rl.clients {
		if now.Sub(entry.lastSeen) > rl.idleTTL {
			delete(rl.clients, ip)
		}
	}
}

func (rl *RateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	entry, exists := rl.clients[clientIP]
	if !exists {
		entry = &rateLimitEntry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[clientIP] = entry
	}
	entry.lastSeen = time.Now()
	rl.mu.Unlock()

	return entry.limiter.Allow()
}

// Middleware returns a gin middleware that rate limits requests.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			utils.AbortWithError(c, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}
		c.Next()
	}
}
