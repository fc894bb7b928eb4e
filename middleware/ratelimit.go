package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// MsgTooManyRequests is returned once a client exceeds the write limit.
const MsgTooManyRequests = "Too many requests, try again later"

func isWrite(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// writeLimiter keeps a sliding window of write timestamps per client IP.
type writeLimiter struct {
	max    int
	window time.Duration

	mu        sync.Mutex
	clients   map[string][]time.Time
	lastSweep time.Time
}

func newWriteLimiter(maxRequests int, window time.Duration) *writeLimiter {
	return &writeLimiter{
		max:       maxRequests,
		window:    window,
		clients:   make(map[string][]time.Time),
		lastSweep: time.Now(),
	}
}

func recent(timestamps []time.Time, cutoff time.Time) []time.Time {
	kept := timestamps[:0]
	for _, t := range timestamps {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// allow records a write from ip at now unless the window is full.
func (l *writeLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-l.window)

	// idle clients are dropped at most once per window
	if now.Sub(l.lastSweep) >= l.window {
		for client, timestamps := range l.clients {
			if kept := recent(timestamps, cutoff); len(kept) > 0 {
				l.clients[client] = kept
			} else {
				delete(l.clients, client)
			}
		}
		l.lastSweep = now
	}

	timestamps := recent(l.clients[ip], cutoff)
	if len(timestamps) >= l.max {
		l.clients[ip] = timestamps
		return false
	}
	l.clients[ip] = append(timestamps, now)
	return true
}

// WriteRateLimit limits mutating requests to maxRequests per window for each
// client IP. Reads are never limited. Excess writes get 429.
func WriteRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	limiter := newWriteLimiter(maxRequests, window)

	return func(c *gin.Context) {
		if !isWrite(c.Request.Method) {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if !limiter.allow(ip, time.Now()) {
			log.Warn().Str("ip", ip).Str("path", c.Request.URL.Path).Msg("write rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": MsgTooManyRequests})
			return
		}

		c.Next()
	}
}
