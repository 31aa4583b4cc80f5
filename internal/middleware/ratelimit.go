package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"communityhub/internal/pkg"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// idleTTL bounds the limiter map: an ip not seen for this long is dropped on
// the next sweep, so unauthenticated traffic cannot grow the map forever.
const idleTTL = 3 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterStore struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	rate    rate.Limit
	burst   int
	sweepAt time.Time
}

func (s *limiterStore) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if now.After(s.sweepAt) {
		for k, e := range s.entries {
			if now.Sub(e.lastSeen) > idleTTL {
				delete(s.entries, k)
			}
		}
		s.sweepAt = now.Add(idleTTL)
	}

	entry, exists := s.entries[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(s.rate, s.burst)}
		s.entries[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := net.ParseIP(xff); ip != nil {
			return ip.String()
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit applies per-IP token-bucket limiting, used on the signin/signup
// group to slow down credential stuffing.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	store := &limiterStore{
		entries: make(map[string]*limiterEntry),
		rate:    rate.Limit(rps),
		burst:   burst,
	}
	return func(c *gin.Context) {
		if !store.get(clientIP(c.Request)).Allow() {
			pkg.FailAbort(c, http.StatusTooManyRequests, pkg.FieldError{
				Message: "Too many requests.",
				Code:    "TOO_MANY_REQUESTS",
			})
			return
		}
		c.Next()
	}
}
