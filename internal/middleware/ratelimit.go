package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterIdle ist die Zeit, nach der ein unbenutzter Limiter verworfen wird.
const limiterIdle = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters hält einen Token-Bucket pro Client-IP.
type clientLimiters struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newClientLimiters(requestsPerSecond float64) *clientLimiters {
	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return &clientLimiters{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
		now:     time.Now,
	}
}

func (c *clientLimiters) allow(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.lastSweep) > limiterIdle {
		for k, cl := range c.clients {
			if now.Sub(cl.lastSeen) > limiterIdle {
				delete(c.clients, k)
			}
		}
		c.lastSweep = now
	}

	cl, ok := c.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(c.limit, c.burst)}
		c.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// RateLimit gibt eine Middleware zurück, die eingehende Anfragen pro Client-IP
// auf requestsPerSecond begrenzt und darüber hinaus mit 429 antwortet.
func RateLimit(requestsPerSecond float64, logger *zap.Logger) func(http.Handler) http.Handler {
	limiters := newClientLimiters(requestsPerSecond)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !limiters.allow(ip) {
				logger.Warn("rate-limit überschritten",
					zap.String("remote", ip),
				)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": "zu viele anfragen",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP gibt die IP ohne Port aus RemoteAddr zurück.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
