package middleware

import (
	"math"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "digilist/pkg/errors"
	"digilist/pkg/logger"

	"golang.org/x/time/rate"
)

// KeyFunc identifies the client a request counts against.
type KeyFunc func(r *http.Request) string

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter gives every client a token bucket refilled at
// limit requests per window, with bursts of up to limit.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
	window  time.Duration
	keyFunc KeyFunc
	log     *logger.Logger
	stopCh  chan struct{}
	now     func() time.Time
}

func NewRateLimiter(limit int, window time.Duration, keyFunc KeyFunc, log *logger.Logger) *RateLimiter {
	if keyFunc == nil {
		keyFunc = ClientIP
	}
	if limit <= 0 {
		limit = 1
	}
	rl := &RateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Every(window / time.Duration(limit)),
		burst:   limit,
		window:  window,
		keyFunc: keyFunc,
		log:     log,
		stopCh:  make(chan struct{}),
		now:     time.Now,
	}

	go rl.cleanup()

	return rl
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for key, c := range rl.clients {
				if rl.now().Sub(c.lastSeen) > rl.window {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// Allow reports whether key may make another request now.
func (rl *RateLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	rl.mu.Lock()
	c, ok := rl.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = rl.now()
	rl.mu.Unlock()

	return c.limiter.Allow()
}

func RateLimit(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rl.keyFunc(r)
			if !rl.Allow(key) {
				rl.log.Warn("Rate limit exceeded",
					"request_id", RequestIDFromContext(r.Context()),
					"client", key,
					"path", r.URL.Path,
				)
				w.Header().Set("Retry-After", retryAfter(rl.limit))
				writeAppError(w, apperrors.RateLimited())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// retryAfter is the whole number of seconds until one token is refilled.
func retryAfter(limit rate.Limit) string {
	seconds := 1
	if limit > 0 && float64(limit) < 1 {
		seconds = int(math.Ceil(1 / float64(limit)))
	}
	return strconv.Itoa(seconds)
}

// ClientIP keys requests by the remote address. Forwarding headers are
// ignored since any client can set them.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ProxiedClientIP honours X-Forwarded-For on requests that arrive from a
// trusted proxy. The client is the rightmost hop that is not itself trusted.
func ProxiedClientIP(trusted []netip.Prefix) KeyFunc {
	if len(trusted) == 0 {
		return ClientIP
	}
	return func(r *http.Request) string {
		client := ClientIP(r)
		if !isTrusted(trusted, client) {
			return client
		}

		hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			client = hop
			if !isTrusted(trusted, hop) {
				break
			}
		}
		return client
	}
}

func isTrusted(trusted []netip.Prefix, ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
