package middleware

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	internal_errors "github.com/mergington/activities/shared/errors"
	"github.com/mergington/activities/shared/utils"
	"golang.org/x/time/rate"
)

// KeyedLimiter keeps one token bucket per identity (IP, email, ...).
// Buckets idle for longer than ttl are dropped on the next sweep.
type KeyedLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rps       rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewKeyedLimiter(rps float64, burst int, ttl time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		limiters:  make(map[string]*limiterEntry),
		rps:       rate.Limit(rps),
		burst:     burst,
		ttl:       ttl,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (k *KeyedLimiter) Allow(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	if now.Sub(k.lastSweep) > k.ttl {
		for id, e := range k.limiters {
			if now.Sub(e.lastSeen) > k.ttl {
				delete(k.limiters, id)
			}
		}
		k.lastSweep = now
	}

	e, ok := k.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(k.rps, k.burst)}
		k.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

func (k *KeyedLimiter) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.limiters)
}

// RateLimit rejects requests once the identity's bucket is empty. reject
// writes the response; nil means a JSON 429.
func RateLimit(l *KeyedLimiter, getIdentity func(r *http.Request) (string, error), reject http.HandlerFunc) func(http.Handler) http.Handler {
	if reject == nil {
		reject = func(w http.ResponseWriter, r *http.Request) {
			utils.WriteErrorAndStatusCode(w, &internal_errors.ErrorWithStatusCode{
				Message:    "Rate limit exceeded, try again later",
				StatusCode: http.StatusTooManyRequests,
			})
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, internal_errors.BadRequest(err.Error()))
				return
			}
			if !l.Allow(identity) {
				reject(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetIP extracts the client IP from RemoteAddr only. Forwarding headers are
// ignored because they can be spoofed.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}
	return ip, nil
}
