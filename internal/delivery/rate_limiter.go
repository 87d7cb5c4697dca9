package delivery

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var (
	limiters   = make(map[string]*rate.Limiter)
	limitersMu sync.Mutex
)

func getLimiter(ip string) *rate.Limiter {
	limitersMu.Lock()
	defer limitersMu.Unlock()

	limiter, exists := limiters[ip]
	if !exists {
		// a handful of login attempts per second per address is plenty
		limiter = rate.NewLimiter(rate.Every(time.Second), 5)
		limiters[ip] = limiter
	}
	return limiter
}

// RateLimiter throttles per remote address. The map is dropped wholesale
// every few minutes instead of evicting entries one by one.
func RateLimiter() func(http.Handler) http.Handler {
	go func() {
		for {
			time.Sleep(time.Minute * 5)
			limitersMu.Lock()
			limiters = make(map[string]*rate.Limiter)
			limitersMu.Unlock()
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !getLimiter(r.RemoteAddr).Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
