package httpx

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/nadissa1508/CC3089-LAB-4/internal/config"
)

// RateLimiter is a token bucket refilled one token every minute/max.
type RateLimiter struct {
	mu     sync.Mutex
	tokens int
	max    int
	tick   *time.Ticker
	done   chan struct{}
}

func NewRateLimiter(maxPerMinute int) *RateLimiter {
	if maxPerMinute <= 0 {
		maxPerMinute = 120
	}
	if maxPerMinute > config.MaxRatePerMinute {
		maxPerMinute = config.MaxRatePerMinute
	}
	rl := &RateLimiter{
		max:    maxPerMinute,
		tokens: maxPerMinute,
		tick:   time.NewTicker(time.Minute / time.Duration(maxPerMinute)),
		done:   make(chan struct{}),
	}
	go rl.refill()
	return rl
}

func (rl *RateLimiter) refill() {
	for {
		select {
		case <-rl.tick.C:
			rl.mu.Lock()
			if rl.tokens < rl.max {
				rl.tokens++
			}
			rl.mu.Unlock()
		case <-rl.done:
			return
		}
	}
}

func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if rl.tokens > 0 {
		rl.tokens--
		return true
	}
	return false
}

func (rl *RateLimiter) Stop() {
	rl.tick.Stop()
	close(rl.done)
}

func LimitMiddleware(rl *RateLimiter, next http.Handler) http.Handler {
	msg := fmt.Sprintf("rate limit: %d req/min", rl.max)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow() {
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, msg)
			return
		}
		next.ServeHTTP(w, r)
	})
}
