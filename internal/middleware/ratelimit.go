package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"studykit-backend/internal/logger"
)

type visitor struct {
	count    int
	lastSeen time.Time
}

// RateLimiter allows limit requests per client IP per window. With a Redis
// client the window is shared across instances; otherwise it is kept in
// memory. Redis errors fail over to the in-memory counters.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	limit     int
	window    time.Duration
	redis     *redis.Client
	log       *logger.Logger
}

func NewRateLimiter(limit int, window time.Duration, redisClient *redis.Client, log *logger.Logger) *RateLimiter {
	if log == nil {
		log = logger.NewNop()
	}
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		lastSweep: time.Now(),
		limit:     limit,
		window:    window,
		redis:     redisClient,
		log:       log,
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.allow(r.Context(), clientIP(r)) {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(rl.window.Seconds())))
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.", r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ctx context.Context, ip string) bool {
	if rl.redis != nil {
		count, err := rl.redisCount(ctx, ip)
		if err == nil {
			return count <= int64(rl.limit)
		}
		rl.log.Warn("redis rate limit unavailable, using in-memory counter", "error", err)
	}
	return rl.memoryCount(ip) <= rl.limit
}

// redisCount increments the fixed-window counter for ip.
func (rl *RateLimiter) redisCount(ctx context.Context, ip string) (int64, error) {
	windowSecs := max(int64(rl.window.Seconds()), 1)
	key := fmt.Sprintf("ratelimit:%s:%d", ip, time.Now().Unix()/windowSecs)

	count, err := rl.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := rl.redis.Expire(ctx, key, rl.window).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}

func (rl *RateLimiter) memoryCount(ip string) int {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) > rl.window {
		for key, v := range rl.visitors {
			if now.Sub(v.lastSeen) > rl.window {
				delete(rl.visitors, key)
			}
		}
		rl.lastSweep = now
	}

	v, exists := rl.visitors[ip]
	if !exists || now.Sub(v.lastSeen) > rl.window {
		rl.visitors[ip] = &visitor{count: 1, lastSeen: now}
		return 1
	}

	v.count++
	v.lastSeen = now
	return v.count
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
