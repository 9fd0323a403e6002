package middleware

import (
	"sync"

	"github.com/aanandhisonduri/BigBrain/internal/config"
	"golang.org/x/time/rate"
)

var limiterInstance = newIPRateLimiter(rate.Limit(config.RateLimitPerSecond), config.BurstRateLimitPerSecond)

type ipRateLimiter struct {
	mu        sync.Mutex
	ips       map[string]*rate.Limiter
	rateLimit rate.Limit
	burstRate int
}

func newIPRateLimiter(r rate.Limit, b int) *ipRateLimiter {
	return &ipRateLimiter{ips: make(map[string]*rate.Limiter), rateLimit: r, burstRate: b}
}

func (i *ipRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()
	limiter, exists := i.ips[ip]
	if !exists {
		limiter = rate.NewLimiter(i.rateLimit, i.burstRate)
		i.ips[ip] = limiter
	}
	return limiter
}
