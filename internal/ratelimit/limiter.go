// Package ratelimit throttles outbound provider calls so the service stays
// inside each provider's request quota.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Config holds per-provider rate limit settings.
type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultConfig is permissive enough for interactive search traffic.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 10,
		BurstSize:         20,
	}
}

// ProviderLimiter maintains one token bucket per provider, created lazily.
type ProviderLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	defaults Config
}

// New creates a ProviderLimiter with the given defaults.
func New(cfg Config) *ProviderLimiter {
	return &ProviderLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: cfg,
	}
}

// NewWithDefaults creates a ProviderLimiter with DefaultConfig.
func NewWithDefaults() *ProviderLimiter {
	return New(DefaultConfig())
}

// limiter returns the bucket for a provider, creating it on first use.
func (p *ProviderLimiter) limiter(provider string) *rate.Limiter {
	p.mu.RLock()
	limiter, exists := p.limiters[provider]
	p.mu.RUnlock()
	if exists {
		return limiter
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if limiter, exists = p.limiters[provider]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(p.defaults.RequestsPerSecond), p.defaults.BurstSize)
	p.limiters[provider] = limiter
	return limiter
}

// Wait blocks until the provider's bucket permits a call or the context is
// cancelled.
func (p *ProviderLimiter) Wait(ctx context.Context, provider string) error {
	return p.limiter(provider).Wait(ctx)
}

// Allow reports whether a call is permitted right now, without waiting.
func (p *ProviderLimiter) Allow(provider string) bool {
	return p.limiter(provider).Allow()
}
