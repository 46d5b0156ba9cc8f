package ratelimit

import "context"

// NopLimiter lets everything through. Used when rate limiting is disabled.
type NopLimiter struct{}

// Allow always returns true
func (NopLimiter) Allow(context.Context, string) bool { return true }

// NewNopLimiter returns NopLimiter
func NewNopLimiter() Limiter { return NopLimiter{} }
