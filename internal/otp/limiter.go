package otp

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// sendLimiter throttles OTP sends per mobile number: one send every 30
// seconds with a burst of 2, so a retry after a missed SMS still goes
// through but hammering the provider does not.
type sendLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newSendLimiter() *sendLimiter {
	return &sendLimiter{limiters: make(map[string]*rate.Limiter)}
}

func (l *sendLimiter) allow(mobile string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[mobile]
	if !ok {
		lim = rate.NewLimiter(rate.Every(30*time.Second), 2)
		l.limiters[mobile] = lim
	}
	return lim.Allow()
}
