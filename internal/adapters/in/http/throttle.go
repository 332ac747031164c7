package http

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// throttlePruneSize is the number of tracked phones above which idle
	// limiters are dropped.
	throttlePruneSize = 10000
	throttleIdleTTL   = 10 * time.Minute
)

// PhoneThrottle limits inbound messages per phone number.
type PhoneThrottle struct {
	mu       sync.Mutex
	limiters map[string]*throttleEntry
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

type throttleEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewPhoneThrottle allows perSecond messages per phone with the given burst. A
// non-positive perSecond disables throttling.
func NewPhoneThrottle(perSecond float64, burst int) *PhoneThrottle {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &PhoneThrottle{
		limiters: make(map[string]*throttleEntry),
		rate:     limit,
		burst:    burst,
		now:      time.Now,
	}
}

// Allow reports whether a message from phone may be processed now.
func (t *PhoneThrottle) Allow(phone string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	entry, ok := t.limiters[phone]
	if !ok {
		if len(t.limiters) >= throttlePruneSize {
			t.prune(now)
		}
		entry = &throttleEntry{limiter: rate.NewLimiter(t.rate, t.burst)}
		t.limiters[phone] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

func (t *PhoneThrottle) prune(now time.Time) {
	for phone, entry := range t.limiters {
		if now.Sub(entry.lastSeen) > throttleIdleTTL {
			delete(t.limiters, phone)
		}
	}
}
