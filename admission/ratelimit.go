package admission

import (
	"context"
	"math"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/statuspad/statuspad"
)

// RateLimitConfig holds the fixed-window parameters.
type RateLimitConfig struct {
	// Window is the fixed window length.
	Window time.Duration
	// MaxRequests is the number of requests admitted per window.
	MaxRequests int
}

// Decision is the outcome of one admission check against the limiter.
type Decision struct {
	Allowed bool
	// Remaining is how many more requests the window admits; zero when
	// the request was rejected.
	Remaining int
	// RetryAfter is the whole-second hint until the window resets; zero
	// when the request was allowed.
	RetryAfter int
}

type window struct {
	count   int
	resetAt time.Time
}

// RateLimiter is a per-identity fixed-window request counter. One window
// exists per key at a time, created lazily and superseded once the current
// time passes its reset point. Reads and writes of a key's window serialize
// behind the mutex so concurrent requests from the same client never
// undercount.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	cfg     RateLimitConfig
	clock   statuspad.Clock
}

// NewRateLimiter creates a limiter with the given config and clock.
func NewRateLimiter(cfg RateLimitConfig, clock statuspad.Clock) *RateLimiter {
	if clock == nil {
		clock = statuspad.SystemClock()
	}
	return &RateLimiter{
		windows: make(map[string]*window),
		cfg:     cfg,
		clock:   clock,
	}
}

// Admit counts one request from key and decides whether it passes. The first
// request in a window is always admitted; the counter keeps incrementing on
// rejected requests, so the retry-after hint shrinks as more arrive.
func (l *RateLimiter) Admit(key string) Decision {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		l.windows[key] = &window{count: 1, resetAt: now.Add(l.cfg.Window)}
		return Decision{Allowed: true, Remaining: l.cfg.MaxRequests - 1}
	}

	w.count++
	if w.count > l.cfg.MaxRequests {
		retry := int(math.Ceil(w.resetAt.Sub(now).Seconds()))
		return Decision{Allowed: false, RetryAfter: retry}
	}
	return Decision{Allowed: true, Remaining: l.cfg.MaxRequests - w.count}
}

// Sweep drops windows whose reset point is already past. Purely a memory
// bound; expired windows are superseded on the next Admit regardless.
func (l *RateLimiter) Sweep() {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, k)
		}
	}
}

// StartJanitor sweeps expired windows every interval until ctx is cancelled.
func (l *RateLimiter) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}

	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.Sweep()
			}
		}
	}()
}

// KeyFunc derives the rate-limit identity from a request.
type KeyFunc func(r *http.Request) string

// DefaultKeyFunc keys clients by source IP. With trustForwarded set it
// prefers the first address in X-Forwarded-For, for deployments behind a
// proxy; otherwise it uses the peer address only.
func DefaultKeyFunc(trustForwarded bool) KeyFunc {
	return func(r *http.Request) string {
		if trustForwarded {
			if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
				first, _, _ := strings.Cut(xff, ",")
				if ip := strings.TrimSpace(first); ip != "" {
					return ip
				}
			}
		}

		host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
		if err == nil && host != "" {
			return host
		}
		if r.RemoteAddr != "" {
			return r.RemoteAddr
		}
		return "unknown"
	}
}

type rateLimitStage struct {
	limiter *RateLimiter
	key     KeyFunc
}

// RateLimit wraps a limiter as a pipeline stage. A nil key falls back to
// DefaultKeyFunc without proxy-header trust.
func RateLimit(l *RateLimiter, key KeyFunc) Stage {
	if key == nil {
		key = DefaultKeyFunc(false)
	}
	return &rateLimitStage{limiter: l, key: key}
}

func (s *rateLimitStage) Check(r *http.Request, st *State) *Rejection {
	key := s.key(r)
	st.ClientKey = key

	dec := s.limiter.Admit(key)
	if dec.Allowed {
		return nil
	}
	return &Rejection{
		Status:     http.StatusTooManyRequests,
		Code:       "rate_limited",
		Message:    "Too many requests, slow down",
		RetryAfter: dec.RetryAfter,
	}
}
