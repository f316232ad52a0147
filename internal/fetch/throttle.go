package fetch

import (
	"context"
	"net"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// Throttle spaces out page requests per site.
type Throttle struct {
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
}

// NewThrottle allows perMinute requests per site with bursts of up to burst.
// A non-positive perMinute disables throttling.
func NewThrottle(perMinute, burst int) *Throttle {
	if burst <= 0 {
		burst = 1
	}
	return &Throttle{
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to urlStr's site may proceed or ctx is done.
func (t *Throttle) Wait(ctx context.Context, urlStr string) error {
	if t == nil || t.limit <= 0 {
		return nil
	}
	return t.limiter(hostKey(urlStr)).Wait(ctx)
}

func (t *Throttle) limiter(key string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.limiters[key]
	if !ok {
		l = rate.NewLimiter(t.limit, t.burst)
		t.limiters[key] = l
	}
	return l
}

// hostKey groups subdomains of the same site, so www. and country hosts share a limiter.
func hostKey(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}
	host := strings.ToLower(parsed.Hostname())
	if net.ParseIP(host) != nil {
		return host
	}
	parts := strings.Split(host, ".")
	if len(parts) > 2 {
		host = strings.Join(parts[len(parts)-2:], ".")
	}
	return host
}
