// Package memorylimiter is a fixed-window, per-key rate limiter kept in
// process memory. It suits single-instance and dev deployments.
package memorylimiter

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Limit allows Limit hits per Window.
type Limit struct {
	Limit  int
	Window time.Duration
}

// DefaultBucket is used for bucket names without their own limit.
const DefaultBucket = "default"

type Limiter struct {
	limits map[string]Limit
	c      *gocache.Cache
}

func New(limits map[string]Limit) *Limiter {
	return &Limiter{limits: limits, c: gocache.New(time.Minute, time.Minute)}
}

// AllowNamed counts one hit for key in bucket's window and reports whether it
// is within the limit. Buckets with no limit (and no default) always allow.
func (l *Limiter) AllowNamed(bucket, key string) (bool, error) {
	lim, ok := l.limits[bucket]
	if !ok {
		lim, ok = l.limits[DefaultBucket]
	}
	if !ok || lim.Limit <= 0 || lim.Window <= 0 {
		return true, nil
	}
	if err := l.c.Add(key, 1, lim.Window); err == nil {
		return true, nil
	}
	n, err := l.c.IncrementInt(key, 1)
	if err != nil {
		// Expired between Add and Increment; start a new window.
		l.c.Set(key, 1, lim.Window)
		return true, nil
	}
	return n <= lim.Limit, nil
}
