package socialhttp

import (
	"net/http"
	"strings"
	"time"

	memorylimiter "github.com/open-rails/sociallogin/ratelimit/memory"
)

// RateLimiter is the minimal limiter surface the handlers need.
type RateLimiter interface {
	AllowNamed(bucket string, key string) (bool, error)
}

// Limit configures a named rate limit bucket.
type Limit struct {
	Limit  int
	Window time.Duration
}

// DefaultRateLimits are enforced per client IP.
func DefaultRateLimits() map[string]Limit {
	return map[string]Limit{
		"default": {Limit: 120, Window: time.Minute},

		RLSettingsSaveAdmin:  {Limit: 30, Window: 10 * time.Minute},
		RLSettingsLoadAdmin:  {Limit: 120, Window: time.Minute},
		RLSettingsPersonal:   {Limit: 120, Window: time.Minute},
		RLSettingsDisconnect: {Limit: 30, Window: 10 * time.Minute},
	}
}

func ToMemoryLimits(in map[string]Limit) map[string]memorylimiter.Limit {
	out := make(map[string]memorylimiter.Limit, len(in))
	for k, v := range in {
		out[k] = memorylimiter.Limit{Limit: v.Limit, Window: v.Window}
	}
	return out
}

// allow applies bucket's limit to the request's client IP. It fails open
// when the IP is unknown or the limiter errors.
func (s *Service) allow(r *http.Request, bucket string) bool {
	if s == nil || s.rl == nil {
		return true
	}
	ipFn := s.clientIP
	if ipFn == nil {
		ipFn = DefaultClientIP()
	}
	ip := ipFn(r)
	if strings.TrimSpace(ip) == "" {
		return true
	}
	ok, err := s.rl.AllowNamed(bucket, "sociallogin:"+bucket+":ip:"+ip)
	if err != nil {
		return true
	}
	return ok
}
