// Package socialhttp mounts the social login settings endpoints on net/http.
package socialhttp

import (
	core "github.com/open-rails/sociallogin/core"
	memorylimiter "github.com/open-rails/sociallogin/ratelimit/memory"
	"github.com/open-rails/sociallogin/view"
)

// DefaultAdminRole is the role RequireAdmin checks unless configured.
const DefaultAdminRole = "admin"

// Service wraps core.Service with net/http mounting helpers.
type Service struct {
	svc       *core.Service
	verifier  Verifier
	renderer  core.Renderer
	rl        RateLimiter
	clientIP  ClientIPFunc
	langCfg   *LanguageConfig
	metrics   *Metrics
	adminRole string
}

// NewService wraps svc. verifier authenticates callers; it may be nil when
// the host attaches Claims itself (see WithClaims).
func NewService(svc *core.Service, verifier Verifier) *Service {
	return &Service{
		svc:       svc,
		verifier:  verifier,
		renderer:  view.Must(),
		rl:        memorylimiter.New(ToMemoryLimits(DefaultRateLimits())),
		clientIP:  DefaultClientIP(),
		adminRole: DefaultAdminRole,
	}
}

func (s *Service) WithRenderer(r core.Renderer) *Service  { s.renderer = r; return s }
func (s *Service) WithRateLimiter(rl RateLimiter) *Service { s.rl = rl; return s }
func (s *Service) DisableRateLimiter() *Service            { s.rl = nil; return s }
func (s *Service) WithMetrics(m *Metrics) *Service         { s.metrics = m; return s }
func (s *Service) WithAdminRole(role string) *Service      { s.adminRole = role; return s }
func (s *Service) WithClientIPFunc(fn ClientIPFunc) *Service {
	if fn == nil {
		s.clientIP = DefaultClientIP()
		return s
	}
	s.clientIP = fn
	return s
}
func (s *Service) WithLanguageConfig(cfg LanguageConfig) *Service {
	s.langCfg = &cfg
	return s
}

func (s *Service) Core() *core.Service { return s.svc }
