// Package socialgin mounts the social login settings endpoints on Gin.
package socialgin

import (
	"github.com/gin-gonic/gin"
	"github.com/open-rails/sociallogin/adapters/gin/handlers"
	"github.com/open-rails/sociallogin/adapters/ginutil"
	socialhttp "github.com/open-rails/sociallogin/adapters/http"
	core "github.com/open-rails/sociallogin/core"
	memorylimiter "github.com/open-rails/sociallogin/ratelimit/memory"
	"github.com/open-rails/sociallogin/view"
)

// Service wraps core.Service with Gin mounting helpers.
type Service struct {
	svc       *core.Service
	verifier  socialhttp.Verifier
	rl        ginutil.RateLimiter
	renderer  core.Renderer
	metrics   *socialhttp.Metrics
	langCfg   *socialhttp.LanguageConfig
	adminRole string
}

// NewService wraps svc. verifier may be nil when an earlier middleware in
// the host's chain attaches claims.
func NewService(svc *core.Service, verifier socialhttp.Verifier) *Service {
	return &Service{svc: svc, verifier: verifier, adminRole: socialhttp.DefaultAdminRole}
}

func (s *Service) WithRateLimiter(rl ginutil.RateLimiter) *Service { s.rl = rl; return s }
func (s *Service) WithRenderer(r core.Renderer) *Service          { s.renderer = r; return s }
func (s *Service) WithMetrics(m *socialhttp.Metrics) *Service     { s.metrics = m; return s }
func (s *Service) WithAdminRole(role string) *Service             { s.adminRole = role; return s }
func (s *Service) WithLanguageConfig(cfg socialhttp.LanguageConfig) *Service {
	s.langCfg = &cfg
	return s
}

// GinRegister mounts the settings routes under the configured base path
// (default /apps/sociallogin) on the provided router or group.
func (s *Service) GinRegister(r gin.IRouter) *Service {
	rl := s.ensureLimiter()
	renderer := s.renderer
	if renderer == nil {
		renderer = view.Must()
	}
	auth := AuthRequired(s.verifier)

	g := r.Group(s.svc.Config().BasePath, RequestMeta(), Language(s.langCfg))
	admin := g.Group("/settings", auth, RoleRequired(s.adminRole))
	admin.POST("/save-admin", handlers.HandleSettingsSaveAdminPOST(s.svc, rl, s.metrics))
	admin.GET("/admin", handlers.HandleSettingsAdminGET(s.svc, rl))

	g.GET("/settings/personal", auth, handlers.HandleSettingsPersonalGET(s.svc, renderer, rl))
	g.GET("/disconnect-social/:login", auth, handlers.HandleDisconnectSocialGET(s.svc, rl, s.metrics))
	return s
}

func (s *Service) Core() *core.Service { return s.svc }

func (s *Service) ensureLimiter() ginutil.RateLimiter {
	if s.rl != nil {
		return s.rl
	}
	s.rl = memorylimiter.New(socialhttp.ToMemoryLimits(socialhttp.DefaultRateLimits()))
	return s.rl
}
