package socialgin

import (
	"github.com/gin-gonic/gin"
	"github.com/open-rails/sociallogin/adapters/ginutil"
	socialhttp "github.com/open-rails/sociallogin/adapters/http"
	core "github.com/open-rails/sociallogin/core"
	"github.com/open-rails/sociallogin/lang"
	"github.com/open-rails/sociallogin/logger"
)

// AuthRequired validates the caller's token and attaches claims. Claims set
// earlier in the chain (by the host's own session layer) are kept.
func AuthRequired(v socialhttp.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cl, err := GetClaims(c); err == nil {
			setClaims(c, cl)
			c.Next()
			return
		}
		tok := ginutil.RequestToken(c)
		if v == nil || tok == "" {
			ginutil.Unauthorized(c, "missing_token")
			return
		}
		cl, err := v.Verify(c.Request.Context(), tok)
		if err != nil {
			ginutil.Unauthorized(c, socialhttp.VerifyErrorCode(err))
			return
		}
		if cl.UserID == "" {
			ginutil.Unauthorized(c, "invalid_token")
			return
		}
		setClaims(c, cl)
		ctx := logger.ToContext(c.Request.Context(), logger.From(c.Request.Context()).With(logger.UserID(cl.UserID)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RoleRequired checks the verified roles claim for role.
func RoleRequired(role string) gin.HandlerFunc {
	if role == "" {
		role = socialhttp.DefaultAdminRole
	}
	return func(c *gin.Context) {
		cl, err := GetClaims(c)
		if err != nil || !cl.HasRole(role) {
			ginutil.Forbidden(c, "forbidden")
			return
		}
		c.Next()
	}
}

// Language attaches the request language used for localized messages.
func Language(cfg *socialhttp.LanguageConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		l := socialhttp.RequestLanguage(c.Request, cfg)
		c.Request = c.Request.WithContext(lang.WithLanguage(c.Request.Context(), l))
		c.Next()
	}
}

// RequestMeta records the client address and agent for settings events.
func RequestMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := core.WithRequestMeta(c.Request.Context(), c.ClientIP(), c.Request.UserAgent())
		ctx = logger.ToContext(ctx, logger.From(ctx).With(logger.Method(c.Request.Method), logger.Path(c.Request.URL.Path)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
