package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/open-rails/sociallogin/adapters/ginutil"
	socialhttp "github.com/open-rails/sociallogin/adapters/http"
	core "github.com/open-rails/sociallogin/core"
)

// HandleDisconnectSocialGET removes one of the caller's connected logins and
// redirects back to the personal settings page.
func HandleDisconnectSocialGET(svc *core.Service, rl ginutil.RateLimiter, m *socialhttp.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ginutil.AllowNamed(c, rl, ginutil.RLSettingsDisconnect) {
			ginutil.TooMany(c)
			return
		}
		userID := c.GetString("auth.user_id")
		if userID == "" {
			ginutil.Unauthorized(c, "unauthorized")
			return
		}
		redirect, err := svc.Disconnect(c.Request.Context(), userID, c.Param("login"), c.Query("requesttoken"))
		if err != nil {
			if errors.Is(err, core.ErrInvalidRequestToken) {
				m.ObserveDisconnect("invalid_request_token")
				ginutil.Forbidden(c, "invalid_request_token")
				return
			}
			m.ObserveDisconnect("failed")
			ginutil.ServerErrWithLog(c, "disconnect_failed", err, "disconnect login")
			return
		}
		m.ObserveDisconnect("ok")
		c.Redirect(http.StatusFound, redirect)
	}
}
