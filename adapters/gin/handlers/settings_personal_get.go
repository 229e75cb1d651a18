package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/open-rails/sociallogin/adapters/ginutil"
	core "github.com/open-rails/sociallogin/core"
	"github.com/open-rails/sociallogin/view"
)

func HandleSettingsPersonalGET(svc *core.Service, r core.Renderer, rl ginutil.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ginutil.AllowNamed(c, rl, ginutil.RLSettingsPersonal) {
			ginutil.TooMany(c)
			return
		}
		userID := c.GetString("auth.user_id")
		if userID == "" {
			ginutil.Unauthorized(c, "unauthorized")
			return
		}
		pv, err := svc.PersonalView(c.Request.Context(), userID)
		if err != nil {
			ginutil.ServerErrWithLog(c, "personal_view_failed", err, "build personal view")
			return
		}
		html, err := r.Render("personal", view.NewPersonalPage(c.Request.Context(), pv))
		if err != nil {
			ginutil.ServerErrWithLog(c, "render_failed", err, "render personal view")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	}
}
