package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/open-rails/sociallogin/adapters/ginutil"
	core "github.com/open-rails/sociallogin/core"
)

func HandleSettingsAdminGET(svc *core.Service, rl ginutil.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ginutil.AllowNamed(c, rl, ginutil.RLSettingsLoadAdmin) {
			ginutil.TooMany(c)
			return
		}
		settings, err := svc.LoadAdmin(c.Request.Context())
		if err != nil {
			ginutil.ServerErrWithLog(c, "settings_load_failed", err, "load admin settings")
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}
