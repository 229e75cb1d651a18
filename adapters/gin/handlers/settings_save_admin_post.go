package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/open-rails/sociallogin/adapters/ginutil"
	socialhttp "github.com/open-rails/sociallogin/adapters/http"
	core "github.com/open-rails/sociallogin/core"
)

// HandleSettingsSaveAdminPOST stores the admin settings form. Rejected
// provider lists answer 200 with a localized message for the form to show.
func HandleSettingsSaveAdminPOST(svc *core.Service, rl ginutil.RateLimiter, m *socialhttp.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ginutil.AllowNamed(c, rl, ginutil.RLSettingsSaveAdmin) {
			ginutil.TooMany(c)
			return
		}
		var in core.AdminSettings
		if err := ginutil.DecodeJSON(c, &in); err != nil {
			m.ObserveSave("invalid_request")
			ginutil.BadRequest(c, "invalid_request")
			return
		}
		if err := svc.SaveAdmin(c.Request.Context(), in); err != nil {
			var ve *core.ValidationError
			if errors.As(err, &ve) {
				m.ObserveSave("rejected")
				c.JSON(http.StatusOK, gin.H{"message": socialhttp.ValidationMessage(c.Request.Context(), ve)})
				return
			}
			m.ObserveSave("failed")
			ginutil.ServerErrWithLog(c, "settings_save_failed", err, "save admin settings")
			return
		}
		m.ObserveSave("saved")
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
