package ginutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/open-rails/sociallogin/logger"
	"go.uber.org/zap"
)

// RateLimiter is a minimal interface used by adapters.
type RateLimiter interface {
	AllowNamed(bucket string, key string) (bool, error)
}

// Bucket names used by sociallogin endpoints.
const (
	RLSettingsSaveAdmin  = "settings_save_admin"
	RLSettingsLoadAdmin  = "settings_load_admin"
	RLSettingsPersonal   = "settings_personal"
	RLSettingsDisconnect = "settings_disconnect"
)

// AllowNamed applies a per-IP limit using the provided bucket name.
// It fails open on limiter error or when the client IP is unknown.
func AllowNamed(c *gin.Context, rl RateLimiter, bucket string) bool {
	if rl == nil {
		return true
	}
	ip := c.ClientIP()
	if ip == "" {
		return true
	}
	ok, err := rl.AllowNamed(bucket, "sociallogin:"+bucket+":ip:"+ip)
	if err != nil {
		return true
	}
	return ok
}

// Error helpers
func SendErr(c *gin.Context, status int, code string) {
	c.AbortWithStatusJSON(status, gin.H{"error": code})
}
func BadRequest(c *gin.Context, code string)   { SendErr(c, http.StatusBadRequest, code) }
func Unauthorized(c *gin.Context, code string) { SendErr(c, http.StatusUnauthorized, code) }
func Forbidden(c *gin.Context, code string)    { SendErr(c, http.StatusForbidden, code) }
func TooMany(c *gin.Context)                   { SendErr(c, http.StatusTooManyRequests, "rate_limited") }
func ServerErr(c *gin.Context, code string)    { SendErr(c, http.StatusInternalServerError, code) }

// ServerErrWithLog logs the underlying error before responding with a generic server error.
func ServerErrWithLog(c *gin.Context, code string, err error, message string) {
	if strings.TrimSpace(message) == "" {
		message = "sociallogin server error"
	}
	logger.From(c.Request.Context()).Error(message,
		logger.Code(code),
		zap.String("route", c.FullPath()),
		logger.Method(c.Request.Method),
		logger.Err(err),
	)
	ServerErr(c, code)
}

// BearerToken extracts a Bearer token from an Authorization header value.
func BearerToken(authorization string) string {
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// RequestToken returns the Bearer token, else the access_token cookie.
func RequestToken(c *gin.Context) string {
	if tok := BearerToken(c.GetHeader("Authorization")); tok != "" {
		return tok
	}
	if v, err := c.Cookie("access_token"); err == nil {
		return strings.TrimSpace(v)
	}
	return ""
}

// DecodeJSON strictly decodes the request body into dst: unknown fields and
// trailing data are errors.
func DecodeJSON(c *gin.Context, dst any) error {
	if c.Request == nil || c.Request.Body == nil {
		return errors.New("missing_body")
	}
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("invalid_json")
	}
	return nil
}
