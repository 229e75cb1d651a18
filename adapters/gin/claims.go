package socialgin

import (
	"errors"

	"github.com/gin-gonic/gin"
	socialhttp "github.com/open-rails/sociallogin/adapters/http"
)

// Claims is the same identity the net/http adapter attaches.
type Claims = socialhttp.Claims

const claimsKey = "sociallogin.claims"

// setClaims stores cl on both the Gin context and the request context.
func setClaims(c *gin.Context, cl Claims) {
	c.Set(claimsKey, cl)
	c.Set("auth.user_id", cl.UserID)
	if len(cl.Roles) > 0 {
		c.Set("auth.roles", cl.Roles)
	}
	c.Request = c.Request.WithContext(socialhttp.WithClaims(c.Request.Context(), cl))
}

// ClaimsFromGin returns claims from the Gin context, else the request context.
func ClaimsFromGin(c *gin.Context) (Claims, bool) {
	if v, ok := c.Get(claimsKey); ok {
		if cl, ok := v.(Claims); ok {
			return cl, true
		}
	}
	return socialhttp.ClaimsFromContext(c.Request.Context())
}

// GetClaims returns claims or an error if not present/unauthenticated.
func GetClaims(c *gin.Context) (Claims, error) {
	if cl, ok := ClaimsFromGin(c); ok && cl.UserID != "" {
		return cl, nil
	}
	return Claims{}, errors.New("unauthenticated")
}

// UserID is a typed accessor for the authenticated user's id.
func UserID(c *gin.Context) (string, bool) {
	cl, err := GetClaims(c)
	if err != nil {
		return "", false
	}
	return cl.UserID, true
}
