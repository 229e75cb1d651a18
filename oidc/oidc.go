// Package oidckit turns stored custom OIDC providers into golang.org/x/oauth2
// client configurations for the host's login controllers.
package oidckit

import (
	"strings"

	core "github.com/open-rails/sociallogin/core"
	"golang.org/x/oauth2"
)

// DefaultScopes are requested when a provider has no scope configured.
var DefaultScopes = []string{"openid", "email", "profile"}

// Scopes splits a stored scope string. Providers store scopes space
// separated; commas are tolerated.
func Scopes(scope string) []string {
	fields := strings.FieldsFunc(scope, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
	if len(fields) == 0 {
		return append([]string(nil), DefaultScopes...)
	}
	return fields
}

// OAuth2Config builds the client configuration for p.
func OAuth2Config(p core.CustomOIDCProvider, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     p.ClientID,
		ClientSecret: p.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  p.AuthorizeURL,
			TokenURL: p.TokenURL,
		},
		RedirectURL: redirectURL,
		Scopes:      Scopes(p.Scope),
	}
}
