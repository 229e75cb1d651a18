package core

import (
	"strings"
	"time"
)

// Config configures the settings service.
type Config struct {
	// AppName prefixes the login and disconnect route names ("sociallogin").
	AppName string
	// Namespace is the settings-store section the keys live under. Defaults to AppName.
	Namespace string
	// BasePath is where the app's routes are mounted ("/apps/sociallogin").
	BasePath string

	// RequestTokenSecret signs anti-forgery tokens on disconnect URLs.
	// When empty a random per-process secret is generated (dev only).
	RequestTokenSecret []byte
	// RequestTokenTTL defaults to one hour.
	RequestTokenTTL time.Duration

	// Routes overrides or extends the default route table.
	Routes map[string]string
}

const (
	DefaultAppName         = "sociallogin"
	DefaultBasePath        = "/apps/sociallogin"
	DefaultRequestTokenTTL = time.Hour
)

func (c Config) defaulted() Config {
	out := c
	if strings.TrimSpace(out.AppName) == "" {
		out.AppName = DefaultAppName
	}
	if strings.TrimSpace(out.Namespace) == "" {
		out.Namespace = out.AppName
	}
	if strings.TrimSpace(out.BasePath) == "" {
		out.BasePath = DefaultBasePath
	}
	out.BasePath = "/" + strings.Trim(out.BasePath, "/")
	if out.RequestTokenTTL <= 0 {
		out.RequestTokenTTL = DefaultRequestTokenTTL
	}
	return out
}
