package socialhttp

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/open-rails/sociallogin/lang"
)

type LanguageConfig struct {
	Supported  []string
	Default    string
	QueryParam string
	CookieName string
}

func (c *LanguageConfig) defaulted() LanguageConfig {
	var out LanguageConfig
	if c != nil {
		out = *c
	}
	if len(out.Supported) == 0 {
		out.Supported = lang.Supported()
	}
	if strings.TrimSpace(out.Default) == "" {
		out.Default = lang.Default
	}
	if strings.TrimSpace(out.QueryParam) == "" {
		out.QueryParam = "lang"
	}
	if strings.TrimSpace(out.CookieName) == "" {
		out.CookieName = "lang"
	}
	return out
}

var reSimpleLang = regexp.MustCompile(`^[a-z]{2}$`)

func normalizeLangCode(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if i := strings.IndexAny(s, "-_"); i >= 0 {
		s = s[:i]
	}
	if !reSimpleLang.MatchString(s) {
		return ""
	}
	return s
}

// resolveRequestLanguage picks `?lang` > `lang` cookie > Accept-Language >
// default, keeping only supported languages.
func resolveRequestLanguage(r *http.Request, cfg LanguageConfig) string {
	supported := make(map[string]bool, len(cfg.Supported))
	for _, s := range cfg.Supported {
		if n := normalizeLangCode(s); n != "" {
			supported[n] = true
		}
	}
	pick := func(s string) string {
		if n := normalizeLangCode(s); n != "" && supported[n] {
			return n
		}
		return ""
	}

	if l := pick(r.URL.Query().Get(cfg.QueryParam)); l != "" {
		return l
	}
	if c, err := r.Cookie(cfg.CookieName); err == nil && c != nil {
		if l := pick(c.Value); l != "" {
			return l
		}
	}
	for _, part := range strings.Split(r.Header.Get("Accept-Language"), ",") {
		if i := strings.IndexByte(part, ';'); i >= 0 {
			part = part[:i]
		}
		if l := pick(part); l != "" {
			return l
		}
	}
	if l := pick(cfg.Default); l != "" {
		return l
	}
	return lang.Default
}

// RequestLanguage resolves the language for r under cfg (defaults when nil).
func RequestLanguage(r *http.Request, cfg *LanguageConfig) string {
	return resolveRequestLanguage(r, cfg.defaulted())
}

// LanguageMiddleware infers the request language and attaches it to the context.
func LanguageMiddleware(cfg *LanguageConfig) func(http.Handler) http.Handler {
	c := cfg.defaulted()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.WithContext(lang.WithLanguage(r.Context(), resolveRequestLanguage(r, c)))
			next.ServeHTTP(w, r)
		})
	}
}
