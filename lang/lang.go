// Package lang carries the request language through context and formats
// user-facing messages from a small golang.org/x/text catalog.
package lang

import (
	"context"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const Default = "en"

type ctxKey struct{}

// WithLanguage attaches a normalized two-letter language code to ctx.
func WithLanguage(ctx context.Context, lang string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, strings.ToLower(strings.TrimSpace(lang)))
}

// FromContext returns the request language, or Default.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return Default
	}
	if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
		return v
	}
	return Default
}

// Supported lists the languages with catalog entries.
func Supported() []string { return []string{"en", "de"} }

// Printer returns a message printer for the request language. Unsupported
// languages fall back to English; unknown keys are used as the format.
func Printer(ctx context.Context) *message.Printer {
	tag, err := language.Parse(FromContext(ctx))
	if err != nil {
		tag = language.English
	}
	m := language.NewMatcher(catalogTags)
	matched, _, _ := m.Match(tag)
	return message.NewPrinter(matched, message.Catalog(cat))
}

// Sprintf formats key in the request language.
func Sprintf(ctx context.Context, key string, args ...any) string {
	return Printer(ctx).Sprintf(key, args...)
}

var (
	cat         catalog.Catalog
	catalogTags = []language.Tag{language.English, language.German}
)

func init() {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, tr := range entries {
		_ = b.SetString(language.English, key, key)
		if de, ok := tr["de"]; ok {
			_ = b.SetString(language.German, key, de)
		}
	}
	cat = b
}
