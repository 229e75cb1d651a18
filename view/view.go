// Package view renders the settings pages from embedded html/template files.
package view

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	core "github.com/open-rails/sociallogin/core"
	"github.com/open-rails/sociallogin/lang"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates is a core.Renderer over the embedded templates. Template names
// are file names without the extension.
type Templates struct {
	t *template.Template
}

func New() (*Templates, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Templates{t: t}, nil
}

// Must is New for package-level wiring.
func Must() *Templates {
	t, err := New()
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Templates) Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.t.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// PersonalPage is the data the personal template expects.
type PersonalPage struct {
	Title            string
	ProvidersHeading string
	ConnectedHeading string
	DisconnectLabel  string
	EmptyText        string
	Providers        []core.Link
	Connected        []core.Link
}

// NewPersonalPage localizes the page chrome for the request language.
func NewPersonalPage(ctx context.Context, v core.PersonalView) PersonalPage {
	return PersonalPage{
		Title:            lang.Sprintf(ctx, lang.MsgSocialLogin),
		ProvidersHeading: lang.Sprintf(ctx, lang.MsgAvailableProviders),
		ConnectedHeading: lang.Sprintf(ctx, lang.MsgConnectedLogins),
		DisconnectLabel:  lang.Sprintf(ctx, lang.MsgDisconnect),
		EmptyText:        lang.Sprintf(ctx, lang.MsgNoConnectedLogins),
		Providers:        v.Providers,
		Connected:        v.Connected,
	}
}
