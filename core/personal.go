package core

import (
	"context"
	"fmt"
)

// Link is a labelled URL on the personal settings page.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// PersonalView is what the personal settings page shows: the providers a
// user can log in with and the user's connected logins, both in display order.
type PersonalView struct {
	Providers []Link `json:"providers"`
	Connected []Link `json:"connected_logins"`
}

// ProviderMap returns Providers keyed by label.
func (v PersonalView) ProviderMap() map[string]string { return linkMap(v.Providers) }

// ConnectedMap returns Connected keyed by login.
func (v PersonalView) ConnectedMap() map[string]string { return linkMap(v.Connected) }

func linkMap(links []Link) map[string]string {
	m := make(map[string]string, len(links))
	for _, l := range links {
		m[l.Label] = l.URL
	}
	return m
}

// PersonalView builds the personal settings page for userID. OAuth providers
// without an app id are skipped. A later provider whose label collides with an
// earlier one replaces its URL in place.
func (s *Service) PersonalView(ctx context.Context, userID string) (PersonalView, error) {
	view := PersonalView{Providers: []Link{}, Connected: []Link{}}
	app := s.cfg.AppName

	oauth, err := s.oauthProviders(ctx)
	if err != nil {
		return view, err
	}
	for _, p := range oauth {
		if p.AppID == "" {
			continue
		}
		view.Providers = putLink(view.Providers, ucfirst(p.Name),
			s.urls.LinkToRoute(app+"."+RouteLoginOAuth, map[string]string{"provider": p.Name}))
	}

	openid, err := s.openIDProviders(ctx)
	if err != nil {
		return view, err
	}
	for _, p := range openid {
		view.Providers = putLink(view.Providers, ucfirst(p.Title),
			s.urls.LinkToRoute(app+"."+RouteLoginOpenID, map[string]string{"provider": p.Title}))
	}

	custom, err := s.customOIDCProviders(ctx)
	if err != nil {
		return view, err
	}
	for _, p := range custom {
		view.Providers = putLink(view.Providers, ucfirst(p.Title),
			s.urls.LinkToRoute(app+"."+RouteLoginCustomOIDC, map[string]string{"provider": p.Title}))
	}

	logins, err := s.conns.ConnectedLogins(ctx, userID)
	if err != nil {
		return view, fmt.Errorf("list connected logins: %w", err)
	}
	for _, login := range logins {
		tok, err := s.tokens.Issue(userID)
		if err != nil {
			return view, fmt.Errorf("issue request token: %w", err)
		}
		view.Connected = putLink(view.Connected, login,
			s.urls.LinkToRoute(app+"."+RouteDisconnectSocial, map[string]string{
				"login":        login,
				"requesttoken": tok,
			}))
	}
	return view, nil
}

func putLink(links []Link, label, url string) []Link {
	for i := range links {
		if links[i].Label == label {
			links[i].URL = url
			return links
		}
	}
	return append(links, Link{Label: label, URL: url})
}

// ucfirst upper-cases an ASCII lowercase first byte; anything else is kept.
func ucfirst(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
