package oidckit

import (
	"context"
	"errors"

	core "github.com/open-rails/sociallogin/core"
	"golang.org/x/oauth2"
)

var ErrUnknownProvider = errors.New("unknown provider")

// Manager indexes custom OIDC providers by title.
type Manager struct {
	providers map[string]core.CustomOIDCProvider
	order     []string
}

func NewManager(providers []core.CustomOIDCProvider) *Manager {
	m := &Manager{providers: make(map[string]core.CustomOIDCProvider, len(providers))}
	for _, p := range providers {
		if _, ok := m.providers[p.Title]; !ok {
			m.order = append(m.order, p.Title)
		}
		m.providers[p.Title] = p
	}
	return m
}

// Load builds a Manager from the providers currently saved in svc.
func Load(ctx context.Context, svc *core.Service) (*Manager, error) {
	settings, err := svc.LoadAdmin(ctx)
	if err != nil {
		return nil, err
	}
	return NewManager(settings.CustomOIDCProviders), nil
}

// Titles returns provider titles in saved order.
func (m *Manager) Titles() []string { return append([]string(nil), m.order...) }

func (m *Manager) Provider(title string) (core.CustomOIDCProvider, bool) {
	p, ok := m.providers[title]
	return p, ok
}

// Config returns the oauth2 configuration for title.
func (m *Manager) Config(title, redirectURL string) (*oauth2.Config, error) {
	p, ok := m.providers[title]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return OAuth2Config(p, redirectURL), nil
}

// Begin returns an authorization URL using PKCE (S256) and the state the
// caller supplies. The caller persists state and verifier until the callback.
func (m *Manager) Begin(title, state, redirectURL string) (authURL, verifier string, err error) {
	cfg, err := m.Config(title, redirectURL)
	if err != nil {
		return "", "", err
	}
	verifier = oauth2.GenerateVerifier()
	return cfg.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier)), verifier, nil
}
