package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/open-rails/sociallogin/logger"
)

// Service implements the social login settings operations. HTTP adapters
// wrap it; hosts may also call it directly.
type Service struct {
	cfg     Config
	section Section
	conns   ConnectionStore
	urls    URLGenerator
	tokens  *RequestTokens
	events  EventLogger

	ephemeralMode EphemeralMode
}

// NewService returns a Service over the host's settings and connection stores.
func NewService(cfg Config, settings SettingsStore, conns ConnectionStore) (*Service, error) {
	if settings == nil {
		return nil, errors.New("sociallogin: settings store is required")
	}
	if conns == nil {
		return nil, errors.New("sociallogin: connection store is required")
	}
	cfg = cfg.defaulted()
	tokens, err := NewRequestTokens(cfg.RequestTokenSecret, cfg.RequestTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sociallogin: %w", err)
	}
	routes := DefaultRoutes(cfg.AppName, cfg.BasePath)
	for name, pattern := range cfg.Routes {
		routes[name] = pattern
	}
	return &Service{
		cfg:           cfg,
		section:       NewSection(settings, cfg.Namespace),
		conns:         conns,
		urls:          routes,
		tokens:        tokens,
		ephemeralMode: EphemeralMemory,
	}, nil
}

func (s *Service) WithURLGenerator(u URLGenerator) *Service {
	if u != nil {
		s.urls = u
	}
	return s
}

func (s *Service) WithEventLogger(l EventLogger) *Service { s.events = l; return s }

func (s *Service) Config() Config                { return s.cfg }
func (s *Service) Section() Section              { return s.section }
func (s *Service) RequestTokens() *RequestTokens { return s.tokens }

// AdminSettings is the administrator form, as submitted and as loaded.
type AdminSettings struct {
	NewUserGroup        string                           `json:"new_user_group"`
	DisableRegistration Flag                             `json:"disable_registration"`
	AllowLoginConnect   Flag                             `json:"allow_login_connect"`
	OAuthProviders      OAuthProviders                   `json:"providers"`
	OpenIDProviders     ProviderList[OpenIDProvider]     `json:"openid_providers"`
	CustomOIDCProviders ProviderList[CustomOIDCProvider] `json:"custom_oidc_providers"`
}

// SaveAdmin validates the OpenID and custom OIDC lists and, when both pass,
// writes all six settings. A *ValidationError means nothing was written.
func (s *Service) SaveAdmin(ctx context.Context, in AdminSettings) error {
	openid, err := CheckProviders([]OpenIDProvider(in.OpenIDProviders))
	if err != nil {
		s.rejected(ctx, err)
		return err
	}
	custom, err := CheckProviders([]CustomOIDCProvider(in.CustomOIDCProviders))
	if err != nil {
		s.rejected(ctx, err)
		return err
	}

	oauthJSON, err := json.Marshal(in.OAuthProviders)
	if err != nil {
		return fmt.Errorf("encode oauth providers: %w", err)
	}
	openidJSON, err := json.Marshal(ProviderList[OpenIDProvider](openid))
	if err != nil {
		return fmt.Errorf("encode openid providers: %w", err)
	}
	customJSON, err := json.Marshal(ProviderList[CustomOIDCProvider](custom))
	if err != nil {
		return fmt.Errorf("encode custom oidc providers: %w", err)
	}

	settings := []Setting{
		{Key: KeyNewUserGroup, Value: in.NewUserGroup},
		{Key: KeyDisableRegistration, Value: in.DisableRegistration.String()},
		{Key: KeyAllowLoginConnect, Value: in.AllowLoginConnect.String()},
		{Key: KeyOAuthProviders, Value: string(oauthJSON)},
		{Key: KeyOpenIDProviders, Value: string(openidJSON)},
		{Key: KeyCustomOIDCProviders, Value: string(customJSON)},
	}
	if err := s.section.SetAll(ctx, settings); err != nil {
		return err
	}
	s.logEvent(ctx, SettingsEvent{Event: SettingsEventSaved})
	return nil
}

func (s *Service) rejected(ctx context.Context, err error) {
	reason := err.Error()
	var ve *ValidationError
	if errors.As(err, &ve) {
		reason = string(ve.Kind) + ":" + ve.Title
	}
	s.logEvent(ctx, SettingsEvent{Event: SettingsEventRejected, Reason: &reason})
}

// LoadAdmin reads the stored settings back. Values that no longer parse
// read as empty collections.
func (s *Service) LoadAdmin(ctx context.Context) (AdminSettings, error) {
	var out AdminSettings
	group, err := s.section.Get(ctx, KeyNewUserGroup, "")
	if err != nil {
		return out, err
	}
	disable, err := s.section.Get(ctx, KeyDisableRegistration, "false")
	if err != nil {
		return out, err
	}
	allow, err := s.section.Get(ctx, KeyAllowLoginConnect, "false")
	if err != nil {
		return out, err
	}
	out.NewUserGroup = group
	out.DisableRegistration = ParseFlag(disable)
	out.AllowLoginConnect = ParseFlag(allow)

	if out.OAuthProviders, err = s.oauthProviders(ctx); err != nil {
		return out, err
	}
	if out.OpenIDProviders, err = s.openIDProviders(ctx); err != nil {
		return out, err
	}
	if out.CustomOIDCProviders, err = s.customOIDCProviders(ctx); err != nil {
		return out, err
	}
	return out, nil
}

func (s *Service) oauthProviders(ctx context.Context) (OAuthProviders, error) {
	out := OAuthProviders{}
	err := s.readJSON(ctx, KeyOAuthProviders, "{}", &out)
	return out, err
}

func (s *Service) openIDProviders(ctx context.Context) (ProviderList[OpenIDProvider], error) {
	out := ProviderList[OpenIDProvider]{}
	err := s.readJSON(ctx, KeyOpenIDProviders, "[]", &out)
	return out, err
}

func (s *Service) customOIDCProviders(ctx context.Context) (ProviderList[CustomOIDCProvider], error) {
	out := ProviderList[CustomOIDCProvider]{}
	err := s.readJSON(ctx, KeyCustomOIDCProviders, "[]", &out)
	return out, err
}

// readJSON decodes a stored collection into dst. Corrupt values are logged
// and leave dst untouched.
func (s *Service) readJSON(ctx context.Context, key, def string, dst json.Unmarshaler) error {
	raw, err := s.section.Get(ctx, key, def)
	if err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	if err := dst.UnmarshalJSON([]byte(raw)); err != nil {
		logger.From(ctx).Warn("ignoring unparsable setting",
			logger.Namespace(s.section.Namespace()), logger.Op(key), logger.Err(err))
	}
	return nil
}
