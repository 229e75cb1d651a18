package core

import (
	"context"
	"fmt"
)

// Setting keys.
const (
	KeyNewUserGroup        = "new_user_group"
	KeyDisableRegistration = "disable_registration"
	KeyAllowLoginConnect   = "allow_login_connect"
	KeyOAuthProviders      = "oauth_providers"
	KeyOpenIDProviders     = "openid_providers"
	KeyCustomOIDCProviders = "custom_oidc_providers"
)

// Setting is one key/value pair of a batch write.
type Setting struct {
	Key   string
	Value string
}

// Section scopes a SettingsStore to one namespace.
type Section struct {
	store     SettingsStore
	namespace string
}

func NewSection(store SettingsStore, namespace string) Section {
	return Section{store: store, namespace: namespace}
}

func (s Section) Namespace() string { return s.namespace }

// Batched reports whether SetAll is atomic.
func (s Section) Batched() bool {
	_, ok := s.store.(BatchSettingsStore)
	return ok
}

func (s Section) Get(ctx context.Context, key, def string) (string, error) {
	v, err := s.store.GetValue(ctx, s.namespace, key, def)
	if err != nil {
		return def, fmt.Errorf("get %s.%s: %w", s.namespace, key, err)
	}
	return v, nil
}

func (s Section) Set(ctx context.Context, key, value string) error {
	if err := s.store.SetValue(ctx, s.namespace, key, value); err != nil {
		return fmt.Errorf("set %s.%s: %w", s.namespace, key, err)
	}
	return nil
}

// SetAll writes settings in order. Batch-capable stores apply them
// atomically; plain stores get one SetValue per key and stop at the first
// failure.
func (s Section) SetAll(ctx context.Context, settings []Setting) error {
	if bs, ok := s.store.(BatchSettingsStore); ok {
		if err := bs.SetValues(ctx, s.namespace, settings); err != nil {
			return fmt.Errorf("set %s batch: %w", s.namespace, err)
		}
		return nil
	}
	for _, st := range settings {
		if err := s.Set(ctx, st.Key, st.Value); err != nil {
			return err
		}
	}
	return nil
}
