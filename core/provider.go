package core

import "context"

// SettingsStore is the host's configuration store. Values are strings keyed
// by (namespace, key); a missing key reads as def.
type SettingsStore interface {
	GetValue(ctx context.Context, namespace, key, def string) (string, error)
	SetValue(ctx context.Context, namespace, key, value string) error
}

// BatchSettingsStore is implemented by stores that can write several keys
// atomically. SetValues must write all settings or none.
type BatchSettingsStore interface {
	SettingsStore
	SetValues(ctx context.Context, namespace string, settings []Setting) error
}

// ConnectionStore owns the links between local users and external logins.
// DisconnectLogin must not fail when the link does not exist.
type ConnectionStore interface {
	ConnectedLogins(ctx context.Context, userID string) ([]string, error)
	DisconnectLogin(ctx context.Context, userID, login string) error
}

// URLGenerator resolves a route name and parameters to a path.
type URLGenerator interface {
	LinkToRoute(name string, params map[string]string) string
}

// Renderer renders a named template to HTML.
type Renderer interface {
	Render(name string, data any) (string, error)
}
