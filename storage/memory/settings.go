package memorystore

import (
	"context"
	"sync"

	core "github.com/open-rails/sociallogin/core"
)

// Settings is an in-memory core.BatchSettingsStore.
type Settings struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

func NewSettings() *Settings {
	return &Settings{values: make(map[string]map[string]string)}
}

func (s *Settings) GetValue(_ context.Context, namespace, key, def string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[namespace][key]; ok {
		return v, nil
	}
	return def, nil
}

func (s *Settings) SetValue(_ context.Context, namespace, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.section(namespace)[key] = value
	return nil
}

// SetValues applies all settings under one lock, so readers never see a
// partial save.
func (s *Settings) SetValues(_ context.Context, namespace string, settings []core.Setting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := s.section(namespace)
	for _, st := range settings {
		sec[st.Key] = st.Value
	}
	return nil
}

func (s *Settings) section(namespace string) map[string]string {
	sec, ok := s.values[namespace]
	if !ok {
		sec = make(map[string]string)
		s.values[namespace] = sec
	}
	return sec
}
