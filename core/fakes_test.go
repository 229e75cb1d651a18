package core

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

type fakeSettings struct {
	mu     sync.Mutex
	values map[string]string
	writes []Setting
	failOn string
}

func newFakeSettings() *fakeSettings { return &fakeSettings{values: map[string]string{}} }

func (f *fakeSettings) GetValue(_ context.Context, ns, key, def string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.values[ns+"/"+key]; ok {
		return v, nil
	}
	return def, nil
}

func (f *fakeSettings) SetValue(_ context.Context, ns, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if key == f.failOn {
		return errors.New("boom")
	}
	f.writes = append(f.writes, Setting{Key: key, Value: value})
	f.values[ns+"/"+key] = value
	return nil
}

type fakeBatchSettings struct {
	*fakeSettings
	batches int
}

func (f *fakeBatchSettings) SetValues(_ context.Context, ns string, settings []Setting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range settings {
		if s.Key == f.failOn {
			return errors.New("boom")
		}
	}
	f.batches++
	for _, s := range settings {
		f.writes = append(f.writes, s)
		f.values[ns+"/"+s.Key] = s.Value
	}
	return nil
}

type fakeConns struct {
	mu            sync.Mutex
	logins        map[string][]string
	disconnectErr error
}

func (f *fakeConns) ConnectedLogins(_ context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.logins[userID]), nil
}

func (f *fakeConns) DisconnectLogin(_ context.Context, userID, login string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.disconnectErr != nil {
		return f.disconnectErr
	}
	f.logins[userID] = slices.DeleteFunc(f.logins[userID], func(l string) bool { return l == login })
	return nil
}

type mapEphemeral struct {
	mu sync.Mutex
	m  map[string][]byte
}

func (e *mapEphemeral) Get(_ context.Context, key string) ([]byte, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.m[key]
	return v, ok, nil
}

func (e *mapEphemeral) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.m[key] = value
	return nil
}

func (e *mapEphemeral) Del(_ context.Context, key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.m, key)
	return nil
}

type recordingEvents struct {
	mu     sync.Mutex
	events []SettingsEvent
}

func (r *recordingEvents) LogSettingsEvent(_ context.Context, e SettingsEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}
