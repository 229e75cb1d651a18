package memorystore

import (
	"context"
	"slices"
	"sync"
)

// Connections is an in-memory core.ConnectionStore. Logins are listed in the
// order they were connected.
type Connections struct {
	mu     sync.RWMutex
	byUser map[string][]string
}

func NewConnections() *Connections {
	return &Connections{byUser: make(map[string][]string)}
}

// Connect links login to userID. Login flows own this in production; the
// settings operations never create links.
func (c *Connections) Connect(_ context.Context, userID, login string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if slices.Contains(c.byUser[userID], login) {
		return nil
	}
	c.byUser[userID] = append(c.byUser[userID], login)
	return nil
}

func (c *Connections) ConnectedLogins(_ context.Context, userID string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.byUser[userID]), nil
}

func (c *Connections) DisconnectLogin(_ context.Context, userID, login string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	logins := slices.DeleteFunc(c.byUser[userID], func(l string) bool { return l == login })
	if len(logins) == 0 {
		delete(c.byUser, userID)
		return nil
	}
	c.byUser[userID] = logins
	return nil
}
