package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu       sync.RWMutex
	instance *zap.Logger
)

// Init builds the process logger. Only the first call (or a prior Set) wins.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = build(cfg)
	}
}

// Set replaces the process logger with one owned by the host.
func Set(l *zap.Logger) {
	if l == nil {
		return
	}
	mu.Lock()
	instance = l
	mu.Unlock()
}

// L returns the process logger, building a dev/info logger on first use.
func L() *zap.Logger {
	mu.RLock()
	l := instance
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(Config{Env: "dev", Level: "info"})
	mu.RLock()
	defer mu.RUnlock()
	return instance
}

// Named returns the process logger scoped to a component name.
func Named(name string) *zap.Logger { return L().Named(name) }

// Sync flushes buffered entries.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		return nil
	}
	return instance.Sync()
}
