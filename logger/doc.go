// Package logger provides the process-wide zap logger and request-scoped
// loggers carried in context.
//
// Initialize once from the host (or the dev server):
//
//	logger.Init(logger.Config{Env: os.Getenv("LOG_ENV"), Level: os.Getenv("LOG_LEVEL")})
//	defer logger.Sync()
//
// Inside handlers and services:
//
//	log := logger.From(ctx)
//	log.Info("settings saved", logger.Namespace(ns))
//
// Hosts that already own a *zap.Logger can call Set instead of Init.
package logger
