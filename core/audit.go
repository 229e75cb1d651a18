package core

import (
	"context"
	"time"

	"github.com/open-rails/sociallogin/logger"
	"go.uber.org/zap"
)

// SettingsEventType identifies a settings change.
type SettingsEventType string

const (
	SettingsEventSaved             SettingsEventType = "settings_saved"
	SettingsEventRejected          SettingsEventType = "settings_rejected"
	SettingsEventLoginDisconnected SettingsEventType = "login_disconnected"
)

// SettingsEvent is a best-effort, append-only record for external sinks.
type SettingsEvent struct {
	OccurredAt time.Time
	Namespace  string
	Event      SettingsEventType
	UserID     *string
	Login      *string
	Reason     *string
	IPAddr     *string
	UserAgent  *string
}

// EventLogger records settings events. Implementations should be
// non-blocking; errors are ignored by the service.
type EventLogger interface {
	LogSettingsEvent(ctx context.Context, e SettingsEvent) error
}

// LogEventLogger writes settings events through zap.
type LogEventLogger struct {
	log *zap.Logger
}

func NewLogEventLogger() *LogEventLogger {
	return &LogEventLogger{log: logger.Named("sociallogin.events")}
}

func (l *LogEventLogger) LogSettingsEvent(_ context.Context, e SettingsEvent) error {
	fields := []zap.Field{
		zap.String("event", string(e.Event)),
		logger.Namespace(e.Namespace),
		zap.Time("occurred_at", e.OccurredAt),
	}
	if e.UserID != nil {
		fields = append(fields, logger.UserID(*e.UserID))
	}
	if e.Login != nil {
		fields = append(fields, logger.Login(*e.Login))
	}
	if e.Reason != nil {
		fields = append(fields, zap.String("reason", *e.Reason))
	}
	if e.IPAddr != nil {
		fields = append(fields, zap.String("ip", *e.IPAddr))
	}
	if e.UserAgent != nil {
		fields = append(fields, zap.String("user_agent", *e.UserAgent))
	}
	l.log.Info("settings event", fields...)
	return nil
}

func (s *Service) logEvent(ctx context.Context, e SettingsEvent) {
	if s.events == nil {
		return
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	if e.Namespace == "" {
		e.Namespace = s.section.Namespace()
	}
	if m, ok := requestMetaFromContext(ctx); ok {
		e.IPAddr = strPtr(m.ip)
		e.UserAgent = strPtr(m.userAgent)
	}
	_ = s.events.LogSettingsEvent(ctx, e)
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
