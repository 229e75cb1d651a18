package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFrom_FallsBackToProcessLogger(t *testing.T) {
	require.NotNil(t, From(context.Background()))
	require.NotNil(t, From(nil)) //nolint:staticcheck
}

func TestFrom_ReturnsScopedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	scoped := zap.New(core)

	ctx := ToContext(context.Background(), scoped)
	From(ctx).Info("settings saved", Namespace("sociallogin"))

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "settings saved", entries[0].Message)
	require.Equal(t, "sociallogin", entries[0].ContextMap()["namespace"])
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	require.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	require.Equal(t, zapcore.ErrorLevel, parseLevel(" error "))
	require.Equal(t, zapcore.InfoLevel, parseLevel(""))
}
