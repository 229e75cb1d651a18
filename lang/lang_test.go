package lang

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSprintf_English(t *testing.T) {
	ctx := WithLanguage(context.Background(), "en")
	require.Equal(t, `Duplicate provider title "foo"`, Sprintf(ctx, MsgDuplicateProviderTitle, "foo"))
}

func TestSprintf_German(t *testing.T) {
	ctx := WithLanguage(context.Background(), "DE")
	require.Equal(t, `Doppelter Anbieter-Titel "foo"`, Sprintf(ctx, MsgDuplicateProviderTitle, "foo"))
}

func TestSprintf_UnsupportedFallsBackToEnglish(t *testing.T) {
	ctx := WithLanguage(context.Background(), "fr")
	require.Equal(t, `Invalid provider title "a b". Allowed characters "0-9a-z_.@-"`,
		Sprintf(ctx, MsgInvalidProviderTitle, "a b"))
}

func TestFromContext_Default(t *testing.T) {
	require.Equal(t, Default, FromContext(context.Background()))
}
