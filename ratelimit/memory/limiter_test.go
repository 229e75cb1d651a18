package memorylimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAllowNamed_FixedWindow(t *testing.T) {
	l := New(map[string]Limit{"save": {Limit: 2, Window: time.Minute}})

	for i := 0; i < 2; i++ {
		ok, err := l.AllowNamed("save", "k")
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, err := l.AllowNamed("save", "k")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = l.AllowNamed("save", "other")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAllowNamed_DefaultAndUnlimited(t *testing.T) {
	l := New(map[string]Limit{DefaultBucket: {Limit: 1, Window: time.Minute}})
	ok, _ := l.AllowNamed("anything", "k")
	require.True(t, ok)
	ok, _ = l.AllowNamed("anything", "k")
	require.False(t, ok)

	open := New(nil)
	for i := 0; i < 5; i++ {
		ok, _ = open.AllowNamed("x", "k")
		require.True(t, ok)
	}
}

func TestAllowNamed_WindowResets(t *testing.T) {
	l := New(map[string]Limit{"b": {Limit: 1, Window: 20 * time.Millisecond}})
	ok, _ := l.AllowNamed("b", "k")
	require.True(t, ok)
	ok, _ = l.AllowNamed("b", "k")
	require.False(t, ok)

	time.Sleep(40 * time.Millisecond)
	ok, _ = l.AllowNamed("b", "k")
	require.True(t, ok)
}
