package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	core "github.com/open-rails/sociallogin/core"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var (
	_ core.BatchSettingsStore = (*Settings)(nil)
	_ core.ConnectionStore    = (*Connections)(nil)
	_ core.EphemeralClaimer   = (*KV)(nil)
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestSettings_HashPerNamespace(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()
	s := NewSettings(rdb)

	v, err := s.GetValue(ctx, "sociallogin", "openid_providers", "[]")
	require.NoError(t, err)
	require.Equal(t, "[]", v)

	require.NoError(t, s.SetValues(ctx, "sociallogin", []core.Setting{
		{Key: "new_user_group", Value: "users"},
		{Key: "disable_registration", Value: "true"},
	}))
	require.NoError(t, s.SetValue(ctx, "sociallogin", "allow_login_connect", "false"))

	require.Equal(t, "users", mr.HGet("sociallogin:appconfig:sociallogin", "new_user_group"))
	require.Equal(t, "true", mr.HGet("sociallogin:appconfig:sociallogin", "disable_registration"))

	v, err = s.GetValue(ctx, "sociallogin", "allow_login_connect", "")
	require.NoError(t, err)
	require.Equal(t, "false", v)
}

func TestSettings_ServiceRoundTrip(t *testing.T) {
	_, rdb := newRedis(t)
	ctx := context.Background()
	svc, err := core.NewService(core.Config{}, NewSettings(rdb), NewConnections(rdb))
	require.NoError(t, err)

	in := core.AdminSettings{
		NewUserGroup:    "users",
		OpenIDProviders: core.ProviderList[core.OpenIDProvider]{{Title: "gitlab", URL: "u"}},
	}
	require.NoError(t, svc.SaveAdmin(ctx, in))
	out, err := svc.LoadAdmin(ctx)
	require.NoError(t, err)
	require.Equal(t, "users", out.NewUserGroup)
	require.Len(t, out.OpenIDProviders, 1)
}

func TestConnections_Sorted(t *testing.T) {
	_, rdb := newRedis(t)
	ctx := context.Background()
	c := NewConnections(rdb)

	require.NoError(t, c.Connect(ctx, "alice", "google-2"))
	require.NoError(t, c.Connect(ctx, "alice", "github-1"))
	require.NoError(t, c.Connect(ctx, "bob", "github-1"))

	logins, err := c.ConnectedLogins(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, []string{"github-1", "google-2"}, logins)

	require.NoError(t, c.DisconnectLogin(ctx, "alice", "github-1"))
	require.NoError(t, c.DisconnectLogin(ctx, "alice", "absent"))
	logins, err = c.ConnectedLogins(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, []string{"google-2"}, logins)

	logins, err = c.ConnectedLogins(ctx, "nobody")
	require.NoError(t, err)
	require.Empty(t, logins)
}

func TestKV_SetNXWithPrefix(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()
	kv := NewKV(rdb).WithPrefix("app:")

	ok, err := kv.SetNX(ctx, "tok", []byte("alice"), time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = kv.SetNX(ctx, "tok", []byte("alice"), time.Minute)
	require.NoError(t, err)
	require.False(t, ok)
	require.True(t, mr.Exists("app:tok"))

	mr.FastForward(2 * time.Minute)
	_, found, err := kv.Get(ctx, "tok")
	require.NoError(t, err)
	require.False(t, found)
}
