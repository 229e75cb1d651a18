package pgstore

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	core "github.com/open-rails/sociallogin/core"
	"github.com/stretchr/testify/require"
)

var (
	_ core.BatchSettingsStore = (*Settings)(nil)
	_ core.ConnectionStore    = (*Connections)(nil)
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("SOCIALLOGIN_TEST_DB_URL")
	if dsn == "" {
		t.Skip("SOCIALLOGIN_TEST_DB_URL not set")
	}
	ctx := context.Background()
	pg, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pg.Close)
	require.NoError(t, Migrate(ctx, pg))
	_, err = pg.Exec(ctx, `DELETE FROM sociallogin_appconfig WHERE appid LIKE 'test_%'`)
	require.NoError(t, err)
	_, err = pg.Exec(ctx, `DELETE FROM sociallogin_connect WHERE uid LIKE 'test_%'`)
	require.NoError(t, err)
	return pg
}

func TestSettings_UpsertAndBatch(t *testing.T) {
	pg := testPool(t)
	ctx := context.Background()
	s := NewSettings(pg)

	v, err := s.GetValue(ctx, "test_ns", "new_user_group", "def")
	require.NoError(t, err)
	require.Equal(t, "def", v)

	require.NoError(t, s.SetValue(ctx, "test_ns", "new_user_group", "a"))
	require.NoError(t, s.SetValues(ctx, "test_ns", []core.Setting{
		{Key: "new_user_group", Value: "b"},
		{Key: "openid_providers", Value: "[]"},
	}))

	v, err = s.GetValue(ctx, "test_ns", "new_user_group", "")
	require.NoError(t, err)
	require.Equal(t, "b", v)
	v, err = s.GetValue(ctx, "test_ns", "openid_providers", "")
	require.NoError(t, err)
	require.Equal(t, "[]", v)
}

func TestConnections_ScopedDelete(t *testing.T) {
	pg := testPool(t)
	ctx := context.Background()
	c := NewConnections(pg)

	require.NoError(t, c.Connect(ctx, "test_alice", "test-github-1"))
	require.NoError(t, c.Connect(ctx, "test_alice", "test-google-2"))

	// Another user cannot remove alice's link.
	require.NoError(t, c.DisconnectLogin(ctx, "test_bob", "test-github-1"))
	logins, err := c.ConnectedLogins(ctx, "test_alice")
	require.NoError(t, err)
	require.Equal(t, []string{"test-github-1", "test-google-2"}, logins)

	require.NoError(t, c.DisconnectLogin(ctx, "test_alice", "test-github-1"))
	require.NoError(t, c.DisconnectLogin(ctx, "test_alice", "test-github-1"))
	logins, err = c.ConnectedLogins(ctx, "test_alice")
	require.NoError(t, err)
	require.Equal(t, []string{"test-google-2"}, logins)
}
